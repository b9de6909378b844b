package memory

import (
	"context"
	"sync"
)

// SessionRepository holds the player the process acts as.
type SessionRepository struct {
	mu       sync.RWMutex
	playerID string
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) GetCurrentPlayerID(_ context.Context) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.playerID, r.playerID != "", nil
}

func (r *SessionRepository) SetCurrentPlayerID(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.playerID = playerID
	return nil
}
