package blobstore

import "context"

type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) GetCurrentPlayerID(ctx context.Context) (string, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var rec sessionRecord
	if err := r.store.read(ctx, KeyCurrentPlayer, &rec); err != nil {
		return "", false, err
	}
	return rec.PlayerID, rec.PlayerID != "", nil
}

func (r *SessionRepository) SetCurrentPlayerID(ctx context.Context, playerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.write(ctx, KeyCurrentPlayer, sessionRecord{PlayerID: playerID})
}
