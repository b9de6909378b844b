package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/player"
)

// PlayerRepository keeps the roster in registration order.
type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	orders []string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{
		items:  make(map[string]player.Player, len(players)),
		orders: make([]string, 0, len(players)),
	}
	for _, p := range players {
		if _, exists := r.items[p.ID]; exists {
			continue
		}
		r.items[p.ID] = clonePlayer(p)
		r.orders = append(r.orders, p.ID)
	}

	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, clonePlayer(r.items[id]))
	}

	return out, nil
}

func (r *PlayerRepository) ListByDivision(ctx context.Context, tournamentID, divisionID string) ([]player.Player, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return player.FilterActive(all, tournamentID, divisionID), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	return r.CreateAdmitted(ctx, p, nil)
}

func (r *PlayerRepository) CreateAdmitted(_ context.Context, p player.Player, admit player.Admission) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate player: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	if admit != nil {
		roster := make([]player.Player, 0, len(r.orders))
		for _, id := range r.orders {
			roster = append(roster, clonePlayer(r.items[id]))
		}
		if err := admit(roster); err != nil {
			return err
		}
	}
	r.items[p.ID] = clonePlayer(p)
	r.orders = append(r.orders, p.ID)

	return nil
}

func clonePlayer(p player.Player) player.Player {
	p.TournamentIDs = append([]string(nil), p.TournamentIDs...)
	p.Availability = append([]string(nil), p.Availability...)
	p.PreferredLocations = append([]string(nil), p.PreferredLocations...)
	return p
}
