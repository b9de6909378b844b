package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu    sync.RWMutex
	items []schedule.Match
}

func NewScheduleRepository(matches []schedule.Match) *ScheduleRepository {
	return &ScheduleRepository{items: append([]schedule.Match(nil), matches...)}
}

func (r *ScheduleRepository) ListByScope(_ context.Context, tournamentID, divisionID string) ([]schedule.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Match, 0)
	for _, m := range r.items {
		if m.TournamentID == tournamentID && m.DivisionID == divisionID {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, matchID string) (schedule.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.items {
		if m.ID == matchID {
			return m, true, nil
		}
	}

	return schedule.Match{}, false, nil
}

func (r *ScheduleRepository) Append(_ context.Context, m schedule.Match) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("validate scheduled match: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := schedule.CheckPair(r.items, m); err != nil {
		return err
	}
	r.items = append(r.items, m)
	return nil
}

func (r *ScheduleRepository) ConfirmPending(_ context.Context, matchID, playerID, playerName string) (schedule.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != matchID {
			continue
		}
		joined := r.items[i]
		if err := joined.Join(playerID, playerName); err != nil {
			return schedule.Match{}, err
		}
		if err := schedule.CheckPair(r.items, joined); err != nil {
			return schedule.Match{}, err
		}
		r.items[i] = joined
		return joined, nil
	}

	return schedule.Match{}, fmt.Errorf("%w: match=%s", schedule.ErrMatchNotFound, matchID)
}

func (r *ScheduleRepository) RemoveByPair(_ context.Context, tournamentID, divisionID, playerA, playerB string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept, removed := schedule.WithoutPair(r.items, tournamentID, divisionID, playerA, playerB)
	r.items = kept
	return removed, nil
}
