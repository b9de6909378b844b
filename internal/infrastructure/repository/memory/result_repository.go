package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
)

// ResultRepository is an append-only list of played matches.
type ResultRepository struct {
	mu    sync.RWMutex
	items []matchresult.Result
}

func NewResultRepository(results []matchresult.Result) *ResultRepository {
	items := make([]matchresult.Result, 0, len(results))
	for _, r := range results {
		items = append(items, cloneResult(r))
	}
	return &ResultRepository{items: items}
}

func (r *ResultRepository) ListByScope(_ context.Context, tournamentID, divisionID string) ([]matchresult.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchresult.Result, 0)
	for _, item := range r.items {
		if item.TournamentID == tournamentID && item.DivisionID == divisionID {
			out = append(out, cloneResult(item))
		}
	}

	return out, nil
}

func (r *ResultRepository) Append(_ context.Context, result matchresult.Result) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("validate result: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, cloneResult(result))
	return nil
}

func cloneResult(r matchresult.Result) matchresult.Result {
	sets := make([]matchresult.SetScore, 0, len(r.Sets))
	for _, s := range r.Sets {
		sets = append(sets, matchresult.SetScore{Player1: cloneInt(s.Player1), Player2: cloneInt(s.Player2)})
	}
	r.Sets = sets
	return r
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
