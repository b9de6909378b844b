package blobstore

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
)

type ResultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) *ResultRepository {
	return &ResultRepository{store: store}
}

func (r *ResultRepository) ListByScope(ctx context.Context, tournamentID, divisionID string) ([]matchresult.Result, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var records []resultRecord
	if err := r.store.read(ctx, KeyResults, &records); err != nil {
		return nil, err
	}

	out := make([]matchresult.Result, 0, len(records))
	for _, rec := range records {
		if rec.TournamentID == tournamentID && rec.DivisionID == divisionID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *ResultRepository) Append(ctx context.Context, result matchresult.Result) error {
	if err := result.Validate(); err != nil {
		return crerr.Wrap(err, "validate result")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var records []resultRecord
	if err := r.store.read(ctx, KeyResults, &records); err != nil {
		return err
	}
	records = append(records, toResultRecord(result))
	return r.store.write(ctx, KeyResults, records)
}
