package blobstore

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
)

type ScheduleRepository struct {
	store *Store
}

func NewScheduleRepository(store *Store) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

func (r *ScheduleRepository) load(ctx context.Context) ([]schedule.Match, error) {
	var records []matchRecord
	if err := r.store.read(ctx, KeySchedule, &records); err != nil {
		return nil, err
	}
	out := make([]schedule.Match, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *ScheduleRepository) save(ctx context.Context, matches []schedule.Match) error {
	records := make([]matchRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, toMatchRecord(m))
	}
	return r.store.write(ctx, KeySchedule, records)
}

func (r *ScheduleRepository) ListByScope(ctx context.Context, tournamentID, divisionID string) ([]schedule.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]schedule.Match, 0, len(all))
	for _, m := range all {
		if m.TournamentID == tournamentID && m.DivisionID == divisionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, matchID string) (schedule.Match, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return schedule.Match{}, false, err
	}
	for _, m := range all {
		if m.ID == matchID {
			return m, true, nil
		}
	}
	return schedule.Match{}, false, nil
}

func (r *ScheduleRepository) Append(ctx context.Context, m schedule.Match) error {
	if err := m.Validate(); err != nil {
		return crerr.Wrap(err, "validate scheduled match")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	if err := schedule.CheckPair(all, m); err != nil {
		return err
	}
	return r.save(ctx, append(all, m))
}

func (r *ScheduleRepository) ConfirmPending(ctx context.Context, matchID, playerID, playerName string) (schedule.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return schedule.Match{}, err
	}
	for i := range all {
		if all[i].ID != matchID {
			continue
		}
		joined := all[i]
		if err := joined.Join(playerID, playerName); err != nil {
			return schedule.Match{}, err
		}
		if err := schedule.CheckPair(all, joined); err != nil {
			return schedule.Match{}, err
		}
		all[i] = joined
		if err := r.save(ctx, all); err != nil {
			return schedule.Match{}, err
		}
		return joined, nil
	}
	return schedule.Match{}, crerr.Wrapf(schedule.ErrMatchNotFound, "match=%s", matchID)
}

func (r *ScheduleRepository) RemoveByPair(ctx context.Context, tournamentID, divisionID, playerA, playerB string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return 0, err
	}

	kept, removed := schedule.WithoutPair(all, tournamentID, divisionID, playerA, playerB)
	if removed == 0 {
		return 0, nil
	}
	if err := r.save(ctx, kept); err != nil {
		return 0, err
	}
	return removed, nil
}
