package blobstore

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) load(ctx context.Context) ([]player.Player, error) {
	var records []playerRecord
	if err := r.store.read(ctx, KeyRoster, &records); err != nil {
		return nil, err
	}
	out := make([]player.Player, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.load(ctx)
}

func (r *PlayerRepository) ListByDivision(ctx context.Context, tournamentID, divisionID string) ([]player.Player, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return player.FilterActive(all, tournamentID, divisionID), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	all, err := r.List(ctx)
	if err != nil {
		return player.Player{}, false, err
	}
	for _, p := range all {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	return r.CreateAdmitted(ctx, p, nil)
}

func (r *PlayerRepository) CreateAdmitted(ctx context.Context, p player.Player, admit player.Admission) error {
	if err := p.Validate(); err != nil {
		return crerr.Wrap(err, "validate player")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	all, err := r.load(ctx)
	if err != nil {
		return err
	}
	records := make([]playerRecord, 0, len(all)+1)
	for _, existing := range all {
		if existing.ID == p.ID {
			return crerr.Newf("player %s already exists", p.ID)
		}
		records = append(records, toPlayerRecord(existing))
	}
	if admit != nil {
		if err := admit(all); err != nil {
			return err
		}
	}
	records = append(records, toPlayerRecord(p))
	return r.store.write(ctx, KeyRoster, records)
}
