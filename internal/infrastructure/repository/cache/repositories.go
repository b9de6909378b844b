package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
)

const rosterKeyPrefix = "roster:"

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	items, err := basecache.Load(ctx, r.cache, "tournament:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	key := "tournament:id:" + tournamentID
	hit, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (lookup[tournament.Tournament], error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		return lookup[tournament.Tournament]{value: item, exists: exists}, err
	})
	return hit.value, hit.exists, err
}

// lookup caches the found flag with the value so misses are cached too.
type lookup[T any] struct {
	value  T
	exists bool
}

// PlayerRepository caches roster reads. Create drops every roster entry so
// capacity checks see the new player immediately.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return r.loadList(ctx, rosterKeyPrefix+"all", r.next.List)
}

func (r *PlayerRepository) ListByDivision(ctx context.Context, tournamentID, divisionID string) ([]player.Player, error) {
	key := rosterKeyPrefix + "division:" + tournamentID + ":" + divisionID
	return r.loadList(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByDivision(ctx, tournamentID, divisionID)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := rosterKeyPrefix + "id:" + playerID
	hit, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (lookup[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		return lookup[player.Player]{value: item, exists: exists}, err
	})
	return hit.value, hit.exists, err
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	if err := r.next.Create(ctx, p); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, rosterKeyPrefix)
	return nil
}

// CreateAdmitted hands admit the uncached roster held by the next layer.
func (r *PlayerRepository) CreateAdmitted(ctx context.Context, p player.Player, admit player.Admission) error {
	if err := r.next.CreateAdmitted(ctx, p, admit); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, rosterKeyPrefix)
	return nil
}

func (r *PlayerRepository) loadList(ctx context.Context, key string, load func(context.Context) ([]player.Player, error)) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, key, load)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}
