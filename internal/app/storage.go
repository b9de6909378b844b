package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/blobstore"
	cacherepo "github.com/riskibarqy/league-standings/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
)

// repositories is the storage seam shared by every service. The tournament
// catalogue is static and always served from memory.
type repositories struct {
	tournaments tournament.Repository
	players     player.Repository
	results     matchresult.Repository
	schedule    schedule.Repository
	sessions    player.SessionRepository
	close       func() error
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	repos := repositories{
		tournaments: memory.NewTournamentRepository(memory.SeedTournaments()),
		close:       func() error { return nil },
	}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		var roster []player.Player
		if cfg.StorageSeed {
			roster = memory.SeedPlayers()
		}
		repos.players = memory.NewPlayerRepository(roster)
		repos.results = memory.NewResultRepository(nil)
		repos.schedule = memory.NewScheduleRepository(nil)
		repos.sessions = memory.NewSessionRepository()
	case config.StorageFile:
		files, err := blobstore.NewFileStore(cfg.StorageDataDir)
		if err != nil {
			return repositories{}, fmt.Errorf("open file store: %w", err)
		}
		store, snap, err := blobstore.Open(ctx, files)
		if err != nil {
			return repositories{}, fmt.Errorf("open blob store: %w", err)
		}
		repos.players = blobstore.NewPlayerRepository(store)
		repos.results = blobstore.NewResultRepository(store)
		repos.schedule = blobstore.NewScheduleRepository(store)
		repos.sessions = blobstore.NewSessionRepository(store)
		logger.Info("file storage opened",
			"dir", cfg.StorageDataDir,
			"results", len(snap.Results),
			"scheduled", len(snap.Schedule),
			"players", len(snap.Roster),
		)
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		repos.players = postgres.NewPlayerRepository(db)
		repos.results = postgres.NewResultRepository(db)
		repos.schedule = postgres.NewScheduleRepository(db)
		repos.sessions = postgres.NewSessionRepository(db)
		repos.close = closeDB(db)
	default:
		return repositories{}, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.StorageSeed && cfg.StorageBackend != config.StorageMemory {
		if err := seedRoster(ctx, repos.players, logger); err != nil {
			_ = repos.close()
			return repositories{}, err
		}
	}

	if cfg.CacheEnabled {
		breaker := resilience.NewBreaker(resilience.BreakerConfig{
			Enabled:          cfg.CacheCircuitEnabled,
			FailureThreshold: cfg.CacheCircuitFailureCount,
			OpenTimeout:      cfg.CacheCircuitOpenTimeout,
			HalfOpenProbes:   cfg.CacheCircuitHalfOpenMaxReq,
			OnStateChange: func(from, to resilience.State) {
				logger.Warn("roster cache breaker state changed", "from", from.String(), "to", to.String())
			},
		})
		store := basecache.NewStore(cfg.CacheTTL, basecache.WithBreaker(breaker))
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	}

	return repos, nil
}

// seedRoster loads the demo roster into an empty persistent store.
func seedRoster(ctx context.Context, players player.Repository, logger *logging.Logger) error {
	existing, err := players.List(ctx)
	if err != nil {
		return fmt.Errorf("list roster for seeding: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seed := memory.SeedPlayers()
	for _, p := range seed {
		if err := players.Create(ctx, p); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}
	logger.Info("seeded demo roster", "players", len(seed))
	return nil
}

func closeDB(db *sqlx.DB) func() error {
	return func() error {
		return db.Close()
	}
}
