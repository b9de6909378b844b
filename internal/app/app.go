package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases storage handles and must run after the server has stopped.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build repositories: %w", err)
	}

	ids := idgen.NewUUIDGenerator()

	tournamentSvc := usecase.NewTournamentService(repos.tournaments, repos.players)
	standingSvc := usecase.NewStandingService(
		repos.tournaments,
		repos.players,
		repos.results,
		repos.schedule,
		cfg.RankingWorkers,
		logger.With("component", "standings"),
	)
	matchSvc := usecase.NewMatchService(
		repos.tournaments,
		repos.players,
		repos.results,
		repos.schedule,
		ids,
		logger.With("component", "matches"),
	)
	registrationSvc := usecase.NewRegistrationService(
		repos.tournaments,
		repos.players,
		repos.sessions,
		ids,
		logger.With("component", "registration"),
	)

	handler := httpapi.NewHandler(tournamentSvc, standingSvc, matchSvc, registrationSvc, logger.With("component", "httpapi"))
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("application wired",
		"storage", cfg.StorageBackend,
		"cache", cfg.CacheEnabled,
		"ranking_workers", cfg.RankingWorkers,
	)

	return server, repos.close, nil
}
