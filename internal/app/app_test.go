package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func baseConfig() config.Config {
	return config.Config{
		AppEnv:         config.EnvDev,
		HTTPAddr:       ":0",
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		StorageBackend: config.StorageMemory,
		StorageSeed:    true,
		RankingWorkers: 2,
	}
}

func TestNewHTTPServer_RejectsEmptyAddr(t *testing.T) {
	cfg := baseConfig()
	cfg.HTTPAddr = ""

	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNewHTTPServer_ServesSeededRosterWithCache(t *testing.T) {
	cfg := baseConfig()
	cfg.CacheEnabled = true
	cfg.CacheTTL = time.Minute
	cfg.CacheCircuitEnabled = true
	cfg.CacheCircuitFailureCount = 3
	cfg.CacheCircuitOpenTimeout = time.Second
	cfg.CacheCircuitHalfOpenMaxReq = 1

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewHTTPServer: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })

	path := "/v1/tournaments/" + memory.TournamentIDWinter + "/divisions/" + memory.DivisionIDOro + "/players"
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Marta Vidal") {
		t.Fatalf("expected seeded player in roster, got %s", rec.Body.String())
	}
}

func TestNewHTTPServer_FileBackendPersistsRegistration(t *testing.T) {
	cfg := baseConfig()
	cfg.StorageBackend = config.StorageFile
	cfg.StorageDataDir = t.TempDir()
	cfg.StorageSeed = false

	body := `{"name":"Nuria Camps","email":"nuria@ppc.example","password":"secret-pass","division_id":"plata","tournament_ids":["` + memory.TournamentIDWinter + `"]}`

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewHTTPServer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/registrations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status=%d body=%s", rec.Code, rec.Body.String())
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	reopened, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })

	rec = httptest.NewRecorder()
	reopened.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/session", nil))
	if !strings.Contains(rec.Body.String(), "nuria@ppc.example") {
		t.Fatalf("expected persisted session player, got %s", rec.Body.String())
	}
}
