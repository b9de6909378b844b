package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageBackendValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_BACKEND", "redis")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_BACKEND")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("STORAGE_SEED", "")
	t.Setenv("RANKING_WORKERS", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("APP_LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageBackend != StorageMemory {
		t.Fatalf("expected memory backend by default, got %q", cfg.StorageBackend)
	}
	if !cfg.StorageSeed {
		t.Fatalf("expected seeding on by default in dev")
	}
	if cfg.RankingWorkers != 4 {
		t.Fatalf("unexpected RankingWorkers: %d", cfg.RankingWorkers)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_ProdDoesNotSeedByDefault(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("STORAGE_SEED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageSeed {
		t.Fatalf("expected STORAGE_SEED=false in prod by default")
	}
}

func TestLoad_StrictParsing(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "RANKING_WORKERS", value: "0"},
		{key: "RANKING_WORKERS", value: "many"},
		{key: "CACHE_TTL", value: "-1s"},
		{key: "CACHE_ENABLED", value: "maybe"},
		{key: "CACHE_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "STORAGE_SEED", value: "sometimes"},
		{key: "APP_READ_TIMEOUT", value: "ten"},
		{key: "PYROSCOPE_UPLOAD_RATE", value: "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_FileBackend(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("STORAGE_BACKEND", "FILE")
	t.Setenv("STORAGE_DATA_DIR", dir)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ppc.example, ,https://admin.ppc.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageBackend != StorageFile || cfg.StorageDataDir != dir {
		t.Fatalf("unexpected storage config: %q %q", cfg.StorageBackend, cfg.StorageDataDir)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}
