package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MigrationConfig is what cmd/migration reads. It skips the service settings
// so migrations can run from a bare job container.
type MigrationConfig struct {
	DBURL         string
	MigrationsDir string
}

func LoadMigration() (MigrationConfig, error) {
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return MigrationConfig{}, errors.New("DB_URL is required")
	}
	disable, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return MigrationConfig{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	dir := strings.TrimSpace(getEnv("MIGRATIONS_DIR", ""))
	if dir == "" {
		dir = strings.TrimSpace(getEnv("MIGRATIONS_PATH", ""))
	}

	return MigrationConfig{
		DBURL:         NormalizeDBURL(dbURL, disable),
		MigrationsDir: dir,
	}, nil
}

// PostgresDSN is DB_URL with the pooler workaround applied.
func (c Config) PostgresDSN() string {
	return NormalizeDBURL(c.DBURL, c.DBDisablePreparedBinary)
}

// NormalizeDBURL opts into disable_prepared_binary_result for poolers that
// cannot handle binary results on prepared statements. An explicit value in
// the URL wins, and key=value DSNs are returned untouched.
func NormalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}
