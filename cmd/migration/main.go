package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

type command struct {
	usage string
	run   func(m *migrate.Migrate, args []string, logger *logging.Logger) error
}

var commands = map[string]command{
	"up":      {usage: "up", run: runUp},
	"down":    {usage: "down [steps]", run: runDown},
	"version": {usage: "version", run: runVersion},
	"force":   {usage: "force <version>", run: runForce},
	"goto":    {usage: "goto <version>", run: runGoto},
}

func main() {
	logger := logging.New(logging.FormatConsole, logging.LevelInfo, os.Stderr)
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	if err := run(cmd, os.Args[2:], logger); err != nil {
		logger.Error("migration failed", "command", name, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cmd command, args []string, logger *logging.Logger) error {
	cfg, err := config.LoadMigration()
	if err != nil {
		return err
	}
	dir, err := resolveMigrationsDir(cfg.MigrationsDir)
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.DBURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("close migrator", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	return cmd.run(m, args, logger)
}

func runUp(m *migrate.Migrate, _ []string, logger *logging.Logger) error {
	if err := ignoreNoChange(m.Up(), logger); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	steps, err := parseSteps(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Steps(-steps), logger); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m *migrate.Migrate, _ []string, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
	return nil
}

func runForce(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("force requires a version argument")
	}
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced version", "version", version)
	return nil
}

func runGoto(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errors.New("goto requires a target version argument")
	}
	target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid target version %q: %w", args[0], err)
	}
	if err := ignoreNoChange(m.Migrate(uint(target)), logger); err != nil {
		return err
	}
	logger.Info("migrated", "version", target)
	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

// parseVersion accepts golang-migrate's timestamp versions, which need an
// int that can hold them on this platform.
func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return int(value), nil
}

func resolveMigrationsDir(configured string) (string, error) {
	candidates := defaultMigrationDirs
	if configured != "" {
		candidates = append([]string{configured}, defaultMigrationDirs...)
	}

	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked %s)", strings.Join(candidates, ", "))
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", bin)
	for _, name := range []string{"up", "down", "version", "force", "goto"} {
		fmt.Fprintf(os.Stderr, "  %s %s\n", bin, commands[name].usage)
	}
}
