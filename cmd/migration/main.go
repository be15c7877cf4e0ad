package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/matchday-feed/internal/app"
	"github.com/riskibarqy/matchday-feed/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
)

// schemaMigrator is the subset of *migrate.Migrate the commands drive.
type schemaMigrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("LOG_LEVEL"))).Named("migration")
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := migrateDatabase(os.Args[1:], logger); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		logger.Error("migration failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func migrateDatabase(args []string, logger *logging.Logger) error {
	target, err := app.ParseDBURL(strings.TrimSpace(os.Getenv("DB_URL")))
	if err != nil {
		return fmt.Errorf("parse DB_URL: %w", err)
	}
	if target.Kind == app.StorageMemory {
		return errors.New("memory:// storage has no schema to migrate")
	}

	store, err := sqlstore.Open(context.Background(), sqlstore.Config{
		Dialect: target.Dialect(),
		DSN:     target.DSN,
		Name:    target.Name,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	m, release, err := store.NewMigrator()
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer release()

	logger = logger.With("dialect", target.Dialect())
	return run(args, m, os.Stdout, logger)
}

// run executes one migration command. ErrNoChange is reported, not returned.
func run(args []string, m schemaMigrator, out io.Writer, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := strings.ToLower(strings.TrimSpace(args[0])), args[1:]

	switch cmd {
	case "up":
		return settle(m.Up(), logger, "migrations applied")
	case "down":
		steps, err := parseSteps(rest)
		if err != nil {
			return err
		}
		return settle(m.Steps(-steps), logger, "migrations rolled back", "steps", steps)
	case "goto", "migrate":
		if len(rest) == 0 {
			return fmt.Errorf("%s requires a target version", cmd)
		}
		version, err := strconv.ParseUint(strings.TrimSpace(rest[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", rest[0], err)
		}
		return settle(m.Migrate(uint(version)), logger, "migrated", "version", version)
	case "force":
		if len(rest) == 0 {
			return errors.New("force requires a version")
		}
		version, err := strconv.Atoi(strings.TrimSpace(rest[0]))
		if err != nil || version < -1 {
			return fmt.Errorf("invalid version %q", rest[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("version forced", "version", version)
		return nil
	case "version":
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		case err != nil:
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	default:
		return errUsage
	}
}

func settle(err error, logger *logging.Logger, msg string, args ...any) error {
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes")
		return nil
	case err != nil:
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("down steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

func printUsage(w io.Writer) {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down [n]|goto <version>|force <version>|version>\n", bin)
	fmt.Fprintln(w, "DB_URL selects the database, e.g. postgres://... or sqlite://matchday.db")
}
