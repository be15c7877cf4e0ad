// Package sqlstore persists every domain entity through sqlx on sqlite or postgres.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-feed/db/migrations"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const defaultWorkers = 4

type Config struct {
	Dialect Dialect
	// DSN is a file path (or ":memory:") for sqlite and a connection URL for postgres.
	DSN            string
	Name           string
	Workers        int
	QueryFormatter func(query string) string
	Logger         *logging.Logger
}

// Store owns the process-wide database handle. Open it once, Close it on shutdown.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	dsn     string
	pool    *ants.Pool
	batch   *batchWriter
	logger  *logging.Logger
}

func init() {
	sqlx.BindDriver(string(DialectSQLite), sqlx.QUESTION)
}

func Open(ctx context.Context, cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("sqlstore")

	dsn, err := driverDSN(cfg.Dialect, cfg.DSN)
	if err != nil {
		return nil, err
	}

	opts := []otelsql.Option{
		otelsql.WithAttributes(attribute.String("db.system", string(cfg.Dialect))),
		otelsql.WithDBName(cfg.Name),
	}
	if cfg.QueryFormatter != nil {
		opts = append(opts, otelsql.WithQueryFormatter(cfg.QueryFormatter))
	}

	db, err := otelsqlx.Open(string(cfg.Dialect), dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Dialect, err)
	}
	if cfg.Dialect == DialectSQLite {
		// One connection serializes access and keeps ":memory:" databases alive.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Dialect, err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	var pool *ants.Pool
	if cfg.Dialect == DialectSQLite {
		pool, err = ants.NewPool(workers)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create upsert worker pool: %w", err)
		}
	}

	logger.Info("database opened", "dialect", cfg.Dialect, "name", cfg.Name, "workers", workers)
	return &Store{
		db:      db,
		dialect: cfg.Dialect,
		dsn:     dsn,
		pool:    pool,
		batch:   newBatchWriter(db, cfg.Dialect, pool, logger),
		logger:  logger,
	}, nil
}

func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Release()
	}
	return s.db.Close()
}

// NewMigrator builds a golang-migrate instance over the embedded migrations
// for the store's dialect. Call release when done with it.
func (s *Store) NewMigrator() (m *migrate.Migrate, release func(), err error) {
	src, err := iofs.New(migrations.FS, migrations.Dir(string(s.dialect)))
	if err != nil {
		return nil, nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	switch s.dialect {
	case DialectSQLite:
		// The sqlite driver closes the handle it wraps, so the migrator is never closed.
		driver, err := migratesqlite.WithInstance(s.db.DB, &migratesqlite.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("create sqlite migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, string(DialectSQLite), driver)
		if err != nil {
			return nil, nil, fmt.Errorf("create migrator: %w", err)
		}
		return m, func() {}, nil
	case DialectPostgres:
		m, err = migrate.NewWithSourceInstance("iofs", src, s.dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("create migrator: %w", err)
		}
		return m, func() {
			if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
				s.logger.Warn("close migrator failed", "source_error", srcErr, "db_error", dbErr)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported dialect %q", s.dialect)
	}
}

// Migrate applies every pending embedded migration.
func (s *Store) Migrate() error {
	m, release, err := s.NewMigrator()
	if err != nil {
		return err
	}
	defer release()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	s.logger.Info("migrations applied", "dialect", s.dialect, "version", version, "dirty", dirty)
	return nil
}

func driverDSN(dialect Dialect, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch dialect {
	case DialectSQLite:
		if raw == "" {
			return "", fmt.Errorf("sqlite path is required")
		}
		path := strings.TrimPrefix(raw, "file:")
		pragmas := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		if path != ":memory:" {
			pragmas += "&_pragma=journal_mode(WAL)"
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return "file:" + path + sep + pragmas, nil
	case DialectPostgres:
		if raw == "" {
			return "", fmt.Errorf("postgres url is required")
		}
		return raw, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}
