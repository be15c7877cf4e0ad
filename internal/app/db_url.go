package app

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/matchday-feed/internal/infrastructure/repository/sqlstore"
)

type StorageKind string

const (
	StorageMemory   StorageKind = "memory"
	StorageSQLite   StorageKind = "sqlite"
	StoragePostgres StorageKind = "postgres"
)

// DBTarget is a parsed DB_URL.
type DBTarget struct {
	Kind StorageKind
	// DSN is what the driver receives: a file path for sqlite, the URL for postgres.
	DSN  string
	Name string
}

func (t DBTarget) Dialect() sqlstore.Dialect {
	if t.Kind == StoragePostgres {
		return sqlstore.DialectPostgres
	}
	return sqlstore.DialectSQLite
}

// ParseDBURL accepts sqlite://path, sqlite://:memory:, postgres://..., a libpq
// keyword DSN and memory://.
func ParseDBURL(raw string) (DBTarget, error) {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	switch {
	case trimmed == "":
		return DBTarget{}, fmt.Errorf("db url is empty")
	case strings.HasPrefix(lower, "memory://"):
		return DBTarget{Kind: StorageMemory, Name: "memory"}, nil
	case strings.HasPrefix(lower, "sqlite://"):
		// url.Parse rejects "sqlite://:memory:" as a bad port, so strip the scheme by hand.
		path := strings.TrimSpace(trimmed[len("sqlite://"):])
		if path == "" {
			return DBTarget{}, fmt.Errorf("sqlite path is required in %q", raw)
		}
		name := path
		if path != ":memory:" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return DBTarget{Kind: StorageSQLite, DSN: path, Name: name}, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		if _, err := url.Parse(trimmed); err != nil {
			return DBTarget{}, fmt.Errorf("parse postgres url: %w", err)
		}
		return DBTarget{Kind: StoragePostgres, DSN: trimmed, Name: dbNameFromURL(trimmed)}, nil
	case strings.Contains(trimmed, "dbname="):
		return DBTarget{Kind: StoragePostgres, DSN: trimmed, Name: dbNameFromURL(trimmed)}, nil
	default:
		return DBTarget{}, fmt.Errorf("unsupported db url %q: expected sqlite://, postgres:// or memory://", raw)
	}
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.Trim(strings.TrimSpace(strings.TrimPrefix(token, "dbname=")), `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
