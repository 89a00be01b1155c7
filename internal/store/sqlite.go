package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// SQLStore implements Store on top of SQLite or PostgreSQL.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// Option configures a SQLStore.
type Option func(*SQLStore)

// WithClock overrides the time source used for created/completed stamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLStore) {
		s.now = now
	}
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLStore, error) {
	return Open(context.Background(), DriverSQLite, dbPath, opts...)
}

// Open connects with the given driver and data source and runs any
// pending schema migrations.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*SQLStore, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", driver, err)
	}

	if driver == DriverSQLite {
		// A single connection keeps ":memory:" databases coherent and
		// matches SQLite's single-writer model.
		db.SetMaxOpenConns(1)

		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	}

	s := &SQLStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order, each in its own transaction.
func (s *SQLStore) runMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	err := s.db.GetContext(ctx, &currentVersion,
		"SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

func (s *SQLStore) applyMigration(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		tx.Rebind("INSERT INTO schema_version (version) VALUES (?)"), m.version); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}

	return tx.Commit()
}

// nowMillis returns the store clock as unix milliseconds.
func (s *SQLStore) nowMillis() int64 {
	return s.now().UTC().UnixMilli()
}

// fromMillis converts a stored timestamp back to UTC time.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// newID returns a UUIDv7. Within one process these sort in generation
// order, which breaks ties between rows stamped in the same millisecond.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return id.String(), nil
}
