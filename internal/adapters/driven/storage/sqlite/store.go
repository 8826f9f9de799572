package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store is a SQLite database holding synced 7shifts records, the sync
// history and the daemon's scheduler state. Each concern is exposed
// through a wrapper implementing its port.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.7shifts/7shifts.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".7shifts", "7shifts.db"), nil
}

// NewStore opens or creates the database at dbPath and applies pending
// migrations. An empty path uses DefaultPath and a leading "~/" is
// expanded to the home directory.
func NewStore(dbPath string) (*Store, error) {
	dbPath, err := resolvePath(dbPath)
	if err != nil {
		return nil, err
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=foreign_keys(1)"
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		// WAL lets readers such as report queries run during a sync.
		dsn += "&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if dbPath == MemoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func resolvePath(dbPath string) (string, error) {
	switch {
	case dbPath == "":
		return DefaultPath()
	case dbPath == MemoryPath:
		return dbPath, nil
	case strings.HasPrefix(dbPath, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, dbPath[2:]), nil
	default:
		return dbPath, nil
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// WorkforceStore returns a WorkforceStore backed by this database.
func (s *Store) WorkforceStore() driven.WorkforceStore {
	return &workforceStore{store: s}
}

// SyncRunStore returns a SyncRunStore backed by this database.
func (s *Store) SyncRunStore() driven.SyncRunStore {
	return &syncRunStore{store: s}
}

// SchedulerStore returns a SchedulerStore backed by this database.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// migrate applies every NNN_*.up.sql file newer than the recorded
// version, each in its own transaction.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		err = s.withTx(context.Background(), func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(content)); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version)
			return err
		})
		if err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// withTx runs fn in a transaction, committing if it returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
