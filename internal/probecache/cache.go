package probecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"ffstrip/internal/logging"
)

// ErrLocked is returned when another process holds the cache lock. Callers
// treat it as a cache miss and fall back to a live ffprobe run.
var ErrLocked = errors.New("probe cache is locked by another process")

// Key identifies one cached inspection.
type Key struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// KeyFor stats path and builds its cache key.
func KeyFor(path string) (Key, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return Key{}, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(absolute)
	if err != nil {
		return Key{}, fmt.Errorf("stat %q: %w", absolute, err)
	}
	return Key{Path: absolute, Size: info.Size(), ModTime: info.ModTime().UTC()}, nil
}

// Store manages probe result persistence backed by SQLite. A sidecar flock
// keeps concurrent ffstrip runs from racing on the database file.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes or connects to the cache database. It fails with
// ErrLocked when another run holds the cache.
func Open(path string, logger *slog.Logger) (*Store, error) {
	logger = logging.NewComponentLogger(logger, "probecache")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock, logger: logger}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

func (s *Store) applyMigrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS probe_results (
            path      TEXT    NOT NULL,
            size      INTEGER NOT NULL,
            mtime     TEXT    NOT NULL,
            probed_at TEXT    NOT NULL,
            raw_json  BLOB    NOT NULL,
            PRIMARY KEY (path, size, mtime)
        )`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases the database connection and the cross-process lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

// Lookup returns the cached raw ffprobe JSON for key, if present.
func (s *Store) Lookup(ctx context.Context, key Key) ([]byte, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT raw_json FROM probe_results WHERE path = ? AND size = ? AND mtime = ?`,
		key.Path, key.Size, key.ModTime.Format(time.RFC3339Nano),
	)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup probe result: %w", err)
	}
	s.logger.Debug("probe cache hit", logging.String("path", key.Path))
	return raw, true, nil
}

// Put stores the raw ffprobe JSON for key, replacing any previous entry for
// the same path (older size/mtime rows for the path are pruned).
func (s *Store) Put(ctx context.Context, key Key, raw []byte) error {
	if len(raw) == 0 {
		return errors.New("empty probe payload")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM probe_results WHERE path = ?`, key.Path); err != nil {
		return fmt.Errorf("prune stale probe results: %w", err)
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO probe_results (path, size, mtime, probed_at, raw_json) VALUES (?, ?, ?, ?, ?)`,
		key.Path,
		key.Size,
		key.ModTime.Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
		raw,
	)
	if err != nil {
		return fmt.Errorf("insert probe result: %w", err)
	}
	s.logger.Debug("probe cache store", logging.String("path", key.Path), logging.Int("bytes", len(raw)))
	return nil
}

// Prune removes entries older than cutoff and reports how many were dropped.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM probe_results WHERE probed_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune probe results: %w", err)
	}
	return res.RowsAffected()
}
