// Package quota persists the daily free-tier conversion allowance in SQLite.
//
// Each identifier gets a rolling 24-hour window; the first consumption after
// a window expires starts a fresh one. Premium users are never checked, so
// nothing here needs to know about tiers.
package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"file-bag/internal/logging"
	"file-bag/internal/metrics"
)

const defaultTimeout = 5 * time.Second

const window = 24 * time.Hour

// Status is the outcome of a quota check.
type Status struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// Store manages quota windows in a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the quota database at dbPath. The parent directory
// must already exist and be writable.
func New(ctx context.Context, dbPath string) (*Store, error) {
	// WAL mode and a busy timeout, as for any small write-heavy sqlite store.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open quota database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close quota database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to quota database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close quota database after init failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize quota schema: %w", err)
	}

	logging.Info("Quota database initialized at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS quota_windows (
		identifier TEXT PRIMARY KEY,
		count      INTEGER NOT NULL DEFAULT 0,
		reset_at   INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_quota_reset_at ON quota_windows(reset_at);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Consume counts one conversion batch against identifier's daily window and
// reports whether it was allowed. A denied check does not advance the count.
func (s *Store) Consume(ctx context.Context, identifier string, limit int) (Status, error) {
	status, err := s.apply(ctx, identifier, limit, true)
	switch {
	case err != nil:
		metrics.QuotaChecksTotal.WithLabelValues("error").Inc()
	case status.Allowed:
		metrics.QuotaChecksTotal.WithLabelValues("allowed").Inc()
	default:
		metrics.QuotaChecksTotal.WithLabelValues("denied").Inc()
	}
	return status, err
}

// Peek reports the current window state without consuming anything.
func (s *Store) Peek(ctx context.Context, identifier string, limit int) (Status, error) {
	return s.apply(ctx, identifier, limit, false)
}

func (s *Store) apply(ctx context.Context, identifier string, limit int, consume bool) (Status, error) {
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(opCtx, nil)
	if err != nil {
		return Status{}, fmt.Errorf("failed to begin quota transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logging.Warn("quota transaction rollback failed: %v", err)
		}
	}()

	now := s.now()

	var count int
	var resetUnix int64
	err = tx.QueryRowContext(opCtx,
		`SELECT count, reset_at FROM quota_windows WHERE identifier = ?`, identifier,
	).Scan(&count, &resetUnix)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		count = 0
		resetUnix = now.Add(window).Unix()
	case err != nil:
		return Status{}, fmt.Errorf("failed to read quota window: %w", err)
	default:
		// Window expired: start over.
		if now.Unix() >= resetUnix {
			count = 0
			resetUnix = now.Add(window).Unix()
		}
	}

	resetAt := time.Unix(resetUnix, 0)

	if count >= limit {
		return Status{Allowed: false, Remaining: 0, ResetAt: resetAt}, nil
	}

	if consume {
		count++
		_, err = tx.ExecContext(opCtx, `
			INSERT INTO quota_windows (identifier, count, reset_at) VALUES (?, ?, ?)
			ON CONFLICT(identifier) DO UPDATE SET count = excluded.count, reset_at = excluded.reset_at`,
			identifier, count, resetUnix)
		if err != nil {
			return Status{}, fmt.Errorf("failed to update quota window: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return Status{}, fmt.Errorf("failed to commit quota window: %w", err)
		}
	}

	return Status{Allowed: true, Remaining: limit - count, ResetAt: resetAt}, nil
}

// PurgeExpired removes windows that ended before now, returning how many
// rows were deleted. Intended for a periodic background sweep.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.ExecContext(opCtx,
		`DELETE FROM quota_windows WHERE reset_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired quota windows: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged quota windows: %w", err)
	}
	if n > 0 {
		logging.Debug("Purged %d expired quota windows", n)
	}
	return n, nil
}
