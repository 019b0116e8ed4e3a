package sqliterepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/milad/energyusage/internal/domain"
	"github.com/milad/energyusage/internal/repo"
)

var (
	_ repo.ReadingRepository = (*Repo)(nil)
	_ repo.ReadingWriter     = (*Repo)(nil)
)

// Options configures the SQLite store.
type Options struct {
	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// Repo persists readings in a single-tenant SQLite database.
type Repo struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and initializes the schema.
func Open(path string, opts Options) (*Repo, error) {
	if path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if opts.BusyTimeout == 0 {
		opts.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path, int(opts.BusyTimeout.Milliseconds()))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	r := &Repo{db: db}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return r, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at INTEGER NOT NULL,
		value TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(taken_at, value)
	);
	CREATE INDEX IF NOT EXISTS idx_readings_taken_at ON readings(taken_at);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Add inserts readings in one transaction, ignoring exact duplicates.
func (r *Repo) Add(ctx context.Context, readings ...domain.Reading) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO readings (taken_at, value, created_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, rd := range readings {
		res, err := stmt.ExecContext(ctx, rd.Time.UTC().UnixNano(), rd.Value.String(), createdAt)
		if err != nil {
			return 0, fmt.Errorf("inserting reading: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *Repo) List(ctx context.Context, startInclusive *time.Time, endExclusive *time.Time) ([]domain.Reading, error) {
	var (
		where []string
		args  []any
	)
	if startInclusive != nil {
		where = append(where, "taken_at >= ?")
		args = append(args, startInclusive.UTC().UnixNano())
	}
	if endExclusive != nil {
		where = append(where, "taken_at < ?")
		args = append(args, endExclusive.UTC().UnixNano())
	}

	query := "SELECT taken_at, value FROM readings"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY taken_at, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var out []domain.Reading
	for rows.Next() {
		var (
			takenAt int64
			value   string
		)
		if err := rows.Scan(&takenAt, &value); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		d, err := domain.NewDecimal(value)
		if err != nil {
			return nil, fmt.Errorf("reading at %d: %w", takenAt, err)
		}
		out = append(out, domain.Reading{Time: time.Unix(0, takenAt).UTC(), Value: d})
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM readings").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting readings: %w", err)
	}
	return n, nil
}
