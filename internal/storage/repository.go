package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"spendlog/internal/core"
	"spendlog/internal/ledger"

	_ "modernc.org/sqlite"
)

const (
	insertEntry = `
INSERT INTO entries (date, category, amount_cents, description)
VALUES (?, ?, ?, ?)`

	selectEntries = `
SELECT date, category, amount_cents, description
FROM entries
ORDER BY id`

	upsertMirrorEntry = `
INSERT INTO entries (csv_row, date, category, amount_cents, description)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(csv_row) DO UPDATE SET
    date = excluded.date,
    category = excluded.category,
    amount_cents = excluded.amount_cents,
    description = excluded.description`

	selectMaxMirroredRow = `
SELECT COALESCE(MAX(csv_row), 0) FROM entries`
)

// SQLiteRepository stores ledger entries in SQLite. It serves two
// roles: a selectable backend behind the same ports as the CSV store,
// and the mirror target the worker writes into (entries keyed by
// csv_row).
type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ ledger.RecordWriter = (*SQLiteRepository)(nil)
	_ ledger.RecordReader = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.RecordWriter. The database row id is the
// returned reference.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.Record) (string, error) {
	res, err := r.db.ExecContext(ctx, insertEntry,
		string(rec.Date), rec.Category, rec.Amount.Cents, rec.Description)
	if err != nil {
		return "", fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("entry id: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", id,
		"date", string(rec.Date),
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)

	return strconv.FormatInt(id, 10), nil
}

// ReadAll implements ledger.RecordReader, returning entries in
// insertion order.
func (r *SQLiteRepository) ReadAll(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, selectEntries)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var (
			date, category, description string
			cents                       int64
		)
		if err := rows.Scan(&date, &category, &cents, &description); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, core.Record{
			Date:        core.Date(date),
			Category:    category,
			Amount:      core.Money{Cents: cents},
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

// MirrorUpsert writes one ledger row into the mirror, keyed by its
// ledger row index. Replaying the same row is a no-op update.
func (r *SQLiteRepository) MirrorUpsert(ctx context.Context, row int64, rec core.Record) error {
	if row <= 0 {
		return fmt.Errorf("mirror upsert: invalid row %d", row)
	}
	_, err := r.db.ExecContext(ctx, upsertMirrorEntry,
		row, string(rec.Date), rec.Category, rec.Amount.Cents, rec.Description)
	if err != nil {
		return fmt.Errorf("mirror upsert row %d: %w", row, err)
	}
	return nil
}

// MaxMirroredRow returns the highest ledger row index present in the
// mirror, or 0 when nothing has been mirrored yet.
func (r *SQLiteRepository) MaxMirroredRow(ctx context.Context) (int64, error) {
	var row int64
	if err := r.db.QueryRowContext(ctx, selectMaxMirroredRow).Scan(&row); err != nil {
		return 0, fmt.Errorf("max mirrored row: %w", err)
	}
	return row, nil
}
