// Package storage reads the dataset from a SQLite file. The schema and the
// sample rows are created by embedded migrations; the repository itself
// only ever issues SELECTs.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"budgetwise/internal/core"

	_ "modernc.org/sqlite"
)

const dayLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens dbPath, creating the file and its directory when
// missing, and applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
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

// Ping reports whether the database is still reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ReadSnapshot loads every table inside one read transaction so the four
// result sets are consistent with each other.
func (r *SQLiteRepository) ReadSnapshot(ctx context.Context) (core.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("begin read: %w", err)
	}
	defer tx.Rollback()

	var snap core.Snapshot
	if snap.Categories, err = readCategories(ctx, tx); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Transactions, err = readTransactions(ctx, tx); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Budgets, err = readBudgets(ctx, tx); err != nil {
		return core.Snapshot{}, err
	}
	if snap.Trend, err = readTrend(ctx, tx); err != nil {
		return core.Snapshot{}, err
	}

	if err := snap.Validate(); err != nil {
		return core.Snapshot{}, fmt.Errorf("invalid dataset: %w", err)
	}
	return snap, nil
}

func readCategories(ctx context.Context, tx *sql.Tx) ([]core.Category, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, color, icon FROM categories ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func readTransactions(ctx context.Context, tx *sql.Tx) ([]core.Transaction, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, day, amount_cents, description, category_id
		FROM transactions
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t     core.Transaction
			day   string
			cents int64
		)
		if err := rows.Scan(&t.ID, &day, &cents, &t.Description, &t.CategoryID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		d, err := time.ParseInLocation(dayLayout, day, time.Local)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", t.ID, core.ErrInvalidDate)
		}
		t.Date = core.Date{Time: d}
		t.Amount = core.FromCents(cents)
		out = append(out, t)
	}
	return out, rows.Err()
}

func readBudgets(ctx context.Context, tx *sql.Tx) ([]core.Budget, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, category_id, amount_cents, period
		FROM budgets
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b      core.Budget
			cents  int64
			period string
		)
		if err := rows.Scan(&b.ID, &b.CategoryID, &cents, &period); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Amount = core.FromCents(cents)
		b.Period = core.Period(period)
		out = append(out, b)
	}
	return out, rows.Err()
}

func readTrend(ctx context.Context, tx *sql.Tx) ([]core.MonthlyTotal, error) {
	rows, err := tx.QueryContext(ctx, `SELECT year, month, amount_cents FROM monthly_trend ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("query trend: %w", err)
	}
	defer rows.Close()

	var out []core.MonthlyTotal
	for rows.Next() {
		var (
			year, month int
			cents       int64
		)
		if err := rows.Scan(&year, &month, &cents); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		out = append(out, core.MonthlyTotal{Year: year, Month: time.Month(month), Amount: core.FromCents(cents)})
	}
	return out, rows.Err()
}
