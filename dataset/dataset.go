// Package dataset executes read-only queries against a SQL dataset via
// database/sql. The sqlite3 and postgres drivers are registered.
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tailored-agentic-units/dataagent/core/response"
)

// DB is a read-only handle on a dataset.
type DB struct {
	db      *sql.DB
	driver  string
	maxRows int
}

// Open opens the dataset described by cfg. The connection is established
// lazily on the first query.
func Open(cfg *Config) (*DB, error) {
	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	return &DB{db: db, driver: cfg.Driver, maxRows: maxRows}, nil
}

// Wrap adopts an existing *sql.DB opened with the given driver name.
func Wrap(db *sql.DB, driver string, maxRows int) *DB {
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}
	return &DB{db: db, driver: driver, maxRows: maxRows}
}

// Ping verifies the dataset is reachable.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Driver returns the database/sql driver name.
func (d *DB) Driver() string {
	return d.driver
}

// Query validates and runs a SELECT statement, returning at most MaxRows
// records.
func (d *DB) Query(ctx context.Context, query string) ([]response.Record, error) {
	stmt, err := Validate(query)
	if err != nil {
		return nil, err
	}
	return d.query(ctx, stmt)
}

func (d *DB) query(ctx context.Context, stmt string, args ...any) ([]response.Record, error) {
	if d.driver == DriverPostgres {
		tx, err := d.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
		if err != nil {
			return nil, fmt.Errorf("failed to begin read-only transaction: %w", err)
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, stmt, args...)
		if err != nil {
			return nil, err
		}
		return scanRecords(rows, d.maxRows)
	}

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows, d.maxRows)
}

func scanRecords(rows *sql.Rows, limit int) ([]response.Record, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := make([]response.Record, 0)
	for rows.Next() {
		if len(records) >= limit {
			break
		}

		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(response.Record, len(columns))
		for i, col := range columns {
			record[col] = normalize(values[i])
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
