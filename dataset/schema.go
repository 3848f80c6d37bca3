package dataset

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Column describes one table column.
type Column struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key,omitempty"`
}

// Table describes one table and its columns.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Schema lists the dataset's tables in name order.
type Schema struct {
	Tables []Table `json:"tables"`
}

// Summary is the overview returned for a single table.
type Summary struct {
	Table    string           `json:"table"`
	RowCount int64            `json:"row_count"`
	Columns  []Column         `json:"columns"`
	Sample   []map[string]any `json:"sample"`
}

const sampleRows = 5

// TableNames returns the user tables in name order.
func (d *DB) TableNames(ctx context.Context) ([]string, error) {
	var stmt string
	switch d.driver {
	case DriverPostgres:
		stmt = `SELECT table_name AS name FROM information_schema.tables
			WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
			ORDER BY table_name`
	default:
		stmt = `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name`
	}

	rows, err := d.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Schema describes every user table.
func (d *DB) Schema(ctx context.Context) (*Schema, error) {
	names, err := d.TableNames(ctx)
	if err != nil {
		return nil, err
	}

	schema := &Schema{Tables: make([]Table, 0, len(names))}
	for _, name := range names {
		cols, err := d.columns(ctx, name)
		if err != nil {
			return nil, err
		}
		schema.Tables = append(schema.Tables, Table{Name: name, Columns: cols})
	}
	return schema, nil
}

// TableSummary returns the row count, columns and up to five sample rows
// of table. The name must match an existing table exactly.
func (d *DB) TableSummary(ctx context.Context, table string) (*Summary, error) {
	names, err := d.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	cols, err := d.columns(ctx, table)
	if err != nil {
		return nil, err
	}

	quoted := quoteIdent(table)

	var count int64
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoted).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}

	sample, err := d.query(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoted, sampleRows))
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", table, err)
	}

	return &Summary{
		Table:    table,
		RowCount: count,
		Columns:  cols,
		Sample:   sample,
	}, nil
}

func (d *DB) columns(ctx context.Context, table string) ([]Column, error) {
	if d.driver == DriverPostgres {
		return d.postgresColumns(ctx, table)
	}
	return d.sqliteColumns(ctx, table)
}

func (d *DB) sqliteColumns(ctx context.Context, table string) ([]Column, error) {
	rows, err := d.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		cols = append(cols, Column{
			Name:       name,
			Type:       typ,
			Nullable:   notNull == 0,
			PrimaryKey: pk > 0,
		})
	}
	return cols, rows.Err()
}

func (d *DB) postgresColumns(ctx context.Context, table string) ([]Column, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var name, typ, nullable string
		if err := rows.Scan(&name, &typ, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		cols = append(cols, Column{
			Name:     name,
			Type:     strings.ToUpper(typ),
			Nullable: nullable == "YES",
		})
	}
	return cols, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
