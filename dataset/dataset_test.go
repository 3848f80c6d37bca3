package dataset_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/dataagent/dataset"
	"github.com/tailored-agentic-units/dataagent/tools"
)

func openSeeded(t *testing.T, maxRows int) *dataset.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales.db")
	n, err := dataset.SeedSales(context.Background(), path)
	require.NoError(t, err)
	require.Positive(t, n)

	db, err := dataset.Open(&dataset.Config{
		Driver:  dataset.DriverSQLite,
		DSN:     "file:" + path + "?mode=ro",
		MaxRows: maxRows,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    string
		wantErr error
	}{
		{"select", "SELECT * FROM sales", "SELECT * FROM sales", nil},
		{"lowercase", "  select 1  ", "select 1", nil},
		{"trailing semicolon", "SELECT 1;", "SELECT 1", nil},
		{"with clause", "WITH t AS (SELECT 1) SELECT * FROM t", "WITH t AS (SELECT 1) SELECT * FROM t", nil},
		{"semicolon in literal", "SELECT * FROM sales WHERE product = 'a;b'", "SELECT * FROM sales WHERE product = 'a;b'", nil},
		{"empty", "   ", "", dataset.ErrEmptyQuery},
		{"only semicolon", ";", "", dataset.ErrEmptyQuery},
		{"delete", "DELETE FROM sales", "", dataset.ErrNotSelect},
		{"drop", "drop table sales", "", dataset.ErrNotSelect},
		{"stacked", "SELECT 1; DROP TABLE sales", "", dataset.ErrMultipleStatements},
		{"with without select", "WITH x AS (DELETE FROM sales)", "", dataset.ErrNotSelect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dataset.Validate(tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := dataset.Open(&dataset.Config{Driver: "mysql", DSN: "x"})
	assert.ErrorIs(t, err, dataset.ErrUnsupportedDriver)
}

func TestQuery(t *testing.T) {
	db := openSeeded(t, 100)
	ctx := context.Background()

	require.NoError(t, db.Ping(ctx))

	rows, err := db.Query(ctx, `SELECT product, SUM(revenue) AS total
		FROM sales GROUP BY product ORDER BY total DESC LIMIT 5;`)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Smartphone X", rows[0]["product"])
	assert.InDelta(t, 59126.0, rows[0]["total"], 0.001)
}

func TestQuery_EmptyResult(t *testing.T) {
	db := openSeeded(t, 100)

	rows, err := db.Query(context.Background(), "SELECT * FROM sales WHERE region = 'Nowhere'")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestQuery_MaxRows(t *testing.T) {
	db := openSeeded(t, 3)

	rows, err := db.Query(context.Background(), "SELECT * FROM sales")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestQuery_Rejected(t *testing.T) {
	db := openSeeded(t, 100)

	_, err := db.Query(context.Background(), "UPDATE sales SET revenue = 0")
	assert.ErrorIs(t, err, dataset.ErrNotSelect)
}

func TestQuery_ReadOnlyConnection(t *testing.T) {
	db := openSeeded(t, 100)

	// passes validation, rejected by the read-only connection
	_, err := db.Query(context.Background(), "WITH x AS (SELECT 1) INSERT INTO sales SELECT * FROM sales")
	assert.Error(t, err)
}

func TestQuery_SQLError(t *testing.T) {
	db := openSeeded(t, 100)

	_, err := db.Query(context.Background(), "SELECT missing_column FROM sales")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	db := openSeeded(t, 100)

	schema, err := db.Schema(context.Background())
	require.NoError(t, err)
	require.Len(t, schema.Tables, 1)

	table := schema.Tables[0]
	assert.Equal(t, "sales", table.Name)

	names := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "product", "category", "region", "quantity", "revenue", "sale_date"}, names)
	assert.True(t, table.Columns[0].PrimaryKey)
	assert.False(t, table.Columns[1].Nullable)
}

func TestTableSummary(t *testing.T) {
	db := openSeeded(t, 100)

	summary, err := db.TableSummary(context.Background(), "sales")
	require.NoError(t, err)
	assert.Equal(t, "sales", summary.Table)
	assert.EqualValues(t, 16, summary.RowCount)
	assert.Len(t, summary.Columns, 7)
	assert.Len(t, summary.Sample, 5)
}

func TestTableSummary_UnknownTable(t *testing.T) {
	db := openSeeded(t, 100)

	_, err := db.TableSummary(context.Background(), "sales; DROP TABLE sales")
	assert.ErrorIs(t, err, dataset.ErrUnknownTable)
}

func TestSeedSales_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.db")
	ctx := context.Background()

	_, err := dataset.SeedSales(ctx, path)
	require.NoError(t, err)
	n, err := dataset.SeedSales(ctx, path)
	require.NoError(t, err)

	db, err := dataset.Open(&dataset.Config{Driver: dataset.DriverSQLite, DSN: "file:" + path})
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(ctx, "SELECT COUNT(*) AS n FROM sales")
	require.NoError(t, err)
	assert.EqualValues(t, n, rows[0]["n"])
}

func TestRegisterTools(t *testing.T) {
	db := openSeeded(t, 100)
	reg := tools.NewRegistry(0)
	require.NoError(t, dataset.RegisterTools(reg, db))

	listed := reg.List()
	require.Len(t, listed, 3)
	assert.Equal(t, tools.ExecuteQuery, listed[0].Name)

	ctx := context.Background()

	t.Run("execute_query", func(t *testing.T) {
		result := reg.Invoke(ctx, tools.ExecuteQuery, map[string]any{
			"query": "SELECT DISTINCT region FROM sales ORDER BY region",
		})
		require.True(t, result.Success, result.Error)
		assert.Len(t, result.Results, 4)
		assert.Equal(t, "East", result.Results[0]["region"])
	})

	t.Run("execute_query missing argument", func(t *testing.T) {
		result := reg.Invoke(ctx, tools.ExecuteQuery, nil)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "query")
	})

	t.Run("execute_query rejected", func(t *testing.T) {
		result := reg.Invoke(ctx, tools.ExecuteQuery, map[string]any{"query": "DELETE FROM sales"})
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "only SELECT")
	})

	t.Run("get_schema", func(t *testing.T) {
		result := reg.Invoke(ctx, tools.GetSchema, nil)
		require.True(t, result.Success, result.Error)
		schema, ok := result.Data.(*dataset.Schema)
		require.True(t, ok)
		assert.Len(t, schema.Tables, 1)
	})

	t.Run("get_table_summary default table", func(t *testing.T) {
		result := reg.Invoke(ctx, tools.GetTableSummary, map[string]any{})
		require.True(t, result.Success, result.Error)
		summary, ok := result.Data.(*dataset.Summary)
		require.True(t, ok)
		assert.Equal(t, tools.DefaultTable, summary.Table)
	})

	t.Run("get_table_summary unknown", func(t *testing.T) {
		result := reg.Invoke(ctx, tools.GetTableSummary, map[string]any{"table_name": "nope"})
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "nope")
	})
}
