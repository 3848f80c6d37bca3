package dataset

import (
	"context"
	"database/sql"
	"fmt"
)

type saleRow struct {
	product  string
	category string
	region   string
	quantity int
	price    float64
	date     string
}

var demoSales = []saleRow{
	{"Laptop Pro", "Electronics", "East", 12, 1299.00, "2024-01-05"},
	{"Laptop Pro", "Electronics", "West", 9, 1299.00, "2024-01-12"},
	{"Smartphone X", "Electronics", "North", 30, 799.00, "2024-01-15"},
	{"Smartphone X", "Electronics", "East", 25, 799.00, "2024-02-02"},
	{"Wireless Earbuds", "Electronics", "South", 60, 129.00, "2024-02-10"},
	{"Office Chair", "Furniture", "West", 14, 249.00, "2024-02-14"},
	{"Standing Desk", "Furniture", "East", 8, 549.00, "2024-02-20"},
	{"Standing Desk", "Furniture", "North", 6, 549.00, "2024-03-01"},
	{"Coffee Maker", "Appliances", "South", 22, 89.00, "2024-03-03"},
	{"Blender", "Appliances", "West", 18, 59.00, "2024-03-09"},
	{"Running Shoes", "Apparel", "North", 40, 110.00, "2024-03-15"},
	{"Rain Jacket", "Apparel", "East", 27, 140.00, "2024-03-22"},
	{"Smartphone X", "Electronics", "South", 19, 799.00, "2024-04-01"},
	{"Office Chair", "Furniture", "North", 11, 249.00, "2024-04-08"},
	{"Wireless Earbuds", "Electronics", "West", 45, 129.00, "2024-04-12"},
	{"Coffee Maker", "Appliances", "East", 16, 89.00, "2024-04-19"},
}

const salesDDL = `
CREATE TABLE IF NOT EXISTS sales (
	id        INTEGER PRIMARY KEY,
	product   TEXT    NOT NULL,
	category  TEXT    NOT NULL,
	region    TEXT    NOT NULL,
	quantity  INTEGER NOT NULL,
	revenue   REAL    NOT NULL,
	sale_date TEXT    NOT NULL
)`

// SeedSales creates (or refills) a sqlite sales table at path with demo
// rows covering products, categories, regions and revenue. Returns the
// number of rows written.
func SeedSales(ctx context.Context, path string) (int, error) {
	db, err := sql.Open(DriverSQLite, "file:"+path+"?mode=rwc")
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, salesDDL); err != nil {
		return 0, fmt.Errorf("failed to create sales table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sales"); err != nil {
		return 0, fmt.Errorf("failed to clear sales table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sales
		(product, category, region, quantity, revenue, sale_date)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range demoSales {
		revenue := float64(s.quantity) * s.price
		if _, err := stmt.ExecContext(ctx, s.product, s.category, s.region, s.quantity, revenue, s.date); err != nil {
			return 0, fmt.Errorf("failed to insert %s: %w", s.product, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(demoSales), nil
}
