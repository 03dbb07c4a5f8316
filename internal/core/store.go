package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// OrdersTable is the single table both passes share.
const OrdersTable = "orders"

// unit_price is an 8-byte float; REAL in PostgreSQL would be 4 bytes and
// lose cents on ordinary prices.
const createOrdersTable = `
	CREATE TABLE IF NOT EXISTS orders (
		order_id    TEXT PRIMARY KEY,
		order_date  DATE NOT NULL,
		customer_id TEXT NOT NULL,
		product     TEXT NOT NULL,
		category    TEXT NOT NULL,
		unit_price  DOUBLE PRECISION NOT NULL,
		quantity    INTEGER NOT NULL,
		country     TEXT
	)`

// EnsureSchema creates the orders table if it does not exist.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, createOrdersTable); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

// StoreExists reports whether the orders table has been created.
func StoreExists(ctx context.Context, db DBTX) (bool, error) {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, OrdersTable).Scan(&exists); err != nil {
		return false, fmt.Errorf("check orders table: %w", err)
	}
	return exists, nil
}

// replaceOrders clears the table and bulk inserts lines with COPY.
// Must run inside a transaction so readers never see the table half-filled.
func replaceOrders(ctx context.Context, tx pgx.Tx, lines []OrderLine) (int64, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM orders`); err != nil {
		return 0, fmt.Errorf("clear orders: %w", err)
	}

	if len(lines) == 0 {
		return 0, nil
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{OrdersTable}, Columns,
		pgx.CopyFromSlice(len(lines), func(i int) ([]any, error) {
			l := lines[i]
			return []any{
				l.OrderID,
				pgtype.Date{Time: l.OrderDate, Valid: true},
				l.CustomerID,
				l.Product,
				l.Category,
				l.UnitPrice,
				int32(l.Quantity),
				pgtype.Text{String: l.Country, Valid: l.Country != ""},
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy orders: %w", err)
	}
	return n, nil
}

// VerifyOrders collects the post-load summary: row count, date range and
// per-category counts ordered by count desc.
func VerifyOrders(ctx context.Context, db DBTX) (Verification, error) {
	var v Verification
	var minDate, maxDate pgtype.Date

	err := db.QueryRow(ctx, `
		SELECT COUNT(*), MIN(order_date), MAX(order_date)
		FROM orders`).Scan(&v.Rows, &minDate, &maxDate)
	if err != nil {
		return v, fmt.Errorf("query order range: %w", err)
	}
	v.MinDate = minDate.Time
	v.MaxDate = maxDate.Time

	rows, err := db.Query(ctx, `
		SELECT category, COUNT(*)
		FROM orders
		GROUP BY category
		ORDER BY COUNT(*) DESC, category`)
	if err != nil {
		return v, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Orders); err != nil {
			return v, fmt.Errorf("scan category count: %w", err)
		}
		v.Categories = append(v.Categories, cc)
	}
	if err := rows.Err(); err != nil {
		return v, fmt.Errorf("rows error: %w", err)
	}

	return v, nil
}
