package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/orders/internal/core"
)

// PgSource runs the report aggregates as SQL against the orders table.
type PgSource struct {
	db core.DBTX
}

// NewPgSource creates a PgSource reading through db.
func NewPgSource(db core.DBTX) *PgSource {
	return &PgSource{db: db}
}

func (s *PgSource) Exists(ctx context.Context) (bool, error) {
	return core.StoreExists(ctx, s.db)
}

const dailyRevenueQuery = `
	SELECT
		order_date,
		COUNT(*) AS order_count,
		SUM(unit_price * quantity) AS total_revenue,
		AVG(unit_price * quantity) AS avg_order_value
	FROM orders
	GROUP BY order_date
	ORDER BY order_date`

func (s *PgSource) DailyRevenue(ctx context.Context) ([]DailyRevenue, error) {
	rows, err := s.db.Query(ctx, dailyRevenueQuery)
	if err != nil {
		return nil, fmt.Errorf("query daily revenue: %w", err)
	}
	defer rows.Close()

	var result []DailyRevenue
	for rows.Next() {
		var (
			r    DailyRevenue
			date pgtype.Date
		)
		if err := rows.Scan(&date, &r.Orders, &r.Revenue, &r.AvgOrderValue); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		r.Date = date.Time
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

const categoryRevenueQuery = `
	SELECT
		category,
		COUNT(*) AS order_count,
		SUM(unit_price * quantity) AS total_revenue,
		AVG(unit_price * quantity) AS avg_order_value,
		SUM(quantity) AS total_units_sold
	FROM orders
	GROUP BY category
	ORDER BY total_revenue DESC, category`

func (s *PgSource) CategoryRevenue(ctx context.Context) ([]CategoryRevenue, error) {
	rows, err := s.db.Query(ctx, categoryRevenueQuery)
	if err != nil {
		return nil, fmt.Errorf("query category revenue: %w", err)
	}
	defer rows.Close()

	var result []CategoryRevenue
	for rows.Next() {
		var r CategoryRevenue
		if err := rows.Scan(&r.Category, &r.Orders, &r.Revenue, &r.AvgOrderValue, &r.Units); err != nil {
			return nil, fmt.Errorf("scan category revenue: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

const topProductsQuery = `
	SELECT
		product,
		category,
		COUNT(*) AS times_ordered,
		SUM(quantity) AS total_units_sold,
		SUM(unit_price * quantity) AS total_revenue,
		AVG(unit_price) AS avg_unit_price
	FROM orders
	GROUP BY product, category
	ORDER BY total_revenue DESC, product, category
	LIMIT $1`

func (s *PgSource) TopProducts(ctx context.Context, limit int) ([]ProductRevenue, error) {
	// LIMIT NULL returns every row.
	rows, err := s.db.Query(ctx, topProductsQuery, pgtype.Int8{Int64: int64(limit), Valid: limit > 0})
	if err != nil {
		return nil, fmt.Errorf("query top products: %w", err)
	}
	defer rows.Close()

	var result []ProductRevenue
	for rows.Next() {
		var r ProductRevenue
		if err := rows.Scan(&r.Product, &r.Category, &r.TimesOrdered, &r.Units, &r.Revenue, &r.AvgUnitPrice); err != nil {
			return nil, fmt.Errorf("scan top products: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

const repeatCustomersQuery = `
	SELECT
		customer_id,
		COUNT(*) AS order_count,
		SUM(unit_price * quantity) AS total_spent,
		AVG(unit_price * quantity) AS avg_order_value,
		MIN(order_date) AS first_order_date,
		MAX(order_date) AS last_order_date,
		COUNT(DISTINCT category) AS categories_purchased
	FROM orders
	GROUP BY customer_id
	HAVING COUNT(*) > 1
	ORDER BY total_spent DESC, customer_id`

func (s *PgSource) RepeatCustomers(ctx context.Context) ([]RepeatCustomer, error) {
	rows, err := s.db.Query(ctx, repeatCustomersQuery)
	if err != nil {
		return nil, fmt.Errorf("query repeat customers: %w", err)
	}
	defer rows.Close()

	var result []RepeatCustomer
	for rows.Next() {
		var (
			r           RepeatCustomer
			first, last pgtype.Date
		)
		if err := rows.Scan(&r.CustomerID, &r.Orders, &r.Spent, &r.AvgOrderValue, &first, &last, &r.Categories); err != nil {
			return nil, fmt.Errorf("scan repeat customers: %w", err)
		}
		r.FirstOrder = first.Time
		r.LastOrder = last.Time
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (s *PgSource) CustomerCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(DISTINCT customer_id) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("query customer count: %w", err)
	}
	return n, nil
}

func (s *PgSource) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(unit_price * quantity), 0),
			COALESCE(AVG(unit_price * quantity), 0)
		FROM orders`).Scan(&t.Orders, &t.Revenue, &t.AvgOrderValue)
	if err != nil {
		return t, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}
