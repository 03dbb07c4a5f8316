// Package report derives the analytics reports from the orders table.
//
// An Engine pulls four result sets from a Source (daily revenue, revenue by
// category, top products, repeat customers) and writes each to its own CSV.
// The summary is then derived from those result sets plus two scalar
// queries and rendered as Markdown. PgSource runs the aggregates in
// PostgreSQL; MemorySource runs them over parsed order lines.
package report

import (
	"context"
	"time"
)

// TopProductsLimit caps the top products report.
const TopProductsLimit = 20

// SummaryTopN is how many categories and products the summary tabulates.
const SummaryTopN = 5

// DailyRevenue is one row of daily_revenue.csv.
type DailyRevenue struct {
	Date          time.Time
	Orders        int64
	Revenue       float64
	AvgOrderValue float64
}

// CategoryRevenue is one row of revenue_by_category.csv.
type CategoryRevenue struct {
	Category      string
	Orders        int64
	Revenue       float64
	AvgOrderValue float64
	Units         int64
}

// ProductRevenue is one row of top_products.csv, keyed by product and category.
type ProductRevenue struct {
	Product      string
	Category     string
	TimesOrdered int64
	Units        int64
	Revenue      float64
	AvgUnitPrice float64
}

// RepeatCustomer is one row of repeat_customers.csv.
type RepeatCustomer struct {
	CustomerID    string
	Orders        int64
	Spent         float64
	AvgOrderValue float64
	FirstOrder    time.Time
	LastOrder     time.Time
	Categories    int64
}

// Totals are the whole-table scalars used by the summary.
type Totals struct {
	Orders        int64
	Revenue       float64
	AvgOrderValue float64
}

// Source runs the aggregates the reports are built from.
//
// Orderings, ties included, are part of the contract:
//   - DailyRevenue: date ascending
//   - CategoryRevenue: revenue descending, then category
//   - TopProducts: revenue descending, then product, then category; at most
//     limit rows, or every product when limit <= 0
//   - RepeatCustomers: spent descending, then customer id; only customers
//     with more than one order line
//
// Over an empty table every list is empty and Totals is zero.
type Source interface {
	Exists(ctx context.Context) (bool, error)
	DailyRevenue(ctx context.Context) ([]DailyRevenue, error)
	CategoryRevenue(ctx context.Context) ([]CategoryRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]ProductRevenue, error)
	RepeatCustomers(ctx context.Context) ([]RepeatCustomer, error)
	CustomerCount(ctx context.Context) (int64, error)
	Totals(ctx context.Context) (Totals, error)
}
