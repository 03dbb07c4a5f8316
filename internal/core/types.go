package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// TxBeginner starts transactions. Satisfied by *pgxpool.Pool.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderLine is one row of the orders table: a single product line of an order.
type OrderLine struct {
	OrderID    string    `validate:"required"`
	OrderDate  time.Time
	CustomerID string    `validate:"required"`
	Product    string    `validate:"required"`
	Category   string    `validate:"required"`
	UnitPrice  float64   `validate:"gte=0"`
	Quantity   int       `validate:"gt=0"`
	Country    string
}

// Revenue returns unit price times quantity.
func (l OrderLine) Revenue() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Header column names, in file order.
const (
	ColOrderID    = "order_id"
	ColOrderDate  = "order_date"
	ColCustomerID = "customer_id"
	ColProduct    = "product"
	ColCategory   = "category"
	ColUnitPrice  = "unit_price"
	ColQuantity   = "quantity"
	ColCountry    = "country"
)

// Columns is the fixed header shape of the input file. The same names are
// used for the table columns.
var Columns = []string{
	ColOrderID, ColOrderDate, ColCustomerID, ColProduct,
	ColCategory, ColUnitPrice, ColQuantity, ColCountry,
}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// CategoryCount is one line of the post-load verification summary.
type CategoryCount struct {
	Category string
	Orders   int64
}

// Verification summarizes the table after a load. Informational only.
type Verification struct {
	Rows       int64
	MinDate    time.Time
	MaxDate    time.Time
	Categories []CategoryCount
}

// LoadResult contains the final result of a load operation.
type LoadResult struct {
	Source       string
	Inserted     int64
	Verification Verification
	Duration     time.Duration
}
