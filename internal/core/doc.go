// Package core provides the order-line model, its coercion rules and the
// Loader that replaces the orders table from a CSV file.
//
// The package has no CLI dependencies. Report generation lives in the
// report package and reads the table this package writes.
//
// # Loading
//
// [Loader.Load] reads the whole file, strips a UTF-8 BOM and coerces every
// row into an [OrderLine] before touching the store. The first malformed row
// aborts the load with a [*MalformedRowError]; the table is left as it was.
// When every row coerces, the table is cleared and refilled with COPY inside
// one transaction.
//
// Accepted cell formats:
//
//   - order_date: ISO dates first, then US layouts (month first, / or -),
//     EU dotted layouts (day first) and 2-digit years
//   - unit_price: currency symbols, thousands separators and (1.00) negatives,
//     which validation then rejects
//   - quantity: a positive integer
//
// # Error Codes Reference
//
// User-facing error messages carry a code for support reference. The CLI
// logs the code next to the technical error.
//
// # Run Errors
//
// Terminal conditions of a load or report run, matched by type:
//
//	SRC001   - Source missing: the order file does not exist
//	           Action: Check ORDERS_CSV or place the file at data/orders.csv
//
//	ROW001   - Malformed row: a field could not be coerced
//	           Action: Fix the reported line and field, then load again
//
//	STORE001 - Store missing: the orders table has not been created
//	           Action: Run "orders load" before "orders report"
//
//	DATA001  - Empty dataset: there are no orders to summarize
//	           Action: Load a file with at least one order row
//
// # Database Errors (DB001-DB099)
//
// Matched by message pattern, case-insensitively:
//
//	DB001 - Duplicate key          Patterns: "duplicate key"
//	DB002 - Connection refused     Patterns: "connection refused"
//	DB003 - Connection reset       Patterns: "connection reset"
//	DB004 - Authentication failed  Patterns: "password authentication failed"
//	DB005 - Database missing       Patterns: "does not exist"
//	DB006 - Timeout                Patterns: "timeout", "context deadline exceeded"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large  Patterns: "file too large"
//	FILE002 - Invalid CSV     Patterns: "invalid csv"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logged technical error.
package core
