package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands in the narrative summary. Tabular outputs never
// use it.
var printer = message.NewPrinter(language.English)

// roundCents rounds half away from zero to two decimals.
func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// formatMoney renders a currency value with exactly two decimals and no
// grouping, as written to the CSV reports.
func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// groupedMoney renders a currency value with two decimals and thousands
// grouping: 1234.5 -> "1,234.50".
func groupedMoney(v float64) string {
	return printer.Sprintf("%.2f", roundCents(v))
}

// groupedCount renders a count with thousands grouping.
func groupedCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// formatPercent renders a rate with one decimal.
func formatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// markdownCell escapes characters that would break a Markdown table row.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
