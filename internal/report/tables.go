package report

import (
	"fmt"
	"strconv"
)

// Output file names under the reports directory.
const (
	DailyRevenueFile    = "daily_revenue.csv"
	CategoryRevenueFile = "revenue_by_category.csv"
	TopProductsFile     = "top_products.csv"
	RepeatCustomersFile = "repeat_customers.csv"
	SummaryFile         = "summary.md"
	WorkbookFile        = "reports.xlsx"
)

// table is a tabular report ready to serialize. Cells hold string, int64 or
// float64; every float64 is a currency value.
type table struct {
	file   string
	sheet  string
	header []string
	rows   [][]any
}

// records renders the table for encoding/csv: currency to two decimals,
// counts as plain integers.
func (t table) records() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, t.header)
	for _, row := range t.rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = csvCell(v)
		}
		out = append(out, rec)
	}
	return out
}

func csvCell(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatMoney(v)
	default:
		return fmt.Sprint(v)
	}
}

func dailyRevenueTable(rows []DailyRevenue) table {
	t := table{
		file:   DailyRevenueFile,
		sheet:  "Daily Revenue",
		header: []string{"Date", "Order Count", "Total Revenue", "Average Order Value"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{formatDate(r.Date), r.Orders, r.Revenue, r.AvgOrderValue})
	}
	return t
}

func categoryRevenueTable(rows []CategoryRevenue) table {
	t := table{
		file:   CategoryRevenueFile,
		sheet:  "Revenue by Category",
		header: []string{"Category", "Order Count", "Total Revenue", "Average Order Value", "Units Sold"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.Category, r.Orders, r.Revenue, r.AvgOrderValue, r.Units})
	}
	return t
}

func topProductsTable(rows []ProductRevenue) table {
	t := table{
		file:   TopProductsFile,
		sheet:  "Top Products",
		header: []string{"Product", "Category", "Times Ordered", "Units Sold", "Total Revenue", "Avg Unit Price"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.Product, r.Category, r.TimesOrdered, r.Units, r.Revenue, r.AvgUnitPrice})
	}
	return t
}

func repeatCustomersTable(rows []RepeatCustomer) table {
	t := table{
		file:  RepeatCustomersFile,
		sheet: "Repeat Customers",
		header: []string{"Customer ID", "Order Count", "Total Spent", "Avg Order Value",
			"First Order", "Last Order", "Categories Purchased"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.CustomerID, r.Orders, r.Spent, r.AvgOrderValue,
			formatDate(r.FirstOrder), formatDate(r.LastOrder), r.Categories,
		})
	}
	return t
}
