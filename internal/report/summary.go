package report

import (
	"fmt"
	"io"
	"slices"
	"text/template"
	"time"

	"github.com/JonMunkholm/orders/internal/core"
)

// SummaryInput is everything the summary is derived from: the four result
// sets plus the two scalar queries. Building a summary issues no queries.
type SummaryInput struct {
	Daily      []DailyRevenue
	Categories []CategoryRevenue
	Products   []ProductRevenue
	Repeat     []RepeatCustomer
	Customers  int64
	Totals     Totals
}

// GeneratedFile is one entry of the summary's file list.
type GeneratedFile struct {
	Name        string
	Description string
}

// Summary is the derived content of summary.md.
type Summary struct {
	GeneratedAt time.Time

	TotalOrders     int64
	TotalCustomers  int64
	TotalRevenue    float64
	AvgOrderValue   float64
	FirstDate       time.Time
	LastDate        time.Time
	RepeatCustomers int64
	RepeatRate      float64

	TopCategories []CategoryRevenue
	TopProducts   []ProductRevenue

	MaxDailyRevenue float64
	MinDailyRevenue float64
	AvgDailyRevenue float64

	// TopCustomer is nil when nobody ordered more than once.
	TopCustomer    *RepeatCustomer
	AvgRepeatSpend float64

	TopCategory CategoryRevenue
	TopProduct  ProductRevenue

	Files []GeneratedFile
}

// DefaultFiles lists the files every run writes.
var DefaultFiles = []GeneratedFile{
	{Name: DailyRevenueFile, Description: "Daily revenue breakdown"},
	{Name: CategoryRevenueFile, Description: "Category performance analysis"},
	{Name: TopProductsFile, Description: fmt.Sprintf("Top %d products by revenue", TopProductsLimit)},
	{Name: RepeatCustomersFile, Description: "Repeat customer analysis"},
	{Name: SummaryFile, Description: "This summary report"},
}

// RepeatRate returns repeat ÷ customers × 100, or 0 when there are no
// customers.
func RepeatRate(repeat, customers int64) float64 {
	if customers == 0 {
		return 0
	}
	return float64(repeat) / float64(customers) * 100
}

// BuildSummary derives the summary from already computed result sets.
// It returns *core.EmptyDatasetError when there is no order data, since
// the daily max, min and average would be undefined.
func BuildSummary(in SummaryInput, now time.Time) (*Summary, error) {
	if len(in.Daily) == 0 || len(in.Categories) == 0 || len(in.Products) == 0 {
		return nil, &core.EmptyDatasetError{Report: "summary"}
	}

	s := &Summary{
		GeneratedAt:     now,
		TotalOrders:     in.Totals.Orders,
		TotalCustomers:  in.Customers,
		TotalRevenue:    in.Totals.Revenue,
		AvgOrderValue:   in.Totals.AvgOrderValue,
		FirstDate:       in.Daily[0].Date,
		LastDate:        in.Daily[len(in.Daily)-1].Date,
		RepeatCustomers: int64(len(in.Repeat)),
		RepeatRate:      RepeatRate(int64(len(in.Repeat)), in.Customers),
		TopCategories:   in.Categories[:min(SummaryTopN, len(in.Categories))],
		TopProducts:     in.Products[:min(SummaryTopN, len(in.Products))],
		TopCategory:     in.Categories[0],
		TopProduct:      in.Products[0],
		Files:           slices.Clone(DefaultFiles),
	}

	s.MaxDailyRevenue = in.Daily[0].Revenue
	s.MinDailyRevenue = in.Daily[0].Revenue
	var dailySum float64
	for _, d := range in.Daily {
		s.MaxDailyRevenue = max(s.MaxDailyRevenue, d.Revenue)
		s.MinDailyRevenue = min(s.MinDailyRevenue, d.Revenue)
		dailySum += d.Revenue
	}
	s.AvgDailyRevenue = dailySum / float64(len(in.Daily))

	if len(in.Repeat) > 0 {
		top := in.Repeat[0]
		s.TopCustomer = &top

		var spent float64
		for _, c := range in.Repeat {
			spent += c.Spent
		}
		s.AvgRepeatSpend = spent / float64(len(in.Repeat))
	}

	return s, nil
}

var summaryTemplate = template.Must(template.New(SummaryFile).Funcs(template.FuncMap{
	"money":   groupedMoney,
	"cents":   formatMoney,
	"count":   groupedCount,
	"percent": formatPercent,
	"date":    formatDate,
	"cell":    markdownCell,
}).Parse(`# Orders Analytics Summary Report

Generated on: {{ .GeneratedAt.Format "2006-01-02 15:04:05" }}

## Overview

- **Total Orders**: {{ count .TotalOrders }}
- **Total Customers**: {{ count .TotalCustomers }}
- **Total Revenue**: ${{ money .TotalRevenue }}
- **Average Order Value**: ${{ cents .AvgOrderValue }}
- **Date Range**: {{ date .FirstDate }} to {{ date .LastDate }}
- **Repeat Customers**: {{ count .RepeatCustomers }} ({{ percent .RepeatRate }}% of all customers)

## Top Performing Categories

| Category | Orders | Revenue | Avg Order Value |
|----------|--------|---------|-----------------|
{{ range .TopCategories }}| {{ cell .Category }} | {{ count .Orders }} | ${{ money .Revenue }} | ${{ cents .AvgOrderValue }} |
{{ end }}
## Top 5 Products by Revenue

| Product | Category | Revenue | Units Sold |
|---------|----------|---------|------------|
{{ range .TopProducts }}| {{ cell .Product }} | {{ cell .Category }} | ${{ money .Revenue }} | {{ count .Units }} |
{{ end }}
## Key Insights

### Revenue Trends
- Highest single-day revenue: ${{ money .MaxDailyRevenue }}
- Lowest single-day revenue: ${{ money .MinDailyRevenue }}
- Average daily revenue: ${{ money .AvgDailyRevenue }}

### Customer Behavior
{{ with .TopCustomer }}- {{ count $.RepeatCustomers }} customers made multiple purchases
- Top repeat customer spent: ${{ money .Spent }} across {{ count .Orders }} orders
- Average repeat customer value: ${{ money $.AvgRepeatSpend }}
{{ else }}- No customers made multiple purchases
{{ end }}
### Product Performance
- Most popular category: {{ .TopCategory.Category }} ({{ count .TopCategory.Orders }} orders)
- Best-selling product: {{ .TopProduct.Product }} (${{ money .TopProduct.Revenue }} revenue)

## Files Generated

{{ range .Files }}- ` + "`{{ .Name }}`" + ` - {{ .Description }}
{{ end }}
---
*Generated by Orders Analytics System*
`))

// Render writes the summary as Markdown.
func (s *Summary) Render(w io.Writer) error {
	if err := summaryTemplate.Execute(w, s); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}
