package report

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/JonMunkholm/orders/internal/core"
)

// MemorySource computes the report aggregates over order lines held in
// memory. Each aggregate is one grouping pass into an accumulator map,
// materialized and sorted with the same tie-breaks as PgSource.
//
// The zero value behaves like a store that was never loaded.
type MemorySource struct {
	lines  []core.OrderLine
	loaded bool
}

// NewMemorySource wraps lines as a loaded store. lines may be empty.
func NewMemorySource(lines []core.OrderLine) *MemorySource {
	return &MemorySource{lines: lines, loaded: true}
}

func (m *MemorySource) Exists(context.Context) (bool, error) {
	return m.loaded, nil
}

type revenueAcc struct {
	orders  int64
	units   int64
	revenue float64
}

func (a *revenueAcc) add(l core.OrderLine) {
	a.orders++
	a.units += int64(l.Quantity)
	a.revenue += l.Revenue()
}

func (a *revenueAcc) avg() float64 {
	return a.revenue / float64(a.orders)
}

func (m *MemorySource) DailyRevenue(context.Context) ([]DailyRevenue, error) {
	groups := make(map[time.Time]*revenueAcc)
	for _, l := range m.lines {
		key := l.OrderDate.UTC().Truncate(24 * time.Hour)
		acc, ok := groups[key]
		if !ok {
			acc = &revenueAcc{}
			groups[key] = acc
		}
		acc.add(l)
	}

	result := make([]DailyRevenue, 0, len(groups))
	for date, acc := range groups {
		result = append(result, DailyRevenue{
			Date:          date,
			Orders:        acc.orders,
			Revenue:       acc.revenue,
			AvgOrderValue: acc.avg(),
		})
	}
	slices.SortFunc(result, func(a, b DailyRevenue) int {
		return a.Date.Compare(b.Date)
	})

	return result, nil
}

func (m *MemorySource) CategoryRevenue(context.Context) ([]CategoryRevenue, error) {
	groups := make(map[string]*revenueAcc)
	for _, l := range m.lines {
		acc, ok := groups[l.Category]
		if !ok {
			acc = &revenueAcc{}
			groups[l.Category] = acc
		}
		acc.add(l)
	}

	result := make([]CategoryRevenue, 0, len(groups))
	for category, acc := range groups {
		result = append(result, CategoryRevenue{
			Category:      category,
			Orders:        acc.orders,
			Revenue:       acc.revenue,
			AvgOrderValue: acc.avg(),
			Units:         acc.units,
		})
	}
	slices.SortFunc(result, func(a, b CategoryRevenue) int {
		return cmp.Or(
			cmp.Compare(b.Revenue, a.Revenue),
			strings.Compare(a.Category, b.Category),
		)
	})

	return result, nil
}

type productKey struct {
	product  string
	category string
}

type productAcc struct {
	revenueAcc
	priceSum float64
}

func (m *MemorySource) TopProducts(_ context.Context, limit int) ([]ProductRevenue, error) {
	groups := make(map[productKey]*productAcc)
	for _, l := range m.lines {
		key := productKey{product: l.Product, category: l.Category}
		acc, ok := groups[key]
		if !ok {
			acc = &productAcc{}
			groups[key] = acc
		}
		acc.add(l)
		acc.priceSum += l.UnitPrice
	}

	result := make([]ProductRevenue, 0, len(groups))
	for key, acc := range groups {
		result = append(result, ProductRevenue{
			Product:      key.product,
			Category:     key.category,
			TimesOrdered: acc.orders,
			Units:        acc.units,
			Revenue:      acc.revenue,
			AvgUnitPrice: acc.priceSum / float64(acc.orders),
		})
	}
	slices.SortFunc(result, func(a, b ProductRevenue) int {
		return cmp.Or(
			cmp.Compare(b.Revenue, a.Revenue),
			strings.Compare(a.Product, b.Product),
			strings.Compare(a.Category, b.Category),
		)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type customerAcc struct {
	revenueAcc
	first      time.Time
	last       time.Time
	categories map[string]struct{}
}

func (m *MemorySource) RepeatCustomers(context.Context) ([]RepeatCustomer, error) {
	groups := make(map[string]*customerAcc)
	for _, l := range m.lines {
		acc, ok := groups[l.CustomerID]
		if !ok {
			acc = &customerAcc{
				first:      l.OrderDate,
				last:       l.OrderDate,
				categories: make(map[string]struct{}),
			}
			groups[l.CustomerID] = acc
		}
		acc.add(l)
		if l.OrderDate.Before(acc.first) {
			acc.first = l.OrderDate
		}
		if l.OrderDate.After(acc.last) {
			acc.last = l.OrderDate
		}
		acc.categories[l.Category] = struct{}{}
	}

	var result []RepeatCustomer
	for id, acc := range groups {
		if acc.orders <= 1 {
			continue
		}
		result = append(result, RepeatCustomer{
			CustomerID:    id,
			Orders:        acc.orders,
			Spent:         acc.revenue,
			AvgOrderValue: acc.avg(),
			FirstOrder:    acc.first,
			LastOrder:     acc.last,
			Categories:    int64(len(acc.categories)),
		})
	}
	slices.SortFunc(result, func(a, b RepeatCustomer) int {
		return cmp.Or(
			cmp.Compare(b.Spent, a.Spent),
			strings.Compare(a.CustomerID, b.CustomerID),
		)
	})

	return result, nil
}

func (m *MemorySource) CustomerCount(context.Context) (int64, error) {
	seen := make(map[string]struct{})
	for _, l := range m.lines {
		seen[l.CustomerID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (m *MemorySource) Totals(context.Context) (Totals, error) {
	var acc revenueAcc
	for _, l := range m.lines {
		acc.add(l)
	}
	if acc.orders == 0 {
		return Totals{}, nil
	}
	return Totals{
		Orders:        acc.orders,
		Revenue:       acc.revenue,
		AvgOrderValue: acc.avg(),
	}, nil
}
