package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/orders/internal/core"
	"github.com/JonMunkholm/orders/internal/logging"
)

// Options configures an Engine.
type Options struct {
	// Dir receives every output file. Created if absent.
	Dir string
	// Workbook additionally writes all tabular reports to reports.xlsx.
	Workbook bool
	// Now stamps the summary. Defaults to time.Now.
	Now func() time.Time
}

// Engine produces the report files from a Source.
type Engine struct {
	src  Source
	opts Options
}

// RunResult describes a completed run.
type RunResult struct {
	Files    []string
	Summary  *Summary
	Duration time.Duration
}

// NewEngine creates an Engine reading from src.
func NewEngine(src Source, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{src: src, opts: opts}
}

// Run computes and writes every report in order: the four tabular reports,
// then summary.md, then the optional workbook. Each file is written as soon
// as its data is ready; on failure the files already written are kept and
// the rest are not produced.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	startTime := time.Now()
	logger := logging.WithFields(ctx, "dir", e.opts.Dir)

	exists, err := e.src.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &core.MissingStoreError{Table: core.OrdersTable}
	}

	if err := os.MkdirAll(e.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}

	result := &RunResult{}
	var tables []table

	write := func(t table) error {
		path, err := writeCSV(e.opts.Dir, t)
		if err != nil {
			return err
		}
		tables = append(tables, t)
		result.Files = append(result.Files, path)
		logger.Info("report written", "file", t.file, "rows", len(t.rows))
		return nil
	}

	daily, err := e.src.DailyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	if err := write(dailyRevenueTable(daily)); err != nil {
		return nil, err
	}

	categories, err := e.src.CategoryRevenue(ctx)
	if err != nil {
		return nil, err
	}
	if err := write(categoryRevenueTable(categories)); err != nil {
		return nil, err
	}

	products, err := e.src.TopProducts(ctx, TopProductsLimit)
	if err != nil {
		return nil, err
	}
	if err := write(topProductsTable(products)); err != nil {
		return nil, err
	}

	repeat, err := e.src.RepeatCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if err := write(repeatCustomersTable(repeat)); err != nil {
		return nil, err
	}

	customers, err := e.src.CustomerCount(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := e.src.Totals(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := BuildSummary(SummaryInput{
		Daily:      daily,
		Categories: categories,
		Products:   products,
		Repeat:     repeat,
		Customers:  customers,
		Totals:     totals,
	}, e.opts.Now())
	if err != nil {
		return nil, err
	}
	if e.opts.Workbook {
		summary.Files = append(summary.Files,
			GeneratedFile{Name: WorkbookFile, Description: "All tabular reports as spreadsheet sheets"})
	}

	summaryPath := filepath.Join(e.opts.Dir, SummaryFile)
	if err := writeAtomic(summaryPath, func(w io.Writer) error { return summary.Render(w) }); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, summaryPath)
	result.Summary = summary
	logger.Info("report written", "file", SummaryFile)

	if e.opts.Workbook {
		path := filepath.Join(e.opts.Dir, WorkbookFile)
		if err := writeWorkbook(path, tables); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
		logger.Info("report written", "file", WorkbookFile, "sheets", len(tables))
	}

	result.Duration = time.Since(startTime)
	logger.Info("reports generated",
		"files", len(result.Files),
		"orders", summary.TotalOrders,
		"customers", summary.TotalCustomers,
		"duration", result.Duration,
	)

	return result, nil
}
