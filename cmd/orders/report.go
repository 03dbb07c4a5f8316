package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/orders/internal/config"
	"github.com/JonMunkholm/orders/internal/core"
	"github.com/JonMunkholm/orders/internal/logging"
	"github.com/JonMunkholm/orders/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the analytics reports under REPORTS_DIR",
	Long: `Generate daily_revenue.csv, revenue_by_category.csv, top_products.csv,
repeat_customers.csv and summary.md under REPORTS_DIR.

The orders table must exist and hold at least one row. With
REPORT_SOURCE=csv the reports are computed from ORDERS_CSV directly and no
database is used. REPORT_WORKBOOK=true also writes reports.xlsx.`,
	Args: cobra.NoArgs,
	RunE: userErrors(runReport),
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Report.Timeout)
	defer cancel()

	logger := logging.FromContext(ctx)
	logger.Info("generating reports", "dir", cfg.Report.Dir, "source", cfg.Report.Source)

	var src report.Source
	switch cfg.Report.Source {
	case config.SourceCSV:
		lines, err := core.ReadOrdersFile(cfg.Input.Path)
		if err != nil {
			return err
		}
		src = report.NewMemorySource(lines)
	default:
		pool, err := openPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		src = report.NewPgSource(pool)
	}

	engine := report.NewEngine(src, report.Options{
		Dir:      cfg.Report.Dir,
		Workbook: cfg.Report.Workbook,
	})

	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	for _, f := range result.Files {
		logger.Info("generated", "file", f)
	}
	return nil
}
