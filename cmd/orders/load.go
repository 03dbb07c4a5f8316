package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/orders/internal/core"
	"github.com/JonMunkholm/orders/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace the orders table with the contents of ORDERS_CSV",
	Long: `Parse ORDERS_CSV and replace the orders table with its rows.

Every row must coerce before anything is written; the first malformed row
aborts the load and leaves the table as it was.`,
	Args: cobra.NoArgs,
	RunE: userErrors(runLoad),
}

func runLoad(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Input.Timeout)
	defer cancel()

	logger := logging.FromContext(ctx)
	logger.Info("loading orders", "source", cfg.Input.Path)

	pool, err := openPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	result, err := core.NewLoader(pool).Load(ctx, cfg.Input.Path)
	if err != nil {
		return err
	}

	logger.Info("load complete",
		"inserted", result.Inserted,
		"duration", result.Duration,
	)
	return nil
}
