// Command orders loads an orders CSV into PostgreSQL and generates the
// analytics reports from it.
//
//	orders load     replace the orders table with ORDERS_CSV
//	orders report   write the reports under REPORTS_DIR
//
// Both commands read their settings from the environment and from a .env
// file in the working directory.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/orders/internal/config"
	"github.com/JonMunkholm/orders/internal/logging"
)

// cfg is populated by the root command before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "orders",
	Short: "Load order lines and generate analytics reports",
	Long: `Load an orders CSV into PostgreSQL and derive the analytics reports.

Run "orders load" first, then "orders report". Configuration comes from
environment variables (DATABASE_URL, ORDERS_CSV, REPORTS_DIR, ...) and an
optional .env file.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddCommand(loadCmd, reportCmd)
}

// setup loads .env and the configuration, then installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	// Overload lets .env win over variables already in the environment
	envLoaded := godotenv.Overload() == nil

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	logging.FromContext(cmd.Context()).Debug("configuration loaded",
		"env_file", envLoaded,
		"config", cfg.String(),
	)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logging.WithRunID(ctx, uuid.NewString())

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logFailure(logging.FromContext(ctx), err)
		os.Exit(1)
	}
}
