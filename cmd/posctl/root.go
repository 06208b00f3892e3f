package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maliksarmad/retailpos-api/internal/config"
	"github.com/maliksarmad/retailpos-api/internal/infrastructure/salesapi"
	"github.com/maliksarmad/retailpos-api/pkg/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "posctl",
	Short: "posctl - administrative CLI for the retail POS terminal service",
	Long: `posctl talks directly to the sales service for administrative
operations that do not belong on a cashier's terminal: reconciling
customer balances, inspecting held orders and reviewing outstanding
credit.

Configuration is read from the same .env / environment variables as
the API server.`,
	Version: version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newSalesClient builds a sales service client from the environment
func newSalesClient() *salesapi.Client {
	cfg := config.Load()
	if err := logger.Setup(logger.Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not set up logging: %v\n", err)
	}
	return salesapi.NewClient(cfg.Upstream)
}
