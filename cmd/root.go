package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/takeoff-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "takeoff",
	Short: "Quantity takeoff and cost estimation for construction drawings",
	Long: `Recognizes building elements on drawing sets, converts them into purchasable
quantities with waste rules, prices materials and labor, and rolls everything up
into a project estimate with overhead, discounts, tax and a rounded final price.

Commands:
  estimate   estimate one or more drawings and print totals and warnings
  prices     show a price table or convert a supplier spreadsheet to YAML
  runs       list saved runs and inspect their totals and line items
  serve      expose estimation and saved runs over an HTTP API

Runs can be saved to SQLite (default) or Postgres. Configuration is read from
config.yaml and TAKEOFF_* environment variables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
