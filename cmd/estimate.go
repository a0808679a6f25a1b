package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/takeoff-cli/internal/ingest"
	"github.com/sells-group/takeoff-cli/internal/store"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <drawing>...",
	Short: "Estimate a drawing set",
	Long:  "Loads drawing descriptors (.yaml, .json, or .pdf/.dwg with a .yaml sidecar), runs the takeoff pipeline, and prints category totals and warnings.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("estimate"); err != nil {
			return err
		}

		bps, err := ingest.LoadAll(args)
		if err != nil {
			return err
		}

		env, err := initEstimator(cfg)
		if err != nil {
			return err
		}

		save, _ := cmd.Flags().GetBool("save")
		var st store.Store
		if save {
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		}

		est, runID, err := runEstimate(ctx, env, st, bps)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(estimateResponse{RunID: runID, Estimate: est})
		}

		locale, _ := cmd.Flags().GetString("locale")
		formatEstimate(os.Stdout, newPrinter(locale), est)
		if runID != "" {
			fmt.Fprintf(os.Stderr, "\nSaved as run %s\n", runID)
		}
		return nil
	},
}

func init() {
	estimateCmd.Flags().Bool("json", false, "print the full estimate as JSON")
	estimateCmd.Flags().Bool("save", false, "record the run and its line items in the store")
	estimateCmd.Flags().String("locale", "en", "locale for number formatting (BCP 47 tag)")
	rootCmd.AddCommand(estimateCmd)
}
