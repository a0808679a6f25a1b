package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/takeoff-cli/internal/pricing"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Inspect and convert price tables",
}

var pricesShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a price table (.yaml or .xlsx) as normalized YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := loadTable(args[0])
		if err != nil {
			return err
		}
		return pt.WriteYAML(os.Stdout)
	},
}

var pricesConvertCmd = &cobra.Command{
	Use:   "convert <in.xlsx> <out.yaml>",
	Short: "Convert a spreadsheet price list to YAML",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convertPrices(args[0], args[1])
	},
}

func convertPrices(in, out string) error {
	pt, err := pricing.ReadPriceTableXLSX(in)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return eris.Wrapf(err, "prices convert: create %s", out)
	}
	if err := pt.WriteYAML(f); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "prices convert: close")
}

func init() {
	pricesCmd.AddCommand(pricesShowCmd)
	pricesCmd.AddCommand(pricesConvertCmd)
	rootCmd.AddCommand(pricesCmd)
}
