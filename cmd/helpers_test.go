package main

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/takeoff-cli/internal/config"
	"github.com/sells-group/takeoff-cli/internal/estimate"
	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/pricing"
	"github.com/sells-group/takeoff-cli/internal/quantity"
	"github.com/sells-group/takeoff-cli/internal/recognize"
	"github.com/sells-group/takeoff-cli/internal/store"
)

func testEnv() *estimatorEnv {
	return &estimatorEnv{
		Recognizer: recognize.NewHeuristic(recognize.DefaultAssumptions()),
		Rules:      quantity.DefaultRules(),
		Prices: pricing.PriceTable{
			"drywall.yellow": decimal.NewFromInt(50),
		},
		Labor: pricing.PriceTable{},
		Summarizer: pricing.Summarizer{
			Taxes:   []pricing.TaxRule{{Name: "vat", Rate: decimal.RequireFromString("0.17")}},
			RoundTo: decimal.NewFromInt(100),
		},
		Config: estimate.Config{
			MaxConcurrentDocuments: 2,
			Currency:               "ILS",
			ProjectType:            "residential",
			ValidityDays:           30,
		},
	}
}

// wallsBlueprint carries pre-recognized elements with only outer walls.
func wallsBlueprint(name string, area float64) model.Blueprint {
	return model.Blueprint{
		Name:       name,
		Discipline: model.DisciplineArchitectural,
		Elements: &model.ElementSet{
			Walls: model.WallSet{Outer: model.Surface{TotalArea: area}},
		},
	}
}

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:           8080,
		RateLimit:      1000,
		RateBurst:      1000,
		AllowedOrigins: []string{"*"},
	}
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "takeoff.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(t.Context()))
	return st
}

func writeXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Prices")
	require.NoError(t, err)
	for _, r := range rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, f.Save(path))
	return path
}
