package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/takeoff-cli/internal/config"
	"github.com/sells-group/takeoff-cli/internal/model"
)

func TestInitEstimator_FromConfig(t *testing.T) {
	dir := t.TempDir()
	pricesPath := filepath.Join(dir, "prices.yaml")
	require.NoError(t, os.WriteFile(pricesPath, []byte("prices:\n  drywall:\n    yellow: 50\n"), 0o644))
	laborPath := writeXLSX(t, [][]string{{"path", "price"}, {"drywall.yellow", "20"}})
	rulesPath := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte("rules:\n  drywall.yellow:\n    unit: sheet\n    batch_size: 2.5\n    waste_factor: 0.1\n"), 0o644))

	c := &config.Config{}
	c.Estimate.RulesFile = rulesPath
	c.Estimate.PricesFile = pricesPath
	c.Estimate.LaborFile = laborPath
	c.Estimate.RoundTo = 10
	c.Estimate.Currency = "ILS"
	c.Estimate.ValidityDays = 14
	c.Tax.Rates = []config.TaxRate{{Name: "vat", Rate: 0.17}, {Name: "city", Rate: 0.01}}
	c.Overhead.Percent = 0.1

	env, err := initEstimator(c)
	require.NoError(t, err)

	assert.Equal(t, "50", env.Prices["drywall.yellow"].String())
	assert.Equal(t, "20", env.Labor["drywall.yellow"].String())
	assert.InDelta(t, 2.5, env.Rules["drywall.yellow"].BatchSize, 1e-9)
	assert.Equal(t, "10", env.Summarizer.RoundTo.String())
	require.Len(t, env.Summarizer.Taxes, 2)
	assert.Equal(t, "0.17", env.Summarizer.Taxes[0].Rate.String())
	assert.Equal(t, "0.1", env.Config.Overhead.Percent.String())
	assert.Equal(t, 14, env.Config.ValidityDays)
}

func TestInitEstimator_MissingPriceFile(t *testing.T) {
	c := &config.Config{}
	c.Estimate.PricesFile = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := initEstimator(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load prices")
}

func TestInitEstimator_NoTables(t *testing.T) {
	env, err := initEstimator(&config.Config{})
	require.NoError(t, err)
	assert.Empty(t, env.Prices)
	assert.Empty(t, env.Labor)
	assert.NotEmpty(t, env.Rules)
}

func TestRunEstimate_WithoutStore(t *testing.T) {
	est, runID, err := runEstimate(context.Background(), testEnv(), nil, []model.Blueprint{wallsBlueprint("a", 100)})
	require.NoError(t, err)
	assert.Empty(t, runID)
	assert.Equal(t, "1350", est.Totals.Materials.String())
	assert.Equal(t, "1579.5", est.Totals.AfterTax.String())
	assert.Equal(t, "1600", est.Totals.FinalPrice.String())
}

func TestRunEstimate_SavesRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	est, runID, err := runEstimate(ctx, testEnv(), st, []model.Blueprint{
		wallsBlueprint("a", 100),
		wallsBlueprint("b", 100),
	})
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	run, err := st.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, run.Status)
	assert.Equal(t, []string{"a", "b"}, run.Documents)
	require.NotNil(t, run.Result)
	assert.Equal(t, est.Totals.FinalPrice.String(), run.Result.Totals.FinalPrice.String())
	assert.Equal(t, len(est.Lines()), run.Result.LineCount)

	lines, err := st.ListLines(ctx, runID)
	require.NoError(t, err)
	require.Len(t, lines, run.Result.LineCount)
	for _, l := range lines {
		if l.Path == "drywall.yellow" {
			assert.Equal(t, "54", l.Quantity.String())
			assert.Equal(t, "2700", l.Price.String())
		}
	}
}

func TestRunEstimate_RecordsFailure(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, runID, err := runEstimate(ctx, testEnv(), st, []model.Blueprint{wallsBlueprint("bad", -5)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidMeasurement))
	require.NotEmpty(t, runID)

	run, err := st.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "drywall.yellow")
	assert.Nil(t, run.Result)
}

func TestLoadTable(t *testing.T) {
	pt, err := loadTable("")
	require.NoError(t, err)
	assert.Empty(t, pt)

	xlsxPath := writeXLSX(t, [][]string{{"drywall.yellow", "45.5"}})
	pt, err = loadTable(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, "45.5", pt["drywall.yellow"].String())
}
