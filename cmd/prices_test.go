package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/takeoff-cli/internal/pricing"
)

func TestConvertPrices(t *testing.T) {
	in := writeXLSX(t, [][]string{
		{"path", "price"},
		{"drywall.yellow", "45.5"},
		{"drywall.accessories.screws", "30"},
		{"plumbing.sewer", "120"},
	})
	out := filepath.Join(t.TempDir(), "prices.yaml")

	require.NoError(t, convertPrices(in, out))

	pt, err := pricing.LoadPriceTable(out)
	require.NoError(t, err)
	assert.Len(t, pt, 3)
	assert.Equal(t, "45.5", pt["drywall.yellow"].String())
	assert.Equal(t, "30", pt["drywall.accessories.screws"].String())
	assert.Equal(t, "120", pt["plumbing.sewer"].String())
}

func TestConvertPrices_BadInput(t *testing.T) {
	err := convertPrices(filepath.Join(t.TempDir(), "missing.xlsx"), filepath.Join(t.TempDir(), "out.yaml"))
	assert.Error(t, err)
}

func TestConvertPrices_ConflictingPaths(t *testing.T) {
	in := writeXLSX(t, [][]string{
		{"drywall", "10"},
		{"drywall.yellow", "45.5"},
	})
	err := convertPrices(in, filepath.Join(t.TempDir(), "out.yaml"))
	assert.Error(t, err)
}
