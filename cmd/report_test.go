package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/takeoff-cli/internal/model"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		locale string
		in     string
		want   string
	}{
		{"en", "15093", "15,093.00"},
		{"en", "1228.456", "1,228.46"},
		{"en", "0", "0.00"},
		{"de", "15093.5", "15.093,50"},
		{"not a tag!", "12", "12.00"},
	}
	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, money(newPrinter(tt.locale), decimal.RequireFromString(tt.in)))
		})
	}
}

func TestQty(t *testing.T) {
	p := newPrinter("en")
	assert.Equal(t, "27", qty(p, decimal.NewFromInt(27)))
	assert.Equal(t, "6,500", qty(p, decimal.NewFromInt(6500)))
	assert.Equal(t, "2.500", qty(p, decimal.RequireFromString("2.5")))
}

func TestFormatEstimate(t *testing.T) {
	est, _, err := runEstimate(context.Background(), testEnv(), nil, []model.Blueprint{wallsBlueprint("arch", 100)})
	require.NoError(t, err)

	var buf bytes.Buffer
	formatEstimate(&buf, newPrinter("en"), est)
	out := buf.String()

	assert.Contains(t, out, "Documents:   1")
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "drywall")
	assert.Contains(t, out, "1,350.00")
	assert.Contains(t, out, "Final price:")
	assert.Contains(t, out, "1,600.00")
	assert.Contains(t, out, "ILS")
	assert.Contains(t, out, "Warnings (")
}

func TestFormatWarnings_SortedBySeverity(t *testing.T) {
	ws := []model.Warning{
		{Severity: model.SeverityWarning, Document: "a", Message: "no price"},
		{Severity: model.SeverityCritical, Document: "b", Message: "no plumbing plan", Recommendation: "request the plan"},
		{Severity: model.SeverityHigh, Document: "c", Location: "kitchen", Message: "missing detail"},
	}

	var buf bytes.Buffer
	formatWarnings(&buf, ws)
	out := buf.String()

	crit := bytes.Index(buf.Bytes(), []byte("[critical]"))
	high := bytes.Index(buf.Bytes(), []byte("[high]"))
	low := bytes.Index(buf.Bytes(), []byte("[warning]"))
	assert.True(t, crit < high && high < low, out)
	assert.Contains(t, out, "c / kitchen: missing detail")
	assert.Contains(t, out, "-> request the plan")
	// Input order is preserved.
	assert.Equal(t, model.SeverityWarning, ws[0].Severity)
}

func TestFormatLines(t *testing.T) {
	lines := []model.LineItem{{
		Kind:      model.LineKindMaterial,
		Path:      "drywall.yellow",
		Quantity:  decimal.NewFromInt(27),
		Unit:      "sheet",
		UnitPrice: decimal.RequireFromString("45.5"),
		Price:     decimal.RequireFromString("1228.5"),
	}}

	var buf bytes.Buffer
	formatLines(&buf, newPrinter("en"), lines)
	out := buf.String()
	assert.Contains(t, out, "drywall.yellow")
	assert.Contains(t, out, "1,228.50")
	assert.Contains(t, out, "45.50")
}

func TestFormatRunsList(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "0123456789abcdef",
			Documents: []string{"arch.yaml"},
			Status:    model.RunStatusComplete,
			Result: &model.RunResult{
				Totals:   model.ProjectTotals{FinalPrice: decimal.NewFromInt(11100)},
				Currency: "ILS",
			},
			CreatedAt: created,
			UpdatedAt: created.Add(3 * time.Second),
		},
		{
			ID:        "fedcba9876543210",
			Documents: []string{"a.yaml", "b.yaml", "c.yaml"},
			Status:    model.RunStatusFailed,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, newPrinter("en"), runs)
	out := buf.String()

	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "arch.yaml")
	assert.Contains(t, out, "11,100.00 ILS")
	assert.Contains(t, out, "3s")
	assert.Contains(t, out, "fedcba98")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "2026-03-01 09:00")
}
