package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/model"
)

func sampleResult() *model.RunResult {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &model.RunResult{
		Totals: model.ProjectTotals{
			Materials:  decimal.RequireFromString("9500"),
			Labor:      decimal.Zero,
			Overhead:   decimal.Zero,
			Discounts:  decimal.Zero,
			BeforeTax:  decimal.RequireFromString("9500"),
			Tax:        decimal.RequireFromString("1615"),
			AfterTax:   decimal.RequireFromString("11115"),
			FinalPrice: decimal.RequireFromString("11100"),
		},
		Warnings: []model.Warning{{
			Severity: model.SeverityWarning,
			Code:     model.CodeMissingPrice,
			Message:  "no price for sealing.silicone; priced at 0",
			Path:     "sealing.silicone",
		}},
		LineCount:   2,
		Currency:    "ILS",
		ProjectType: "residential",
		GeneratedAt: now,
		ValidUntil:  now.AddDate(0, 0, 30),
	}
}

func sampleLines() []model.LineItem {
	return []model.LineItem{
		{
			Kind:      model.LineKindMaterial,
			Category:  "drywall",
			Path:      "drywall.yellow",
			Quantity:  decimal.RequireFromString("27"),
			Unit:      "sheet",
			UnitPrice: decimal.RequireFromString("45.5"),
			Price:     decimal.RequireFromString("1228.5"),
			Notes:     "standard board",
		},
		{
			Kind:      model.LineKindLabor,
			Category:  "drywall",
			Path:      "drywall.yellow",
			Quantity:  decimal.RequireFromString("27"),
			Unit:      "sheet",
			UnitPrice: decimal.RequireFromString("20"),
			Price:     decimal.RequireFromString("540"),
		},
	}
}
