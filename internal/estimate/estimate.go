package estimate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/tree"
)

// Metadata describes when and for what an estimate was produced.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	ValidUntil  time.Time `json:"valid_until"`
	Currency    string    `json:"currency"`
	ProjectType string    `json:"project_type"`
	Documents   []string  `json:"documents"`
}

// Estimate is the combined result for a drawing set.
type Estimate struct {
	Documents  []*DocumentResult   `json:"-"`
	Quantities tree.Tree           `json:"quantities"`
	Materials  tree.Tree           `json:"materials"`
	Labor      tree.Tree           `json:"labor"`
	Warnings   []model.Warning     `json:"warnings"`
	Totals     model.ProjectTotals `json:"totals"`
	Metadata   Metadata            `json:"metadata"`
}

// Lines flattens the material and labor trees into line items, materials
// first.
func (e *Estimate) Lines() []model.LineItem {
	out := tree.Lines(e.Materials, model.LineKindMaterial)
	return append(out, tree.Lines(e.Labor, model.LineKindLabor)...)
}

// CategoryTotals returns material plus labor cost per top-level category.
func (e *Estimate) CategoryTotals() map[string]decimal.Decimal {
	out := tree.CategoryTotals(e.Materials)
	for k, v := range tree.CategoryTotals(e.Labor) {
		out[k] = out[k].Add(v)
	}
	return out
}

// Result converts the estimate into its persisted form.
func (e *Estimate) Result() model.RunResult {
	return model.RunResult{
		Totals:      e.Totals,
		Warnings:    e.Warnings,
		LineCount:   len(e.Lines()),
		Currency:    e.Metadata.Currency,
		ProjectType: e.Metadata.ProjectType,
		GeneratedAt: e.Metadata.GeneratedAt,
		ValidUntil:  e.Metadata.ValidUntil,
	}
}
