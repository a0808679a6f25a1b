package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// DefaultRoundTo is the final-price rounding increment.
var DefaultRoundTo = decimal.NewFromInt(100)

// TaxRule is a flat percentage of the pre-tax amount.
type TaxRule struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// Summarizer owns the order of operations from subtotals to final price.
type Summarizer struct {
	Taxes   []TaxRule
	RoundTo decimal.Decimal
}

// Summarize computes the project totals. Overhead is added to materials
// plus labor and discounts are taken off before tax. The pre-tax amount
// never goes below zero.
func (s Summarizer) Summarize(materials, labor, overhead, discounts decimal.Decimal) model.ProjectTotals {
	beforeTax := materials.Add(labor).Add(overhead).Sub(discounts)
	if beforeTax.IsNegative() {
		beforeTax = decimal.Zero
	}

	tax := decimal.Zero
	for _, r := range s.Taxes {
		tax = tax.Add(beforeTax.Mul(r.Rate))
	}
	afterTax := beforeTax.Add(tax)

	return model.ProjectTotals{
		Materials:  materials,
		Labor:      labor,
		Overhead:   overhead,
		Discounts:  discounts,
		BeforeTax:  beforeTax,
		Tax:        tax,
		AfterTax:   afterTax,
		FinalPrice: RoundHalfUp(afterTax, s.RoundTo),
	}
}

// RoundHalfUp rounds v to the nearest multiple of increment, ties away
// from zero. A non-positive increment leaves v unchanged.
func RoundHalfUp(v, increment decimal.Decimal) decimal.Decimal {
	if !increment.IsPositive() {
		return v
	}
	return v.Div(increment).Round(0).Mul(increment)
}
