package pricing

import "github.com/shopspring/decimal"

// Overhead is charged on materials plus labor.
type Overhead struct {
	Percent decimal.Decimal `json:"percent"`
	Fixed   decimal.Decimal `json:"fixed"`
}

// Apply returns the overhead amount for the given subtotals.
func (o Overhead) Apply(materials, labor decimal.Decimal) decimal.Decimal {
	return percentPlusFixed(materials.Add(labor), o.Percent, o.Fixed)
}

// Discount is taken off materials plus labor before tax.
type Discount struct {
	Percent decimal.Decimal `json:"percent"`
	Fixed   decimal.Decimal `json:"fixed"`
}

// Apply returns the discount amount for the given subtotals.
func (d Discount) Apply(materials, labor decimal.Decimal) decimal.Decimal {
	return percentPlusFixed(materials.Add(labor), d.Percent, d.Fixed)
}

func percentPlusFixed(base, percent, fixed decimal.Decimal) decimal.Decimal {
	v := base.Mul(percent).Add(fixed)
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
