package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()
	vat := []TaxRule{{Name: "vat", Rate: d("0.17")}}

	tests := []struct {
		name                                 string
		materials, labor, overhead, discount string
		taxes                                []TaxRule
		roundTo                              decimal.Decimal
		beforeTax, tax, afterTax, final      string
	}{
		{
			name:      "discount before tax",
			materials: "10000", labor: "0", overhead: "0", discount: "500",
			taxes: vat, roundTo: DefaultRoundTo,
			beforeTax: "9500", tax: "1615", afterTax: "11115", final: "11100",
		},
		{
			name:      "rounds half up",
			materials: "1000", labor: "0", overhead: "50", discount: "0",
			taxes: nil, roundTo: DefaultRoundTo,
			beforeTax: "1050", tax: "0", afterTax: "1050", final: "1100",
		},
		{
			name:      "overhead and labor",
			materials: "6000", labor: "3000", overhead: "900", discount: "400",
			taxes: vat, roundTo: DefaultRoundTo,
			beforeTax: "9500", tax: "1615", afterTax: "11115", final: "11100",
		},
		{
			name:      "multiple taxes",
			materials: "1000", labor: "0", overhead: "0", discount: "0",
			taxes:     []TaxRule{{Name: "vat", Rate: d("0.17")}, {Name: "levy", Rate: d("0.01")}},
			roundTo:   d("10"),
			beforeTax: "1000", tax: "180", afterTax: "1180", final: "1180",
		},
		{
			name:      "discount larger than subtotal",
			materials: "100", labor: "0", overhead: "0", discount: "500",
			taxes: vat, roundTo: DefaultRoundTo,
			beforeTax: "0", tax: "0", afterTax: "0", final: "0",
		},
		{
			name:      "no rounding",
			materials: "1234.56", labor: "0", overhead: "0", discount: "0",
			taxes: nil, roundTo: decimal.Zero,
			beforeTax: "1234.56", tax: "0", afterTax: "1234.56", final: "1234.56",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Summarizer{Taxes: tt.taxes, RoundTo: tt.roundTo}
			got := s.Summarize(d(tt.materials), d(tt.labor), d(tt.overhead), d(tt.discount))

			assert.Equal(t, tt.beforeTax, got.BeforeTax.String())
			assert.Equal(t, tt.tax, got.Tax.String())
			assert.Equal(t, tt.afterTax, got.AfterTax.String())
			assert.Equal(t, tt.final, got.FinalPrice.String())
			assert.Equal(t, tt.discount, got.Discounts.String())
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, inc, want string
	}{
		{"11115", "100", "11100"},
		{"11150", "100", "11200"},
		{"11149.99", "100", "11100"},
		{"49", "100", "0"},
		{"50", "100", "100"},
		{"12.345", "0.01", "12.35"},
		{"77", "0", "77"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(d(tt.in), d(tt.inc)).String(), "%s by %s", tt.in, tt.inc)
	}
}

func TestOverheadAndDiscount(t *testing.T) {
	t.Parallel()
	o := Overhead{Percent: d("0.1"), Fixed: d("250")}
	assert.Equal(t, "1250", o.Apply(d("6000"), d("4000")).String())

	disc := Discount{Percent: d("0.05")}
	assert.Equal(t, "500", disc.Apply(d("6000"), d("4000")).String())

	assert.True(t, Overhead{}.Apply(d("100"), d("100")).IsZero())
	assert.True(t, Discount{Fixed: d("-10")}.Apply(d("0"), d("0")).IsZero())
}
