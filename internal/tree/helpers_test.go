package tree

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/quantity"
)

// flat renders t as path -> canonical leaf text so trees can be compared
// without depending on decimal's internal representation.
func flat(t Tree) map[string]string {
	out := map[string]string{}
	flatInto("", t, out)
	return out
}

func flatInto(prefix string, t Tree, out map[string]string) {
	for k, n := range t {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := n.(type) {
		case Tree:
			flatInto(key, v, out)
		case Numeric:
			out[key] = "n:" + v.Value.String()
		case Measured:
			out[key] = fmt.Sprintf("m:%s|%s|%s|%s", v.Quantity, v.Unit, v.SourceMetric, v.Notes)
		case PricedLine:
			out[key] = fmt.Sprintf("p:%s|%s|%s|%s|%s", v.Quantity, v.Unit, v.UnitPrice, v.Price, v.Notes)
		}
	}
}

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func measured(qty float64, unit quantity.Unit, metric float64, notes string) Measured {
	return Measured{Quantity: d(qty), Unit: unit, SourceMetric: d(metric), Notes: notes}
}

func priced(qty, unitPrice float64, unit quantity.Unit, notes string) PricedLine {
	return PricedLine{
		Quantity:  d(qty),
		Unit:      unit,
		UnitPrice: d(unitPrice),
		Price:     d(qty).Mul(d(unitPrice)),
		Notes:     notes,
	}
}

// fixture is a small nested priced tree with stale totals.
func fixture() Tree {
	return Tree{
		"drywall": Tree{
			"yellow": priced(10, 50, quantity.UnitSheet, "outer walls"),
			"accessories": Tree{
				"screws": priced(2, 30, quantity.UnitPackage, "packs of 1000"),
				"profiles": Tree{
					"c60":    priced(120, 4, quantity.UnitMeter, ""),
					TotalKey: Num(999),
				},
			},
			TotalKey: Num(12345),
		},
		"hardware": Tree{
			"doors": priced(8, 400, quantity.UnitEach, ""),
		},
		"misc": Num(75),
	}
}
