package tree

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// Lines flattens the leaves of t into line items in sorted key order.
// Measured leaves produce unpriced lines; numeric leaves are skipped.
func Lines(t Tree, kind model.LineKind) []model.LineItem {
	var out []model.LineItem
	collectLines(nil, t, kind, &out)
	return out
}

func collectLines(path []string, t Tree, kind model.LineKind, out *[]model.LineItem) {
	for _, k := range t.Keys() {
		child := appendPath(path, k)
		switch v := t[k].(type) {
		case Tree:
			collectLines(child, v, kind, out)
		case PricedLine:
			*out = append(*out, model.LineItem{
				Kind:      kind,
				Category:  child[0],
				Path:      model.JoinPath(child),
				Quantity:  v.Quantity,
				Unit:      string(v.Unit),
				UnitPrice: v.UnitPrice,
				Price:     v.Price,
				Notes:     v.Notes,
			})
		case Measured:
			*out = append(*out, model.LineItem{
				Kind:      kind,
				Category:  child[0],
				Path:      model.JoinPath(child),
				Quantity:  v.Quantity,
				Unit:      string(v.Unit),
				UnitPrice: decimal.Zero,
				Price:     decimal.Zero,
				Notes:     v.Notes,
			})
		}
	}
}
