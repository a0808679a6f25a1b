package tree

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// Combine merges per-document trees into one project tree. Leaves at the
// same key are summed; a key present in only some trees is carried over
// as-is. A key whose kind or unit differs between trees fails with a
// PathError naming the key path. Totals in the inputs are ignored and
// recomputed on the result, so the merge is order-independent.
func Combine(trees ...Tree) (Tree, error) {
	acc := Tree{}
	for _, t := range trees {
		merged, err := merge(nil, acc, Strip(t))
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return WithTotals(acc), nil
}

func merge(path []string, a, b Tree) (Tree, error) {
	out := Clone(a)
	for _, k := range b.Keys() {
		bn := b[k]
		an, ok := out[k]
		if !ok {
			if sub, isTree := bn.(Tree); isTree {
				bn = Clone(sub)
			}
			out[k] = bn
			continue
		}
		merged, err := mergeNode(appendPath(path, k), an, bn)
		if err != nil {
			return nil, err
		}
		out[k] = merged
	}
	return out, nil
}

func mergeNode(path []string, an, bn Node) (Node, error) {
	if an.kind() != bn.kind() {
		return nil, model.NewPathError(model.ErrShapeMismatch, path,
			fmt.Sprintf("%s vs %s", an.kind(), bn.kind()))
	}

	switch a := an.(type) {
	case Numeric:
		b := bn.(Numeric)
		return Numeric{Value: a.Value.Add(b.Value)}, nil

	case Measured:
		b := bn.(Measured)
		if a.Unit != b.Unit {
			return nil, model.NewPathError(model.ErrUnitMismatch, path,
				fmt.Sprintf("%s vs %s", a.Unit, b.Unit))
		}
		return Measured{
			Quantity:     a.Quantity.Add(b.Quantity),
			Unit:         a.Unit,
			SourceMetric: a.SourceMetric.Add(b.SourceMetric),
			Notes:        mergeNotes(a.Notes, b.Notes),
		}, nil

	case PricedLine:
		b := bn.(PricedLine)
		if a.Unit != b.Unit {
			return nil, model.NewPathError(model.ErrUnitMismatch, path,
				fmt.Sprintf("%s vs %s", a.Unit, b.Unit))
		}
		qty := a.Quantity.Add(b.Quantity)
		price := a.Price.Add(b.Price)
		return PricedLine{
			Quantity:  qty,
			Unit:      a.Unit,
			UnitPrice: mergeUnitPrice(a.UnitPrice, b.UnitPrice, qty, price),
			Price:     price,
			Notes:     mergeNotes(a.Notes, b.Notes),
		}, nil

	case Tree:
		return merge(path, a, bn.(Tree))
	}

	return nil, model.NewPathError(model.ErrShapeMismatch, path, "unknown node kind "+an.kind())
}

// mergeNotes keeps identical notes; diverging notes resolve to the
// lexically smallest non-empty one so the result does not depend on
// document order.
func mergeNotes(a, b string) string {
	switch {
	case a == b:
		return a
	case a == "":
		return b
	case b == "":
		return a
	case a < b:
		return a
	default:
		return b
	}
}

// mergeUnitPrice keeps a shared unit price and otherwise falls back to the
// effective price per unit of the merged line.
func mergeUnitPrice(a, b, qty, price decimal.Decimal) decimal.Decimal {
	if a.Equal(b) {
		return a
	}
	if qty.IsZero() {
		return decimal.Max(a, b)
	}
	return price.Div(qty)
}
