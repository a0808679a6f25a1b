package tree

import "github.com/shopspring/decimal"

// Rollup reduces t to a scalar: numeric leaves add their value, measured
// leaves their quantity, priced lines their price, subtrees their own
// rollup. TotalKey is skipped, except that a tree holding nothing but a
// total rolls up to that total.
func Rollup(t Tree) decimal.Decimal {
	if len(t) == 1 {
		if v, ok := t.Total(); ok {
			return v
		}
	}

	sum := decimal.Zero
	for k, n := range t {
		if k == TotalKey {
			continue
		}
		sum = sum.Add(value(n))
	}
	return sum
}

func value(n Node) decimal.Decimal {
	switch v := n.(type) {
	case Numeric:
		return v.Value
	case Measured:
		return v.Quantity
	case PricedLine:
		return v.Price
	case Tree:
		return Rollup(v)
	default:
		return decimal.Zero
	}
}

// WithTotals returns a copy of t with a freshly recomputed TotalKey at
// every level, root included.
func WithTotals(t Tree) Tree {
	out := make(Tree, len(t)+1)
	for k, n := range t {
		if k == TotalKey {
			continue
		}
		if sub, ok := n.(Tree); ok {
			out[k] = WithTotals(sub)
			continue
		}
		out[k] = n
	}
	out[TotalKey] = Numeric{Value: Rollup(out)}
	return out
}

// CategoryTotals returns the rollup of each top-level subtree.
func CategoryTotals(t Tree) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t))
	for _, k := range t.Keys() {
		out[k] = value(t[k])
	}
	return out
}
