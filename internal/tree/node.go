// Package tree holds quantity and price trees: a mapping from stable
// category keys to numeric leaves, measured leaves, priced lines or nested
// trees.
package tree

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sells-group/takeoff-cli/internal/quantity"
)

// TotalKey is the derived per-level total. It is never a merge target.
const TotalKey = "total"

// Node is one of Numeric, Measured, PricedLine or Tree.
type Node interface {
	kind() string
}

// Numeric is a bare scalar leaf.
type Numeric struct {
	Value decimal.Decimal
}

// Measured is a purchasable quantity derived from a source metric.
type Measured struct {
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         quantity.Unit   `json:"unit"`
	SourceMetric decimal.Decimal `json:"source_metric"`
	Notes        string          `json:"notes,omitempty"`
}

// PricedLine is a Measured leaf after pricing.
type PricedLine struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      quantity.Unit   `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     decimal.Decimal `json:"price"`
	Notes     string          `json:"notes,omitempty"`
}

// Tree maps keys to nodes. Trees are treated as immutable once built;
// every operation in this package returns a new tree.
type Tree map[string]Node

func (Numeric) kind() string    { return "numeric" }
func (Measured) kind() string   { return "measured" }
func (PricedLine) kind() string { return "priced" }
func (Tree) kind() string       { return "subtree" }

// MarshalJSON renders a Numeric as its bare decimal.
func (n Numeric) MarshalJSON() ([]byte, error) {
	return n.Value.MarshalJSON()
}

// Num is shorthand for a Numeric leaf from a float.
func Num(v float64) Numeric {
	return Numeric{Value: decimal.NewFromFloat(v)}
}

// Keys returns the keys of t in sorted order, excluding TotalKey.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		if k == TotalKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the node at path.
func (t Tree) Get(path ...string) (Node, bool) {
	var cur Node = t
	for _, k := range path {
		sub, ok := cur.(Tree)
		if !ok {
			return nil, false
		}
		cur, ok = sub[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Total returns the stored total of t, if any.
func (t Tree) Total() (decimal.Decimal, bool) {
	n, ok := t[TotalKey].(Numeric)
	if !ok {
		return decimal.Zero, false
	}
	return n.Value, true
}

// Clone deep-copies t. Leaves are values, so only subtrees are copied.
func Clone(t Tree) Tree {
	out := make(Tree, len(t))
	for k, n := range t {
		if sub, ok := n.(Tree); ok {
			out[k] = Clone(sub)
			continue
		}
		out[k] = n
	}
	return out
}

// Strip returns a copy of t with every TotalKey removed at every level.
func Strip(t Tree) Tree {
	out := make(Tree, len(t))
	for k, n := range t {
		if k == TotalKey {
			continue
		}
		if sub, ok := n.(Tree); ok {
			out[k] = Strip(sub)
			continue
		}
		out[k] = n
	}
	return out
}

// MapLeaves rebuilds t by applying fn to every non-total leaf. fn returns
// the replacement leaf; a nil replacement drops the leaf. Stale totals are
// dropped and recomputed on the result.
func MapLeaves(t Tree, fn func(path []string, n Node) (Node, error)) (Tree, error) {
	out, err := mapLeaves(nil, t, fn)
	if err != nil {
		return nil, err
	}
	return WithTotals(out), nil
}

func mapLeaves(path []string, t Tree, fn func([]string, Node) (Node, error)) (Tree, error) {
	out := make(Tree, len(t))
	for _, k := range t.Keys() {
		child := appendPath(path, k)
		if sub, ok := t[k].(Tree); ok {
			mapped, err := mapLeaves(child, sub, fn)
			if err != nil {
				return nil, err
			}
			out[k] = mapped
			continue
		}
		repl, err := fn(child, t[k])
		if err != nil {
			return nil, err
		}
		if repl != nil {
			out[k] = repl
		}
	}
	return out, nil
}

// appendPath returns path+k without aliasing path's backing array.
func appendPath(path []string, k string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = k
	return out
}
