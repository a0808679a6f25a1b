// Package takeoff turns recognized building elements into a tree of
// purchasable material quantities.
package takeoff

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/quantity"
	"github.com/sells-group/takeoff-cli/internal/tree"
)

// sourcePlaces bounds the precision kept for the source metric.
const sourcePlaces = 3

// Build computes the quantity tree for one drawing. Leaves with a zero
// metric are omitted so an absent key means no work of that type. Every
// level of the result carries a recomputed total.
func Build(elements model.ElementSet, rules quantity.RuleSet) (tree.Tree, error) {
	out := tree.Tree{}
	emitted := 0

	for _, it := range items {
		metric := it.metric(elements)
		path := model.SplitPath(it.path)
		if metric == 0 {
			continue
		}

		rule, ok := rules.Lookup(it.path)
		if !ok {
			return nil, eris.Errorf("takeoff: no waste rule for %s", it.path)
		}

		if err := rule.Validate(); err != nil {
			return nil, eris.Wrapf(err, "takeoff: rule %s", it.path)
		}

		qty, err := quantity.Convert(metric, rule)
		if err != nil {
			return nil, model.NewPathError(model.ErrInvalidMeasurement, path, fmt.Sprintf("metric %v", metric))
		}

		insert(out, path, tree.Measured{
			Quantity:     decimal.NewFromFloat(qty),
			Unit:         rule.Unit,
			SourceMetric: decimal.NewFromFloat(metric).Round(sourcePlaces),
			Notes:        it.notes,
		})
		emitted++
	}

	zap.L().Debug("takeoff: built quantity tree",
		zap.Int("leaves", emitted),
		zap.Strings("categories", out.Keys()),
	)
	return tree.WithTotals(out), nil
}

// insert places leaf at path, creating intermediate subtrees.
func insert(t tree.Tree, path []string, leaf tree.Node) {
	cur := t
	for _, k := range path[:len(path)-1] {
		sub, ok := cur[k].(tree.Tree)
		if !ok {
			sub = tree.Tree{}
			cur[k] = sub
		}
		cur = sub
	}
	cur[path[len(path)-1]] = leaf
}
