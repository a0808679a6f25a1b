package pricing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/tree"
)

// Price maps every measured leaf of qty to a priced line using the unit
// prices in prices. A missing price does not drop the leaf: it is priced
// at zero and reported as a warning. Totals are recomputed on the result.
func Price(qty tree.Tree, prices PriceTable) (tree.Tree, []model.Warning) {
	return price(qty, prices, "unit price")
}

// PriceLabor prices qty against a labor-rate table keyed by the same paths.
func PriceLabor(qty tree.Tree, rates PriceTable) (tree.Tree, []model.Warning) {
	return price(qty, rates, "labor rate")
}

func price(qty tree.Tree, prices PriceTable, label string) (tree.Tree, []model.Warning) {
	var warnings []model.Warning

	// The mapping function never fails.
	priced, _ := tree.MapLeaves(qty, func(path []string, n tree.Node) (tree.Node, error) {
		m, ok := n.(tree.Measured)
		if !ok {
			return n, nil
		}

		key := model.JoinPath(path)
		unitPrice, found := prices.Lookup(key)
		if !found {
			zap.L().Warn("pricing: missing "+label,
				zap.String("path", key),
				zap.String("quantity", m.Quantity.String()),
			)
			warnings = append(warnings, model.Warning{
				Severity:       model.SeverityWarning,
				Code:           model.CodeMissingPrice,
				Message:        fmt.Sprintf("no %s for %s; priced at 0", label, key),
				Impact:         "estimate is underpriced by this line",
				Recommendation: fmt.Sprintf("add %s to the price table", key),
				Path:           key,
			})
		}

		return tree.PricedLine{
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			UnitPrice: unitPrice,
			Price:     m.Quantity.Mul(unitPrice),
			Notes:     m.Notes,
		}, nil
	})

	return priced, warnings
}
