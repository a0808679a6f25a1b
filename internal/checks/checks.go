// Package checks flags missing or inconsistent planning information.
// Findings are warnings; they never stop an estimate.
package checks

import (
	"sort"

	"github.com/sells-group/takeoff-cli/internal/model"
)

const (
	locArchitectural = "architectural plan"
	locElectrical    = "electrical plan"
	locPlumbing      = "plumbing plan"
	locDrawingSet    = "drawing set"
)

type documentRule func(bp model.Blueprint, es model.ElementSet) []model.Warning

var documentRules = []documentRule{
	electricalPlan,
	plumbingPlan,
	missingDimensions,
	specialDetails,
}

// Document runs every per-drawing rule against bp and its recognized
// elements.
func Document(bp model.Blueprint, es model.ElementSet) []model.Warning {
	var out []model.Warning
	for _, rule := range documentRules {
		for _, w := range rule(bp, es) {
			w.Document = bp.DisplayName()
			out = append(out, w)
		}
	}
	return out
}

// Set runs the rules that need the whole drawing set.
func Set(bps []model.Blueprint) []model.Warning {
	out := completeness(bps)
	return append(out, consistency(bps)...)
}

// Sort orders warnings by severity, most urgent first, keeping the
// original order within a severity.
func Sort(ws []model.Warning) {
	sort.SliceStable(ws, func(i, j int) bool {
		return ws[i].Severity.Rank() < ws[j].Severity.Rank()
	})
}

// discipline treats an undeclared discipline as architectural.
func discipline(bp model.Blueprint) model.Discipline {
	if bp.Discipline == "" {
		return model.DisciplineArchitectural
	}
	return bp.Discipline
}

func warn(sev model.Severity, code, loc, msg, impact, rec string) model.Warning {
	return model.Warning{
		Severity:       sev,
		Code:           code,
		Message:        msg,
		Location:       loc,
		Impact:         impact,
		Recommendation: rec,
	}
}
