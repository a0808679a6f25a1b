package checks

import (
	"fmt"
	"math"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// Tolerance is the relative difference between two drawings' declared
// dimensions above which they are reported as contradicting.
const Tolerance = 0.02

var requiredPlans = []struct {
	discipline model.Discipline
	mandatory  bool
}{
	{model.DisciplineArchitectural, true},
	{model.DisciplineStructural, true},
	{model.DisciplineElectrical, true},
	{model.DisciplinePlumbing, true},
	{model.DisciplineHVAC, false},
}

func completeness(bps []model.Blueprint) []model.Warning {
	have := map[model.Discipline]bool{}
	for _, bp := range bps {
		have[discipline(bp)] = true
	}

	var out []model.Warning
	for _, req := range requiredPlans {
		if have[req.discipline] {
			continue
		}
		msg := fmt.Sprintf("%s plan is missing", req.discipline)
		rec := fmt.Sprintf("request the %s plan from the designer", req.discipline)
		if req.mandatory {
			out = append(out, warn(model.SeverityCritical, model.CodeMissingPlan, locDrawingSet,
				msg, "construction cannot start without this plan", rec))
			continue
		}
		out = append(out, warn(model.SeverityWarning, model.CodeMissingPlan, locDrawingSet,
			msg, "delays are possible later in the process", rec+" before detailed design"))
	}
	return out
}

// consistency compares the overall dimensions declared by the first
// architectural drawing with every other discipline's drawing.
func consistency(bps []model.Blueprint) []model.Warning {
	ref, ok := reference(bps)
	if !ok {
		return nil
	}

	var out []model.Warning
	for _, bp := range bps {
		if discipline(bp) == model.DisciplineArchitectural {
			continue
		}
		for _, dim := range []struct {
			name     string
			ref, got float64
		}{
			{"width", ref.Width, bp.Width},
			{"length", ref.Length, bp.Length},
			{"height", ref.Height, bp.Height},
		} {
			if !contradicts(dim.ref, dim.got) {
				continue
			}
			sev := model.SeverityHigh
			if discipline(bp) == model.DisciplineStructural {
				sev = model.SeverityCritical
			}
			w := warn(sev, model.CodePlanContradiction, locDrawingSet,
				fmt.Sprintf("%s differs between %s (%.2f m) and %s (%.2f m)",
					dim.name, ref.DisplayName(), dim.ref, bp.DisplayName(), dim.got),
				"work cannot proceed until the drawings agree",
				fmt.Sprintf("ask the architect and the %s designer to reconcile the drawings", discipline(bp)))
			w.Document = bp.DisplayName()
			out = append(out, w)
		}
	}
	return out
}

func reference(bps []model.Blueprint) (model.Blueprint, bool) {
	for _, bp := range bps {
		if discipline(bp) != model.DisciplineArchitectural {
			continue
		}
		if bp.Width != 0 || bp.Length != 0 || bp.Height != 0 {
			return bp, true
		}
	}
	return model.Blueprint{}, false
}

// contradicts reports whether two declared values differ beyond Tolerance.
// An undeclared value never contradicts.
func contradicts(ref, got float64) bool {
	if ref == 0 || got == 0 {
		return false
	}
	return math.Abs(ref-got)/math.Abs(ref) > Tolerance
}
