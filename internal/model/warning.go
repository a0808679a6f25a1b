package model

// Severity ranks a planning warning.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityWarning  Severity = "warning"
)

// Rank orders severities from most to least urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// Warning codes.
const (
	CodeMissingPlan       = "missing_plan"
	CodeMissingPlanDetail = "missing_plan_detail"
	CodeMissingDimension  = "missing_dimension"
	CodeMissingDetail     = "missing_detail"
	CodePlanContradiction = "plan_contradiction"
	CodeMissingPrice      = "missing_price"
)

// Warning is a soft finding attached to an estimate. Warnings never abort
// an estimate.
type Warning struct {
	Severity       Severity `json:"severity"`
	Code           string   `json:"code"`
	Message        string   `json:"message"`
	Location       string   `json:"location,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Document       string   `json:"document,omitempty"`
	Path           string   `json:"path,omitempty"`
}
