package model

import "time"

// RunStatus represents the current state of an estimate run.
type RunStatus string

const (
	RunStatusQueued      RunStatus = "queued"
	RunStatusAnalyzing   RunStatus = "analyzing"
	RunStatusCombining   RunStatus = "combining"
	RunStatusSummarizing RunStatus = "summarizing"
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
)

// Run represents a single persisted estimate run over a drawing set.
type Run struct {
	ID        string     `json:"id"`
	Documents []string   `json:"documents"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult holds the final outcome of a run. Line items are stored
// separately.
type RunResult struct {
	Totals      ProjectTotals `json:"totals"`
	Warnings    []Warning     `json:"warnings"`
	LineCount   int           `json:"line_count"`
	Currency    string        `json:"currency"`
	ProjectType string        `json:"project_type"`
	GeneratedAt time.Time     `json:"generated_at"`
	ValidUntil  time.Time     `json:"valid_until"`
}
