package store

import (
	"context"

	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/resilience"
)

// RetryingStore retries transient failures of the wrapped Store. Lookups
// that report ErrNotFound are never retried.
type RetryingStore struct {
	Store
	cfg resilience.RetryConfig
}

// WithRetry wraps st so every operation retries under cfg.
func WithRetry(st Store, cfg resilience.RetryConfig) *RetryingStore {
	return &RetryingStore{Store: st, cfg: cfg}
}

func (r *RetryingStore) config(op string) resilience.RetryConfig {
	cfg := r.cfg
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(op)
	}
	return cfg
}

func (r *RetryingStore) CreateRun(ctx context.Context, documents []string) (*model.Run, error) {
	return resilience.DoVal(ctx, r.config("create_run"), func(ctx context.Context) (*model.Run, error) {
		return r.Store.CreateRun(ctx, documents)
	})
}

func (r *RetryingStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	return resilience.Do(ctx, r.config("update_run_status"), func(ctx context.Context) error {
		return r.Store.UpdateRunStatus(ctx, runID, status)
	})
}

func (r *RetryingStore) CompleteRun(ctx context.Context, runID string, result *model.RunResult, lines []model.LineItem) error {
	return resilience.Do(ctx, r.config("complete_run"), func(ctx context.Context) error {
		return r.Store.CompleteRun(ctx, runID, result, lines)
	})
}

func (r *RetryingStore) FailRun(ctx context.Context, runID string, msg string) error {
	return resilience.Do(ctx, r.config("fail_run"), func(ctx context.Context) error {
		return r.Store.FailRun(ctx, runID, msg)
	})
}

func (r *RetryingStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	return resilience.DoVal(ctx, r.config("get_run"), func(ctx context.Context) (*model.Run, error) {
		return r.Store.GetRun(ctx, runID)
	})
}

func (r *RetryingStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	return resilience.DoVal(ctx, r.config("list_runs"), func(ctx context.Context) ([]model.Run, error) {
		return r.Store.ListRuns(ctx, filter)
	})
}

func (r *RetryingStore) ListLines(ctx context.Context, runID string) ([]model.LineItem, error) {
	return resilience.DoVal(ctx, r.config("list_lines"), func(ctx context.Context) ([]model.LineItem, error) {
		return r.Store.ListLines(ctx, runID)
	})
}
