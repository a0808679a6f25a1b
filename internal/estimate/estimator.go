// Package estimate runs the full takeoff pipeline over a drawing set: each
// drawing is recognized, measured and priced independently, then the
// per-drawing trees are combined and summarized into project totals.
package estimate

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/takeoff-cli/internal/checks"
	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/pricing"
	"github.com/sells-group/takeoff-cli/internal/quantity"
	"github.com/sells-group/takeoff-cli/internal/recognize"
	"github.com/sells-group/takeoff-cli/internal/takeoff"
	"github.com/sells-group/takeoff-cli/internal/tree"
)

// ErrNoDocuments is returned by Run for an empty drawing set.
var ErrNoDocuments = eris.New("estimate: no documents")

// Config holds the run-level settings of an Estimator.
type Config struct {
	MaxConcurrentDocuments int
	Currency               string
	ProjectType            string
	ValidityDays           int
	Overhead               pricing.Overhead
	Discount               pricing.Discount
}

// Estimator wires the pipeline stages together. It holds no per-run state
// and is safe for concurrent use.
type Estimator struct {
	recognizer recognize.Recognizer
	rules      quantity.RuleSet
	prices     pricing.PriceTable
	labor      pricing.PriceTable
	summarizer pricing.Summarizer
	cfg        Config

	now      func() time.Time
	progress func(model.RunStatus)
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithClock overrides the time source used for metadata.
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// WithProgress registers a callback invoked as a run changes stage.
func WithProgress(fn func(model.RunStatus)) Option {
	return func(e *Estimator) { e.progress = fn }
}

// New creates an Estimator. An empty labor table disables labor pricing.
func New(
	r recognize.Recognizer,
	rules quantity.RuleSet,
	prices, labor pricing.PriceTable,
	summarizer pricing.Summarizer,
	cfg Config,
	opts ...Option,
) *Estimator {
	if cfg.MaxConcurrentDocuments <= 0 {
		cfg.MaxConcurrentDocuments = 4
	}
	e := &Estimator{
		recognizer: r,
		rules:      rules,
		prices:     prices,
		labor:      labor,
		summarizer: summarizer,
		cfg:        cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DocumentResult is the pipeline output for one drawing.
type DocumentResult struct {
	Document   string           `json:"document"`
	Elements   model.ElementSet `json:"elements"`
	Quantities tree.Tree        `json:"quantities"`
	Materials  tree.Tree        `json:"materials"`
	Labor      tree.Tree        `json:"labor"`
	Warnings   []model.Warning  `json:"warnings"`
}

// Document runs recognition, takeoff, pricing and per-drawing checks for
// a single drawing.
func (e *Estimator) Document(ctx context.Context, bp model.Blueprint) (*DocumentResult, error) {
	name := bp.DisplayName()
	log := zap.L().With(zap.String("document", name))

	elements, err := e.recognizer.Recognize(ctx, bp)
	if err != nil {
		return nil, eris.Wrapf(err, "estimate: recognize %s", name)
	}

	qty, err := takeoff.Build(elements, e.rules)
	if err != nil {
		return nil, eris.Wrapf(err, "estimate: takeoff %s", name)
	}

	materials, warnings := pricing.Price(qty, e.prices)

	labor := tree.WithTotals(tree.Tree{})
	if len(e.labor) > 0 {
		var laborWarnings []model.Warning
		labor, laborWarnings = pricing.PriceLabor(qty, e.labor)
		warnings = append(warnings, laborWarnings...)
	}

	warnings = append(warnings, checks.Document(bp, elements)...)
	for i := range warnings {
		warnings[i].Document = name
	}

	log.Debug("estimate: document priced",
		zap.String("materials", tree.Rollup(materials).String()),
		zap.String("labor", tree.Rollup(labor).String()),
		zap.Int("warnings", len(warnings)),
	)

	return &DocumentResult{
		Document:   name,
		Elements:   elements,
		Quantities: qty,
		Materials:  materials,
		Labor:      labor,
		Warnings:   warnings,
	}, nil
}

// Run estimates a whole drawing set. Drawings are processed in parallel;
// a structural error in any drawing or in the merge fails the run and no
// totals are produced.
func (e *Estimator) Run(ctx context.Context, bps []model.Blueprint) (*Estimate, error) {
	if len(bps) == 0 {
		return nil, ErrNoDocuments
	}

	e.report(model.RunStatusAnalyzing)
	results := make([]*DocumentResult, len(bps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrentDocuments)
	for i, bp := range bps {
		g.Go(func() error {
			res, err := e.Document(gctx, bp)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.report(model.RunStatusCombining)
	est, err := combine(results)
	if err != nil {
		return nil, err
	}
	est.Warnings = append(est.Warnings, checks.Set(bps)...)
	checks.Sort(est.Warnings)

	e.report(model.RunStatusSummarizing)
	materials := tree.Rollup(est.Materials)
	labor := tree.Rollup(est.Labor)
	est.Totals = e.summarizer.Summarize(
		materials,
		labor,
		e.cfg.Overhead.Apply(materials, labor),
		e.cfg.Discount.Apply(materials, labor),
	)

	now := e.now().UTC()
	est.Metadata = Metadata{
		GeneratedAt: now,
		ValidUntil:  now.AddDate(0, 0, e.cfg.ValidityDays),
		Currency:    e.cfg.Currency,
		ProjectType: e.cfg.ProjectType,
		Documents:   make([]string, len(results)),
	}
	for i, r := range results {
		est.Metadata.Documents[i] = r.Document
	}

	zap.L().Info("estimate: run complete",
		zap.Int("documents", len(bps)),
		zap.String("final_price", est.Totals.FinalPrice.String()),
		zap.Int("warnings", len(est.Warnings)),
	)
	return est, nil
}

func combine(results []*DocumentResult) (*Estimate, error) {
	qtys := make([]tree.Tree, len(results))
	mats := make([]tree.Tree, len(results))
	labs := make([]tree.Tree, len(results))
	var warnings []model.Warning
	for i, r := range results {
		qtys[i], mats[i], labs[i] = r.Quantities, r.Materials, r.Labor
		warnings = append(warnings, r.Warnings...)
	}

	qty, err := tree.Combine(qtys...)
	if err != nil {
		return nil, eris.Wrap(err, "estimate: combine quantities")
	}
	materials, err := tree.Combine(mats...)
	if err != nil {
		return nil, eris.Wrap(err, "estimate: combine materials")
	}
	labor, err := tree.Combine(labs...)
	if err != nil {
		return nil, eris.Wrap(err, "estimate: combine labor")
	}

	return &Estimate{
		Documents:  results,
		Quantities: qty,
		Materials:  materials,
		Labor:      labor,
		Warnings:   warnings,
	}, nil
}

func (e *Estimator) report(s model.RunStatus) {
	if e.progress != nil {
		e.progress(s)
	}
}
