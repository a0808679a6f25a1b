package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/takeoff-cli/internal/config"
	"github.com/sells-group/takeoff-cli/internal/estimate"
	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/pricing"
	"github.com/sells-group/takeoff-cli/internal/quantity"
	"github.com/sells-group/takeoff-cli/internal/recognize"
	"github.com/sells-group/takeoff-cli/internal/store"
)

// estimatorEnv holds the loaded tables and collaborators shared by the
// estimate and serve commands. Estimators are cheap to build from it.
type estimatorEnv struct {
	Recognizer recognize.Recognizer
	Rules      quantity.RuleSet
	Prices     pricing.PriceTable
	Labor      pricing.PriceTable
	Summarizer pricing.Summarizer
	Config     estimate.Config
}

// initEstimator loads rules and price tables named in the config.
func initEstimator(c *config.Config) (*estimatorEnv, error) {
	rules := quantity.DefaultRules()
	if c.Estimate.RulesFile != "" {
		r, err := quantity.LoadRules(c.Estimate.RulesFile)
		if err != nil {
			return nil, err
		}
		rules = r
	}

	prices, err := loadTable(c.Estimate.PricesFile)
	if err != nil {
		return nil, eris.Wrap(err, "load prices")
	}
	if len(prices) == 0 {
		zap.L().Warn("no price table configured; every line will be priced at 0")
	}

	labor, err := loadTable(c.Estimate.LaborFile)
	if err != nil {
		return nil, eris.Wrap(err, "load labor rates")
	}

	return &estimatorEnv{
		Recognizer: recognize.NewHeuristic(recognize.DefaultAssumptions()),
		Rules:      rules,
		Prices:     prices,
		Labor:      labor,
		Summarizer: summarizerFromConfig(c),
		Config: estimate.Config{
			MaxConcurrentDocuments: c.Estimate.MaxConcurrentDocuments,
			Currency:               c.Estimate.Currency,
			ProjectType:            c.Estimate.ProjectType,
			ValidityDays:           c.Estimate.ValidityDays,
			Overhead: pricing.Overhead{
				Percent: decimal.NewFromFloat(c.Overhead.Percent),
				Fixed:   decimal.NewFromFloat(c.Overhead.Fixed),
			},
			Discount: pricing.Discount{
				Percent: decimal.NewFromFloat(c.Discount.Percent),
				Fixed:   decimal.NewFromFloat(c.Discount.Fixed),
			},
		},
	}, nil
}

// Estimator builds an Estimator over the loaded tables.
func (env *estimatorEnv) Estimator(opts ...estimate.Option) *estimate.Estimator {
	return estimate.New(env.Recognizer, env.Rules, env.Prices, env.Labor, env.Summarizer, env.Config, opts...)
}

// loadTable reads a price table by extension. An empty path yields an
// empty table.
func loadTable(path string) (pricing.PriceTable, error) {
	switch {
	case path == "":
		return pricing.PriceTable{}, nil
	case hasExt(path, ".xlsx"):
		return pricing.ReadPriceTableXLSX(path)
	default:
		return pricing.LoadPriceTable(path)
	}
}

func summarizerFromConfig(c *config.Config) pricing.Summarizer {
	s := pricing.Summarizer{RoundTo: decimal.NewFromFloat(c.Estimate.RoundTo)}
	for _, r := range c.Tax.Rates {
		s.Taxes = append(s.Taxes, pricing.TaxRule{Name: r.Name, Rate: decimal.NewFromFloat(r.Rate)})
	}
	return s
}

// runEstimate runs the estimator over bps. With a store, the run is
// recorded and its status tracks the pipeline stages.
func runEstimate(ctx context.Context, env *estimatorEnv, st store.Store, bps []model.Blueprint) (*estimate.Estimate, string, error) {
	if st == nil {
		est, err := env.Estimator().Run(ctx, bps)
		return est, "", err
	}

	names := make([]string, len(bps))
	for i, bp := range bps {
		names[i] = bp.DisplayName()
	}
	run, err := st.CreateRun(ctx, names)
	if err != nil {
		return nil, "", eris.Wrap(err, "create run")
	}
	log := zap.L().With(zap.String("run_id", run.ID))

	progress := func(s model.RunStatus) {
		if err := st.UpdateRunStatus(ctx, run.ID, s); err != nil {
			log.Warn("update run status", zap.String("status", string(s)), zap.Error(err))
		}
	}

	est, err := env.Estimator(estimate.WithProgress(progress)).Run(ctx, bps)
	if err != nil {
		if ferr := st.FailRun(ctx, run.ID, err.Error()); ferr != nil {
			log.Error("record failed run", zap.Error(ferr))
		}
		return nil, run.ID, err
	}

	result := est.Result()
	if err := st.CompleteRun(ctx, run.ID, &result, est.Lines()); err != nil {
		return est, run.ID, eris.Wrap(err, "save run")
	}
	log.Info("run saved", zap.Int("lines", result.LineCount))
	return est, run.ID, nil
}
