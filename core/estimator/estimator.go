// Package estimator runs estimation passes over declared resources.
// The CLI and HTTP front ends are thin wrappers around it.
package estimator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/ledger"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/rules"
)

const (
	// HoursPerMonth is a fixed 31-day billing month
	HoursPerMonth = 24 * 31

	// Currency of every price in the catalog
	Currency = "RUB"
)

// changeThreshold is the smallest hourly delta reported as a change
var changeThreshold = decimal.New(1, -2)

// Estimator prices resource lists against a rate catalog.
// It holds no per-pass state and may be shared between goroutines.
type Estimator struct {
	prices   ledger.PriceSource
	registry *rules.Registry
	presets  rules.PresetResolver
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time

	// idMu serializes newID; Compare runs two passes at once
	idMu sync.Mutex
}

// Option configures an Estimator
type Option func(*Estimator)

// WithPresets sets the preset catalog used by managed database rules
func WithPresets(p rules.PresetResolver) Option {
	return func(e *Estimator) { e.presets = p }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Estimator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIDGenerator replaces the estimate id generator
func WithIDGenerator(fn func() string) Option {
	return func(e *Estimator) { e.newID = fn }
}

// WithClock replaces the clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// New creates an estimator
func New(prices ledger.PriceSource, registry *rules.Registry, opts ...Option) *Estimator {
	e := &Estimator{
		prices:   prices,
		registry: registry,
		logger:   zap.NewNop(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate runs one pass over resources. Unmatched resource types are
// skipped and resources whose rule fails contribute nothing; neither aborts
// the pass. The only error is cancellation of ctx.
func (e *Estimator) Estimate(ctx context.Context, resources []plan.Resource, detailed bool) (*Summary, error) {
	start := e.now()
	s := &Summary{
		ID:       e.id(),
		Currency: Currency,
	}

	l := ledger.New(e.prices)
	env := &rules.Env{
		Presets:   e.presets,
		Logger:    e.logger,
		OnWarning: func(w rules.Warning) { s.Warnings = append(s.Warnings, w) },
	}

	for _, res := range resources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rule, ok := e.registry.FindRule(res.Type)
		if !ok {
			e.logger.Info("resource type ignored",
				zap.String("resource", res.Address),
				zap.String("resource_type", res.Type))
			s.Skipped = append(s.Skipped, res.Address)
			continue
		}

		if err := rule.Apply(res, l, env); err != nil {
			e.logger.Error("resource not estimated",
				zap.String("resource", res.Address),
				zap.String("rule", rule.Name()),
				zap.Error(err))
			s.Failed = append(s.Failed, Failure{
				Resource:     res.Address,
				ResourceType: res.Type,
				Error:        err.Error(),
			})
			continue
		}
		e.logger.Debug("resource estimated", zap.String("resource", res.Address))
	}

	s.Totals = totalsOf(l.TotalCost())
	if detailed {
		s.Usage = l.Aggregate()
		if s.Usage == nil {
			s.Usage = []ledger.Row{}
		}
	}
	s.EstimatedAt = start.UTC()
	s.Duration = e.now().Sub(start)
	return s, nil
}

// Compare estimates the prior and planned resource lists as two
// independent passes and reports the difference.
func (e *Estimator) Compare(ctx context.Context, prior, planned []plan.Resource, detailed bool) (*Comparison, error) {
	var current, next *Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := e.Estimate(gctx, prior, detailed)
		current = s
		return err
	})
	g.Go(func() error {
		s, err := e.Estimate(gctx, planned, detailed)
		next = s
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Comparison{
		ID:         e.id(),
		Current:    current,
		Planned:    next,
		Difference: difference(current.Totals, next.Totals),
		Currency:   Currency,
		HasChanges: next.Hourly.Sub(current.Hourly).Abs().GreaterThan(changeThreshold),
	}, nil
}

// EstimatePlan estimates a plan document. Plans with a prior state are
// compared against it; others get a single summary of the planned values.
func (e *Estimator) EstimatePlan(ctx context.Context, doc *plan.Document, detailed bool) (*Report, error) {
	if doc.HasPrior() {
		c, err := e.Compare(ctx, doc.Prior(), doc.Planned(), detailed)
		if err != nil {
			return nil, err
		}
		return &Report{Comparison: c}, nil
	}

	s, err := e.Estimate(ctx, doc.Planned(), detailed)
	if err != nil {
		return nil, err
	}
	return &Report{Summary: s}, nil
}

func (e *Estimator) id() string {
	e.idMu.Lock()
	defer e.idMu.Unlock()
	return e.newID()
}

func totalsOf(hourly decimal.Decimal) Totals {
	return Totals{
		Hourly:  hourly,
		Monthly: hourly.Mul(decimal.NewFromInt(HoursPerMonth)),
	}
}

func difference(before, after Totals) Difference {
	d := Difference{
		Hourly:     after.Hourly.Sub(before.Hourly),
		Monthly:    after.Monthly.Sub(before.Monthly),
		Percentage: decimal.Zero,
	}
	if before.Hourly.IsPositive() {
		d.Percentage = d.Hourly.Div(before.Hourly).Mul(decimal.NewFromInt(100))
	}
	return d
}
