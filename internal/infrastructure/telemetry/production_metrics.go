package telemetry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	AttrOutcome   = attribute.Key("outcome")
	AttrSource    = attribute.Key("source")
	AttrCondition = attribute.Key("condition")
	AttrQuality   = attribute.Key("quality_status")
	AttrOperation = attribute.Key("operation")
	AttrErrorCode = attribute.Key("error_code")
)

// Issue outcomes
const (
	IssueOutcomeFull    = "full"
	IssueOutcomePartial = "partial"
	IssueOutcomeFailed  = "failed"
)

// IssueOutcome summarises one issue operation across all requirements
type IssueOutcome struct {
	PrimaryQty       decimal.Decimal
	AlternativeQty   decimal.Decimal
	ShortfallQty     decimal.Decimal
	Substitutions    int
	ConflictsSkipped int
	Partial          bool
}

// ProductionMetrics records material flow and order completion counters.
// A nil *ProductionMetrics is valid and records nothing.
type ProductionMetrics struct {
	issues        *Counter
	issuedQty     *QuantityCounter
	shortfallQty  *QuantityCounter
	substitutions *Counter
	conflicts     *Counter
	returns       *Counter
	returnedQty   *QuantityCounter
	completions   *Counter
	producedQty   *QuantityCounter
	duration      *Histogram
}

// NewProductionMetrics registers the production instruments on meter
func NewProductionMetrics(meter metric.Meter) (*ProductionMetrics, error) {
	var (
		m   ProductionMetrics
		err error
	)
	if m.issues, err = NewCounter(meter, "mes.material_issue.total",
		"Material issue operations by outcome", "{operation}"); err != nil {
		return nil, err
	}
	if m.issuedQty, err = NewQuantityCounter(meter, "mes.material.issued",
		"Quantity issued to production orders, in requirement units"); err != nil {
		return nil, err
	}
	if m.shortfallQty, err = NewQuantityCounter(meter, "mes.material.shortfall",
		"Requested quantity that could not be allocated"); err != nil {
		return nil, err
	}
	if m.substitutions, err = NewCounter(meter, "mes.material.substitutions",
		"Alternative materials consumed in place of the primary", "{substitution}"); err != nil {
		return nil, err
	}
	if m.conflicts, err = NewCounter(meter, "mes.ledger.conflicts_skipped",
		"Lots skipped because a concurrent issue decremented them first", "{lot}"); err != nil {
		return nil, err
	}
	if m.returns, err = NewCounter(meter, "mes.material_return.total",
		"Material returns by condition", "{return}"); err != nil {
		return nil, err
	}
	if m.returnedQty, err = NewQuantityCounter(meter, "mes.material.returned",
		"Quantity returned from production, in material units"); err != nil {
		return nil, err
	}
	if m.completions, err = NewCounter(meter, "mes.production_completion.total",
		"Production completions by quality status", "{completion}"); err != nil {
		return nil, err
	}
	if m.producedQty, err = NewQuantityCounter(meter, "mes.production.produced",
		"Finished quantity reported"); err != nil {
		return nil, err
	}
	if m.duration, err = NewHistogram(meter, HistogramOpts{
		Name:        "mes.production.operation.duration",
		Description: "Duration of production service operations",
		Unit:        "s",
		Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordIssue records a committed issue operation
func (m *ProductionMetrics) RecordIssue(ctx context.Context, outcome IssueOutcome) {
	if m == nil {
		return
	}
	result := IssueOutcomeFull
	if outcome.Partial {
		result = IssueOutcomePartial
	}
	m.issues.Inc(ctx, AttrOutcome.String(result))
	m.issuedQty.Add(ctx, outcome.PrimaryQty.InexactFloat64(), AttrSource.String("primary"))
	m.issuedQty.Add(ctx, outcome.AlternativeQty.InexactFloat64(), AttrSource.String("alternative"))
	m.shortfallQty.Add(ctx, outcome.ShortfallQty.InexactFloat64())
	if outcome.Substitutions > 0 {
		m.substitutions.Add(ctx, int64(outcome.Substitutions))
	}
	if outcome.ConflictsSkipped > 0 {
		m.conflicts.Add(ctx, int64(outcome.ConflictsSkipped))
	}
}

// RecordIssueFailure records an issue operation that was rolled back
func (m *ProductionMetrics) RecordIssueFailure(ctx context.Context, errorCode string) {
	if m == nil {
		return
	}
	m.issues.Inc(ctx, AttrOutcome.String(IssueOutcomeFailed), AttrErrorCode.String(errorCode))
}

// RecordReturn records one committed return
func (m *ProductionMetrics) RecordReturn(ctx context.Context, condition string, quantity decimal.Decimal) {
	if m == nil {
		return
	}
	m.returns.Inc(ctx, AttrCondition.String(condition))
	m.returnedQty.Add(ctx, quantity.InexactFloat64(), AttrCondition.String(condition))
}

// RecordCompletion records one committed production receipt
func (m *ProductionMetrics) RecordCompletion(ctx context.Context, quality string, produced decimal.Decimal) {
	if m == nil {
		return
	}
	m.completions.Inc(ctx, AttrQuality.String(quality))
	m.producedQty.Add(ctx, produced.InexactFloat64(), AttrQuality.String(quality))
}

// RecordDuration records how long a service operation took
func (m *ProductionMetrics) RecordDuration(ctx context.Context, operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.RecordDuration(ctx, d, AttrOperation.String(operation))
}
