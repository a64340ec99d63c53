package production_test

import (
	"context"
	"testing"

	appprod "github.com/erp/mes/internal/application/production"
	"github.com/erp/mes/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestService_Telemetry(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := telemetry.NewProductionMetrics(mp.Meter("test"))
	require.NoError(t, err)

	f := newFixture(t)
	f.svc.SetMetrics(metrics)
	ctx := context.Background()

	order, resp := f.issued(t)
	// nothing left to issue
	_, err = f.svc.IssueMaterials(ctx, order.ID, appprod.IssueMaterialsRequest{}, "operator")
	require.Error(t, err)
	_, err = f.svc.ReturnMaterial(ctx, appprod.ReturnMaterialRequest{
		IssueDetailID: resp.Results[0].Details[1].ID,
		Quantity:      decimal.NewFromInt(10),
		Condition:     "GOOD",
	}, "operator")
	require.NoError(t, err)

	spans := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range sr.Ended() {
		spans[s.Name()] = s
	}
	for _, name := range []string{
		"production.receive_stock",
		"production.create_order",
		"production.issue_materials",
		"production.return_material",
	} {
		assert.Contains(t, spans, name)
	}
	// the last issue span is the failed one
	assert.Equal(t, codes.Error, spans["production.issue_materials"].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	sums := map[string]float64{}
	issues := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[float64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Sum[int64]:
				if m.Name != "mes.material_issue.total" {
					continue
				}
				for _, dp := range data.DataPoints {
					outcome, _ := dp.Attributes.Value(telemetry.AttrOutcome)
					issues[outcome.AsString()] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, 200.0, sums["mes.material.issued"])
	assert.Equal(t, 10.0, sums["mes.material.returned"])
	assert.Equal(t, int64(1), issues[telemetry.IssueOutcomeFull])
	assert.Equal(t, int64(1), issues[telemetry.IssueOutcomeFailed])
}
