package production

import (
	"testing"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, planned string) *Order {
	t.Helper()
	order, err := NewOrder("MO-0001", uuid.New(), uuid.New(), bom.TypeKitting, d(planned), uuid.New(), uuid.New(), "planner")
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		order := newTestOrder(t, "2")
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.True(t, order.ProducedQty.IsZero())
		assert.Equal(t, 1, order.Version)
		assert.Equal(t, "planner", order.CreatedBy)
	})

	t.Run("validates input", func(t *testing.T) {
		cases := map[string]func() (*Order, error){
			"empty number": func() (*Order, error) {
				return NewOrder("", uuid.New(), uuid.New(), bom.TypeKitting, d("1"), uuid.New(), uuid.New(), "a")
			},
			"zero planned": func() (*Order, error) {
				return NewOrder("MO", uuid.New(), uuid.New(), bom.TypeKitting, decimal.Zero, uuid.New(), uuid.New(), "a")
			},
			"bad bom type": func() (*Order, error) {
				return NewOrder("MO", uuid.New(), uuid.New(), bom.Type("X"), d("1"), uuid.New(), uuid.New(), "a")
			},
			"missing warehouse": func() (*Order, error) {
				return NewOrder("MO", uuid.New(), uuid.New(), bom.TypeKitting, d("1"), uuid.Nil, uuid.New(), "a")
			},
		}
		for name, fn := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := fn()
				assert.ErrorIs(t, err, shared.ErrValidation)
			})
		}
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	order := newTestOrder(t, "10")

	require.NoError(t, order.Confirm("lead"))
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	assert.Equal(t, 2, order.Version)
	assert.ErrorIs(t, order.Confirm("lead"), shared.ErrInvalidState)

	require.NoError(t, order.StartProduction("op"))
	assert.Equal(t, OrderStatusInProgress, order.Status)
	require.NoError(t, order.StartProduction("op"), "starting twice is a no-op")
	assert.Equal(t, 3, order.Version)

	require.NoError(t, order.RecordProduction(d("6"), DefaultOverProductionTolerance, "op"))
	assert.Equal(t, OrderStatusInProgress, order.Status)
	require.NoError(t, order.RecordProduction(d("4"), DefaultOverProductionTolerance, "op"))
	assert.Equal(t, OrderStatusCompleted, order.Status)

	assert.ErrorIs(t, order.StartProduction("op"), shared.ErrInvalidState)
	assert.ErrorIs(t, order.Cancel("op", false), shared.ErrInvalidState)
}

func TestOrder_StartProductionFromDraft(t *testing.T) {
	order := newTestOrder(t, "1")
	require.NoError(t, order.StartProduction("op"))
	assert.Equal(t, OrderStatusInProgress, order.Status)
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("rejected while material is issued", func(t *testing.T) {
		order := newTestOrder(t, "1")
		assert.ErrorIs(t, order.Cancel("op", true), shared.ErrInvalidState)
		assert.Equal(t, OrderStatusDraft, order.Status)
	})

	t.Run("allowed before completion", func(t *testing.T) {
		order := newTestOrder(t, "1")
		require.NoError(t, order.StartProduction("op"))
		require.NoError(t, order.Cancel("op", false))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.False(t, order.CanIssue())
		assert.False(t, order.CanReturn())
	})
}

func TestOrder_RecordProductionTolerance(t *testing.T) {
	order := newTestOrder(t, "100")
	require.NoError(t, order.StartProduction("op"))

	err := order.RecordProduction(d("110.0001"), DefaultOverProductionTolerance, "op")
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.True(t, order.ProducedQty.IsZero())

	require.NoError(t, order.RecordProduction(d("60"), DefaultOverProductionTolerance, "op"))
	err = order.RecordProduction(d("50.5"), DefaultOverProductionTolerance, "op")
	assert.ErrorIs(t, err, shared.ErrValidation, "tolerance applies to cumulative quantity")

	require.NoError(t, order.RecordProduction(d("50"), DefaultOverProductionTolerance, "op"))
	assert.Equal(t, OrderStatusCompleted, order.Status)
	assertDecEqual(t, "110", order.ProducedQty)
}

func TestOrder_RecordProductionRequiresInProgress(t *testing.T) {
	order := newTestOrder(t, "1")
	assert.ErrorIs(t, order.RecordProduction(d("1"), DefaultOverProductionTolerance, "op"), shared.ErrInvalidState)
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusInProgress.IsValid())
	assert.False(t, OrderStatus("PAUSED").IsValid())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
}
