package production

import (
	"testing"

	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedOrder(t *testing.T, planned string) *Order {
	t.Helper()
	order := newTestOrder(t, planned)
	require.NoError(t, order.StartProduction("op"))
	return order
}

func TestCompletionService_Passed(t *testing.T) {
	order := startedOrder(t, "10")
	derived := date(2025, 1, 31)
	group := uuid.New()

	out, err := NewCompletionService(DefaultOverProductionTolerance).Complete(order, CompletionRequest{
		ProducedQty:        d("10"),
		BatchNumber:        " FG-001 ",
		QualityStatus:      QualityStatusPassed,
		TransactionGroupID: group,
		Actor:              "op",
	}, derived)
	require.NoError(t, err)

	assert.Equal(t, OrderStatusCompleted, order.Status)
	assert.Equal(t, "FG-001", out.Receipt.BatchNumber)
	assert.Equal(t, derived, out.Receipt.ExpiryDate)
	require.NotNil(t, out.Lot)
	assert.Equal(t, order.ProductID, out.Lot.ProductID)
	assert.Equal(t, order.TargetWarehouseID, out.Lot.WarehouseID)
	assert.Equal(t, inventory.EntryTypeProductionReceipt, out.Lot.EntryType)
	assert.Equal(t, group, out.Lot.TransactionGroupID)
	assertDecEqual(t, "10", out.Lot.Remaining)
	assert.Equal(t, out.Lot.ID, *out.Receipt.LedgerEntryID)
}

func TestCompletionService_CallerExpiryWins(t *testing.T) {
	order := startedOrder(t, "10")
	explicit := date(2026, 1, 1)

	out, err := NewCompletionService(decimal.Zero).Complete(order, CompletionRequest{
		ProducedQty:   d("3"),
		BatchNumber:   "FG",
		QualityStatus: QualityStatusPassed,
		ExpiryDate:    explicit,
	}, date(2025, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, explicit, out.Receipt.ExpiryDate)
	assert.Equal(t, OrderStatusInProgress, order.Status)
}

func TestCompletionService_PendingQualityPostsNoStock(t *testing.T) {
	for _, q := range []QualityStatus{QualityStatusPending, QualityStatusFailed} {
		t.Run(q.String(), func(t *testing.T) {
			order := startedOrder(t, "5")
			out, err := NewCompletionService(DefaultOverProductionTolerance).Complete(order, CompletionRequest{
				ProducedQty:   d("5"),
				BatchNumber:   "FG",
				QualityStatus: q,
			}, nil)
			require.NoError(t, err)
			assert.Nil(t, out.Lot)
			assert.Nil(t, out.Receipt.LedgerEntryID)
			assertDecEqual(t, "5", order.ProducedQty)
		})
	}
}

func TestCompletionService_Validation(t *testing.T) {
	svc := NewCompletionService(DefaultOverProductionTolerance)

	t.Run("empty batch", func(t *testing.T) {
		_, err := svc.Complete(startedOrder(t, "1"), CompletionRequest{ProducedQty: d("1"), BatchNumber: "  ", QualityStatus: QualityStatusPassed}, nil)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := svc.Complete(startedOrder(t, "1"), CompletionRequest{ProducedQty: decimal.Zero, BatchNumber: "B", QualityStatus: QualityStatusPassed}, nil)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("over tolerance", func(t *testing.T) {
		_, err := svc.Complete(startedOrder(t, "10"), CompletionRequest{ProducedQty: d("11.01"), BatchNumber: "B", QualityStatus: QualityStatusPassed}, nil)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("invalid quality", func(t *testing.T) {
		_, err := svc.Complete(startedOrder(t, "1"), CompletionRequest{ProducedQty: d("1"), BatchNumber: "B", QualityStatus: "OK"}, nil)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("order not in progress", func(t *testing.T) {
		_, err := svc.Complete(newTestOrder(t, "1"), CompletionRequest{ProducedQty: d("1"), BatchNumber: "B", QualityStatus: QualityStatusPassed}, nil)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestNewCompletionService_DefaultTolerance(t *testing.T) {
	assertDecEqual(t, "1.1", NewCompletionService(decimal.Zero).Tolerance())
	assertDecEqual(t, "1.25", NewCompletionService(d("1.25")).Tolerance())
}
