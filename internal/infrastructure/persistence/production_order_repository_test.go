package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/production"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, number string, productID uuid.UUID) *production.Order {
	t.Helper()
	order, err := production.NewOrder(number, productID, uuid.New(), bom.TypeKitting,
		decimal.NewFromInt(10), uuid.New(), uuid.New(), "planner")
	require.NoError(t, err)
	return order
}

func TestProductionOrderRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, "PO-001", uuid.New())
	order.Remark = "rush"
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-001", got.OrderNumber)
	assert.Equal(t, production.OrderStatusDraft, got.Status)
	assert.Equal(t, bom.TypeKitting, got.BOMType)
	assert.True(t, got.PlannedQty.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "rush", got.Remark)

	locked, err := repo.FindByIDForUpdate(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, locked.ID)

	exists, err := repo.ExistsByOrderNumber(ctx, "PO-001")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByOrderNumber(ctx, "PO-404")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestProductionOrderRepository_SaveOptimisticLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, "PO-002", uuid.New())
	require.NoError(t, repo.Create(ctx, order))

	// Two readers of version 1
	first, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, first.Confirm("alice"))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.Confirm("bob"))
	err = repo.Save(ctx, second)
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, production.OrderStatusConfirmed, got.Status)
	assert.Equal(t, "alice", got.UpdatedBy)
	assert.Equal(t, 2, got.Version)
}

func TestProductionOrderRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductionOrderRepository(db)
	ctx := context.Background()

	productA, productB := uuid.New(), uuid.New()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		productID := productA
		if i%2 == 1 {
			productID = productB
		}
		order := newTestOrder(t, fmt.Sprintf("PO-%03d", i), productID)
		order.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if i == 0 {
			require.NoError(t, order.Confirm("planner"))
		}
		require.NoError(t, repo.Create(ctx, order))
	}

	t.Run("pages newest first by default", func(t *testing.T) {
		orders, total, err := repo.FindAll(ctx, production.OrderFilter{Filter: shared.Filter{Page: 1, PageSize: 2}})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, orders, 2)
		assert.Equal(t, "PO-004", orders[0].OrderNumber)
		assert.Equal(t, "PO-003", orders[1].OrderNumber)
	})

	t.Run("filters by status and product", func(t *testing.T) {
		status := production.OrderStatusConfirmed
		orders, total, err := repo.FindAll(ctx, production.OrderFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, "PO-000", orders[0].OrderNumber)

		orders, total, err = repo.FindAll(ctx, production.OrderFilter{ProductID: &productB})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, orders, 2)
	})

	t.Run("searches order number prefix and sorts ascending", func(t *testing.T) {
		orders, _, err := repo.FindAll(ctx, production.OrderFilter{
			Filter: shared.Filter{OrderBy: "order_number", OrderDir: "asc"},
			Search: "PO-00",
		})
		require.NoError(t, err)
		require.Len(t, orders, 5)
		assert.Equal(t, "PO-000", orders[0].OrderNumber)
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		orders, _, err := repo.FindAll(ctx, production.OrderFilter{
			Filter: shared.Filter{OrderBy: "remark; DROP TABLE production_orders"},
		})
		require.NoError(t, err)
		require.Len(t, orders, 5)
		assert.Equal(t, "PO-004", orders[0].OrderNumber)
	})
}

func TestProductionOrderRepository_SaveSQL(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormProductionOrderRepository(db)

	order := newTestOrder(t, "PO-SQL", uuid.New())
	require.NoError(t, order.Confirm("planner"))

	mock.ExpectExec(`UPDATE "production_orders" SET .* WHERE .*id = \$\d+ AND version = \$\d+.* AND "production_orders"."deleted_at" IS NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), order)
	assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceiptRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	lotID := uuid.New()
	receipt := &production.Receipt{
		BaseEntity:         shared.NewBaseEntity(),
		OrderID:            orderID,
		ProductID:          uuid.New(),
		WarehouseID:        uuid.New(),
		BatchNumber:        "FG-1",
		ExpiryDate:         day(2025, 5, 1),
		ProducedQty:        decimal.NewFromInt(8),
		QualityStatus:      production.QualityStatusPassed,
		LedgerEntryID:      &lotID,
		TransactionGroupID: uuid.New(),
		CreatedBy:          "operator",
	}
	require.NoError(t, repo.Create(ctx, receipt))

	receipts, err := repo.FindByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "FG-1", receipts[0].BatchNumber)
	assert.Equal(t, production.QualityStatusPassed, receipts[0].QualityStatus)
	require.NotNil(t, receipts[0].LedgerEntryID)
	assert.Equal(t, lotID, *receipts[0].LedgerEntryID)
	require.NotNil(t, receipts[0].ExpiryDate)
	assert.True(t, receipts[0].ExpiryDate.Equal(*day(2025, 5, 1)))
}
