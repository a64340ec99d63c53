package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	appprod "github.com/erp/mes/internal/application/production"
	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/erp/mes/internal/infrastructure/cache"
	"github.com/erp/mes/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type plant struct {
	db        *TestDB
	svc       *appprod.Service
	bomID     uuid.UUID
	productID uuid.UUID
	materialA uuid.UUID
	materialB uuid.UUID
	source    uuid.UUID
	target    uuid.UUID
}

// newPlant saves a KITTING BOM needing 100 A per unit, with B as a 1:1
// alternative, and wires the service over PostgreSQL.
func newPlant(t *testing.T) *plant {
	t.Helper()
	tdb := NewTestDB(t)

	p := &plant{
		db:        tdb,
		productID: uuid.New(),
		materialA: uuid.New(),
		materialB: uuid.New(),
		source:    uuid.New(),
		target:    uuid.New(),
	}

	kit := &bom.BOM{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  p.productID,
		Code:       "KIT-" + uuid.NewString()[:8],
		Version:    "1.0",
		Type:       bom.TypeKitting,
		OutputQty:  decimal.NewFromInt(1),
		IsActive:   true,
	}
	line := bom.Line{
		BaseEntity: shared.NewBaseEntity(),
		BOMID:      kit.ID,
		MaterialID: p.materialA,
		Quantity:   decimal.NewFromInt(100),
		ScrapRate:  decimal.Zero,
		UOM:        "pcs",
		Sequence:   10,
	}
	kit.Lines = []bom.Line{line}
	alternative := bom.Alternative{
		BaseEntity: shared.NewBaseEntity(),
		LineID:     line.ID,
		MaterialID: p.materialB,
		Quantity:   decimal.NewFromInt(100),
		ScrapRate:  decimal.Zero,
		Priority:   1,
		IsActive:   true,
	}
	require.NoError(t, persistence.NewGormBOMRepository(tdb.DB).Save(context.Background(), kit,
		map[uuid.UUID][]bom.Alternative{line.ID: {alternative}}))
	p.bomID = kit.ID

	p.svc = appprod.NewService(
		persistence.NewGormTransactionScope(tdb.DB),
		persistence.NewGormRepositories(tdb.DB),
		appprod.DefaultConfig(),
		zaptest.NewLogger(t),
	)
	return p
}

func (p *plant) receive(t *testing.T, material uuid.UUID, batch string, qty int64, expiry time.Time) {
	t.Helper()
	_, err := p.svc.ReceiveStock(context.Background(), appprod.ReceiveStockRequest{
		ProductID:   material,
		WarehouseID: p.source,
		BatchNumber: batch,
		ExpiryDate:  &expiry,
		Quantity:    decimal.NewFromInt(qty),
	}, "store-keeper")
	require.NoError(t, err)
}

func (p *plant) createOrder(t *testing.T, planned int64) *appprod.OrderResponse {
	t.Helper()
	order, err := p.svc.CreateOrder(context.Background(), appprod.CreateOrderRequest{
		BOMID:             p.bomID,
		PlannedQty:        decimal.NewFromInt(planned),
		SourceWarehouseID: p.source,
		TargetWarehouseID: p.target,
	}, "planner")
	require.NoError(t, err)
	return order
}

func (p *plant) available(t *testing.T, material, warehouse uuid.UUID) decimal.Decimal {
	t.Helper()
	lots, err := p.svc.ListAvailableLots(context.Background(), material, warehouse)
	require.NoError(t, err)
	return lots.TotalAvailable
}

// ledgerBalance sums every ledger row for the material, positive and negative
func (p *plant) ledgerBalance(t *testing.T, material, warehouse uuid.UUID) decimal.Decimal {
	t.Helper()
	var sum decimal.Decimal
	require.NoError(t, p.db.DB.Raw(
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_ledger WHERE product_id = ? AND warehouse_id = ?`,
		material, warehouse).Scan(&sum).Error)
	return sum
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestProductionFlow_Integration(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()

	p.receive(t, p.materialA, "A-LATE", 100, day(2027, 5, 1))
	p.receive(t, p.materialA, "A-EARLY", 50, day(2027, 3, 1))
	p.receive(t, p.materialB, "B-1", 100, day(2027, 1, 15))

	order := p.createOrder(t, 2)
	resp, err := p.svc.IssueMaterials(ctx, order.ID, appprod.IssueMaterialsRequest{}, "operator")
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", resp.OrderStatus)
	assert.False(t, resp.Partial)

	require.Len(t, resp.Results, 1)
	result := resp.Results[0]
	assert.True(t, decimal.NewFromInt(200).Equal(result.AllocatedQty))
	require.Len(t, result.Details, 3)
	// FEFO within A, then the alternative
	assert.Equal(t, "A-EARLY", result.Details[0].BatchNumber)
	assert.Equal(t, "A-LATE", result.Details[1].BatchNumber)
	assert.Equal(t, "B-1", result.Details[2].BatchNumber)
	assert.True(t, result.Details[2].IsAlternative)
	assert.True(t, decimal.NewFromInt(50).Equal(result.Details[2].ActualQty))
	require.Len(t, result.Substitutions, 1)

	assert.True(t, p.available(t, p.materialA, p.source).IsZero())
	assert.True(t, decimal.NewFromInt(50).Equal(p.available(t, p.materialB, p.source)))
	assert.True(t, p.ledgerBalance(t, p.materialA, p.source).IsZero())

	// return part of the alternative in good condition
	ret, err := p.svc.ReturnMaterial(ctx, appprod.ReturnMaterialRequest{
		IssueDetailID: result.Details[2].ID,
		Quantity:      decimal.NewFromInt(20),
		Condition:     "GOOD",
		Reason:        "left over",
	}, "operator")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(ret.EquivalentQty))
	assert.True(t, decimal.NewFromInt(70).Equal(p.available(t, p.materialB, p.source)))

	_, err = p.svc.ReturnMaterial(ctx, appprod.ReturnMaterialRequest{
		IssueDetailID: result.Details[2].ID,
		Quantity:      decimal.NewFromInt(31),
		Condition:     "GOOD",
	}, "operator")
	assert.True(t, shared.IsCode(err, shared.CodeReturnExceedsIssued), "got %v", err)

	requirements, err := p.svc.ListRequirements(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, requirements, 1)
	assert.True(t, decimal.NewFromInt(180).Equal(requirements[0].IssuedQty))
	assert.Equal(t, "PARTIAL", requirements[0].Status)

	receipt, err := p.svc.CompleteProduction(ctx, order.ID, appprod.CompleteProductionRequest{
		ProducedQty: decimal.NewFromInt(2),
		BatchNumber: "FG-" + order.OrderNumber,
	}, "operator")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", receipt.OrderStatus)
	require.NotNil(t, receipt.ExpiryDate)
	assert.Equal(t, "2027-01-15", receipt.ExpiryDate.UTC().Format("2006-01-02"))
	require.NotNil(t, receipt.LotID)

	finished, err := p.svc.ListAvailableLots(ctx, p.productID, p.target)
	require.NoError(t, err)
	require.Len(t, finished.Lots, 1)
	assert.Equal(t, *receipt.LotID, finished.Lots[0].ID)
	assert.Equal(t, "PRODUCTION_RECEIPT", finished.Lots[0].EntryType)
}

func TestConcurrentIssue_Integration(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()

	// enough A for exactly one of the orders, no B
	p.receive(t, p.materialA, "A-1", 120, day(2027, 3, 1))
	p.receive(t, p.materialA, "A-2", 180, day(2027, 4, 1))

	const workers = 3
	orders := make([]*appprod.OrderResponse, workers)
	for i := range orders {
		orders[i] = p.createOrder(t, 2)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	start := make(chan struct{})
	for _, o := range orders {
		wg.Add(1)
		go func(orderID uuid.UUID) {
			defer wg.Done()
			<-start
			_, err := p.svc.IssueMaterials(ctx, orderID, appprod.IssueMaterialsRequest{}, "operator")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			successes++
		}(o.ID)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	for _, err := range failures {
		assert.True(t,
			shared.IsCode(err, shared.CodeInsufficientStock) || shared.IsCode(err, shared.CodeConcurrencyConflict),
			"unexpected error: %v", err)
	}

	// no lot went negative and the ledger agrees with the lots
	assert.True(t, decimal.NewFromInt(100).Equal(p.available(t, p.materialA, p.source)))
	assert.True(t, decimal.NewFromInt(100).Equal(p.ledgerBalance(t, p.materialA, p.source)))

	var negative int64
	require.NoError(t, p.db.DB.Raw(`SELECT COUNT(*) FROM inventory_ledger WHERE remaining < 0`).Scan(&negative).Error)
	assert.Zero(t, negative)
}

func TestIssueIdempotency_Integration(t *testing.T) {
	p := newPlant(t)
	ctx := context.Background()

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })
	p.svc.SetIdempotencyStore(store)

	p.receive(t, p.materialA, "A-1", 500, day(2027, 3, 1))
	order := p.createOrder(t, 2)

	req := appprod.IssueMaterialsRequest{
		Items:          []appprod.IssueItem{{MaterialID: p.materialA, Quantity: decimal.NewFromInt(50)}},
		IdempotencyKey: "scan-0001",
	}
	_, err := p.svc.IssueMaterials(ctx, order.ID, req, "operator")
	require.NoError(t, err)

	_, err = p.svc.IssueMaterials(ctx, order.ID, req, "operator")
	assert.True(t, shared.IsCode(err, shared.CodeDuplicateRequest), "got %v", err)

	assert.True(t, decimal.NewFromInt(450).Equal(p.available(t, p.materialA, p.source)))
}
