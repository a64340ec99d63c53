package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/mes/internal/domain/production"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/erp/mes/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductionOrderRepository implements production.OrderRepository using GORM
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormProductionOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Order, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate finds an order and locks its row (SELECT ... FOR UPDATE)
func (r *GormProductionOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.Order, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormProductionOrderRepository) findByID(db *gorm.DB, id uuid.UUID) (*production.Order, error) {
	var model models.ProductionOrderModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Production order", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists orders matching the filter, with the total count
func (r *GormProductionOrderRepository) FindAll(ctx context.Context, filter production.OrderFilter) ([]production.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductionOrderModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count production orders: %w", err)
	}

	query = query.Order(productionOrderSort.orderBy(filter.OrderBy, filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.ProductionOrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list production orders: %w", err)
	}
	orders := make([]production.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// ExistsByOrderNumber checks if an order number is taken
func (r *GormProductionOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductionOrderModel{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new order
func (r *GormProductionOrderRepository) Create(ctx context.Context, order *production.Order) error {
	model := models.ProductionOrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create production order: %w", err)
	}
	return nil
}

// Save updates an order with optimistic locking on version
func (r *GormProductionOrderRepository) Save(ctx context.Context, order *production.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductionOrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]any{
			"status":       string(order.Status),
			"produced_qty": order.ProducedQty,
			"remark":       order.Remark,
			"updated_by":   order.UpdatedBy,
			"version":      order.Version,
			"updated_at":   order.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save production order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeConcurrencyConflict,
			"Production order was modified by another transaction")
	}
	return nil
}

// GormReceiptRepository implements production.ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// Create inserts a receipt
func (r *GormReceiptRepository) Create(ctx context.Context, receipt *production.Receipt) error {
	model := &models.ProductionReceiptModel{}
	model.FromDomain(receipt)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create production receipt: %w", err)
	}
	return nil
}

// FindByOrder returns the receipts of an order
func (r *GormReceiptRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]production.Receipt, error) {
	var rows []models.ProductionReceiptModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	receipts := make([]production.Receipt, len(rows))
	for i := range rows {
		receipts[i] = *rows[i].ToDomain()
	}
	return receipts, nil
}

var (
	_ production.OrderRepository   = (*GormProductionOrderRepository)(nil)
	_ production.ReceiptRepository = (*GormReceiptRepository)(nil)
)
