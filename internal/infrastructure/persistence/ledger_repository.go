package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/erp/mes/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fefoOrder is FEFO with lots lacking expiry last, then FIFO. Written without
// NULLS LAST so it runs on both PostgreSQL and SQLite.
const fefoOrder = "expiry_date IS NULL ASC, expiry_date ASC, created_at ASC, id ASC"

// GormLedgerRepository implements inventory.LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) lotQuery(ctx context.Context, productID, warehouseID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("product_id = ? AND warehouse_id = ? AND remaining > 0", productID, warehouseID).
		Order(fefoOrder)
}

// FindLots returns available lots in FEFO order with a row lock (SELECT ... FOR UPDATE)
func (r *GormLedgerRepository) FindLots(ctx context.Context, productID, warehouseID uuid.UUID) ([]inventory.LedgerEntry, error) {
	var rows []models.LedgerEntryModel
	if err := r.lotQuery(ctx, productID, warehouseID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find lots: %w", err)
	}
	return ledgerEntriesToDomain(rows), nil
}

// FindAvailableLots returns available lots in FEFO order without locking
func (r *GormLedgerRepository) FindAvailableLots(ctx context.Context, productID, warehouseID uuid.UUID) ([]inventory.LedgerEntry, error) {
	var rows []models.LedgerEntryModel
	if err := r.lotQuery(ctx, productID, warehouseID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find available lots: %w", err)
	}
	return ledgerEntriesToDomain(rows), nil
}

// DecrementRemaining atomically reduces remaining by qty.
// The WHERE clause guards against lost updates: if another transaction drew
// from the lot first and less than qty is left, no row matches and
// shared.ErrConcurrencyConflict is returned.
func (r *GormLedgerRepository) DecrementRemaining(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewValidationError("Decrement quantity must be positive")
	}
	result := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Where("id = ? AND remaining >= ?", lotID, qty).
		Updates(map[string]any{
			"remaining":  gorm.Expr("remaining - ?", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to decrement lot remaining: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// InsertLedgerEntry appends an entry to the ledger
func (r *GormLedgerRepository) InsertLedgerEntry(ctx context.Context, entry *inventory.LedgerEntry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func ledgerEntriesToDomain(rows []models.LedgerEntryModel) []inventory.LedgerEntry {
	entries := make([]inventory.LedgerEntry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

// Ensure GormLedgerRepository implements LedgerRepository
var _ inventory.LedgerRepository = (*GormLedgerRepository)(nil)
