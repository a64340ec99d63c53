package persistence

import (
	"context"

	appprod "github.com/erp/mes/internal/application/production"
	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/production"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appprod.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepositories(tx))
	})
}

// GormRepositories hands out repositories bound to one *gorm.DB, which is a
// transaction inside GormTransactionScope.Execute and the pool elsewhere.
type GormRepositories struct {
	db *gorm.DB
}

// NewGormRepositories creates repositories over db
func NewGormRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{db: db}
}

// Orders returns the production order repository
func (r *GormRepositories) Orders() production.OrderRepository {
	return NewGormProductionOrderRepository(r.db)
}

// Requirements returns the order material repository
func (r *GormRepositories) Requirements() production.RequirementRepository {
	return NewGormRequirementRepository(r.db)
}

// Issues returns the issue/return detail repository
func (r *GormRepositories) Issues() production.IssueRepository {
	return NewGormIssueRepository(r.db)
}

// Receipts returns the production receipt repository
func (r *GormRepositories) Receipts() production.ReceiptRepository {
	return NewGormReceiptRepository(r.db)
}

// Ledger returns the inventory ledger repository
func (r *GormRepositories) Ledger() inventory.LedgerRepository {
	return NewGormLedgerRepository(r.db)
}

// BOMs returns the BOM repository
func (r *GormRepositories) BOMs() bom.Repository {
	return NewGormBOMRepository(r.db)
}

var (
	_ appprod.TransactionScope = (*GormTransactionScope)(nil)
	_ appprod.Repositories     = (*GormRepositories)(nil)
)
