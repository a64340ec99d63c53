package production

import (
	"context"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/production"
)

// Repositories groups every repository the production service works with.
// When obtained from a TransactionScope all of them share one database
// transaction; row locks taken through any of them are held until it ends.
type Repositories interface {
	Orders() production.OrderRepository
	Requirements() production.RequirementRepository
	Issues() production.IssueRepository
	Receipts() production.ReceiptRepository
	Ledger() inventory.LedgerRepository
	BOMs() bom.Repository
}

// TransactionScope runs a unit of work atomically.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	repos Repositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over repos
func NewNoOpTransactionScope(repos Repositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s.repos)
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
