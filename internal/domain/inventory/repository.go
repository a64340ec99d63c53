package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerRepository defines the interface for inventory ledger persistence.
//
// Concurrency notes:
// FindLots locks the returned rows (SELECT ... FOR UPDATE) and must be called inside
// a transaction. DecrementRemaining is a conditional update guarded by
// "remaining >= qty"; when no row is affected it returns shared.ErrConcurrencyConflict
// so the caller can abandon that lot and continue with the next one.
type LedgerRepository interface {
	// FindLots returns stock-in entries of a product in a warehouse with remaining > 0,
	// in FEFO order, locked for update
	FindLots(ctx context.Context, productID, warehouseID uuid.UUID) ([]LedgerEntry, error)

	// FindAvailableLots is FindLots without the row lock, for read-only queries
	FindAvailableLots(ctx context.Context, productID, warehouseID uuid.UUID) ([]LedgerEntry, error)

	// DecrementRemaining reduces a lot's remaining balance if at least qty is left
	DecrementRemaining(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal) error

	// InsertLedgerEntry appends an entry to the ledger
	InsertLedgerEntry(ctx context.Context, entry *LedgerEntry) error

	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)
}
