package inventory

import (
	"time"

	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType represents the kind of stock movement recorded in the ledger
type EntryType string

const (
	// EntryTypeProductionReceipt is finished goods posted by a production completion
	EntryTypeProductionReceipt EntryType = "PRODUCTION_RECEIPT"
	// EntryTypeMaterialIssue is material drawn from a lot for a production order
	EntryTypeMaterialIssue EntryType = "MATERIAL_ISSUE"
	// EntryTypeMaterialReturn is material returned in good condition from a production order
	EntryTypeMaterialReturn EntryType = "MATERIAL_RETURN"
	// EntryTypePurchaseReceipt is stock received from outside (purchase, opening balance)
	EntryTypePurchaseReceipt EntryType = "PURCHASE_RECEIPT"
	// EntryTypeAdjustment is a manual stock-in correction
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
)

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeProductionReceipt,
		EntryTypeMaterialIssue,
		EntryTypeMaterialReturn,
		EntryTypePurchaseReceipt,
		EntryTypeAdjustment:
		return true
	}
	return false
}

// IsStockIn returns true if entries of this type create a new lot
func (t EntryType) IsStockIn() bool {
	switch t {
	case EntryTypeProductionReceipt,
		EntryTypeMaterialReturn,
		EntryTypePurchaseReceipt,
		EntryTypeAdjustment:
		return true
	}
	return false
}

// SourceType identifies the document that caused a ledger entry
type SourceType string

const (
	SourceTypeProductionOrder   SourceType = "PRODUCTION_ORDER"
	SourceTypeProductionReceipt SourceType = "PRODUCTION_RECEIPT"
	SourceTypeMaterialReturn    SourceType = "MATERIAL_RETURN"
	SourceTypeStockReceipt      SourceType = "STOCK_RECEIPT"
)

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// IsValid returns true if the source type is valid
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeProductionOrder,
		SourceTypeProductionReceipt,
		SourceTypeMaterialReturn,
		SourceTypeStockReceipt:
		return true
	}
	return false
}

// LedgerEntry is one append-only stock movement.
// Stock-in entries are lots: positive Quantity and a Remaining balance that only
// decreases as stock-out entries draw from it. Stock-out entries carry a negative
// Quantity, a zero Remaining and point back at the lot through SourceLotID.
type LedgerEntry struct {
	shared.BaseEntity
	ProductID          uuid.UUID
	WarehouseID        uuid.UUID
	BatchNumber        string
	ExpiryDate         *time.Time
	Quantity           decimal.Decimal
	Remaining          decimal.Decimal
	EntryType          EntryType
	SourceType         SourceType
	SourceID           uuid.UUID
	TransactionGroupID uuid.UUID
	SourceLotID        *uuid.UUID
	Actor              string
}

// StockIn describes a new lot to be posted
type StockIn struct {
	ProductID          uuid.UUID
	WarehouseID        uuid.UUID
	BatchNumber        string
	ExpiryDate         *time.Time
	Quantity           decimal.Decimal
	EntryType          EntryType
	SourceType         SourceType
	SourceID           uuid.UUID
	TransactionGroupID uuid.UUID
	Actor              string
}

// NewStockInEntry creates a lot with Remaining equal to its quantity
func NewStockInEntry(in StockIn) (*LedgerEntry, error) {
	if in.ProductID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if in.WarehouseID == uuid.Nil {
		return nil, shared.NewValidationError("Warehouse ID cannot be empty")
	}
	if in.BatchNumber == "" {
		return nil, shared.NewValidationError("Batch number cannot be empty")
	}
	if !in.EntryType.IsStockIn() {
		return nil, shared.NewValidationError("Entry type %s does not create stock", in.EntryType)
	}
	if !in.SourceType.IsValid() {
		return nil, shared.NewValidationError("Invalid source type: %s", in.SourceType)
	}
	qty := shared.RoundQuantity(in.Quantity)
	if !qty.IsPositive() {
		return nil, shared.NewValidationError("Stock-in quantity must be positive")
	}

	return &LedgerEntry{
		BaseEntity:         shared.NewBaseEntity(),
		ProductID:          in.ProductID,
		WarehouseID:        in.WarehouseID,
		BatchNumber:        in.BatchNumber,
		ExpiryDate:         in.ExpiryDate,
		Quantity:           qty,
		Remaining:          qty,
		EntryType:          in.EntryType,
		SourceType:         in.SourceType,
		SourceID:           in.SourceID,
		TransactionGroupID: in.TransactionGroupID,
		Actor:              in.Actor,
	}, nil
}

// NewStockOutEntry creates the negative entry paired with a draw of qty from lot.
// Batch, expiry, product and warehouse are copied from the lot for traceability.
func NewStockOutEntry(
	lot *LedgerEntry,
	qty decimal.Decimal,
	sourceType SourceType,
	sourceID uuid.UUID,
	groupID uuid.UUID,
	actor string,
) (*LedgerEntry, error) {
	if lot == nil || !lot.IsStockIn() {
		return nil, shared.NewValidationError("Stock-out must reference a stock-in lot")
	}
	if !qty.IsPositive() {
		return nil, shared.NewValidationError("Stock-out quantity must be positive")
	}
	lotID := lot.ID
	return &LedgerEntry{
		BaseEntity:         shared.NewBaseEntity(),
		ProductID:          lot.ProductID,
		WarehouseID:        lot.WarehouseID,
		BatchNumber:        lot.BatchNumber,
		ExpiryDate:         lot.ExpiryDate,
		Quantity:           qty.Neg(),
		Remaining:          decimal.Zero,
		EntryType:          EntryTypeMaterialIssue,
		SourceType:         sourceType,
		SourceID:           sourceID,
		TransactionGroupID: groupID,
		SourceLotID:        &lotID,
		Actor:              actor,
	}, nil
}

// IsStockIn returns true for lot entries
func (e *LedgerEntry) IsStockIn() bool {
	return e.Quantity.IsPositive()
}

// HasRemaining returns true if the lot can still be drawn from
func (e *LedgerEntry) HasRemaining() bool {
	return e.Remaining.IsPositive()
}

// Draw reduces Remaining by qty in memory, mirroring a successful conditional
// decrement in the store. Returns false and leaves the lot untouched if qty exceeds Remaining.
func (e *LedgerEntry) Draw(qty decimal.Decimal) bool {
	if qty.GreaterThan(e.Remaining) {
		return false
	}
	e.Remaining = e.Remaining.Sub(qty)
	e.Touch()
	return true
}
