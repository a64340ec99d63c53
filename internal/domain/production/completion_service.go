package production

import (
	"strings"
	"time"

	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultOverProductionTolerance allows producing up to 110% of the planned quantity
var DefaultOverProductionTolerance = decimal.RequireFromString("1.10")

// CompletionRequest reports finished goods for an order
type CompletionRequest struct {
	ProducedQty        decimal.Decimal
	BatchNumber        string
	QualityStatus      QualityStatus
	ExpiryDate         *time.Time // derived from consumed lots when nil
	Remark             string
	TransactionGroupID uuid.UUID
	Actor              string
}

// CompletionOutcome is the result of a completion
type CompletionOutcome struct {
	Receipt *Receipt
	// Lot is the finished-goods stock-in entry, nil unless quality PASSED
	Lot *inventory.LedgerEntry
}

// CompletionService posts finished goods and closes orders out
type CompletionService struct {
	tolerance decimal.Decimal
}

// NewCompletionService creates a completion service. A tolerance below 1 falls
// back to DefaultOverProductionTolerance.
func NewCompletionService(tolerance decimal.Decimal) *CompletionService {
	if tolerance.LessThan(decimal.NewFromInt(1)) {
		tolerance = DefaultOverProductionTolerance
	}
	return &CompletionService{tolerance: tolerance}
}

// Tolerance returns the over-production factor in use
func (s *CompletionService) Tolerance() decimal.Decimal {
	return s.tolerance
}

// ValidateRequest checks the request shape before any data is loaded
func (s *CompletionService) ValidateRequest(req CompletionRequest) error {
	if !shared.RoundQuantity(req.ProducedQty).IsPositive() {
		return shared.NewValidationError("Produced quantity must be positive")
	}
	if strings.TrimSpace(req.BatchNumber) == "" {
		return shared.NewValidationError("Batch number cannot be empty")
	}
	if !req.QualityStatus.IsValid() {
		return shared.NewValidationError("Invalid quality status: %s", req.QualityStatus)
	}
	return nil
}

// Complete records production on order and builds the receipt. Only PASSED
// goods enter the ledger, as a new lot at the order's target warehouse.
// derivedExpiry is used when the request carries no expiry.
func (s *CompletionService) Complete(order *Order, req CompletionRequest, derivedExpiry *time.Time) (*CompletionOutcome, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.NewValidationError("Order is required")
	}

	qty := shared.RoundQuantity(req.ProducedQty)
	if err := order.RecordProduction(qty, s.tolerance, req.Actor); err != nil {
		return nil, err
	}

	expiry := req.ExpiryDate
	if expiry == nil {
		expiry = derivedExpiry
	}

	receipt := &Receipt{
		BaseEntity:         shared.NewBaseEntity(),
		OrderID:            order.ID,
		ProductID:          order.ProductID,
		WarehouseID:        order.TargetWarehouseID,
		BatchNumber:        strings.TrimSpace(req.BatchNumber),
		ExpiryDate:         expiry,
		ProducedQty:        qty,
		QualityStatus:      req.QualityStatus,
		TransactionGroupID: req.TransactionGroupID,
		Remark:             req.Remark,
		CreatedBy:          req.Actor,
	}

	var lot *inventory.LedgerEntry
	if req.QualityStatus == QualityStatusPassed {
		var err error
		lot, err = inventory.NewStockInEntry(inventory.StockIn{
			ProductID:          order.ProductID,
			WarehouseID:        order.TargetWarehouseID,
			BatchNumber:        receipt.BatchNumber,
			ExpiryDate:         expiry,
			Quantity:           qty,
			EntryType:          inventory.EntryTypeProductionReceipt,
			SourceType:         inventory.SourceTypeProductionReceipt,
			SourceID:           receipt.ID,
			TransactionGroupID: req.TransactionGroupID,
			Actor:              req.Actor,
		})
		if err != nil {
			return nil, err
		}
		lotID := lot.ID
		receipt.LedgerEntryID = &lotID
	}

	return &CompletionOutcome{Receipt: receipt, Lot: lot}, nil
}
