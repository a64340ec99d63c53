package production

import (
	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnRequest describes material handed back against one issue detail
type ReturnRequest struct {
	IssueDetailID      uuid.UUID
	Quantity           decimal.Decimal // actual units of the issued material
	Condition          ReturnCondition
	Reason             string
	TransactionGroupID uuid.UUID
	Actor              string
}

// ReturnOutcome is the result of reconciling a return
type ReturnOutcome struct {
	Detail *ReturnDetail
	// Lot is the re-entered stock-in entry, nil unless the condition is GOOD
	Lot *inventory.LedgerEntry
}

// ReturnReconciler validates returns against issued quantities and converts
// them back to equivalent units with the ratio stored on the issue detail
type ReturnReconciler struct{}

// NewReturnReconciler creates a return reconciler
func NewReturnReconciler() *ReturnReconciler {
	return &ReturnReconciler{}
}

// ValidateRequest checks the request shape before any data is loaded
func (r *ReturnReconciler) ValidateRequest(req ReturnRequest) error {
	if req.IssueDetailID == uuid.Nil {
		return shared.NewValidationError("Issue detail ID cannot be empty")
	}
	if !shared.RoundQuantity(req.Quantity).IsPositive() {
		return shared.NewValidationError("Return quantity must be positive")
	}
	if !req.Condition.IsValid() {
		return shared.NewValidationError("Invalid return condition: %s", req.Condition)
	}
	return nil
}

// Reconcile applies a return to requirement and builds the return detail and,
// for GOOD returns, the stock-in entry that puts the material back under the
// original batch and expiry. returned holds what was already returned
// against detail before this request.
func (r *ReturnReconciler) Reconcile(
	detail *IssueDetail,
	returned ReturnedTotals,
	requirement *Requirement,
	req ReturnRequest,
) (*ReturnOutcome, error) {
	if err := r.ValidateRequest(req); err != nil {
		return nil, err
	}
	if detail == nil || detail.ID != req.IssueDetailID {
		return nil, shared.NewNotFoundError("Issue detail", req.IssueDetailID)
	}
	if requirement == nil || requirement.ID != detail.RequirementID {
		return nil, shared.NewNotFoundError("Material requirement", detail.RequirementID)
	}
	if !detail.ConversionRatio.IsPositive() {
		return nil, shared.NewConfigurationError("Issue detail %s has zero conversion ratio", detail.ID)
	}

	qty := shared.RoundQuantity(req.Quantity)
	returnable := detail.ActualQty.Sub(returned.Actual)
	if qty.GreaterThan(returnable) {
		return nil, shared.NewReturnExceedsIssuedError(qty, returnable)
	}

	var equivalent decimal.Decimal
	if qty.Equal(returnable) {
		// Closing out the detail returns exactly what it contributed.
		equivalent = detail.EquivalentQty.Sub(returned.Equivalent)
	} else {
		equivalent = shared.MinDecimal(
			shared.RoundQuantity(qty.Div(detail.ConversionRatio)),
			detail.EquivalentQty.Sub(returned.Equivalent),
		)
	}
	if equivalent.IsNegative() {
		equivalent = decimal.Zero
	}

	ret := &ReturnDetail{
		BaseEntity:         shared.NewBaseEntity(),
		OrderID:            detail.OrderID,
		RequirementID:      detail.RequirementID,
		IssueDetailID:      detail.ID,
		MaterialID:         detail.MaterialID,
		ActualQty:          qty,
		EquivalentQty:      equivalent,
		ConversionRatio:    detail.ConversionRatio,
		Condition:          req.Condition,
		Reason:             req.Reason,
		TransactionGroupID: req.TransactionGroupID,
		ReturnedBy:         req.Actor,
	}

	var lot *inventory.LedgerEntry
	if req.Condition.ReentersStock() {
		var err error
		lot, err = inventory.NewStockInEntry(inventory.StockIn{
			ProductID:          detail.MaterialID,
			WarehouseID:        detail.WarehouseID,
			BatchNumber:        detail.BatchNumber,
			ExpiryDate:         detail.ExpiryDate,
			Quantity:           qty,
			EntryType:          inventory.EntryTypeMaterialReturn,
			SourceType:         inventory.SourceTypeMaterialReturn,
			SourceID:           ret.ID,
			TransactionGroupID: req.TransactionGroupID,
			Actor:              req.Actor,
		})
		if err != nil {
			return nil, err
		}
		lotID := lot.ID
		ret.LedgerEntryID = &lotID
	}

	requirement.ApplyReturn(equivalent)
	return &ReturnOutcome{Detail: ret, Lot: lot}, nil
}
