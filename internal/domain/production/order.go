package production

import (
	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a production order
type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "DRAFT"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft,
		OrderStatusConfirmed,
		OrderStatusInProgress,
		OrderStatusCompleted,
		OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true once no further transitions are possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is the production order aggregate root. It exclusively owns its material requirements.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string
	ProductID         uuid.UUID
	BOMID             uuid.UUID
	BOMType           bom.Type
	PlannedQty        decimal.Decimal
	ProducedQty       decimal.Decimal
	Status            OrderStatus
	SourceWarehouseID uuid.UUID
	TargetWarehouseID uuid.UUID
	Remark            string
	CreatedBy         string
	UpdatedBy         string
}

// NewOrder creates a production order in DRAFT
func NewOrder(
	orderNumber string,
	productID, bomID uuid.UUID,
	bomType bom.Type,
	plannedQty decimal.Decimal,
	sourceWarehouseID, targetWarehouseID uuid.UUID,
	actor string,
) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewValidationError("Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewValidationError("Order number cannot exceed 50 characters")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if bomID == uuid.Nil {
		return nil, shared.NewValidationError("BOM ID cannot be empty")
	}
	if !bomType.IsValid() {
		return nil, shared.NewValidationError("Invalid BOM type: %s", bomType)
	}
	if !plannedQty.IsPositive() {
		return nil, shared.NewValidationError("Planned quantity must be positive")
	}
	if sourceWarehouseID == uuid.Nil || targetWarehouseID == uuid.Nil {
		return nil, shared.NewValidationError("Source and target warehouses are required")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		ProductID:         productID,
		BOMID:             bomID,
		BOMType:           bomType,
		PlannedQty:        shared.RoundQuantity(plannedQty),
		ProducedQty:       decimal.Zero,
		Status:            OrderStatusDraft,
		SourceWarehouseID: sourceWarehouseID,
		TargetWarehouseID: targetWarehouseID,
		CreatedBy:         actor,
		UpdatedBy:         actor,
	}, nil
}

// Confirm moves a DRAFT order to CONFIRMED
func (o *Order) Confirm(actor string) error {
	if o.Status != OrderStatusDraft {
		return shared.NewInvalidStateError("Cannot confirm order in %s status", o.Status)
	}
	o.Status = OrderStatusConfirmed
	o.markUpdated(actor)
	return nil
}

// CanIssue returns true if material may be issued against the order
func (o *Order) CanIssue() bool {
	switch o.Status {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusInProgress:
		return true
	}
	return false
}

// CanReturn returns true if material may be returned against the order
func (o *Order) CanReturn() bool {
	return o.Status != OrderStatusCancelled
}

// StartProduction moves the order to IN_PROGRESS on its first material issue.
// Calling it on an order already in progress is a no-op.
func (o *Order) StartProduction(actor string) error {
	if o.Status == OrderStatusInProgress {
		return nil
	}
	if !o.CanIssue() {
		return shared.NewInvalidStateError("Cannot issue material for order in %s status", o.Status)
	}
	o.Status = OrderStatusInProgress
	o.markUpdated(actor)
	return nil
}

// Cancel cancels the order. Orders holding net issued material must return it first.
func (o *Order) Cancel(actor string, hasNetIssued bool) error {
	if o.Status.IsTerminal() {
		return shared.NewInvalidStateError("Cannot cancel order in %s status", o.Status)
	}
	if hasNetIssued {
		return shared.NewInvalidStateError("Order %s still holds issued material; return it before cancelling", o.OrderNumber)
	}
	o.Status = OrderStatusCancelled
	o.markUpdated(actor)
	return nil
}

// MaxProducible returns the cumulative produced quantity allowed by tolerance
func (o *Order) MaxProducible(tolerance decimal.Decimal) decimal.Decimal {
	return shared.RoundQuantity(o.PlannedQty.Mul(tolerance))
}

// RecordProduction adds qty to the produced quantity and completes the order
// once the planned quantity is reached
func (o *Order) RecordProduction(qty, tolerance decimal.Decimal, actor string) error {
	if o.Status != OrderStatusInProgress {
		return shared.NewInvalidStateError("Cannot complete production for order in %s status", o.Status)
	}
	if !qty.IsPositive() {
		return shared.NewValidationError("Produced quantity must be positive")
	}
	total := o.ProducedQty.Add(qty)
	if limit := o.MaxProducible(tolerance); total.GreaterThan(limit) {
		return shared.NewValidationError(
			"Produced quantity %s exceeds allowed %s (planned %s)", total, limit, o.PlannedQty)
	}
	o.ProducedQty = total
	if o.ProducedQty.GreaterThanOrEqual(o.PlannedQty) {
		o.Status = OrderStatusCompleted
	}
	o.markUpdated(actor)
	return nil
}

func (o *Order) markUpdated(actor string) {
	o.UpdatedBy = actor
	o.IncrementVersion()
}
