package production

import (
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequirementStatus is derived from issued vs required quantity
type RequirementStatus string

const (
	RequirementStatusPending RequirementStatus = "PENDING"
	RequirementStatusPartial RequirementStatus = "PARTIAL"
	RequirementStatusIssued  RequirementStatus = "ISSUED"
)

// String returns the string representation of RequirementStatus
func (s RequirementStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s RequirementStatus) IsValid() bool {
	switch s {
	case RequirementStatusPending, RequirementStatusPartial, RequirementStatusIssued:
		return true
	}
	return false
}

// DeriveRequirementStatus is a pure function of (issued, required)
func DeriveRequirementStatus(issued, required decimal.Decimal) RequirementStatus {
	switch {
	case !issued.IsPositive():
		return RequirementStatusPending
	case issued.LessThan(required):
		return RequirementStatusPartial
	default:
		return RequirementStatusIssued
	}
}

// Requirement is one primary material demanded by an order.
// IssuedQty is always in equivalent units of the primary material.
type Requirement struct {
	shared.BaseEntity
	OrderID     uuid.UUID
	BOMLineID   uuid.UUID
	MaterialID  uuid.UUID
	UOM         string
	RequiredQty decimal.Decimal
	IssuedQty   decimal.Decimal
	Status      RequirementStatus
}

// NewRequirement creates a PENDING requirement
func NewRequirement(orderID, bomLineID, materialID uuid.UUID, uom string, required decimal.Decimal) (*Requirement, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewValidationError("Material ID cannot be empty")
	}
	if !required.IsPositive() {
		return nil, shared.NewValidationError("Required quantity must be positive")
	}
	return &Requirement{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		BOMLineID:   bomLineID,
		MaterialID:  materialID,
		UOM:         uom,
		RequiredQty: required,
		IssuedQty:   decimal.Zero,
		Status:      RequirementStatusPending,
	}, nil
}

// Remaining returns the equivalent quantity still to be issued, never negative
func (r *Requirement) Remaining() decimal.Decimal {
	rem := r.RequiredQty.Sub(r.IssuedQty)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// ApplyIssue increments the issued quantity by an equivalent amount
func (r *Requirement) ApplyIssue(equivalent decimal.Decimal) {
	r.IssuedQty = r.IssuedQty.Add(equivalent)
	r.refresh()
}

// ApplyReturn decrements the issued quantity, floored at zero
func (r *Requirement) ApplyReturn(equivalent decimal.Decimal) {
	r.IssuedQty = r.IssuedQty.Sub(equivalent)
	if r.IssuedQty.IsNegative() {
		r.IssuedQty = decimal.Zero
	}
	r.refresh()
}

func (r *Requirement) refresh() {
	r.Status = DeriveRequirementStatus(r.IssuedQty, r.RequiredQty)
	r.Touch()
}
