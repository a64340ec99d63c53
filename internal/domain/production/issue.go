package production

import (
	"time"

	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IssueDetail records one physical lot drawn for a requirement.
// EquivalentQty = ActualQty / ConversionRatio, in units of the primary material.
// ConversionRatio is the issue-time snapshot and is the only ratio used for returns.
type IssueDetail struct {
	shared.BaseEntity
	OrderID            uuid.UUID
	RequirementID      uuid.UUID
	MaterialID         uuid.UUID // actual material drawn
	PrimaryMaterialID  uuid.UUID
	IsAlternative      bool
	LotID              uuid.UUID
	LedgerEntryID      uuid.UUID // the paired stock-out entry
	WarehouseID        uuid.UUID
	BatchNumber        string
	ExpiryDate         *time.Time
	ActualQty          decimal.Decimal
	ConversionRatio    decimal.Decimal
	EquivalentQty      decimal.Decimal
	TransactionGroupID uuid.UUID
	IssuedBy           string
}

// OriginalMaterialID returns the primary material for alternative draws, nil otherwise
func (d *IssueDetail) OriginalMaterialID() *uuid.UUID {
	if !d.IsAlternative {
		return nil
	}
	id := d.PrimaryMaterialID
	return &id
}

// Substitution summarises what one alternative contributed to an issue operation
type Substitution struct {
	shared.BaseEntity
	OrderID              uuid.UUID
	RequirementID        uuid.UUID
	OriginalMaterialID   uuid.UUID
	SubstituteMaterialID uuid.UUID
	AlternativeID        uuid.UUID
	ActualQty            decimal.Decimal
	EquivalentQty        decimal.Decimal
	ConversionRatio      decimal.Decimal
	Priority             int
	TransactionGroupID   uuid.UUID
	CreatedBy            string
}

// ReturnCondition describes the state of returned material
type ReturnCondition string

const (
	ReturnConditionGood    ReturnCondition = "GOOD"
	ReturnConditionDamaged ReturnCondition = "DAMAGED"
	ReturnConditionExpired ReturnCondition = "EXPIRED"
)

// String returns the string representation of ReturnCondition
func (c ReturnCondition) String() string {
	return string(c)
}

// IsValid returns true if the condition is valid
func (c ReturnCondition) IsValid() bool {
	switch c {
	case ReturnConditionGood, ReturnConditionDamaged, ReturnConditionExpired:
		return true
	}
	return false
}

// ReentersStock returns true if returned material goes back into inventory
func (c ReturnCondition) ReentersStock() bool {
	return c == ReturnConditionGood
}

// ReturnDetail records material handed back against an issue detail
type ReturnDetail struct {
	shared.BaseEntity
	OrderID            uuid.UUID
	RequirementID      uuid.UUID
	IssueDetailID      uuid.UUID
	MaterialID         uuid.UUID
	ActualQty          decimal.Decimal
	EquivalentQty      decimal.Decimal
	ConversionRatio    decimal.Decimal
	Condition          ReturnCondition
	Reason             string
	LedgerEntryID      *uuid.UUID // re-entered lot, GOOD returns only
	TransactionGroupID uuid.UUID
	ReturnedBy         string
}

// ReturnedTotals is the cumulative quantity already returned against one issue detail
type ReturnedTotals struct {
	Actual     decimal.Decimal
	Equivalent decimal.Decimal
}

// QualityStatus is the inspection outcome of produced goods
type QualityStatus string

const (
	QualityStatusPassed  QualityStatus = "PASSED"
	QualityStatusPending QualityStatus = "PENDING"
	QualityStatusFailed  QualityStatus = "FAILED"
)

// String returns the string representation of QualityStatus
func (q QualityStatus) String() string {
	return string(q)
}

// IsValid returns true if the quality status is valid
func (q QualityStatus) IsValid() bool {
	switch q {
	case QualityStatusPassed, QualityStatusPending, QualityStatusFailed:
		return true
	}
	return false
}

// Receipt records finished goods reported against an order
type Receipt struct {
	shared.BaseEntity
	OrderID            uuid.UUID
	ProductID          uuid.UUID
	WarehouseID        uuid.UUID
	BatchNumber        string
	ExpiryDate         *time.Time
	ProducedQty        decimal.Decimal
	QualityStatus      QualityStatus
	LedgerEntryID      *uuid.UUID // finished-goods lot, PASSED only
	TransactionGroupID uuid.UUID
	Remark             string
	CreatedBy          string
}
