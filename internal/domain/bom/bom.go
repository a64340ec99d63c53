package bom

import (
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type determines how the finished product relates to its components,
// which drives expiry derivation on completion
type Type string

const (
	// TypeKitting bundles components; the kit expires with its first component
	TypeKitting Type = "KITTING"
	// TypeCutting splits a source material into smaller units
	TypeCutting Type = "CUTTING"
	// TypeRepacking repackages a source material unchanged
	TypeRepacking Type = "REPACKING"
	// TypeAssembly builds a new product; no expiry is inherited
	TypeAssembly Type = "ASSEMBLY"
)

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the BOM type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeKitting, TypeCutting, TypeRepacking, TypeAssembly:
		return true
	}
	return false
}

// BOM is a bill of materials header
type BOM struct {
	shared.BaseEntity
	ProductID uuid.UUID
	Code      string
	Version   string
	Type      Type
	OutputQty decimal.Decimal
	IsActive  bool
	Lines     []Line
}

// Line is one primary material of a BOM
type Line struct {
	shared.BaseEntity
	BOMID      uuid.UUID
	MaterialID uuid.UUID
	Quantity   decimal.Decimal // per BOM output quantity
	ScrapRate  decimal.Decimal // percent
	UOM        string
	Sequence   int
}

// Alternative is a substitute material for a BOM line
type Alternative struct {
	shared.BaseEntity
	LineID     uuid.UUID
	MaterialID uuid.UUID
	Quantity   decimal.Decimal // per BOM output quantity, same basis as Line.Quantity
	ScrapRate  decimal.Decimal
	Priority   int // lower is tried first
	IsActive   bool
}

// ConversionRatio returns how many units of the alternative replace one unit of
// the primary material: alt.Quantity / primary.Quantity.
func ConversionRatio(primary Line, alt Alternative) (decimal.Decimal, error) {
	if !primary.Quantity.IsPositive() {
		return decimal.Zero, shared.NewConfigurationError(
			"BOM line %s has non-positive quantity %s", primary.ID, primary.Quantity)
	}
	ratio := shared.RoundRatio(alt.Quantity.Div(primary.Quantity))
	if !ratio.IsPositive() {
		return decimal.Zero, shared.NewConfigurationError(
			"Alternative %s of BOM line %s has zero conversion ratio", alt.ID, primary.ID)
	}
	return ratio, nil
}
