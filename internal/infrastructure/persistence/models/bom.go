package models

import (
	"github.com/erp/mes/internal/domain/bom"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOMModel is the persistence model for a BOM header.
type BOMModel struct {
	SoftDeleteModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code      string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_bom_code_version,priority:1"`
	Version   string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_bom_code_version,priority:2"`
	Type      string          `gorm:"type:varchar(20);not null"`
	OutputQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsActive  bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BOMModel) TableName() string {
	return "boms"
}

// ToDomain converts the persistence model to a domain BOM (without lines).
func (m *BOMModel) ToDomain() *bom.BOM {
	return &bom.BOM{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		Code:       m.Code,
		Version:    m.Version,
		Type:       bom.Type(m.Type),
		OutputQty:  m.OutputQty,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain BOM.
func (m *BOMModel) FromDomain(b *bom.BOM) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.ProductID = b.ProductID
	m.Code = b.Code
	m.Version = b.Version
	m.Type = string(b.Type)
	m.OutputQty = b.OutputQty
	m.IsActive = b.IsActive
}

// BOMLineModel is the persistence model for a BOM line.
type BOMLineModel struct {
	SoftDeleteModel
	BOMID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ScrapRate  decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	UOM        string          `gorm:"type:varchar(20)"`
	Sequence   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BOMLineModel) TableName() string {
	return "bom_lines"
}

// ToDomain converts the persistence model to a domain Line.
func (m *BOMLineModel) ToDomain() *bom.Line {
	return &bom.Line{
		BaseEntity: m.BaseModel.ToDomain(),
		BOMID:      m.BOMID,
		MaterialID: m.MaterialID,
		Quantity:   m.Quantity,
		ScrapRate:  m.ScrapRate,
		UOM:        m.UOM,
		Sequence:   m.Sequence,
	}
}

// FromDomain populates the persistence model from a domain Line.
func (m *BOMLineModel) FromDomain(l *bom.Line) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.BOMID = l.BOMID
	m.MaterialID = l.MaterialID
	m.Quantity = l.Quantity
	m.ScrapRate = l.ScrapRate
	m.UOM = l.UOM
	m.Sequence = l.Sequence
}

// BOMAlternativeModel is the persistence model for a BOM line alternative.
type BOMAlternativeModel struct {
	SoftDeleteModel
	LineID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_bom_alt_line_priority,priority:1"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ScrapRate  decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	Priority   int             `gorm:"not null;index:idx_bom_alt_line_priority,priority:2"`
	IsActive   bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BOMAlternativeModel) TableName() string {
	return "bom_alternatives"
}

// ToDomain converts the persistence model to a domain Alternative.
func (m *BOMAlternativeModel) ToDomain() *bom.Alternative {
	return &bom.Alternative{
		BaseEntity: m.BaseModel.ToDomain(),
		LineID:     m.LineID,
		MaterialID: m.MaterialID,
		Quantity:   m.Quantity,
		ScrapRate:  m.ScrapRate,
		Priority:   m.Priority,
		IsActive:   m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Alternative.
func (m *BOMAlternativeModel) FromDomain(a *bom.Alternative) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.LineID = a.LineID
	m.MaterialID = a.MaterialID
	m.Quantity = a.Quantity
	m.ScrapRate = a.ScrapRate
	m.Priority = a.Priority
	m.IsActive = a.IsActive
}
