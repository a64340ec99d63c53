package models

import (
	"time"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionOrderModel is the persistence model for the Order aggregate root.
type ProductionOrderModel struct {
	AggregateModel
	OrderNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	BOMID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	BOMType           string          `gorm:"type:varchar(20);not null"`
	PlannedQty        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ProducedQty       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	SourceWarehouseID uuid.UUID       `gorm:"type:uuid;not null"`
	TargetWarehouseID uuid.UUID       `gorm:"type:uuid;not null"`
	Remark            string          `gorm:"type:text"`
	CreatedBy         string          `gorm:"type:varchar(100)"`
	UpdatedBy         string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *ProductionOrderModel) ToDomain() *production.Order {
	return &production.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		ProductID:         m.ProductID,
		BOMID:             m.BOMID,
		BOMType:           bom.Type(m.BOMType),
		PlannedQty:        m.PlannedQty,
		ProducedQty:       m.ProducedQty,
		Status:            production.OrderStatus(m.Status),
		SourceWarehouseID: m.SourceWarehouseID,
		TargetWarehouseID: m.TargetWarehouseID,
		Remark:            m.Remark,
		CreatedBy:         m.CreatedBy,
		UpdatedBy:         m.UpdatedBy,
	}
}

// FromDomain populates the persistence model from a domain Order.
func (m *ProductionOrderModel) FromDomain(o *production.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.ProductID = o.ProductID
	m.BOMID = o.BOMID
	m.BOMType = string(o.BOMType)
	m.PlannedQty = o.PlannedQty
	m.ProducedQty = o.ProducedQty
	m.Status = string(o.Status)
	m.SourceWarehouseID = o.SourceWarehouseID
	m.TargetWarehouseID = o.TargetWarehouseID
	m.Remark = o.Remark
	m.CreatedBy = o.CreatedBy
	m.UpdatedBy = o.UpdatedBy
}

// ProductionOrderModelFromDomain creates a new persistence model from a domain Order.
func ProductionOrderModelFromDomain(o *production.Order) *ProductionOrderModel {
	m := &ProductionOrderModel{}
	m.FromDomain(o)
	return m
}

// OrderMaterialModel is the persistence model for an order material requirement.
type OrderMaterialModel struct {
	SoftDeleteModel
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_material,priority:1"`
	BOMLineID   uuid.UUID       `gorm:"type:uuid;not null"`
	MaterialID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_material,priority:2"`
	UOM         string          `gorm:"type:varchar(20)"`
	RequiredQty decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IssuedQty   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (OrderMaterialModel) TableName() string {
	return "production_order_materials"
}

// ToDomain converts the persistence model to a domain Requirement.
func (m *OrderMaterialModel) ToDomain() *production.Requirement {
	return &production.Requirement{
		BaseEntity:  m.BaseModel.ToDomain(),
		OrderID:     m.OrderID,
		BOMLineID:   m.BOMLineID,
		MaterialID:  m.MaterialID,
		UOM:         m.UOM,
		RequiredQty: m.RequiredQty,
		IssuedQty:   m.IssuedQty,
		Status:      production.RequirementStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Requirement.
func (m *OrderMaterialModel) FromDomain(r *production.Requirement) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.OrderID = r.OrderID
	m.BOMLineID = r.BOMLineID
	m.MaterialID = r.MaterialID
	m.UOM = r.UOM
	m.RequiredQty = r.RequiredQty
	m.IssuedQty = r.IssuedQty
	m.Status = string(r.Status)
}

// IssueDetailModel is the persistence model for a material issue detail.
type IssueDetailModel struct {
	BaseModel
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequirementID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID         uuid.UUID       `gorm:"type:uuid;not null"`
	PrimaryMaterialID  uuid.UUID       `gorm:"type:uuid;not null"`
	IsAlternative      bool            `gorm:"not null"`
	LotID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	LedgerEntryID      uuid.UUID       `gorm:"type:uuid;not null"`
	WarehouseID        uuid.UUID       `gorm:"type:uuid;not null"`
	BatchNumber        string          `gorm:"type:varchar(50);not null"`
	ExpiryDate         *time.Time      `gorm:"type:date"`
	ActualQty          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ConversionRatio    decimal.Decimal `gorm:"type:decimal(18,8);not null"`
	EquivalentQty      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TransactionGroupID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IssuedBy           string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (IssueDetailModel) TableName() string {
	return "material_issue_details"
}

// ToDomain converts the persistence model to a domain IssueDetail.
func (m *IssueDetailModel) ToDomain() *production.IssueDetail {
	return &production.IssueDetail{
		BaseEntity:         m.BaseModel.ToDomain(),
		OrderID:            m.OrderID,
		RequirementID:      m.RequirementID,
		MaterialID:         m.MaterialID,
		PrimaryMaterialID:  m.PrimaryMaterialID,
		IsAlternative:      m.IsAlternative,
		LotID:              m.LotID,
		LedgerEntryID:      m.LedgerEntryID,
		WarehouseID:        m.WarehouseID,
		BatchNumber:        m.BatchNumber,
		ExpiryDate:         m.ExpiryDate,
		ActualQty:          m.ActualQty,
		ConversionRatio:    m.ConversionRatio,
		EquivalentQty:      m.EquivalentQty,
		TransactionGroupID: m.TransactionGroupID,
		IssuedBy:           m.IssuedBy,
	}
}

// FromDomain populates the persistence model from a domain IssueDetail.
func (m *IssueDetailModel) FromDomain(d *production.IssueDetail) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.OrderID = d.OrderID
	m.RequirementID = d.RequirementID
	m.MaterialID = d.MaterialID
	m.PrimaryMaterialID = d.PrimaryMaterialID
	m.IsAlternative = d.IsAlternative
	m.LotID = d.LotID
	m.LedgerEntryID = d.LedgerEntryID
	m.WarehouseID = d.WarehouseID
	m.BatchNumber = d.BatchNumber
	m.ExpiryDate = d.ExpiryDate
	m.ActualQty = d.ActualQty
	m.ConversionRatio = d.ConversionRatio
	m.EquivalentQty = d.EquivalentQty
	m.TransactionGroupID = d.TransactionGroupID
	m.IssuedBy = d.IssuedBy
}

// SubstitutionModel is the persistence model for a material substitution record.
type SubstitutionModel struct {
	BaseModel
	OrderID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequirementID        uuid.UUID       `gorm:"type:uuid;not null"`
	OriginalMaterialID   uuid.UUID       `gorm:"type:uuid;not null"`
	SubstituteMaterialID uuid.UUID       `gorm:"type:uuid;not null"`
	AlternativeID        uuid.UUID       `gorm:"type:uuid"`
	ActualQty            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EquivalentQty        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ConversionRatio      decimal.Decimal `gorm:"type:decimal(18,8);not null"`
	Priority             int             `gorm:"not null"`
	TransactionGroupID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedBy            string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (SubstitutionModel) TableName() string {
	return "material_substitutions"
}

// ToDomain converts the persistence model to a domain Substitution.
func (m *SubstitutionModel) ToDomain() *production.Substitution {
	return &production.Substitution{
		BaseEntity:           m.BaseModel.ToDomain(),
		OrderID:              m.OrderID,
		RequirementID:        m.RequirementID,
		OriginalMaterialID:   m.OriginalMaterialID,
		SubstituteMaterialID: m.SubstituteMaterialID,
		AlternativeID:        m.AlternativeID,
		ActualQty:            m.ActualQty,
		EquivalentQty:        m.EquivalentQty,
		ConversionRatio:      m.ConversionRatio,
		Priority:             m.Priority,
		TransactionGroupID:   m.TransactionGroupID,
		CreatedBy:            m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Substitution.
func (m *SubstitutionModel) FromDomain(s *production.Substitution) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.OrderID = s.OrderID
	m.RequirementID = s.RequirementID
	m.OriginalMaterialID = s.OriginalMaterialID
	m.SubstituteMaterialID = s.SubstituteMaterialID
	m.AlternativeID = s.AlternativeID
	m.ActualQty = s.ActualQty
	m.EquivalentQty = s.EquivalentQty
	m.ConversionRatio = s.ConversionRatio
	m.Priority = s.Priority
	m.TransactionGroupID = s.TransactionGroupID
	m.CreatedBy = s.CreatedBy
}

// ReturnDetailModel is the persistence model for a material return detail.
type ReturnDetailModel struct {
	BaseModel
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequirementID      uuid.UUID       `gorm:"type:uuid;not null"`
	IssueDetailID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID         uuid.UUID       `gorm:"type:uuid;not null"`
	ActualQty          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EquivalentQty      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ConversionRatio    decimal.Decimal `gorm:"type:decimal(18,8);not null"`
	Condition          string          `gorm:"column:return_condition;type:varchar(20);not null"`
	Reason             string          `gorm:"type:text"`
	LedgerEntryID      *uuid.UUID      `gorm:"type:uuid"`
	TransactionGroupID uuid.UUID       `gorm:"type:uuid;not null"`
	ReturnedBy         string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ReturnDetailModel) TableName() string {
	return "material_return_details"
}

// ToDomain converts the persistence model to a domain ReturnDetail.
func (m *ReturnDetailModel) ToDomain() *production.ReturnDetail {
	return &production.ReturnDetail{
		BaseEntity:         m.BaseModel.ToDomain(),
		OrderID:            m.OrderID,
		RequirementID:      m.RequirementID,
		IssueDetailID:      m.IssueDetailID,
		MaterialID:         m.MaterialID,
		ActualQty:          m.ActualQty,
		EquivalentQty:      m.EquivalentQty,
		ConversionRatio:    m.ConversionRatio,
		Condition:          production.ReturnCondition(m.Condition),
		Reason:             m.Reason,
		LedgerEntryID:      m.LedgerEntryID,
		TransactionGroupID: m.TransactionGroupID,
		ReturnedBy:         m.ReturnedBy,
	}
}

// FromDomain populates the persistence model from a domain ReturnDetail.
func (m *ReturnDetailModel) FromDomain(r *production.ReturnDetail) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.OrderID = r.OrderID
	m.RequirementID = r.RequirementID
	m.IssueDetailID = r.IssueDetailID
	m.MaterialID = r.MaterialID
	m.ActualQty = r.ActualQty
	m.EquivalentQty = r.EquivalentQty
	m.ConversionRatio = r.ConversionRatio
	m.Condition = string(r.Condition)
	m.Reason = r.Reason
	m.LedgerEntryID = r.LedgerEntryID
	m.TransactionGroupID = r.TransactionGroupID
	m.ReturnedBy = r.ReturnedBy
}

// ProductionReceiptModel is the persistence model for a production receipt.
type ProductionReceiptModel struct {
	BaseModel
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null"`
	WarehouseID        uuid.UUID       `gorm:"type:uuid;not null"`
	BatchNumber        string          `gorm:"type:varchar(50);not null"`
	ExpiryDate         *time.Time      `gorm:"type:date"`
	ProducedQty        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QualityStatus      string          `gorm:"type:varchar(20);not null"`
	LedgerEntryID      *uuid.UUID      `gorm:"type:uuid"`
	TransactionGroupID uuid.UUID       `gorm:"type:uuid;not null"`
	Remark             string          `gorm:"type:text"`
	CreatedBy          string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ProductionReceiptModel) TableName() string {
	return "production_receipts"
}

// ToDomain converts the persistence model to a domain Receipt.
func (m *ProductionReceiptModel) ToDomain() *production.Receipt {
	return &production.Receipt{
		BaseEntity:         m.BaseModel.ToDomain(),
		OrderID:            m.OrderID,
		ProductID:          m.ProductID,
		WarehouseID:        m.WarehouseID,
		BatchNumber:        m.BatchNumber,
		ExpiryDate:         m.ExpiryDate,
		ProducedQty:        m.ProducedQty,
		QualityStatus:      production.QualityStatus(m.QualityStatus),
		LedgerEntryID:      m.LedgerEntryID,
		TransactionGroupID: m.TransactionGroupID,
		Remark:             m.Remark,
		CreatedBy:          m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Receipt.
func (m *ProductionReceiptModel) FromDomain(r *production.Receipt) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.OrderID = r.OrderID
	m.ProductID = r.ProductID
	m.WarehouseID = r.WarehouseID
	m.BatchNumber = r.BatchNumber
	m.ExpiryDate = r.ExpiryDate
	m.ProducedQty = r.ProducedQty
	m.QualityStatus = string(r.QualityStatus)
	m.LedgerEntryID = r.LedgerEntryID
	m.TransactionGroupID = r.TransactionGroupID
	m.Remark = r.Remark
	m.CreatedBy = r.CreatedBy
}

// AllModels returns every persistence model, in dependency order, for AutoMigrate in tests
func AllModels() []any {
	return []any{
		&LedgerEntryModel{},
		&BOMModel{},
		&BOMLineModel{},
		&BOMAlternativeModel{},
		&ProductionOrderModel{},
		&OrderMaterialModel{},
		&IssueDetailModel{},
		&SubstitutionModel{},
		&ReturnDetailModel{},
		&ProductionReceiptModel{},
	}
}
