package models

import (
	"time"

	"github.com/erp/mes/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryModel is the persistence model for inventory ledger entries.
// Stock-in rows are lots; remaining is the only column ever updated.
type LedgerEntryModel struct {
	BaseModel
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_lot_lookup,priority:1"`
	WarehouseID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_lot_lookup,priority:2"`
	BatchNumber        string          `gorm:"type:varchar(50);not null;index"`
	ExpiryDate         *time.Time      `gorm:"type:date;index:idx_ledger_lot_lookup,priority:3"`
	Quantity           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Remaining          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EntryType          string          `gorm:"type:varchar(30);not null;index"`
	SourceType         string          `gorm:"type:varchar(30);not null;index:idx_ledger_source,priority:1"`
	SourceID           uuid.UUID       `gorm:"type:uuid;index:idx_ledger_source,priority:2"`
	TransactionGroupID uuid.UUID       `gorm:"type:uuid;index"`
	SourceLotID        *uuid.UUID      `gorm:"type:uuid;index"`
	Actor              string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "inventory_ledger"
}

// ToDomain converts the persistence model to a domain LedgerEntry.
func (m *LedgerEntryModel) ToDomain() *inventory.LedgerEntry {
	return &inventory.LedgerEntry{
		BaseEntity:         m.BaseModel.ToDomain(),
		ProductID:          m.ProductID,
		WarehouseID:        m.WarehouseID,
		BatchNumber:        m.BatchNumber,
		ExpiryDate:         m.ExpiryDate,
		Quantity:           m.Quantity,
		Remaining:          m.Remaining,
		EntryType:          inventory.EntryType(m.EntryType),
		SourceType:         inventory.SourceType(m.SourceType),
		SourceID:           m.SourceID,
		TransactionGroupID: m.TransactionGroupID,
		SourceLotID:        m.SourceLotID,
		Actor:              m.Actor,
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry.
func (m *LedgerEntryModel) FromDomain(e *inventory.LedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ProductID = e.ProductID
	m.WarehouseID = e.WarehouseID
	m.BatchNumber = e.BatchNumber
	m.ExpiryDate = e.ExpiryDate
	m.Quantity = e.Quantity
	m.Remaining = e.Remaining
	m.EntryType = string(e.EntryType)
	m.SourceType = string(e.SourceType)
	m.SourceID = e.SourceID
	m.TransactionGroupID = e.TransactionGroupID
	m.SourceLotID = e.SourceLotID
	m.Actor = e.Actor
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain LedgerEntry.
func LedgerEntryModelFromDomain(e *inventory.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}
