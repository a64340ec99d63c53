// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: Base persistence models (BaseModel, SoftDeleteModel, AggregateModel)
// - inventory.go: Inventory ledger (lots and stock movements)
// - bom.go: Bills of materials, lines and alternatives
// - production.go: Orders, requirements, issue/return details, substitutions, receipts
package models
