package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/mes/internal/domain/production"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/erp/mes/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRequirementRepository implements production.RequirementRepository using GORM
type GormRequirementRepository struct {
	db *gorm.DB
}

// NewGormRequirementRepository creates a new GormRequirementRepository
func NewGormRequirementRepository(db *gorm.DB) *GormRequirementRepository {
	return &GormRequirementRepository{db: db}
}

// CreateBatch inserts requirements for a new order
func (r *GormRequirementRepository) CreateBatch(ctx context.Context, requirements []production.Requirement) error {
	if len(requirements) == 0 {
		return nil
	}
	rows := make([]models.OrderMaterialModel, len(requirements))
	for i := range requirements {
		rows[i].FromDomain(&requirements[i])
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create order materials: %w", err)
	}
	return nil
}

// FindByOrder returns an order's requirements
func (r *GormRequirementRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]production.Requirement, error) {
	return r.findByOrder(r.db.WithContext(ctx), orderID)
}

// FindByOrderForUpdate returns an order's requirements with row locks
func (r *GormRequirementRepository) FindByOrderForUpdate(ctx context.Context, orderID uuid.UUID) ([]production.Requirement, error) {
	return r.findByOrder(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), orderID)
}

func (r *GormRequirementRepository) findByOrder(db *gorm.DB, orderID uuid.UUID) ([]production.Requirement, error) {
	var rows []models.OrderMaterialModel
	if err := db.
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	reqs := make([]production.Requirement, len(rows))
	for i := range rows {
		reqs[i] = *rows[i].ToDomain()
	}
	return reqs, nil
}

// FindByIDForUpdate finds a requirement and locks its row
func (r *GormRequirementRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.Requirement, error) {
	var model models.OrderMaterialModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Material requirement", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save updates issued quantity and status
func (r *GormRequirementRepository) Save(ctx context.Context, requirement *production.Requirement) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderMaterialModel{}).
		Where("id = ?", requirement.ID).
		Updates(map[string]any{
			"issued_qty": requirement.IssuedQty,
			"status":     string(requirement.Status),
			"updated_at": requirement.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save order material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Material requirement", requirement.ID)
	}
	return nil
}

// GormIssueRepository implements production.IssueRepository using GORM
type GormIssueRepository struct {
	db *gorm.DB
}

// NewGormIssueRepository creates a new GormIssueRepository
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{db: db}
}

// CreateDetails inserts issue details
func (r *GormIssueRepository) CreateDetails(ctx context.Context, details []production.IssueDetail) error {
	if len(details) == 0 {
		return nil
	}
	rows := make([]models.IssueDetailModel, len(details))
	for i := range details {
		rows[i].FromDomain(&details[i])
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create issue details: %w", err)
	}
	return nil
}

// CreateSubstitutions inserts substitution records
func (r *GormIssueRepository) CreateSubstitutions(ctx context.Context, subs []production.Substitution) error {
	if len(subs) == 0 {
		return nil
	}
	rows := make([]models.SubstitutionModel, len(subs))
	for i := range subs {
		rows[i].FromDomain(&subs[i])
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create substitutions: %w", err)
	}
	return nil
}

// FindDetailByIDForUpdate finds an issue detail and locks its row, serializing
// concurrent returns against the same detail
func (r *GormIssueRepository) FindDetailByIDForUpdate(ctx context.Context, id uuid.UUID) (*production.IssueDetail, error) {
	var model models.IssueDetailModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Issue detail", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDetailsByOrder returns all issue details of an order
func (r *GormIssueRepository) FindDetailsByOrder(ctx context.Context, orderID uuid.UUID) ([]production.IssueDetail, error) {
	var rows []models.IssueDetailModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	details := make([]production.IssueDetail, len(rows))
	for i := range rows {
		details[i] = *rows[i].ToDomain()
	}
	return details, nil
}

// FindSubstitutionsByOrder returns all substitutions of an order
func (r *GormIssueRepository) FindSubstitutionsByOrder(ctx context.Context, orderID uuid.UUID) ([]production.Substitution, error) {
	var rows []models.SubstitutionModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, priority ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	subs := make([]production.Substitution, len(rows))
	for i := range rows {
		subs[i] = *rows[i].ToDomain()
	}
	return subs, nil
}

type returnedSum struct {
	IssueDetailID uuid.UUID
	Actual        decimal.Decimal
	Equivalent    decimal.Decimal
}

// SumReturnedByDetail sums prior returns against one issue detail
func (r *GormIssueRepository) SumReturnedByDetail(ctx context.Context, issueDetailID uuid.UUID) (production.ReturnedTotals, error) {
	var result returnedSum
	if err := r.db.WithContext(ctx).
		Model(&models.ReturnDetailModel{}).
		Select("COALESCE(SUM(actual_qty), 0) as actual, COALESCE(SUM(equivalent_qty), 0) as equivalent").
		Where("issue_detail_id = ?", issueDetailID).
		Scan(&result).Error; err != nil {
		return production.ReturnedTotals{}, err
	}
	return production.ReturnedTotals{Actual: result.Actual, Equivalent: result.Equivalent}, nil
}

// SumReturnedByOrder sums returns per issue detail of an order
func (r *GormIssueRepository) SumReturnedByOrder(ctx context.Context, orderID uuid.UUID) (map[uuid.UUID]production.ReturnedTotals, error) {
	var rows []returnedSum
	if err := r.db.WithContext(ctx).
		Model(&models.ReturnDetailModel{}).
		Select("issue_detail_id, SUM(actual_qty) as actual, SUM(equivalent_qty) as equivalent").
		Where("order_id = ?", orderID).
		Group("issue_detail_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]production.ReturnedTotals, len(rows))
	for _, row := range rows {
		totals[row.IssueDetailID] = production.ReturnedTotals{Actual: row.Actual, Equivalent: row.Equivalent}
	}
	return totals, nil
}

// CreateReturn inserts a return detail
func (r *GormIssueRepository) CreateReturn(ctx context.Context, ret *production.ReturnDetail) error {
	model := &models.ReturnDetailModel{}
	model.FromDomain(ret)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create return detail: %w", err)
	}
	return nil
}

// FindReturnsByOrder returns all return details of an order
func (r *GormIssueRepository) FindReturnsByOrder(ctx context.Context, orderID uuid.UUID) ([]production.ReturnDetail, error) {
	var rows []models.ReturnDetailModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	returns := make([]production.ReturnDetail, len(rows))
	for i := range rows {
		returns[i] = *rows[i].ToDomain()
	}
	return returns, nil
}

var (
	_ production.RequirementRepository = (*GormRequirementRepository)(nil)
	_ production.IssueRepository       = (*GormIssueRepository)(nil)
)
