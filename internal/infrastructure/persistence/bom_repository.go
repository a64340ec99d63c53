package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/erp/mes/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBOMRepository implements bom.Repository using GORM
type GormBOMRepository struct {
	db *gorm.DB
}

// NewGormBOMRepository creates a new GormBOMRepository
func NewGormBOMRepository(db *gorm.DB) *GormBOMRepository {
	return &GormBOMRepository{db: db}
}

// GetBOM finds a BOM header by ID
func (r *GormBOMRepository) GetBOM(ctx context.Context, id uuid.UUID) (*bom.BOM, error) {
	var model models.BOMModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("BOM", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetLines returns the lines of a BOM ordered by sequence
func (r *GormBOMRepository) GetLines(ctx context.Context, bomID uuid.UUID) ([]bom.Line, error) {
	var rows []models.BOMLineModel
	if err := r.db.WithContext(ctx).
		Where("bom_id = ?", bomID).
		Order("sequence ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	lines := make([]bom.Line, len(rows))
	for i := range rows {
		lines[i] = *rows[i].ToDomain()
	}
	return lines, nil
}

// GetLine finds a single BOM line
func (r *GormBOMRepository) GetLine(ctx context.Context, lineID uuid.UUID) (*bom.Line, error) {
	var model models.BOMLineModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("BOM line", lineID)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetAlternatives returns active alternatives of a line by ascending priority
func (r *GormBOMRepository) GetAlternatives(ctx context.Context, lineID uuid.UUID) ([]bom.Alternative, error) {
	var rows []models.BOMAlternativeModel
	if err := r.db.WithContext(ctx).
		Where("line_id = ? AND is_active = ?", lineID, true).
		Order("priority ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	alts := make([]bom.Alternative, len(rows))
	for i := range rows {
		alts[i] = *rows[i].ToDomain()
	}
	return alts, nil
}

// Save creates or replaces a BOM with its lines and their alternatives in one transaction.
// Lines and alternatives no longer present are soft-deleted.
func (r *GormBOMRepository) Save(ctx context.Context, b *bom.BOM, alternatives map[uuid.UUID][]bom.Alternative) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := &models.BOMModel{}
		header.FromDomain(b)
		if err := tx.Save(header).Error; err != nil {
			return fmt.Errorf("failed to save BOM: %w", err)
		}

		lineIDs := make([]uuid.UUID, 0, len(b.Lines))
		for i := range b.Lines {
			line := b.Lines[i]
			line.BOMID = b.ID
			lm := &models.BOMLineModel{}
			lm.FromDomain(&line)
			if err := tx.Save(lm).Error; err != nil {
				return fmt.Errorf("failed to save BOM line: %w", err)
			}
			lineIDs = append(lineIDs, line.ID)

			altIDs := make([]uuid.UUID, 0, len(alternatives[line.ID]))
			for j := range alternatives[line.ID] {
				alt := alternatives[line.ID][j]
				alt.LineID = line.ID
				am := &models.BOMAlternativeModel{}
				am.FromDomain(&alt)
				if err := tx.Save(am).Error; err != nil {
					return fmt.Errorf("failed to save BOM alternative: %w", err)
				}
				altIDs = append(altIDs, alt.ID)
			}
			stale := tx.Where("line_id = ?", line.ID)
			if len(altIDs) > 0 {
				stale = stale.Where("id NOT IN ?", altIDs)
			}
			if err := stale.Delete(&models.BOMAlternativeModel{}).Error; err != nil {
				return err
			}
		}

		stale := tx.Where("bom_id = ?", b.ID)
		if len(lineIDs) > 0 {
			stale = stale.Where("id NOT IN ?", lineIDs)
		}
		return stale.Delete(&models.BOMLineModel{}).Error
	})
}

// Ensure GormBOMRepository implements bom.Repository
var _ bom.Repository = (*GormBOMRepository)(nil)
