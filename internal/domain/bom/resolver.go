package bom

import (
	"context"
	"sort"

	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ResolvedAlternative is an alternative with its conversion ratio against the primary
type ResolvedAlternative struct {
	AlternativeID   uuid.UUID
	MaterialID      uuid.UUID
	QuantityPerUnit decimal.Decimal
	ScrapRate       decimal.Decimal
	Priority        int
	ConversionRatio decimal.Decimal
}

// MaterialRequirement is the resolved demand for one BOM line
type MaterialRequirement struct {
	LineID          uuid.UUID
	MaterialID      uuid.UUID
	UOM             string
	QuantityPerUnit decimal.Decimal
	ScrapRate       decimal.Decimal
	RequiredQty     decimal.Decimal
	Alternatives    []ResolvedAlternative
}

// Resolution is the result of resolving a BOM for a planned quantity
type Resolution struct {
	BOM          *BOM
	Requirements []MaterialRequirement
}

// Resolver turns a BOM and a planned quantity into material requirements
type Resolver struct {
	repo Repository
}

// NewResolver creates a resolver backed by repo
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve computes required quantities per BOM line:
//
//	required = round4(planned / output_qty * line.quantity * (1 + scrap/100))
//
// and attaches each line's active alternatives in ascending priority.
func (r *Resolver) Resolve(ctx context.Context, bomID uuid.UUID, plannedQty decimal.Decimal) (*Resolution, error) {
	if !plannedQty.IsPositive() {
		return nil, shared.NewValidationError("Planned quantity must be positive")
	}

	b, err := r.repo.GetBOM(ctx, bomID)
	if err != nil {
		return nil, err
	}
	if !b.IsActive {
		return nil, shared.NewValidationError("BOM %s is not active", b.Code)
	}
	if !b.OutputQty.IsPositive() {
		return nil, shared.NewConfigurationError("BOM %s has non-positive output quantity %s", b.Code, b.OutputQty)
	}

	lines, err := r.repo.GetLines(ctx, bomID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewConfigurationError("BOM %s has no lines", b.Code)
	}

	multiplier := plannedQty.Div(b.OutputQty)
	requirements := make([]MaterialRequirement, 0, len(lines))
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewConfigurationError(
				"BOM %s line for material %s has non-positive quantity", b.Code, line.MaterialID)
		}
		alts, err := r.resolveAlternatives(ctx, line)
		if err != nil {
			return nil, err
		}
		required := multiplier.
			Mul(line.Quantity).
			Mul(decimal.NewFromInt(1).Add(line.ScrapRate.Div(hundred)))

		requirements = append(requirements, MaterialRequirement{
			LineID:          line.ID,
			MaterialID:      line.MaterialID,
			UOM:             line.UOM,
			QuantityPerUnit: line.Quantity,
			ScrapRate:       line.ScrapRate,
			RequiredQty:     shared.RoundQuantity(required),
			Alternatives:    alts,
		})
	}

	return &Resolution{BOM: b, Requirements: requirements}, nil
}

// LineAlternatives resolves the alternatives of a single BOM line, as needed at issue time
func (r *Resolver) LineAlternatives(ctx context.Context, lineID uuid.UUID) ([]ResolvedAlternative, error) {
	line, err := r.repo.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	return r.resolveAlternatives(ctx, *line)
}

func (r *Resolver) resolveAlternatives(ctx context.Context, line Line) ([]ResolvedAlternative, error) {
	alts, err := r.repo.GetAlternatives(ctx, line.ID)
	if err != nil {
		return nil, err
	}

	resolved := make([]ResolvedAlternative, 0, len(alts))
	for _, alt := range alts {
		if !alt.IsActive {
			continue
		}
		ratio, err := ConversionRatio(line, alt)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, ResolvedAlternative{
			AlternativeID:   alt.ID,
			MaterialID:      alt.MaterialID,
			QuantityPerUnit: alt.Quantity,
			ScrapRate:       alt.ScrapRate,
			Priority:        alt.Priority,
			ConversionRatio: ratio,
		})
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Priority < resolved[j].Priority
	})
	return resolved, nil
}
