package production

import (
	"context"
	"errors"
	"sort"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LotStore is the slice of the inventory ledger the allocation engine needs.
// It must be bound to the caller's transaction so that FindLots row locks are
// held until the whole issue operation commits or rolls back.
type LotStore interface {
	FindLots(ctx context.Context, productID, warehouseID uuid.UUID) ([]inventory.LedgerEntry, error)
	DecrementRemaining(ctx context.Context, lotID uuid.UUID, qty decimal.Decimal) error
	InsertLedgerEntry(ctx context.Context, entry *inventory.LedgerEntry) error
}

// AllocationRequest asks the engine to issue Quantity (equivalent units of the
// requirement's primary material) from WarehouseID
type AllocationRequest struct {
	Requirement        *Requirement
	Quantity           decimal.Decimal
	WarehouseID        uuid.UUID
	Alternatives       []bom.ResolvedAlternative
	TransactionGroupID uuid.UUID
	Actor              string
	// RequireFull is false when the caller passed an explicit (capped) quantity.
	// With RequireFull set, finding nothing at all is an InsufficientStock error.
	RequireFull bool
}

// AllocationResult is what one requirement received in one issue operation
type AllocationResult struct {
	RequirementID    uuid.UUID
	MaterialID       uuid.UUID
	RequestedQty     decimal.Decimal
	AllocatedQty     decimal.Decimal // equivalent
	ShortfallQty     decimal.Decimal // equivalent
	Details          []IssueDetail
	Substitutions    []Substitution
	LedgerEntries    []inventory.LedgerEntry
	ConflictsSkipped int
}

// IsPartial returns true if the requested quantity was not fully satisfied
func (r *AllocationResult) IsPartial() bool {
	return r.ShortfallQty.IsPositive()
}

// AllocationEngine allocates physical lots to a material requirement: FEFO over
// the primary material first, then over each alternative in ascending priority.
type AllocationEngine struct {
	logger *zap.Logger
}

// NewAllocationEngine creates an allocation engine
func NewAllocationEngine(logger *zap.Logger) *AllocationEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocationEngine{logger: logger}
}

// source is one material the engine may draw from
type source struct {
	materialID    uuid.UUID
	alternativeID uuid.UUID
	ratio         decimal.Decimal
	priority      int
	isAlternative bool
}

// Allocate runs the allocation and applies the issued equivalent quantity to
// req.Requirement. Lot decrements and stock-out entries go through store.
// A lot whose conditional decrement fails is logged and skipped.
func (e *AllocationEngine) Allocate(ctx context.Context, store LotStore, req AllocationRequest) (*AllocationResult, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	requirement := req.Requirement
	requested := shared.RoundQuantity(req.Quantity)
	result := &AllocationResult{
		RequirementID: requirement.ID,
		MaterialID:    requirement.MaterialID,
		RequestedQty:  requested,
		AllocatedQty:  decimal.Zero,
	}

	remaining := requested
	sources := e.sources(req)
	for _, src := range sources {
		if !remaining.IsPositive() {
			break
		}
		actual, equivalent, err := e.drawFromSource(ctx, store, req, src, remaining, result)
		if err != nil {
			return nil, err
		}
		if src.isAlternative && actual.IsPositive() {
			result.Substitutions = append(result.Substitutions, Substitution{
				BaseEntity:           shared.NewBaseEntity(),
				OrderID:              requirement.OrderID,
				RequirementID:        requirement.ID,
				OriginalMaterialID:   requirement.MaterialID,
				SubstituteMaterialID: src.materialID,
				AlternativeID:        src.alternativeID,
				ActualQty:            actual,
				EquivalentQty:        equivalent,
				ConversionRatio:      src.ratio,
				Priority:             src.priority,
				TransactionGroupID:   req.TransactionGroupID,
				CreatedBy:            req.Actor,
			})
		}
		remaining = remaining.Sub(equivalent)
	}

	result.AllocatedQty = requested.Sub(remaining)
	result.ShortfallQty = remaining

	if result.AllocatedQty.IsZero() {
		if req.RequireFull {
			return nil, shared.NewInsufficientStockError(requirement.MaterialID)
		}
		return result, nil
	}

	if result.IsPartial() {
		e.logger.Info("partial material allocation",
			zap.String("requirement_id", requirement.ID.String()),
			zap.String("material_id", requirement.MaterialID.String()),
			zap.String("requested", requested.String()),
			zap.String("allocated", result.AllocatedQty.String()),
		)
	}

	requirement.ApplyIssue(result.AllocatedQty)
	return result, nil
}

func (e *AllocationEngine) validate(req AllocationRequest) error {
	if req.Requirement == nil {
		return shared.NewValidationError("Requirement is required")
	}
	if !shared.RoundQuantity(req.Quantity).IsPositive() {
		return shared.NewValidationError("Issue quantity must be positive")
	}
	if req.WarehouseID == uuid.Nil {
		return shared.NewValidationError("Warehouse ID cannot be empty")
	}
	for _, alt := range req.Alternatives {
		if !alt.ConversionRatio.IsPositive() {
			return shared.NewConfigurationError(
				"Alternative material %s has zero conversion ratio", alt.MaterialID)
		}
	}
	return nil
}

// sources returns the primary material followed by alternatives by ascending priority
func (e *AllocationEngine) sources(req AllocationRequest) []source {
	alts := make([]bom.ResolvedAlternative, len(req.Alternatives))
	copy(alts, req.Alternatives)
	sort.SliceStable(alts, func(i, j int) bool {
		return alts[i].Priority < alts[j].Priority
	})

	sources := make([]source, 0, len(alts)+1)
	sources = append(sources, source{
		materialID: req.Requirement.MaterialID,
		ratio:      decimal.NewFromInt(1),
	})
	for _, alt := range alts {
		sources = append(sources, source{
			materialID:    alt.MaterialID,
			alternativeID: alt.AlternativeID,
			ratio:         alt.ConversionRatio,
			priority:      alt.Priority,
			isAlternative: true,
		})
	}
	return sources
}

// drawFromSource consumes lots of one material in FEFO order until remainingEq
// (equivalent units) is covered or the lots run out. Returns the actual and
// equivalent quantities drawn.
func (e *AllocationEngine) drawFromSource(
	ctx context.Context,
	store LotStore,
	req AllocationRequest,
	src source,
	remainingEq decimal.Decimal,
	result *AllocationResult,
) (decimal.Decimal, decimal.Decimal, error) {
	lots, err := store.FindLots(ctx, src.materialID, req.WarehouseID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	lots = inventory.FilterAvailable(lots)
	inventory.SortFEFO(lots)

	// Rounded up so the physical draw never leaves the equivalent short.
	neededActual := shared.CeilQuantity(remainingEq.Mul(src.ratio))
	totalActual := decimal.Zero
	totalEq := decimal.Zero

	for i := range lots {
		if !neededActual.IsPositive() || !remainingEq.IsPositive() {
			break
		}
		lot := &lots[i]
		take := shared.MinDecimal(lot.Remaining, neededActual)
		eq := e.equivalentFor(src, totalActual.Add(take), totalEq, remainingEq, take.Equal(neededActual))

		if err := store.DecrementRemaining(ctx, lot.ID, take); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				result.ConflictsSkipped++
				e.logger.Warn("lot changed concurrently, trying next lot",
					zap.String("lot_id", lot.ID.String()),
					zap.String("material_id", src.materialID.String()),
					zap.String("requested", take.String()),
				)
				continue
			}
			return decimal.Zero, decimal.Zero, err
		}
		lot.Draw(take)

		out, err := inventory.NewStockOutEntry(lot, take,
			inventory.SourceTypeProductionOrder, req.Requirement.OrderID, req.TransactionGroupID, req.Actor)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if err := store.InsertLedgerEntry(ctx, out); err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		result.LedgerEntries = append(result.LedgerEntries, *out)
		result.Details = append(result.Details, IssueDetail{
			BaseEntity:         shared.NewBaseEntity(),
			OrderID:            req.Requirement.OrderID,
			RequirementID:      req.Requirement.ID,
			MaterialID:         src.materialID,
			PrimaryMaterialID:  req.Requirement.MaterialID,
			IsAlternative:      src.isAlternative,
			LotID:              lot.ID,
			LedgerEntryID:      out.ID,
			WarehouseID:        req.WarehouseID,
			BatchNumber:        lot.BatchNumber,
			ExpiryDate:         lot.ExpiryDate,
			ActualQty:          take,
			ConversionRatio:    src.ratio,
			EquivalentQty:      eq,
			TransactionGroupID: req.TransactionGroupID,
			IssuedBy:           req.Actor,
		})

		neededActual = neededActual.Sub(take)
		remainingEq = remainingEq.Sub(eq)
		totalActual = totalActual.Add(take)
		totalEq = totalEq.Add(eq)
	}

	return totalActual, totalEq, nil
}

// equivalentFor returns the equivalent credit of one lot draw. It is derived
// from the cumulative actual quantity so per-lot rounding never accumulates,
// and the draw that covers neededActual closes the remainder exactly.
func (e *AllocationEngine) equivalentFor(src source, cumActual, creditedEq, remainingEq decimal.Decimal, closesNeed bool) decimal.Decimal {
	if closesNeed {
		return remainingEq
	}
	eq := shared.RoundQuantity(cumActual.Div(src.ratio)).Sub(creditedEq)
	if eq.IsNegative() {
		return decimal.Zero
	}
	return shared.MinDecimal(eq, remainingEq)
}
