package production

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/mes/internal/domain/bom"
	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/production"
	"github.com/erp/mes/internal/domain/shared"
	"github.com/erp/mes/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultIdempotencyTTL is how long an issue idempotency key is remembered
const DefaultIdempotencyTTL = 24 * time.Hour

// Config holds the production rules the service applies
type Config struct {
	// OverProductionTolerance caps cumulative produced/planned, e.g. 1.10
	OverProductionTolerance decimal.Decimal
	// IdempotencyTTL is how long issue idempotency keys are held
	IdempotencyTTL time.Duration
}

// DefaultConfig returns the default production rules
func DefaultConfig() Config {
	return Config{
		OverProductionTolerance: production.DefaultOverProductionTolerance,
		IdempotencyTTL:          DefaultIdempotencyTTL,
	}
}

// Service handles production order operations: order lifecycle, material
// issue with FEFO allocation, returns and completion.
type Service struct {
	txScope     TransactionScope
	repos       Repositories
	engine      *production.AllocationEngine
	reconciler  *production.ReturnReconciler
	completion  *production.CompletionService
	idempotency shared.IdempotencyStore
	metrics     *telemetry.ProductionMetrics
	cfg         Config
	logger      *zap.Logger
}

// NewService creates a new production Service. repos serves reads outside
// transactions; every mutation runs inside txScope.
func NewService(txScope TransactionScope, repos Repositories, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = DefaultIdempotencyTTL
	}
	return &Service{
		txScope:    txScope,
		repos:      repos,
		engine:     production.NewAllocationEngine(logger.Named("allocation")),
		reconciler: production.NewReturnReconciler(),
		completion: production.NewCompletionService(cfg.OverProductionTolerance),
		cfg:        cfg,
		logger:     logger,
	}
}

// SetIdempotencyStore enables duplicate-request protection for material issues
func (s *Service) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetMetrics enables production metrics collection
func (s *Service) SetMetrics(m *telemetry.ProductionMetrics) {
	s.metrics = m
}

// CreateOrder resolves the BOM for the planned quantity and stores a DRAFT
// order together with one requirement per BOM line
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest, actor string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "create_order",
		telemetry.WithAttribute("bom_id", req.BOMID),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, req.PlannedQty),
	)
	defer span.End()

	if !shared.RoundQuantity(req.PlannedQty).IsPositive() {
		return nil, shared.NewValidationError("Planned quantity must be positive")
	}
	orderNumber := strings.TrimSpace(req.OrderNumber)
	if orderNumber == "" {
		orderNumber = generateOrderNumber()
	}

	var response OrderResponse
	err := s.txScope.Execute(ctx, func(repos Repositories) error {
		exists, err := repos.Orders().ExistsByOrderNumber(ctx, orderNumber)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewValidationError("Order number %s already exists", orderNumber)
		}

		resolution, err := bom.NewResolver(repos.BOMs()).Resolve(ctx, req.BOMID, req.PlannedQty)
		if err != nil {
			return err
		}
		productID := resolution.BOM.ProductID
		if req.ProductID != nil && *req.ProductID != productID {
			return shared.NewValidationError("BOM %s does not produce product %s", resolution.BOM.Code, *req.ProductID)
		}

		order, err := production.NewOrder(orderNumber, productID, req.BOMID, resolution.BOM.Type,
			req.PlannedQty, req.SourceWarehouseID, req.TargetWarehouseID, actor)
		if err != nil {
			return err
		}
		order.Remark = req.Remark

		requirements := make([]production.Requirement, 0, len(resolution.Requirements))
		for _, mr := range resolution.Requirements {
			r, err := production.NewRequirement(order.ID, mr.LineID, mr.MaterialID, mr.UOM, mr.RequiredQty)
			if err != nil {
				return err
			}
			requirements = append(requirements, *r)
		}

		if err := repos.Orders().Create(ctx, order); err != nil {
			return err
		}
		if err := repos.Requirements().CreateBatch(ctx, requirements); err != nil {
			return err
		}

		response = ToOrderResponse(order)
		response.Requirements = ToRequirementResponses(requirements)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, response.ID,
		telemetry.SpanAttrOrderNumber, response.OrderNumber,
	)

	s.logger.Info("production order created",
		zap.String("order_id", response.ID.String()),
		zap.String("order_number", response.OrderNumber),
		zap.Int("requirements", len(response.Requirements)),
		zap.String("actor", actor),
	)
	return &response, nil
}

// ConfirmOrder moves a DRAFT order to CONFIRMED
func (s *Service) ConfirmOrder(ctx context.Context, orderID uuid.UUID, actor string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "confirm_order",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID))
	defer span.End()

	var response OrderResponse
	err := s.txScope.Execute(ctx, func(repos Repositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Confirm(actor); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		response = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &response, nil
}

// CancelOrder cancels an order that holds no net issued material
func (s *Service) CancelOrder(ctx context.Context, orderID uuid.UUID, actor string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "cancel_order",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID))
	defer span.End()

	var response OrderResponse
	err := s.txScope.Execute(ctx, func(repos Repositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		requirements, err := repos.Requirements().FindByOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		hasNetIssued := false
		for i := range requirements {
			if requirements[i].IssuedQty.IsPositive() {
				hasNetIssued = true
				break
			}
		}
		if err := order.Cancel(actor, hasNetIssued); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		response = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("production order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("actor", actor),
	)
	return &response, nil
}

// issuePlan is one requirement to allocate in an issue operation
type issuePlan struct {
	requirement *production.Requirement
	quantity    decimal.Decimal
	requireFull bool
}

// IssueMaterials allocates stock to the order's requirements in one
// transaction. Without items every requirement receives its remaining
// quantity; with items only the named materials are issued, each capped at
// its remaining quantity. Partial allocation is reported, not rejected.
func (s *Service) IssueMaterials(ctx context.Context, orderID uuid.UUID, req IssueMaterialsRequest, actor string) (*IssueMaterialsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "issue_materials",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID),
		telemetry.WithAttribute("items", len(req.Items)),
	)
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.RecordDuration(ctx, "issue_materials", time.Since(start)) }()

	if err := validateIssueItems(req.Items); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	key, err := s.reserveIdempotencyKey(ctx, orderID, req.IdempotencyKey)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordIssueFailure(ctx, errorCode(err))
		return nil, err
	}

	response, err := s.issueMaterials(ctx, orderID, req, actor)
	if err != nil {
		s.releaseIdempotencyKey(ctx, key)
		telemetry.RecordError(span, err)
		s.metrics.RecordIssueFailure(ctx, errorCode(err))
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrTransactionGroupID, response.TransactionGroupID,
		telemetry.SpanAttrPartial, response.Partial,
		telemetry.SpanAttrOrderStatus, response.OrderStatus,
	)
	s.metrics.RecordIssue(ctx, issueOutcome(response))

	s.logger.Info("materials issued",
		zap.String("order_id", orderID.String()),
		zap.String("transaction_group_id", response.TransactionGroupID.String()),
		zap.Int("requirements", len(response.Results)),
		zap.Bool("partial", response.Partial),
		zap.String("actor", actor),
	)
	return response, nil
}

func (s *Service) issueMaterials(ctx context.Context, orderID uuid.UUID, req IssueMaterialsRequest, actor string) (*IssueMaterialsResponse, error) {
	groupID := uuid.New()
	response := &IssueMaterialsResponse{
		OrderID:            orderID,
		TransactionGroupID: groupID,
	}

	err := s.txScope.Execute(ctx, func(repos Repositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.CanIssue() {
			return shared.NewInvalidStateError("Cannot issue material for order in %s status", order.Status)
		}
		loadedVersion := order.Version

		requirements, err := repos.Requirements().FindByOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		plans, err := planIssue(requirements, req.Items)
		if err != nil {
			return err
		}

		warehouseID := order.SourceWarehouseID
		if req.WarehouseID != nil {
			warehouseID = *req.WarehouseID
		}

		resolver := bom.NewResolver(repos.BOMs())
		total := decimal.Zero
		for _, plan := range plans {
			alternatives, err := resolver.LineAlternatives(ctx, plan.requirement.BOMLineID)
			if err != nil {
				return err
			}
			result, err := s.engine.Allocate(ctx, repos.Ledger(), production.AllocationRequest{
				Requirement:        plan.requirement,
				Quantity:           plan.quantity,
				WarehouseID:        warehouseID,
				Alternatives:       alternatives,
				TransactionGroupID: groupID,
				Actor:              actor,
				RequireFull:        plan.requireFull,
			})
			if err != nil {
				return err
			}

			if result.AllocatedQty.IsPositive() {
				if err := repos.Issues().CreateDetails(ctx, result.Details); err != nil {
					return err
				}
				if err := repos.Issues().CreateSubstitutions(ctx, result.Substitutions); err != nil {
					return err
				}
				if err := repos.Requirements().Save(ctx, plan.requirement); err != nil {
					return err
				}
			}
			total = total.Add(result.AllocatedQty)
			response.Results = append(response.Results, toMaterialIssueResult(result, plan.requirement))
			if result.IsPartial() {
				response.Partial = true
			}
		}

		if !total.IsPositive() {
			return shared.NewInsufficientStockError(plans[0].requirement.MaterialID)
		}

		if err := order.StartProduction(actor); err != nil {
			return err
		}
		if order.Version != loadedVersion {
			if err := repos.Orders().Save(ctx, order); err != nil {
				return err
			}
		}
		response.OrderStatus = order.Status.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// planIssue decides how much of each requirement to allocate
func planIssue(requirements []production.Requirement, items []IssueItem) ([]issuePlan, error) {
	var plans []issuePlan
	if len(items) == 0 {
		for i := range requirements {
			r := &requirements[i]
			if remaining := r.Remaining(); remaining.IsPositive() {
				plans = append(plans, issuePlan{requirement: r, quantity: remaining, requireFull: true})
			}
		}
		if len(plans) == 0 {
			return nil, shared.NewValidationError("All material requirements are fully issued")
		}
		return plans, nil
	}

	byMaterial := make(map[uuid.UUID]*production.Requirement, len(requirements))
	for i := range requirements {
		byMaterial[requirements[i].MaterialID] = &requirements[i]
	}
	for _, item := range items {
		r, ok := byMaterial[item.MaterialID]
		if !ok {
			return nil, shared.NewValidationError("Material %s is not required by this order", item.MaterialID)
		}
		qty := shared.MinDecimal(shared.RoundQuantity(item.Quantity), r.Remaining())
		if !qty.IsPositive() {
			continue
		}
		plans = append(plans, issuePlan{requirement: r, quantity: qty})
	}
	if len(plans) == 0 {
		return nil, shared.NewValidationError("Requested materials are already fully issued")
	}
	return plans, nil
}

func validateIssueItems(items []IssueItem) error {
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.MaterialID == uuid.Nil {
			return shared.NewValidationError("Material ID cannot be empty")
		}
		if !shared.RoundQuantity(item.Quantity).IsPositive() {
			return shared.NewValidationError("Issue quantity for material %s must be positive", item.MaterialID)
		}
		if _, dup := seen[item.MaterialID]; dup {
			return shared.NewValidationError("Material %s appears more than once", item.MaterialID)
		}
		seen[item.MaterialID] = struct{}{}
	}
	return nil
}

// reserveIdempotencyKey returns the store key held for this request, or "" when
// the request carries no key or protection is disabled
func (s *Service) reserveIdempotencyKey(ctx context.Context, orderID uuid.UUID, clientKey string) (string, error) {
	clientKey = strings.TrimSpace(clientKey)
	if clientKey == "" || s.idempotency == nil {
		return "", nil
	}
	key := fmt.Sprintf("issue:%s:%s", orderID, clientKey)
	ok, err := s.idempotency.Reserve(ctx, key, s.cfg.IdempotencyTTL)
	if err != nil {
		return "", fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if !ok {
		return "", shared.NewDomainError(shared.CodeDuplicateRequest,
			fmt.Sprintf("Issue request %s has already been submitted for this order", clientKey))
	}
	return key, nil
}

func (s *Service) releaseIdempotencyKey(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(err))
	}
}

// ReturnMaterial hands material back against an issue detail in one transaction
func (s *Service) ReturnMaterial(ctx context.Context, req ReturnMaterialRequest, actor string) (*ReturnResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "return_material",
		telemetry.WithAttribute(telemetry.SpanAttrIssueDetailID, req.IssueDetailID),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, req.Quantity),
		telemetry.WithAttribute("condition", req.Condition),
	)
	defer span.End()

	domainReq := production.ReturnRequest{
		IssueDetailID:      req.IssueDetailID,
		Quantity:           req.Quantity,
		Condition:          production.ReturnCondition(req.Condition),
		Reason:             req.Reason,
		TransactionGroupID: uuid.New(),
		Actor:              actor,
	}
	if err := s.reconciler.ValidateRequest(domainReq); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var response ReturnResponse
	err := s.txScope.Execute(ctx, func(repos Repositories) error {
		detail, err := repos.Issues().FindDetailByIDForUpdate(ctx, req.IssueDetailID)
		if err != nil {
			return err
		}
		order, err := repos.Orders().FindByIDForUpdate(ctx, detail.OrderID)
		if err != nil {
			return err
		}
		if !order.CanReturn() {
			return shared.NewInvalidStateError("Cannot return material for order in %s status", order.Status)
		}
		requirement, err := repos.Requirements().FindByIDForUpdate(ctx, detail.RequirementID)
		if err != nil {
			return err
		}
		returned, err := repos.Issues().SumReturnedByDetail(ctx, detail.ID)
		if err != nil {
			return err
		}

		outcome, err := s.reconciler.Reconcile(detail, returned, requirement, domainReq)
		if err != nil {
			return err
		}
		if err := repos.Issues().CreateReturn(ctx, outcome.Detail); err != nil {
			return err
		}
		if outcome.Lot != nil {
			if err := repos.Ledger().InsertLedgerEntry(ctx, outcome.Lot); err != nil {
				return err
			}
		}
		if err := repos.Requirements().Save(ctx, requirement); err != nil {
			return err
		}

		response = ToReturnResponse(outcome.Detail)
		response.RequirementStatus = requirement.Status.String()
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.RecordReturn(ctx, response.Condition, response.ActualQty)

	s.logger.Info("material returned",
		zap.String("issue_detail_id", req.IssueDetailID.String()),
		zap.String("quantity", response.ActualQty.String()),
		zap.String("condition", response.Condition),
		zap.String("actor", actor),
	)
	return &response, nil
}

// CompleteProduction reports finished goods. PASSED goods enter stock at the
// order's target warehouse; expiry defaults to the one derived from the lots
// consumed by the order.
func (s *Service) CompleteProduction(ctx context.Context, orderID uuid.UUID, req CompleteProductionRequest, actor string) (*ReceiptResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "complete_production",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, req.ProducedQty),
	)
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.RecordDuration(ctx, "complete_production", time.Since(start)) }()

	quality := production.QualityStatus(req.QualityStatus)
	if req.QualityStatus == "" {
		quality = production.QualityStatusPassed
	}
	domainReq := production.CompletionRequest{
		ProducedQty:        req.ProducedQty,
		BatchNumber:        req.BatchNumber,
		QualityStatus:      quality,
		ExpiryDate:         req.ExpiryDate,
		Remark:             req.Remark,
		TransactionGroupID: uuid.New(),
		Actor:              actor,
	}
	if err := s.completion.ValidateRequest(domainReq); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var response ReceiptResponse
	err := s.txScope.Execute(ctx, func(repos Repositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		var derived *time.Time
		if domainReq.ExpiryDate == nil {
			details, err := repos.Issues().FindDetailsByOrder(ctx, orderID)
			if err != nil {
				return err
			}
			returned, err := repos.Issues().SumReturnedByOrder(ctx, orderID)
			if err != nil {
				return err
			}
			derived = production.DeriveExpiry(order.BOMType, details, returned)
		}

		outcome, err := s.completion.Complete(order, domainReq, derived)
		if err != nil {
			return err
		}
		if err := repos.Receipts().Create(ctx, outcome.Receipt); err != nil {
			return err
		}
		if outcome.Lot != nil {
			if err := repos.Ledger().InsertLedgerEntry(ctx, outcome.Lot); err != nil {
				return err
			}
		}
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}

		response = ToReceiptResponse(outcome.Receipt)
		response.OrderStatus = order.Status.String()
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderStatus, response.OrderStatus)
	s.metrics.RecordCompletion(ctx, response.QualityStatus, response.ProducedQty)

	s.logger.Info("production completed",
		zap.String("order_id", orderID.String()),
		zap.String("produced", response.ProducedQty.String()),
		zap.String("quality_status", response.QualityStatus),
		zap.String("order_status", response.OrderStatus),
		zap.String("actor", actor),
	)
	return &response, nil
}

// ReceiveStock posts a purchase receipt (or an adjustment) lot into the ledger
func (s *Service) ReceiveStock(ctx context.Context, req ReceiveStockRequest, actor string) (*LotResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production", "receive_stock",
		telemetry.WithAttribute(telemetry.SpanAttrMaterialID, req.ProductID),
		telemetry.WithAttribute(telemetry.SpanAttrWarehouseID, req.WarehouseID),
	)
	defer span.End()

	entryType := inventory.EntryTypePurchaseReceipt
	if req.Adjustment {
		entryType = inventory.EntryTypeAdjustment
	}
	groupID := uuid.New()
	sourceID := groupID
	if req.ReferenceID != nil {
		sourceID = *req.ReferenceID
	}

	lot, err := inventory.NewStockInEntry(inventory.StockIn{
		ProductID:          req.ProductID,
		WarehouseID:        req.WarehouseID,
		BatchNumber:        strings.TrimSpace(req.BatchNumber),
		ExpiryDate:         req.ExpiryDate,
		Quantity:           req.Quantity,
		EntryType:          entryType,
		SourceType:         inventory.SourceTypeStockReceipt,
		SourceID:           sourceID,
		TransactionGroupID: groupID,
		Actor:              actor,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos Repositories) error {
		return repos.Ledger().InsertLedgerEntry(ctx, lot)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToLotResponse(lot)
	return &response, nil
}

// GetOrder retrieves an order with its requirements
func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.repos.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	requirements, err := s.repos.Requirements().FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	response.Requirements = ToRequirementResponses(requirements)
	return &response, nil
}

// ListOrders lists orders with filtering and pagination
func (s *Service) ListOrders(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := production.OrderFilter{
		Filter:    shared.DefaultFilter(),
		ProductID: filter.ProductID,
		Search:    strings.TrimSpace(filter.Search),
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		status := production.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("Invalid order status: %s", filter.Status)
		}
		domainFilter.Status = &status
	}

	orders, total, err := s.repos.Orders().FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// ListRequirements returns an order's material requirements
func (s *Service) ListRequirements(ctx context.Context, orderID uuid.UUID) ([]RequirementResponse, error) {
	if _, err := s.repos.Orders().FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	requirements, err := s.repos.Requirements().FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToRequirementResponses(requirements), nil
}

// ListIssueDetails returns every lot drawn for an order with the quantity returned against it
func (s *Service) ListIssueDetails(ctx context.Context, orderID uuid.UUID) ([]IssueDetailResponse, error) {
	if _, err := s.repos.Orders().FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	details, err := s.repos.Issues().FindDetailsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	returned, err := s.repos.Issues().SumReturnedByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]IssueDetailResponse, len(details))
	for i := range details {
		responses[i] = ToIssueDetailResponse(&details[i], returned[details[i].ID].Actual)
	}
	return responses, nil
}

// ListSubstitutions returns the alternative usage recorded for an order
func (s *Service) ListSubstitutions(ctx context.Context, orderID uuid.UUID) ([]SubstitutionResponse, error) {
	subs, err := s.repos.Issues().FindSubstitutionsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]SubstitutionResponse, len(subs))
	for i := range subs {
		responses[i] = ToSubstitutionResponse(&subs[i])
	}
	return responses, nil
}

// ListReturns returns the material returns recorded for an order
func (s *Service) ListReturns(ctx context.Context, orderID uuid.UUID) ([]ReturnResponse, error) {
	returns, err := s.repos.Issues().FindReturnsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]ReturnResponse, len(returns))
	for i := range returns {
		responses[i] = ToReturnResponse(&returns[i])
	}
	return responses, nil
}

// ListReceipts returns the production receipts of an order
func (s *Service) ListReceipts(ctx context.Context, orderID uuid.UUID) ([]ReceiptResponse, error) {
	receipts, err := s.repos.Receipts().FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = ToReceiptResponse(&receipts[i])
	}
	return responses, nil
}

// ListAvailableLots returns lots with remaining stock in FEFO order
func (s *Service) ListAvailableLots(ctx context.Context, productID, warehouseID uuid.UUID) (*LotListResponse, error) {
	if productID == uuid.Nil || warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID and warehouse ID are required")
	}
	lots, err := s.repos.Ledger().FindAvailableLots(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	inventory.SortFEFO(lots)

	response := &LotListResponse{
		ProductID:      productID,
		WarehouseID:    warehouseID,
		TotalAvailable: decimal.Zero,
		Lots:           make([]LotResponse, len(lots)),
	}
	for i := range lots {
		response.Lots[i] = ToLotResponse(&lots[i])
		response.TotalAvailable = response.TotalAvailable.Add(lots[i].Remaining)
	}
	return response, nil
}

func toMaterialIssueResult(result *production.AllocationResult, requirement *production.Requirement) MaterialIssueResult {
	out := MaterialIssueResult{
		RequirementID:    result.RequirementID,
		MaterialID:       result.MaterialID,
		RequestedQty:     result.RequestedQty,
		AllocatedQty:     result.AllocatedQty,
		ShortfallQty:     result.ShortfallQty,
		Status:           requirement.Status.String(),
		ConflictsSkipped: result.ConflictsSkipped,
		Details:          make([]IssueDetailResponse, len(result.Details)),
	}
	for i := range result.Details {
		out.Details[i] = ToIssueDetailResponse(&result.Details[i], decimal.Zero)
	}
	for i := range result.Substitutions {
		out.Substitutions = append(out.Substitutions, ToSubstitutionResponse(&result.Substitutions[i]))
	}
	return out
}

// issueOutcome summarises an issue response for metrics
func issueOutcome(response *IssueMaterialsResponse) telemetry.IssueOutcome {
	outcome := telemetry.IssueOutcome{Partial: response.Partial}
	for _, r := range response.Results {
		outcome.ShortfallQty = outcome.ShortfallQty.Add(r.ShortfallQty)
		outcome.Substitutions += len(r.Substitutions)
		outcome.ConflictsSkipped += r.ConflictsSkipped
		for _, d := range r.Details {
			if d.IsAlternative {
				outcome.AlternativeQty = outcome.AlternativeQty.Add(d.EquivalentQty)
			} else {
				outcome.PrimaryQty = outcome.PrimaryQty.Add(d.EquivalentQty)
			}
		}
	}
	return outcome
}

func errorCode(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL"
}

// generateOrderNumber creates an order number such as PO-20250101-1a2b3c4d
func generateOrderNumber() string {
	return fmt.Sprintf("PO-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}
