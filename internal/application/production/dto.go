package production

import (
	"time"

	"github.com/erp/mes/internal/domain/inventory"
	"github.com/erp/mes/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to create a production order
type CreateOrderRequest struct {
	OrderNumber       string          `json:"order_number" binding:"omitempty,max=50"`
	ProductID         *uuid.UUID      `json:"product_id"`
	BOMID             uuid.UUID       `json:"bom_id" binding:"required"`
	PlannedQty        decimal.Decimal `json:"planned_qty" binding:"required"`
	SourceWarehouseID uuid.UUID       `json:"source_warehouse_id" binding:"required"`
	TargetWarehouseID uuid.UUID       `json:"target_warehouse_id" binding:"required"`
	Remark            string          `json:"remark" binding:"max=500"`
}

// IssueItem overrides the quantity issued for one primary material
type IssueItem struct {
	MaterialID uuid.UUID       `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// IssueMaterialsRequest represents a material issue against an order.
// With no items every requirement is issued its remaining quantity.
type IssueMaterialsRequest struct {
	Items          []IssueItem `json:"items" binding:"omitempty,dive"`
	WarehouseID    *uuid.UUID  `json:"warehouse_id"`
	IdempotencyKey string      `json:"-"`
}

// ReturnMaterialRequest represents material handed back against an issue detail
type ReturnMaterialRequest struct {
	IssueDetailID uuid.UUID       `json:"issue_detail_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Condition     string          `json:"condition" binding:"required,oneof=GOOD DAMAGED EXPIRED"`
	Reason        string          `json:"reason" binding:"max=500"`
}

// CompleteProductionRequest reports finished goods
type CompleteProductionRequest struct {
	ProducedQty   decimal.Decimal `json:"produced_qty" binding:"required"`
	BatchNumber   string          `json:"batch_number" binding:"required,max=50"`
	QualityStatus string          `json:"quality_status" binding:"omitempty,oneof=PASSED PENDING FAILED"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	Remark        string          `json:"remark" binding:"max=500"`
}

// ReceiveStockRequest posts a new lot into the ledger
type ReceiveStockRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	BatchNumber string          `json:"batch_number" binding:"required,max=50"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Adjustment  bool            `json:"adjustment"`
	ReferenceID *uuid.UUID      `json:"reference_id"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Search    string     `form:"search"`
	Status    string     `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderResponse represents a production order in API responses
type OrderResponse struct {
	ID                uuid.UUID             `json:"id"`
	OrderNumber       string                `json:"order_number"`
	ProductID         uuid.UUID             `json:"product_id"`
	BOMID             uuid.UUID             `json:"bom_id"`
	BOMType           string                `json:"bom_type"`
	PlannedQty        decimal.Decimal       `json:"planned_qty"`
	ProducedQty       decimal.Decimal       `json:"produced_qty"`
	Status            string                `json:"status"`
	SourceWarehouseID uuid.UUID             `json:"source_warehouse_id"`
	TargetWarehouseID uuid.UUID             `json:"target_warehouse_id"`
	Remark            string                `json:"remark,omitempty"`
	CreatedBy         string                `json:"created_by"`
	UpdatedBy         string                `json:"updated_by"`
	Requirements      []RequirementResponse `json:"requirements,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Version           int                   `json:"version"`
}

// RequirementResponse represents one order material requirement
type RequirementResponse struct {
	ID           uuid.UUID       `json:"id"`
	BOMLineID    uuid.UUID       `json:"bom_line_id"`
	MaterialID   uuid.UUID       `json:"material_id"`
	UOM          string          `json:"uom"`
	RequiredQty  decimal.Decimal `json:"required_qty"`
	IssuedQty    decimal.Decimal `json:"issued_qty"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
	Status       string          `json:"status"`
}

// IssueDetailResponse represents one lot drawn for a requirement
type IssueDetailResponse struct {
	ID                 uuid.UUID       `json:"id"`
	RequirementID      uuid.UUID       `json:"requirement_id"`
	MaterialID         uuid.UUID       `json:"material_id"`
	OriginalMaterialID *uuid.UUID      `json:"original_material_id,omitempty"`
	IsAlternative      bool            `json:"is_alternative"`
	LotID              uuid.UUID       `json:"lot_id"`
	WarehouseID        uuid.UUID       `json:"warehouse_id"`
	BatchNumber        string          `json:"batch_number"`
	ExpiryDate         *time.Time      `json:"expiry_date,omitempty"`
	ActualQty          decimal.Decimal `json:"actual_qty"`
	ConversionRatio    decimal.Decimal `json:"conversion_ratio"`
	EquivalentQty      decimal.Decimal `json:"equivalent_qty"`
	ReturnedQty        decimal.Decimal `json:"returned_qty"`
	TransactionGroupID uuid.UUID       `json:"transaction_group_id"`
	IssuedBy           string          `json:"issued_by"`
	IssuedAt           time.Time       `json:"issued_at"`
}

// SubstitutionResponse summarises what one alternative contributed
type SubstitutionResponse struct {
	ID                   uuid.UUID       `json:"id"`
	RequirementID        uuid.UUID       `json:"requirement_id"`
	OriginalMaterialID   uuid.UUID       `json:"original_material_id"`
	SubstituteMaterialID uuid.UUID       `json:"substitute_material_id"`
	ActualQty            decimal.Decimal `json:"actual_qty"`
	EquivalentQty        decimal.Decimal `json:"equivalent_qty"`
	ConversionRatio      decimal.Decimal `json:"conversion_ratio"`
	Priority             int             `json:"priority"`
}

// MaterialIssueResult is what one requirement received in an issue operation
type MaterialIssueResult struct {
	RequirementID    uuid.UUID              `json:"requirement_id"`
	MaterialID       uuid.UUID              `json:"material_id"`
	RequestedQty     decimal.Decimal        `json:"requested_qty"`
	AllocatedQty     decimal.Decimal        `json:"allocated_qty"`
	ShortfallQty     decimal.Decimal        `json:"shortfall_qty"`
	Status           string                 `json:"status"`
	ConflictsSkipped int                    `json:"conflicts_skipped,omitempty"`
	Details          []IssueDetailResponse  `json:"details"`
	Substitutions    []SubstitutionResponse `json:"substitutions,omitempty"`
}

// IssueMaterialsResponse is the result of one issue operation
type IssueMaterialsResponse struct {
	OrderID            uuid.UUID             `json:"order_id"`
	OrderStatus        string                `json:"order_status"`
	TransactionGroupID uuid.UUID             `json:"transaction_group_id"`
	Results            []MaterialIssueResult `json:"results"`
	Partial            bool                  `json:"partial"`
}

// ReturnResponse represents a recorded material return
type ReturnResponse struct {
	ID                 uuid.UUID       `json:"id"`
	OrderID            uuid.UUID       `json:"order_id"`
	RequirementID      uuid.UUID       `json:"requirement_id"`
	IssueDetailID      uuid.UUID       `json:"issue_detail_id"`
	MaterialID         uuid.UUID       `json:"material_id"`
	ActualQty          decimal.Decimal `json:"actual_qty"`
	EquivalentQty      decimal.Decimal `json:"equivalent_qty"`
	ConversionRatio    decimal.Decimal `json:"conversion_ratio"`
	Condition          string          `json:"condition"`
	Reason             string          `json:"reason,omitempty"`
	LotID              *uuid.UUID      `json:"lot_id,omitempty"`
	RequirementStatus  string          `json:"requirement_status,omitempty"`
	TransactionGroupID uuid.UUID       `json:"transaction_group_id"`
	ReturnedBy         string          `json:"returned_by"`
	ReturnedAt         time.Time       `json:"returned_at"`
}

// ReceiptResponse represents a production receipt
type ReceiptResponse struct {
	ID                 uuid.UUID       `json:"id"`
	OrderID            uuid.UUID       `json:"order_id"`
	ProductID          uuid.UUID       `json:"product_id"`
	WarehouseID        uuid.UUID       `json:"warehouse_id"`
	BatchNumber        string          `json:"batch_number"`
	ExpiryDate         *time.Time      `json:"expiry_date,omitempty"`
	ProducedQty        decimal.Decimal `json:"produced_qty"`
	QualityStatus      string          `json:"quality_status"`
	LotID              *uuid.UUID      `json:"lot_id,omitempty"`
	OrderStatus        string          `json:"order_status,omitempty"`
	TransactionGroupID uuid.UUID       `json:"transaction_group_id"`
	Remark             string          `json:"remark,omitempty"`
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
}

// LotResponse represents a ledger lot
type LotResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Remaining   decimal.Decimal `json:"remaining"`
	EntryType   string          `json:"entry_type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LotListResponse lists available lots in FEFO order
type LotListResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	Lots           []LotResponse   `json:"lots"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *production.Order) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		ProductID:         o.ProductID,
		BOMID:             o.BOMID,
		BOMType:           o.BOMType.String(),
		PlannedQty:        o.PlannedQty,
		ProducedQty:       o.ProducedQty,
		Status:            o.Status.String(),
		SourceWarehouseID: o.SourceWarehouseID,
		TargetWarehouseID: o.TargetWarehouseID,
		Remark:            o.Remark,
		CreatedBy:         o.CreatedBy,
		UpdatedBy:         o.UpdatedBy,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Version:           o.Version,
	}
}

// ToRequirementResponse converts a domain requirement to a response
func ToRequirementResponse(r *production.Requirement) RequirementResponse {
	return RequirementResponse{
		ID:           r.ID,
		BOMLineID:    r.BOMLineID,
		MaterialID:   r.MaterialID,
		UOM:          r.UOM,
		RequiredQty:  r.RequiredQty,
		IssuedQty:    r.IssuedQty,
		RemainingQty: r.Remaining(),
		Status:       r.Status.String(),
	}
}

// ToRequirementResponses converts requirements to responses
func ToRequirementResponses(reqs []production.Requirement) []RequirementResponse {
	out := make([]RequirementResponse, len(reqs))
	for i := range reqs {
		out[i] = ToRequirementResponse(&reqs[i])
	}
	return out
}

// ToIssueDetailResponse converts an issue detail; returned is what has come back against it
func ToIssueDetailResponse(d *production.IssueDetail, returned decimal.Decimal) IssueDetailResponse {
	return IssueDetailResponse{
		ID:                 d.ID,
		RequirementID:      d.RequirementID,
		MaterialID:         d.MaterialID,
		OriginalMaterialID: d.OriginalMaterialID(),
		IsAlternative:      d.IsAlternative,
		LotID:              d.LotID,
		WarehouseID:        d.WarehouseID,
		BatchNumber:        d.BatchNumber,
		ExpiryDate:         d.ExpiryDate,
		ActualQty:          d.ActualQty,
		ConversionRatio:    d.ConversionRatio,
		EquivalentQty:      d.EquivalentQty,
		ReturnedQty:        returned,
		TransactionGroupID: d.TransactionGroupID,
		IssuedBy:           d.IssuedBy,
		IssuedAt:           d.CreatedAt,
	}
}

// ToSubstitutionResponse converts a substitution to a response
func ToSubstitutionResponse(s *production.Substitution) SubstitutionResponse {
	return SubstitutionResponse{
		ID:                   s.ID,
		RequirementID:        s.RequirementID,
		OriginalMaterialID:   s.OriginalMaterialID,
		SubstituteMaterialID: s.SubstituteMaterialID,
		ActualQty:            s.ActualQty,
		EquivalentQty:        s.EquivalentQty,
		ConversionRatio:      s.ConversionRatio,
		Priority:             s.Priority,
	}
}

// ToReturnResponse converts a return detail to a response
func ToReturnResponse(r *production.ReturnDetail) ReturnResponse {
	return ReturnResponse{
		ID:                 r.ID,
		OrderID:            r.OrderID,
		RequirementID:      r.RequirementID,
		IssueDetailID:      r.IssueDetailID,
		MaterialID:         r.MaterialID,
		ActualQty:          r.ActualQty,
		EquivalentQty:      r.EquivalentQty,
		ConversionRatio:    r.ConversionRatio,
		Condition:          r.Condition.String(),
		Reason:             r.Reason,
		LotID:              r.LedgerEntryID,
		TransactionGroupID: r.TransactionGroupID,
		ReturnedBy:         r.ReturnedBy,
		ReturnedAt:         r.CreatedAt,
	}
}

// ToReceiptResponse converts a receipt to a response
func ToReceiptResponse(r *production.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:                 r.ID,
		OrderID:            r.OrderID,
		ProductID:          r.ProductID,
		WarehouseID:        r.WarehouseID,
		BatchNumber:        r.BatchNumber,
		ExpiryDate:         r.ExpiryDate,
		ProducedQty:        r.ProducedQty,
		QualityStatus:      r.QualityStatus.String(),
		LotID:              r.LedgerEntryID,
		TransactionGroupID: r.TransactionGroupID,
		Remark:             r.Remark,
		CreatedBy:          r.CreatedBy,
		CreatedAt:          r.CreatedAt,
	}
}

// ToLotResponse converts a ledger entry to a response
func ToLotResponse(e *inventory.LedgerEntry) LotResponse {
	return LotResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		WarehouseID: e.WarehouseID,
		BatchNumber: e.BatchNumber,
		ExpiryDate:  e.ExpiryDate,
		Quantity:    e.Quantity,
		Remaining:   e.Remaining,
		EntryType:   e.EntryType.String(),
		CreatedAt:   e.CreatedAt,
	}
}
