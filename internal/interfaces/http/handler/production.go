package handler

import (
	"context"
	"errors"
	"io"
	"strings"

	appprod "github.com/erp/mes/internal/application/production"
	"github.com/erp/mes/internal/infrastructure/logger"
	"github.com/erp/mes/internal/interfaces/http/dto"
	"github.com/erp/mes/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductionService is the application API the production endpoints call
type ProductionService interface {
	CreateOrder(ctx context.Context, req appprod.CreateOrderRequest, actor string) (*appprod.OrderResponse, error)
	ConfirmOrder(ctx context.Context, orderID uuid.UUID, actor string) (*appprod.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID, actor string) (*appprod.OrderResponse, error)
	IssueMaterials(ctx context.Context, orderID uuid.UUID, req appprod.IssueMaterialsRequest, actor string) (*appprod.IssueMaterialsResponse, error)
	ReturnMaterial(ctx context.Context, req appprod.ReturnMaterialRequest, actor string) (*appprod.ReturnResponse, error)
	CompleteProduction(ctx context.Context, orderID uuid.UUID, req appprod.CompleteProductionRequest, actor string) (*appprod.ReceiptResponse, error)
	ReceiveStock(ctx context.Context, req appprod.ReceiveStockRequest, actor string) (*appprod.LotResponse, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*appprod.OrderResponse, error)
	ListOrders(ctx context.Context, filter appprod.OrderListFilter) ([]appprod.OrderResponse, int64, error)
	ListRequirements(ctx context.Context, orderID uuid.UUID) ([]appprod.RequirementResponse, error)
	ListIssueDetails(ctx context.Context, orderID uuid.UUID) ([]appprod.IssueDetailResponse, error)
	ListSubstitutions(ctx context.Context, orderID uuid.UUID) ([]appprod.SubstitutionResponse, error)
	ListReturns(ctx context.Context, orderID uuid.UUID) ([]appprod.ReturnResponse, error)
	ListReceipts(ctx context.Context, orderID uuid.UUID) ([]appprod.ReceiptResponse, error)
	ListAvailableLots(ctx context.Context, productID, warehouseID uuid.UUID) (*appprod.LotListResponse, error)
}

// ProductionHandler handles production order, material and lot endpoints
type ProductionHandler struct {
	BaseHandler
	service ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(service ProductionService) *ProductionHandler {
	return &ProductionHandler{service: service}
}

// RegisterRoutes mounts the production endpoints under rg
func (h *ProductionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/production-orders")
	orders.POST("", h.CreateOrder)
	orders.GET("", h.ListOrders)
	orders.GET("/:id", h.GetOrder)
	orders.POST("/:id/confirm", h.ConfirmOrder)
	orders.POST("/:id/cancel", h.CancelOrder)
	orders.POST("/:id/issues", h.IssueMaterials)
	orders.GET("/:id/requirements", h.ListRequirements)
	orders.GET("/:id/issue-details", h.ListIssueDetails)
	orders.GET("/:id/substitutions", h.ListSubstitutions)
	orders.GET("/:id/returns", h.ListReturns)
	orders.POST("/:id/completions", h.CompleteProduction)
	orders.GET("/:id/receipts", h.ListReceipts)

	rg.POST("/material-returns", h.ReturnMaterial)
	rg.POST("/stock-receipts", h.ReceiveStock)
	rg.GET("/lots", h.ListLots)
}

// ListOrdersQuery holds the query parameters of the order list
type ListOrdersQuery struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LotsQuery selects the lots of one product in one warehouse
type LotsQuery struct {
	ProductID   string `form:"product_id" binding:"required,uuid"`
	WarehouseID string `form:"warehouse_id" binding:"required,uuid"`
}

// CreateOrder godoc
// @ID           createProductionOrder
// @Summary      Create a production order
// @Description  Resolve the BOM for the planned quantity and store a DRAFT order with its material requirements
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        X-User-ID header string false "Acting user"
// @Param        request body appprod.CreateOrderRequest true "Order"
// @Success      201 {object} dto.Response{data=appprod.OrderResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /production-orders [post]
func (h *ProductionHandler) CreateOrder(c *gin.Context) {
	var req appprod.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListOrders godoc
// @ID           listProductionOrders
// @Summary      List production orders
// @Tags         production
// @Produce      json
// @Param        status query string false "Order status"
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        search query string false "Order number search"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]appprod.OrderResponse}
// @Router       /production-orders [get]
func (h *ProductionHandler) ListOrders(c *gin.Context) {
	var q ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := appprod.OrderListFilter{
		Search:   q.Search,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	if q.ProductID != "" {
		productID := uuid.MustParse(q.ProductID)
		filter.ProductID = &productID
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := q.Page, q.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = dto.DefaultPageSize
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// GetOrder godoc
// @ID           getProductionOrder
// @Summary      Get a production order with its requirements
// @Tags         production
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=appprod.OrderResponse}
// @Failure      404 {object} dto.Response
// @Router       /production-orders/{id} [get]
func (h *ProductionHandler) GetOrder(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ConfirmOrder godoc
// @ID           confirmProductionOrder
// @Summary      Confirm a DRAFT production order
// @Tags         production
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=appprod.OrderResponse}
// @Failure      422 {object} dto.Response
// @Router       /production-orders/{id}/confirm [post]
func (h *ProductionHandler) ConfirmOrder(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.service.ConfirmOrder(c.Request.Context(), orderID, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CancelOrder godoc
// @ID           cancelProductionOrder
// @Summary      Cancel a production order holding no issued material
// @Tags         production
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=appprod.OrderResponse}
// @Failure      422 {object} dto.Response
// @Router       /production-orders/{id}/cancel [post]
func (h *ProductionHandler) CancelOrder(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.service.CancelOrder(c.Request.Context(), orderID, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// IssueMaterials godoc
// @ID           issueMaterials
// @Summary      Issue material to a production order
// @Description  Allocate lots in FEFO order, falling back to BOM alternatives. An empty body issues every remaining requirement.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        Idempotency-Key header string false "Client key; a replay answers 409"
// @Param        request body appprod.IssueMaterialsRequest false "Per-material overrides"
// @Success      201 {object} dto.Response{data=appprod.IssueMaterialsResponse}
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /production-orders/{id}/issues [post]
func (h *ProductionHandler) IssueMaterials(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req appprod.IssueMaterialsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindingError(c, err)
		return
	}
	req.IdempotencyKey = strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))

	resp, err := h.service.IssueMaterials(c.Request.Context(), orderID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp.Partial {
		logger.L(c.Request.Context()).Warn("material issue left a shortfall",
			zap.String("order_id", orderID.String()),
			zap.String("transaction_group_id", resp.TransactionGroupID.String()),
		)
	}
	h.Created(c, resp)
}

// ListRequirements godoc
// @ID           listOrderRequirements
// @Summary      List the material requirements of an order
// @Tags         production
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appprod.RequirementResponse}
// @Router       /production-orders/{id}/requirements [get]
func (h *ProductionHandler) ListRequirements(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListRequirements(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListIssueDetails godoc
// @ID           listOrderIssueDetails
// @Summary      List the lots drawn for an order
// @Tags         production
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appprod.IssueDetailResponse}
// @Router       /production-orders/{id}/issue-details [get]
func (h *ProductionHandler) ListIssueDetails(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListIssueDetails(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListSubstitutions returns the alternative usage of an order
func (h *ProductionHandler) ListSubstitutions(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListSubstitutions(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListReturns returns the material returns of an order
func (h *ProductionHandler) ListReturns(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListReturns(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CompleteProduction godoc
// @ID           completeProduction
// @Summary      Report finished goods for an order
// @Description  PASSED goods enter stock at the target warehouse. Expiry defaults to the one derived from consumed lots.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body appprod.CompleteProductionRequest true "Completion"
// @Success      201 {object} dto.Response{data=appprod.ReceiptResponse}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /production-orders/{id}/completions [post]
func (h *ProductionHandler) CompleteProduction(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req appprod.CompleteProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	receipt, err := h.service.CompleteProduction(c.Request.Context(), orderID, req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// ListReceipts returns the production receipts of an order
func (h *ProductionHandler) ListReceipts(c *gin.Context) {
	orderID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListReceipts(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ReturnMaterial godoc
// @ID           returnMaterial
// @Summary      Return material against an issue detail
// @Description  GOOD returns re-enter stock under the original batch and expiry
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        request body appprod.ReturnMaterialRequest true "Return"
// @Success      201 {object} dto.Response{data=appprod.ReturnResponse}
// @Failure      422 {object} dto.Response
// @Router       /material-returns [post]
func (h *ProductionHandler) ReturnMaterial(c *gin.Context) {
	var req appprod.ReturnMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	ret, err := h.service.ReturnMaterial(c.Request.Context(), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// ReceiveStock godoc
// @ID           receiveStock
// @Summary      Post a purchase receipt or adjustment lot
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body appprod.ReceiveStockRequest true "Lot"
// @Success      201 {object} dto.Response{data=appprod.LotResponse}
// @Failure      400 {object} dto.Response
// @Router       /stock-receipts [post]
func (h *ProductionHandler) ReceiveStock(c *gin.Context) {
	var req appprod.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	lot, err := h.service.ReceiveStock(c.Request.Context(), req, middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lot)
}

// ListLots godoc
// @ID           listLots
// @Summary      List available lots in FEFO order
// @Tags         inventory
// @Produce      json
// @Param        product_id query string true "Product ID" format(uuid)
// @Param        warehouse_id query string true "Warehouse ID" format(uuid)
// @Success      200 {object} dto.Response{data=appprod.LotListResponse}
// @Router       /lots [get]
func (h *ProductionHandler) ListLots(c *gin.Context) {
	var q LotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}
	lots, err := h.service.ListAvailableLots(c.Request.Context(),
		uuid.MustParse(q.ProductID), uuid.MustParse(q.WarehouseID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

var _ ProductionService = (*appprod.Service)(nil)
