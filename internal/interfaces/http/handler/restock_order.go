package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/dispensary/backend/internal/application/inventory"
	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
)

// RestockOrderHandler handles restock order API endpoints
type RestockOrderHandler struct {
	BaseHandler
	restockService *inventoryapp.RestockService
}

// NewRestockOrderHandler creates a new RestockOrderHandler
func NewRestockOrderHandler(restockService *inventoryapp.RestockService) *RestockOrderHandler {
	return &RestockOrderHandler{restockService: restockService}
}

// RegisterRoutes registers the restock order routes
func (h *RestockOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/inventory/restock-orders")
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/receive", h.Receive)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// CreateRestockOrderRequest is the request body for a new restock order
type CreateRestockOrderRequest struct {
	ProductID            string  `json:"product_id" binding:"required,uuid"`
	Quantity             int64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice            float64 `json:"unit_price" binding:"required,gt=0"`
	Supplier             string  `json:"supplier" binding:"max=200"`
	PurchaseDate         string  `json:"purchase_date" binding:"omitempty"`
	ExpectedDeliveryDate string  `json:"expected_delivery_date" binding:"omitempty"`
	Notes                string  `json:"notes" binding:"max=2000"`
}

// ReceiveRestockOrderRequest is the request body for receiving goods
type ReceiveRestockOrderRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// ListRestockOrdersRequest captures the order list query string
type ListRestockOrdersRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending partial received cancelled"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// List returns restock orders filtered by product and status
func (h *RestockOrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ListRestockOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	query := inventory.RestockOrderQuery{
		Status: inventory.RestockOrderStatus(req.Status),
		Filter: shared.DefaultFilter(),
	}
	if req.Page > 0 {
		query.Filter.Page = req.Page
	}
	if req.PageSize > 0 {
		query.Filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		query.Filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		query.Filter.OrderDir = req.OrderDir
	}
	if req.ProductID != "" {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		query.ProductID = &productID
	}

	page, err := h.restockService.List(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toRestockOrderResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// GetByID returns a single restock order
func (h *RestockOrderHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := h.restockService.Get(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toRestockOrderResponse(order))
}

// Create opens a pending restock order. Stock does not change until the
// order is received.
func (h *RestockOrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateRestockOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	input := inventoryapp.CreateOrderInput{
		ProductID:    productID,
		Quantity:     req.Quantity,
		UnitPrice:    decimal.NewFromFloat(req.UnitPrice),
		Supplier:     req.Supplier,
		PurchaseDate: time.Now().UTC(),
		Notes:        req.Notes,
	}
	if req.PurchaseDate != "" {
		purchaseDate, err := parseTimestamp(req.PurchaseDate)
		if err != nil {
			h.BadRequest(c, "Invalid purchase_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		input.PurchaseDate = purchaseDate
	}
	if req.ExpectedDeliveryDate != "" {
		expected, err := parseTimestamp(req.ExpectedDeliveryDate)
		if err != nil {
			h.BadRequest(c, "Invalid expected_delivery_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		input.ExpectedDeliveryDate = &expected
	}

	order, err := h.restockService.CreateOrder(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toRestockOrderResponse(order))
}

// Receive books received goods against the order and posts the matching
// purchase movement in the same transaction
func (h *RestockOrderHandler) Receive(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req ReceiveRestockOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, movement, err := h.restockService.Receive(c.Request.Context(), tenantID, orderID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ReceiptResponse{
		Order:    toRestockOrderResponse(order),
		Movement: toMovementResponse(movement),
	})
}

// Cancel closes an order that will not be fulfilled. Already received goods
// stay on the ledger.
func (h *RestockOrderHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	orderID, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := h.restockService.Cancel(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toRestockOrderResponse(order))
}
