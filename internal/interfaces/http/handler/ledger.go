package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/dispensary/backend/internal/application/inventory"
	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
)

// Headers carrying the client-supplied deduplication key, checked in order
const (
	IdempotencyHeaderKey      = "X-Idempotency-Key"
	IdempotencyHeaderKeyPlain = "Idempotency-Key"
)

// LedgerHandler handles stock movement API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService  *inventoryapp.LedgerService
	restockService *inventoryapp.RestockService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *inventoryapp.LedgerService, restockService *inventoryapp.RestockService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:  ledgerService,
		restockService: restockService,
	}
}

// RegisterRoutes registers the ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.GET("/movements", h.List)
		inventory.POST("/movements", h.Record)
		inventory.POST("/adjustments", h.Adjust)
		inventory.GET("/products/:id/reconciliation", h.Reconcile)
	}
}

// RecordMovementRequest is the request body for posting a ledger entry
type RecordMovementRequest struct {
	ProductID      string  `json:"product_id" binding:"required,uuid"`
	Quantity       int64   `json:"quantity" binding:"required"`
	Type           string  `json:"type" binding:"required,oneof=sale purchase adjustment return loss"`
	EffectiveDate  *string `json:"effective_date" binding:"omitempty"`
	Note           string  `json:"note" binding:"max=2000"`
	IdempotencyKey string  `json:"idempotency_key" binding:"max=100"`
}

// AdjustStockRequest is the request body for a manual stock adjustment
type AdjustStockRequest struct {
	ProductID      string `json:"product_id" binding:"required,uuid"`
	Quantity       int64  `json:"quantity" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=adjustment return loss"`
	Note           string `json:"note" binding:"max=2000"`
	IdempotencyKey string `json:"idempotency_key" binding:"max=100"`
}

// ListMovementsRequest captures the movement list query string
type ListMovementsRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Type      string `form:"type" binding:"omitempty,oneof=sale purchase adjustment return loss"`
	StartDate string `form:"start_date" binding:"omitempty"`
	EndDate   string `form:"end_date" binding:"omitempty"`
}

// List returns ledger entries, newest effective date first
func (h *LedgerHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ListMovementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	query := inventory.MovementQuery{
		Type:   inventory.MovementType(req.Type),
		Filter: shared.DefaultFilter(),
	}
	if req.Page > 0 {
		query.Filter.Page = req.Page
	}
	if req.PageSize > 0 {
		query.Filter.PageSize = req.PageSize
	}
	if req.ProductID != "" {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		query.ProductID = &productID
	}
	if req.StartDate != "" {
		start, err := parseTimestamp(req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		query.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parseTimestamp(req.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid end_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		query.EndDate = &end
	}

	page, err := h.ledgerService.ListMovements(c.Request.Context(), tenantID, query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toMovementResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// Record posts one ledger entry. Replay with the same idempotency key
// returns the original entry instead of double-posting.
func (h *LedgerHandler) Record(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req RecordMovementRequest
	if !h.bindJSON(c, &req) {
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	input := inventoryapp.RecordMovementInput{
		ProductID:      productID,
		Quantity:       req.Quantity,
		Type:           inventory.MovementType(req.Type),
		EffectiveDate:  time.Now().UTC(),
		Note:           req.Note,
		IdempotencyKey: h.idempotencyKey(c, req.IdempotencyKey),
	}
	if req.EffectiveDate != nil && *req.EffectiveDate != "" {
		effective, err := parseTimestamp(*req.EffectiveDate)
		if err != nil {
			h.BadRequest(c, "Invalid effective_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		input.EffectiveDate = effective
	}

	movement, err := h.ledgerService.RecordMovement(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toMovementResponse(movement))
}

// Adjust posts a manual correction entry. Only adjustment, return and loss
// types are accepted; sales and purchases use their own flows.
func (h *LedgerHandler) Adjust(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	movement, err := h.restockService.AdjustStock(c.Request.Context(), tenantID, inventoryapp.AdjustStockInput{
		ProductID:      productID,
		Quantity:       req.Quantity,
		Type:           inventory.MovementType(req.Type),
		Note:           req.Note,
		IdempotencyKey: h.idempotencyKey(c, req.IdempotencyKey),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toMovementResponse(movement))
}

// Reconcile compares the product's ledger sum against its catalog counter
func (h *LedgerHandler) Reconcile(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.ReconcileProduct(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// idempotencyKey prefers the request headers over the body field
func (h *LedgerHandler) idempotencyKey(c *gin.Context, bodyKey string) string {
	if key := c.GetHeader(IdempotencyHeaderKey); key != "" {
		return key
	}
	if key := c.GetHeader(IdempotencyHeaderKeyPlain); key != "" {
		return key
	}
	return bodyKey
}
