package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/dispensary/backend/internal/application/catalog"
	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product catalog API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers the catalog routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/catalog/products")
	{
		products.GET("", h.List)
		products.POST("", h.Create)
		products.GET("/:id", h.GetByID)
		products.PUT("/:id", h.Update)
		products.POST("/:id/activate", h.Activate)
		products.POST("/:id/deactivate", h.Deactivate)
	}
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	Description   string  `json:"description" binding:"max=2000"`
	Category      string  `json:"category" binding:"max=100"`
	SKU           string  `json:"sku" binding:"max=50"`
	Barcode       string  `json:"barcode" binding:"max=50"`
	Supplier      string  `json:"supplier" binding:"max=200"`
	Location      string  `json:"location" binding:"max=100"`
	UnitPrice     float64 `json:"unit_price" binding:"gte=0"`
	MinStockLevel int64   `json:"min_stock_level" binding:"gte=0"`
}

// UpdateProductRequest is the request body for updating a product
type UpdateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=200"`
	Description   string  `json:"description" binding:"max=2000"`
	Category      string  `json:"category" binding:"max=100"`
	Supplier      string  `json:"supplier" binding:"max=200"`
	Location      string  `json:"location" binding:"max=100"`
	UnitPrice     float64 `json:"unit_price" binding:"gte=0"`
	MinStockLevel int64   `json:"min_stock_level" binding:"gte=0"`
}

// ListProductsRequest captures the catalog list query string
type ListProductsRequest struct {
	dto.ListRequest
	Category    string `form:"category"`
	StockStatus string `form:"stock_status" binding:"omitempty,oneof=all low out"`
	Status      string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// List returns a page of products matching search and filter criteria
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	page, err := h.productService.List(c.Request.Context(), tenantID, catalogapp.ListProductsQuery{
		Search:      req.Search,
		Category:    req.Category,
		StockStatus: req.StockStatus,
		Status:      req.Status,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.OrderBy,
		SortOrder:   req.OrderDir,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProductResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Create adds a new product to the catalog with zero stock
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), tenantID, catalogapp.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		SKU:           req.SKU,
		Barcode:       req.Barcode,
		Supplier:      req.Supplier,
		Location:      req.Location,
		UnitPrice:     decimal.NewFromFloat(req.UnitPrice),
		MinStockLevel: req.MinStockLevel,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toProductResponse(product))
}

// Update modifies descriptive product attributes. Stock quantity is not
// writable here; it only changes through ledger movements.
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), tenantID, productID, catalogapp.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Supplier:      req.Supplier,
		Location:      req.Location,
		UnitPrice:     decimal.NewFromFloat(req.UnitPrice),
		MinStockLevel: req.MinStockLevel,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}

// Activate returns a product to the active state
func (h *ProductHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.productService.Activate)
}

// Deactivate retires a product from sale without deleting its history
func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.productService.Deactivate)
}

func (h *ProductHandler) changeStatus(c *gin.Context, op func(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.Product, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	productID, ok := h.bindID(c)
	if !ok {
		return
	}

	product, err := op(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toProductResponse(product))
}
