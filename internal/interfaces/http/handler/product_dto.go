package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispensary/backend/internal/domain/catalog"
)

// ProductResponse is the API shape of a catalog product
type ProductResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	Barcode       string    `json:"barcode,omitempty"`
	Supplier      string    `json:"supplier,omitempty"`
	Location      string    `json:"location,omitempty"`
	UnitPrice     string    `json:"unit_price"`
	StockQuantity int64     `json:"stock_quantity"`
	MinStockLevel int64     `json:"min_stock_level"`
	StockStatus   string    `json:"stock_status"`
	Status        string    `json:"status"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Supplier:      p.Supplier,
		Location:      p.Location,
		UnitPrice:     p.UnitPrice.StringFixed(2),
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		StockStatus:   string(p.StockStatus()),
		Status:        string(p.Status),
		Version:       p.Version,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}
