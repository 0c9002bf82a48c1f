package report

import (
	"time"

	"github.com/dispensary/backend/internal/domain/inventory"
)

// CategoryStock is one row of the stock-by-category projection
type CategoryStock struct {
	Category      string `json:"category"`
	TotalQuantity int64  `json:"total_quantity"`
	ProductCount  int64  `json:"product_count"`
}

// StockStatusDistribution counts products per stock classification bucket
type StockStatusDistribution struct {
	InStock    int64 `json:"in_stock"`
	LowStock   int64 `json:"low_stock"`
	OutOfStock int64 `json:"out_of_stock"`
	Total      int64 `json:"total"`
}

// RotationSummary aggregates moved quantities per movement type over a period
type RotationSummary struct {
	PeriodStart *time.Time                  `json:"period_start,omitempty"`
	PeriodEnd   *time.Time                  `json:"period_end,omitempty"`
	ByType      []inventory.MovementTypeSum `json:"by_type"`
	TotalMoved  int64                       `json:"total_moved"`
}
