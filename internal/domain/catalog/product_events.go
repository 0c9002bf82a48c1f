package catalog

import (
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated       = "ProductCreated"
	EventTypeProductUpdated       = "ProductUpdated"
	EventTypeProductStatusChanged = "ProductStatusChanged"
	EventTypeStockQuantityChanged = "StockQuantityChanged"
	EventTypeStockBelowMinimum    = "StockBelowMinimum"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		Name:            product.Name,
		Category:        product.Category,
	}
}

// ProductUpdatedEvent is published when a product's attributes change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		Name:            product.Name,
		Category:        product.Category,
	}
}

// ProductStatusChangedEvent is published when a product is (de)activated
type ProductStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID     `json:"product_id"`
	OldStatus ProductStatus `json:"old_status"`
	NewStatus ProductStatus `json:"new_status"`
}

// NewProductStatusChangedEvent creates a new ProductStatusChangedEvent
func NewProductStatusChangedEvent(product *Product, oldStatus, newStatus ProductStatus) *ProductStatusChangedEvent {
	return &ProductStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStatusChanged, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// StockQuantityChangedEvent is published when a committed movement changes
// the on-hand quantity
type StockQuantityChangedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	Delta       int64     `json:"delta"`
	NewQuantity int64     `json:"new_quantity"`
}

// NewStockQuantityChangedEvent creates a new StockQuantityChangedEvent
func NewStockQuantityChangedEvent(product *Product, delta int64) *StockQuantityChangedEvent {
	return &StockQuantityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockQuantityChanged, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		Delta:           delta,
		NewQuantity:     product.StockQuantity,
	}
}

// StockBelowMinimumEvent is published when a movement takes the product from
// in-stock to low or out of stock
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID   `json:"product_id"`
	Name          string      `json:"name"`
	Quantity      int64       `json:"quantity"`
	MinStockLevel int64       `json:"min_stock_level"`
	Status        StockStatus `json:"status"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(product *Product) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeProduct, product.ID, product.TenantID),
		ProductID:       product.ID,
		Name:            product.Name,
		Quantity:        product.StockQuantity,
		MinStockLevel:   product.MinStockLevel,
		Status:          product.StockStatus(),
	}
}
