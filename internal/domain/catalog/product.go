package catalog

import (
	"strings"
	"time"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// UncategorizedLabel is the bucket label used for products without a category
const UncategorizedLabel = "uncategorized"

// Product represents a stock-keeping unit in the catalog.
// It is the aggregate root for product-related operations. StockQuantity is
// maintained exclusively through committed stock movements; no other code
// path may write it.
type Product struct {
	shared.TenantAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Category      string          `gorm:"type:varchar(100);index"`
	SKU           string          `gorm:"type:varchar(50);index"`
	Barcode       string          `gorm:"type:varchar(50);index"`
	Supplier      string          `gorm:"type:varchar(200)"`
	Location      string          `gorm:"type:varchar(100)"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity int64           `gorm:"not null;default:0"`
	MinStockLevel int64           `gorm:"not null;default:0"`
	Status        ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zero stock
func NewProduct(tenantID uuid.UUID, name string, unitPrice decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		UnitPrice:           unitPrice,
		StockQuantity:       0,
		MinStockLevel:       0,
		Status:              ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive attributes
func (p *Product) Update(name, description, category, supplier, location string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = strings.TrimSpace(category)
	p.Supplier = supplier
	p.Location = location
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetSKU sets the product SKU
func (p *Product) SetSKU(sku string) error {
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}

	p.SKU = strings.ToUpper(strings.TrimSpace(sku))
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetUnitPrice updates the unit price
func (p *Product) SetUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.UnitPrice = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMinStockLevel sets the reorder threshold
func (p *Product) SetMinStockLevel(level int64) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock level cannot be negative")
	}

	p.MinStockLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ApplyMovement applies a signed quantity delta to the current stock.
// Callers must hold the product row lock; the ledger is the only writer.
func (p *Product) ApplyMovement(delta int64) error {
	if delta == 0 {
		return shared.ErrInvalidInput
	}

	newQuantity := p.StockQuantity + delta
	if newQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Movement would drive stock below zero")
	}

	wasLow := p.IsAtOrBelowMinimum()
	p.StockQuantity = newQuantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewStockQuantityChangedEvent(p, delta))

	if !wasLow && p.IsAtOrBelowMinimum() {
		p.AddDomainEvent(NewStockBelowMinimumEvent(p))
	}

	return nil
}

// IsAtOrBelowMinimum reports whether the product is low or out of stock
func (p *Product) IsAtOrBelowMinimum() bool {
	return ClassifyStock(p.StockQuantity, p.MinStockLevel) != StockStatusIn
}

// StockStatus returns the product's current stock classification
func (p *Product) StockStatus() StockStatus {
	return ClassifyStock(p.StockQuantity, p.MinStockLevel)
}

// CategoryLabel returns the category, or the uncategorized bucket label
func (p *Product) CategoryLabel() string {
	if strings.TrimSpace(p.Category) == "" {
		return UncategorizedLabel
	}
	return p.Category
}

// IsActive reports whether the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusActive))

	return nil
}

// Deactivate deactivates the product. Products referenced by ledger entries
// are never deleted, only deactivated.
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusInactive))

	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
