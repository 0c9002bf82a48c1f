package catalog

import (
	"context"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductQuery captures the catalog list filter: a conjunction of free-text
// search, category equality, and stock-status classification.
type ProductQuery struct {
	Search      string
	Category    string
	StockStatus string // "all", "low" or "out"
	Status      ProductStatus
	Filter      shared.Filter
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForTenant finds a product by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate loads a product within a tenant holding a row lock.
	// Must be called inside a transaction; serializes movements per product.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// Search finds products matching a catalog query
	Search(ctx context.Context, tenantID uuid.UUID, query ProductQuery) ([]Product, int64, error)

	// FindAllForTenant finds all products for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindBySKU finds a product by SKU within a tenant
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product with an optimistic version check
	SaveWithLock(ctx context.Context, product *Product) error

	// CountForTenant counts products for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
