package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDForUpdate loads a product holding a row lock. Concurrent movements
// against the same product serialize here.
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Search finds products matching a catalog query
func (r *GormProductRepository) Search(ctx context.Context, tenantID uuid.UUID, query catalog.ProductQuery) ([]catalog.Product, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("tenant_id = ?", tenantID)
	base = applyProductQuery(base, query)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := base.Order(productOrderClause(query.Filter))
	if query.Filter.Page > 0 && query.Filter.PageSize > 0 {
		offset := (query.Filter.Page - 1) * query.Filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(query.Filter.PageSize)
	}

	var products []catalog.Product
	if err := listQuery.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindAllForTenant finds all products for a tenant. PageSize 0 disables
// pagination so aggregates see the full catalog.
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order(productOrderClause(filter))
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var products []catalog.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBySKU finds a product by SKU within a tenant
func (r *GormProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sku = ?", tenantID, strings.ToUpper(strings.TrimSpace(sku))).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":            product.Name,
			"description":     product.Description,
			"category":        product.Category,
			"sku":             product.SKU,
			"barcode":         product.Barcode,
			"supplier":        product.Supplier,
			"location":        product.Location,
			"unit_price":      product.UnitPrice,
			"stock_quantity":  product.StockQuantity,
			"min_stock_level": product.MinStockLevel,
			"status":          product.Status,
			"version":         product.Version,
			"updated_at":      product.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountForTenant counts products for a tenant
func (r *GormProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyProductQuery applies search, category, status and stock-status
// conditions. The stock-status predicates mirror catalog.ClassifyStock.
func applyProductQuery(query *gorm.DB, q catalog.ProductQuery) *gorm.DB {
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(barcode) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	switch q.StockStatus {
	case "out":
		query = query.Where("stock_quantity = 0")
	case "low":
		query = query.Where("stock_quantity > 0 AND stock_quantity <= min_stock_level")
	}
	return query
}

// productOrderClause builds the ORDER BY for product listings. Optional text
// fields with empty values sort last ascending and first descending.
func productOrderClause(filter shared.Filter) string {
	field := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	dir := ValidateSortOrder(filter.OrderDir)

	if productOptionalTextFields[field] {
		return fmt.Sprintf("(CASE WHEN %s IS NULL OR %s = '' THEN 1 ELSE 0 END) %s, %s %s", field, field, dir, field, dir)
	}
	return field + " " + dir
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
