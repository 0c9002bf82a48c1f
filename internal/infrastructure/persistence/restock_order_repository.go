package persistence

import (
	"context"
	"errors"

	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRestockOrderRepository implements inventory.RestockOrderRepository using GORM
type GormRestockOrderRepository struct {
	db *gorm.DB
}

// NewGormRestockOrderRepository creates a new GormRestockOrderRepository
func NewGormRestockOrderRepository(db *gorm.DB) *GormRestockOrderRepository {
	return &GormRestockOrderRepository{db: db}
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormRestockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.RestockOrder, error) {
	var order inventory.RestockOrder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate loads an order holding a row lock. Receive and cancel on
// the same order serialize here.
func (r *GormRestockOrderRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.RestockOrder, error) {
	var order inventory.RestockOrder
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByQuery lists orders for a tenant
func (r *GormRestockOrderRepository) FindByQuery(ctx context.Context, tenantID uuid.UUID, query inventory.RestockOrderQuery) ([]inventory.RestockOrder, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&inventory.RestockOrder{}).
		Where("tenant_id = ?", tenantID)
	if query.ProductID != nil {
		base = base.Where("product_id = ?", *query.ProductID)
	}
	if query.Status != "" {
		base = base.Where("status = ?", query.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	field := ValidateSortField(query.Filter.OrderBy, RestockOrderSortFields, "created_at")
	dir := ValidateSortOrder(query.Filter.OrderDir)
	listQuery := base.Order(field + " " + dir)
	if query.Filter.Page > 0 && query.Filter.PageSize > 0 {
		offset := (query.Filter.Page - 1) * query.Filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(query.Filter.PageSize)
	}

	var orders []inventory.RestockOrder
	if err := listQuery.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Save creates or updates an order
func (r *GormRestockOrderRepository) Save(ctx context.Context, order *inventory.RestockOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormRestockOrderRepository) SaveWithLock(ctx context.Context, order *inventory.RestockOrder) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":                 order.Status,
			"received_quantity":      order.ReceivedQuantity,
			"expected_delivery_date": order.ExpectedDeliveryDate,
			"notes":                  order.Notes,
			"received_at":            order.ReceivedAt,
			"cancelled_at":           order.CancelledAt,
			"version":                order.Version,
			"updated_at":             order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountForTenant counts orders for a tenant
func (r *GormRestockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.RestockOrder{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.RestockOrderRepository = (*GormRestockOrderRepository)(nil)
