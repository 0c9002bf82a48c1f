package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements inventory.StockMovementRepository
// using GORM. The ledger is append-only; there are no update or delete paths.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement to the ledger. A duplicate idempotency key
// surfaces as shared.ErrAlreadyExists so callers can return the original entry.
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a movement by its ID within a tenant
func (r *GormStockMovementRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByQuery lists movements ordered by effective date descending, ties
// broken by insertion order descending
func (r *GormStockMovementRepository) FindByQuery(ctx context.Context, tenantID uuid.UUID, query inventory.MovementQuery) ([]inventory.StockMovement, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ?", tenantID)
	base = applyMovementQuery(base, query)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := base.Order("effective_date DESC, created_at DESC")
	if query.Filter.Page > 0 && query.Filter.PageSize > 0 {
		offset := (query.Filter.Page - 1) * query.Filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(query.Filter.PageSize)
	}

	var movements []inventory.StockMovement
	if err := listQuery.Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// FindByIdempotencyKey finds a movement by its client deduplication key
func (r *GormStockMovementRepository) FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND idempotency_key = ?", tenantID, key).
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByRestockOrder lists movements tagged with a restock order
func (r *GormStockMovementRepository) FindByRestockOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND restock_order_id = ?", tenantID, orderID).
		Order("effective_date DESC, created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SumDeltaByProduct returns the signed sum of all movements for a product
func (r *GormStockMovementRepository) SumDeltaByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var sum int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// SumByRestockOrder returns the signed sum of movements tagged with an order
func (r *GormStockMovementRepository) SumByRestockOrder(ctx context.Context, tenantID, orderID uuid.UUID) (int64, error) {
	var sum int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ? AND restock_order_id = ?", tenantID, orderID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// SumByTypeInRange aggregates moved quantity per movement type over an
// optional effective-date window
func (r *GormStockMovementRepository) SumByTypeInRange(ctx context.Context, tenantID uuid.UUID, start, end *time.Time) ([]inventory.MovementTypeSum, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("tenant_id = ?", tenantID)
	if start != nil {
		query = query.Where("effective_date >= ?", *start)
	}
	if end != nil {
		query = query.Where("effective_date <= ?", *end)
	}

	var sums []inventory.MovementTypeSum
	if err := query.
		Select("type, COALESCE(SUM(quantity), 0) AS total_quantity, COUNT(*) AS movement_count").
		Group("type").
		Order("type ASC").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	return sums, nil
}

func applyMovementQuery(query *gorm.DB, q inventory.MovementQuery) *gorm.DB {
	if q.ProductID != nil {
		query = query.Where("product_id = ?", *q.ProductID)
	}
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.StartDate != nil {
		query = query.Where("effective_date >= ?", *q.StartDate)
	}
	if q.EndDate != nil {
		query = query.Where("effective_date <= ?", *q.EndDate)
	}
	return query
}

// isUniqueViolation reports whether the error is a unique constraint
// violation from postgres or sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
