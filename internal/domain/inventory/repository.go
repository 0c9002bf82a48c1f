package inventory

import (
	"context"
	"time"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementQuery filters the movement history of a product
type MovementQuery struct {
	ProductID *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      MovementType
	Filter    shared.Filter
}

// MovementTypeSum is one row of a per-type rotation aggregate
type MovementTypeSum struct {
	Type          MovementType `json:"type"`
	TotalQuantity int64        `json:"total_quantity"`
	MovementCount int64        `json:"movement_count"`
}

// StockMovementRepository persists the append-only ledger. There is no
// update or delete; history is corrected by appending offsetting entries.
type StockMovementRepository interface {
	// Create appends a movement to the ledger
	Create(ctx context.Context, movement *StockMovement) error

	// FindByID finds a movement by its ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*StockMovement, error)

	// FindByQuery lists movements ordered by effective date descending,
	// ties broken by insertion order descending
	FindByQuery(ctx context.Context, tenantID uuid.UUID, query MovementQuery) ([]StockMovement, int64, error)

	// FindByIdempotencyKey finds a movement by its client deduplication key
	FindByIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) (*StockMovement, error)

	// FindByRestockOrder lists movements tagged with a restock order
	FindByRestockOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]StockMovement, error)

	// SumDeltaByProduct returns the signed sum of all movements for a
	// product; used to reconcile against the catalog quantity
	SumDeltaByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)

	// SumByRestockOrder returns the signed sum of movements tagged with an order
	SumByRestockOrder(ctx context.Context, tenantID, orderID uuid.UUID) (int64, error)

	// SumByTypeInRange aggregates moved quantity per movement type
	SumByTypeInRange(ctx context.Context, tenantID uuid.UUID, start, end *time.Time) ([]MovementTypeSum, error)
}

// RestockOrderQuery filters restock order listings
type RestockOrderQuery struct {
	ProductID *uuid.UUID
	Status    RestockOrderStatus
	Filter    shared.Filter
}

// RestockOrderRepository persists restock orders
type RestockOrderRepository interface {
	// FindByIDForTenant finds an order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RestockOrder, error)

	// FindByIDForUpdate loads an order holding a row lock. Must be called
	// inside a transaction; serializes receive/cancel per order.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*RestockOrder, error)

	// FindByQuery lists orders for a tenant
	FindByQuery(ctx context.Context, tenantID uuid.UUID, query RestockOrderQuery) ([]RestockOrder, int64, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *RestockOrder) error

	// SaveWithLock updates an order with an optimistic version check
	SaveWithLock(ctx context.Context, order *RestockOrder) error

	// CountForTenant counts orders for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
