package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. They honor the same
// error contracts as the GORM implementations.

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *memProductRepo) put(p *catalog.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = *p
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok && p.TenantID == tenantID {
		copied := p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r *memProductRepo) Search(_ context.Context, tenantID uuid.UUID, _ catalog.ProductQuery) ([]catalog.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindBySKU(_ context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.TenantID == tenantID && p.SKU == strings.ToUpper(sku) {
			copied := p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	return r.Save(ctx, product)
}

func (r *memProductRepo) CountForTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

type memMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.StockMovement
}

func newMemMovementRepo() *memMovementRepo {
	return &memMovementRepo{}
}

func (r *memMovementRepo) Create(_ context.Context, movement *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if movement.IdempotencyKey != nil {
		for i := range r.movements {
			existing := r.movements[i]
			if existing.TenantID == movement.TenantID && existing.IdempotencyKey != nil && *existing.IdempotencyKey == *movement.IdempotencyKey {
				return shared.ErrAlreadyExists
			}
		}
	}
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *memMovementRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movements {
		if r.movements[i].TenantID == tenantID && r.movements[i].ID == id {
			copied := r.movements[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memMovementRepo) FindByQuery(_ context.Context, tenantID uuid.UUID, query inventory.MovementQuery) ([]inventory.StockMovement, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.StockMovement
	for i := range r.movements {
		m := r.movements[i]
		if m.TenantID != tenantID {
			continue
		}
		if query.ProductID != nil && m.ProductID != *query.ProductID {
			continue
		}
		if query.StartDate != nil && m.EffectiveDate.Before(*query.StartDate) {
			continue
		}
		if query.EndDate != nil && m.EffectiveDate.After(*query.EndDate) {
			continue
		}
		if query.Type != "" && m.Type != query.Type {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EffectiveDate.Equal(out[j].EffectiveDate) {
			return out[i].EffectiveDate.After(out[j].EffectiveDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, int64(len(out)), nil
}

func (r *memMovementRepo) FindByIdempotencyKey(_ context.Context, tenantID uuid.UUID, key string) (*inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movements {
		m := r.movements[i]
		if m.TenantID == tenantID && m.IdempotencyKey != nil && *m.IdempotencyKey == key {
			copied := m
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memMovementRepo) FindByRestockOrder(_ context.Context, tenantID, orderID uuid.UUID) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.StockMovement
	for i := range r.movements {
		m := r.movements[i]
		if m.TenantID == tenantID && m.RestockOrderID != nil && *m.RestockOrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) SumDeltaByProduct(_ context.Context, tenantID, productID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for i := range r.movements {
		m := r.movements[i]
		if m.TenantID == tenantID && m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

func (r *memMovementRepo) SumByRestockOrder(_ context.Context, tenantID, orderID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for i := range r.movements {
		m := r.movements[i]
		if m.TenantID == tenantID && m.RestockOrderID != nil && *m.RestockOrderID == orderID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

func (r *memMovementRepo) SumByTypeInRange(_ context.Context, tenantID uuid.UUID, start, end *time.Time) ([]inventory.MovementTypeSum, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byType := make(map[inventory.MovementType]*inventory.MovementTypeSum)
	for i := range r.movements {
		m := r.movements[i]
		if m.TenantID != tenantID {
			continue
		}
		if start != nil && m.EffectiveDate.Before(*start) {
			continue
		}
		if end != nil && m.EffectiveDate.After(*end) {
			continue
		}
		row, ok := byType[m.Type]
		if !ok {
			row = &inventory.MovementTypeSum{Type: m.Type}
			byType[m.Type] = row
		}
		row.TotalQuantity += m.Quantity
		row.MovementCount++
	}
	out := make([]inventory.MovementTypeSum, 0, len(byType))
	for _, row := range byType {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]inventory.RestockOrder
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]inventory.RestockOrder)}
}

func (r *memOrderRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*inventory.RestockOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok && o.TenantID == tenantID {
		copied := o
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.RestockOrder, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r *memOrderRepo) FindByQuery(_ context.Context, tenantID uuid.UUID, query inventory.RestockOrderQuery) ([]inventory.RestockOrder, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.RestockOrder
	for _, o := range r.orders {
		if o.TenantID != tenantID {
			continue
		}
		if query.ProductID != nil && o.ProductID != *query.ProductID {
			continue
		}
		if query.Status != "" && o.Status != query.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) Save(_ context.Context, order *inventory.RestockOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) SaveWithLock(ctx context.Context, order *inventory.RestockOrder) error {
	return r.Save(ctx, order)
}

func (r *memOrderRepo) CountForTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if o.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

var (
	_ catalog.ProductRepository         = (*memProductRepo)(nil)
	_ inventory.StockMovementRepository = (*memMovementRepo)(nil)
	_ inventory.RestockOrderRepository  = (*memOrderRepo)(nil)
)
