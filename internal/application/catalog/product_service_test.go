package catalog

import (
	"context"
	"testing"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	catalog.ProductRepository
	products  map[uuid.UUID]catalog.Product
	lastQuery catalog.ProductQuery
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *fakeProductRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok && p.TenantID == tenantID {
		copied := p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) Search(_ context.Context, tenantID uuid.UUID, query catalog.ProductQuery) ([]catalog.Product, int64, error) {
	r.lastQuery = query
	var out []catalog.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	return r.Save(ctx, product)
}

func TestProductService_Create(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	tenantID := uuid.New()

	t.Run("creates product with attributes and zero stock", func(t *testing.T) {
		product, err := svc.Create(context.Background(), tenantID, CreateProductInput{
			Name:          "Amoxicillin 500mg",
			Description:   "Antibiotic capsules",
			Category:      "Antibiotics",
			SKU:           "amx-500",
			Barcode:       "7891234567890",
			Supplier:      "Pharma Supply Co",
			Location:      "Shelf B3",
			UnitPrice:     decimal.NewFromFloat(12.50),
			MinStockLevel: 20,
		})

		require.NoError(t, err)
		assert.Equal(t, "AMX-500", product.SKU)
		assert.Equal(t, "Antibiotics", product.Category)
		assert.Equal(t, int64(0), product.StockQuantity)
		assert.Equal(t, int64(20), product.MinStockLevel)
		assert.Equal(t, catalog.StockStatusOut, product.StockStatus())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := svc.Create(context.Background(), tenantID, CreateProductInput{
			Name:      "",
			UnitPrice: decimal.NewFromInt(1),
		})
		require.Error(t, err)
	})
}

func TestProductService_List(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	tenantID := uuid.New()

	t.Run("applies defaults and passes the query through", func(t *testing.T) {
		page, err := svc.List(context.Background(), tenantID, ListProductsQuery{
			Search:      "amox",
			Category:    "Antibiotics",
			StockStatus: "low",
			SortBy:      "name",
			SortOrder:   "asc",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PageSize)
		assert.Equal(t, "amox", repo.lastQuery.Search)
		assert.Equal(t, "low", repo.lastQuery.StockStatus)
		assert.Equal(t, "name", repo.lastQuery.Filter.OrderBy)
	})

	t.Run("rejects unknown stock status filter", func(t *testing.T) {
		_, err := svc.List(context.Background(), tenantID, ListProductsQuery{StockStatus: "plenty"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestProductService_StatusChanges(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateProductInput{
		Name:      "Gauze Pads",
		UnitPrice: decimal.NewFromFloat(0.80),
	})
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductStatusInactive, deactivated.Status)

	activated, err := svc.Activate(context.Background(), tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ProductStatusActive, activated.Status)

	t.Run("unknown product fails with not found", func(t *testing.T) {
		_, err := svc.Deactivate(context.Background(), tenantID, uuid.New())
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
