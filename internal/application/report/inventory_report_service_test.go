package report

import (
	"context"
	"testing"
	"time"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	catalog.ProductRepository
	products []catalog.Product
}

func (r *stubProductRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	return r.products, nil
}

type stubMovementRepo struct {
	inventory.StockMovementRepository
	sums []inventory.MovementTypeSum
}

func (r *stubMovementRepo) SumByTypeInRange(_ context.Context, _ uuid.UUID, _, _ *time.Time) ([]inventory.MovementTypeSum, error) {
	return r.sums, nil
}

func testProduct(tenantID uuid.UUID, category string, quantity, minLevel int64) catalog.Product {
	return catalog.Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                "Test",
		Category:            category,
		StockQuantity:       quantity,
		MinStockLevel:       minLevel,
		Status:              catalog.ProductStatusActive,
	}
}

func TestInventoryReportService_StockByCategory(t *testing.T) {
	tenantID := uuid.New()
	productRepo := &stubProductRepo{products: []catalog.Product{
		testProduct(tenantID, "A", 10, 0),
		testProduct(tenantID, "A", 5, 0),
		testProduct(tenantID, "", 3, 0),
	}}
	svc := NewInventoryReportService(productRepo, &stubMovementRepo{})

	rows, err := svc.StockByCategory(context.Background(), tenantID)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Category)
	assert.Equal(t, int64(15), rows[0].TotalQuantity)
	assert.Equal(t, int64(2), rows[0].ProductCount)
	assert.Equal(t, catalog.UncategorizedLabel, rows[1].Category)
	assert.Equal(t, int64(3), rows[1].TotalQuantity)
}

func TestInventoryReportService_StockStatusDistribution(t *testing.T) {
	tenantID := uuid.New()
	productRepo := &stubProductRepo{products: []catalog.Product{
		testProduct(tenantID, "A", 45, 20), // in stock
		testProduct(tenantID, "A", 20, 20), // boundary: low
		testProduct(tenantID, "B", 5, 20),  // low
		testProduct(tenantID, "B", 0, 20),  // out
	}}
	svc := NewInventoryReportService(productRepo, &stubMovementRepo{})

	dist, err := svc.StockStatusDistribution(context.Background(), tenantID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), dist.InStock)
	assert.Equal(t, int64(2), dist.LowStock)
	assert.Equal(t, int64(1), dist.OutOfStock)
	assert.Equal(t, int64(4), dist.Total)
}

func TestInventoryReportService_RotationSummary(t *testing.T) {
	tenantID := uuid.New()
	movementRepo := &stubMovementRepo{sums: []inventory.MovementTypeSum{
		{Type: inventory.MovementTypePurchase, TotalQuantity: 120, MovementCount: 3},
		{Type: inventory.MovementTypeSale, TotalQuantity: -80, MovementCount: 5},
		{Type: inventory.MovementTypeLoss, TotalQuantity: -4, MovementCount: 1},
	}}
	svc := NewInventoryReportService(&stubProductRepo{}, movementRepo)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	summary, err := svc.RotationSummary(context.Background(), tenantID, &start, &end)
	require.NoError(t, err)

	assert.Equal(t, int64(204), summary.TotalMoved)
	assert.Len(t, summary.ByType, 3)
	require.NotNil(t, summary.PeriodStart)
	assert.Equal(t, start, *summary.PeriodStart)
}
