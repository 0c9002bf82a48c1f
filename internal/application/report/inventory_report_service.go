package report

import (
	"context"
	"sort"
	"time"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/report"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryReportService computes read-only projections from current catalog
// and ledger state. It never mutates and never caches authoritatively; every
// call recomputes from the repositories.
type InventoryReportService struct {
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
}

// NewInventoryReportService creates a new InventoryReportService
func NewInventoryReportService(productRepo catalog.ProductRepository, movementRepo inventory.StockMovementRepository) *InventoryReportService {
	return &InventoryReportService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// StockByCategory groups products by category label and sums quantities.
// Products without a category land in the uncategorized bucket.
func (s *InventoryReportService) StockByCategory(ctx context.Context, tenantID uuid.UUID) ([]report.CategoryStock, error) {
	products, err := s.allProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*report.CategoryStock)
	for i := range products {
		label := products[i].CategoryLabel()
		bucket, ok := buckets[label]
		if !ok {
			bucket = &report.CategoryStock{Category: label}
			buckets[label] = bucket
		}
		bucket.TotalQuantity += products[i].StockQuantity
		bucket.ProductCount++
	}

	result := make([]report.CategoryStock, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})

	return result, nil
}

// StockStatusDistribution counts products per classification bucket using
// the same rule that backs catalog filters and badges.
func (s *InventoryReportService) StockStatusDistribution(ctx context.Context, tenantID uuid.UUID) (*report.StockStatusDistribution, error) {
	products, err := s.allProducts(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	dist := &report.StockStatusDistribution{}
	for i := range products {
		switch catalog.ClassifyStock(products[i].StockQuantity, products[i].MinStockLevel) {
		case catalog.StockStatusOut:
			dist.OutOfStock++
		case catalog.StockStatusLow:
			dist.LowStock++
		default:
			dist.InStock++
		}
		dist.Total++
	}

	return dist, nil
}

// RotationSummary aggregates moved quantities per movement type over an
// optional date range.
func (s *InventoryReportService) RotationSummary(ctx context.Context, tenantID uuid.UUID, start, end *time.Time) (*report.RotationSummary, error) {
	sums, err := s.movementRepo.SumByTypeInRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &report.RotationSummary{
		PeriodStart: start,
		PeriodEnd:   end,
		ByType:      sums,
	}
	for _, row := range sums {
		qty := row.TotalQuantity
		if qty < 0 {
			qty = -qty
		}
		summary.TotalMoved += qty
	}

	return summary, nil
}

func (s *InventoryReportService) allProducts(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	// PageSize 0 disables pagination; aggregates always see the full catalog
	filter := shared.Filter{OrderBy: "created_at", OrderDir: "asc"}
	return s.productRepo.FindAllForTenant(ctx, tenantID, filter)
}
