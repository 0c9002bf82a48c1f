package catalog

import (
	"context"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService handles catalog query and management operations. Stock
// quantities are never written through this service; they change only via
// committed movements in the ledger service.
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListProductsQuery captures the catalog list request
type ListProductsQuery struct {
	Search      string
	Category    string
	StockStatus string // "all", "low" or "out"
	Status      string // "", "active" or "inactive"
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

// CreateProductInput carries the attributes for a new product
type CreateProductInput struct {
	Name          string
	Description   string
	Category      string
	SKU           string
	Barcode       string
	Supplier      string
	Location      string
	UnitPrice     decimal.Decimal
	MinStockLevel int64
}

// UpdateProductInput carries updatable product attributes
type UpdateProductInput struct {
	Name          string
	Description   string
	Category      string
	Supplier      string
	Location      string
	UnitPrice     decimal.Decimal
	MinStockLevel int64
}

// List returns a page of product snapshots matching the query
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, query ListProductsQuery) (*shared.Paginated[catalog.Product], error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	if query.SortBy != "" {
		filter.OrderBy = query.SortBy
	}
	if query.SortOrder != "" {
		filter.OrderDir = query.SortOrder
	}
	filter.Search = query.Search

	switch query.StockStatus {
	case "", "all", "low", "out":
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock status filter must be all, low or out")
	}

	repoQuery := catalog.ProductQuery{
		Search:      query.Search,
		Category:    query.Category,
		StockStatus: query.StockStatus,
		Status:      catalog.ProductStatus(query.Status),
		Filter:      filter,
	}

	products, total, err := s.productRepo.Search(ctx, tenantID, repoQuery)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Get returns one product by ID
func (s *ProductService) Get(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
}

// Create adds a new product to the catalog with zero stock
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, input CreateProductInput) (*catalog.Product, error) {
	product, err := catalog.NewProduct(tenantID, input.Name, input.UnitPrice)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Description, input.Category, input.Supplier, input.Location); err != nil {
		return nil, err
	}
	if err := product.SetSKU(input.SKU); err != nil {
		return nil, err
	}
	if err := product.SetBarcode(input.Barcode); err != nil {
		return nil, err
	}
	if err := product.SetMinStockLevel(input.MinStockLevel); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	return product, nil
}

// Update modifies a product's descriptive attributes and thresholds
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, input UpdateProductInput) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Description, input.Category, input.Supplier, input.Location); err != nil {
		return nil, err
	}
	if err := product.SetUnitPrice(input.UnitPrice); err != nil {
		return nil, err
	}
	if err := product.SetMinStockLevel(input.MinStockLevel); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	return product, nil
}

// Activate re-activates a deactivated product
func (s *ProductService) Activate(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.Product, error) {
	return s.changeStatus(ctx, tenantID, productID, (*catalog.Product).Activate)
}

// Deactivate soft-deactivates a product
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.Product, error) {
	return s.changeStatus(ctx, tenantID, productID, (*catalog.Product).Deactivate)
}

func (s *ProductService) changeStatus(ctx context.Context, tenantID, productID uuid.UUID, transition func(*catalog.Product) error) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := transition(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, product)

	return product, nil
}

func (s *ProductService) publishDomainEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Event delivery is best-effort; the state change is already committed
	_ = s.eventPublisher.Publish(ctx, events...)
	product.ClearDomainEvents()
}
