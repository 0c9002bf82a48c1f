package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerService is the single point of truth for stock quantity changes.
// Every committed movement appends one immutable ledger entry and updates the
// product's counter in the same transaction; a rejected movement changes
// nothing.
type LedgerService struct {
	scope            TransactionScope
	productRepo      catalog.ProductRepository
	movementRepo     inventory.StockMovementRepository
	idempotencyStore shared.IdempotencyStore
	idempotencyCfg   shared.IdempotencyConfig
	eventPublisher   shared.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	scope TransactionScope,
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
) *LedgerService {
	return &LedgerService{
		scope:          scope,
		productRepo:    productRepo,
		movementRepo:   movementRepo,
		idempotencyCfg: shared.DefaultIdempotencyConfig(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore sets the fast-path store for movement deduplication keys
func (s *LedgerService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotencyStore = store
	s.idempotencyCfg = cfg
}

// RecordMovementInput carries one movement request
type RecordMovementInput struct {
	ProductID      uuid.UUID
	Quantity       int64
	Type           inventory.MovementType
	EffectiveDate  time.Time
	Note           string
	RestockOrderID *uuid.UUID
	IdempotencyKey string
}

// RecordMovement validates and commits one ledger entry. Concurrent calls
// against the same product serialize on the product row lock; the negative
// stock check runs against the quantity read under that lock.
func (s *LedgerService) RecordMovement(ctx context.Context, tenantID uuid.UUID, input RecordMovementInput) (*inventory.StockMovement, error) {
	if !input.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}

	if input.IdempotencyKey != "" {
		if existing, err := s.findDuplicate(ctx, tenantID, input.IdempotencyKey); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	var (
		movement *inventory.StockMovement
		events   []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, tenantID, input.ProductID)
		if err != nil {
			return err
		}

		movement, err = inventory.NewStockMovement(tenantID, product.ID, input.Quantity, input.Type, input.EffectiveDate)
		if err != nil {
			return err
		}
		movement.WithNote(input.Note).WithIdempotencyKey(input.IdempotencyKey)
		if input.RestockOrderID != nil {
			movement.WithRestockOrder(*input.RestockOrderID)
		}

		if err := product.ApplyMovement(input.Quantity); err != nil {
			return err
		}
		movement.WithBalanceAfter(product.StockQuantity)

		if err := repos.MovementRepo().Create(ctx, movement); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}

		events = append(events, product.GetDomainEvents()...)
		product.ClearDomainEvents()
		events = append(events, inventory.NewMovementRecordedEvent(movement))

		return nil
	})
	if err != nil {
		// A concurrent retry may have won the unique-key race on the ledger
		if input.IdempotencyKey != "" && errors.Is(err, shared.ErrAlreadyExists) {
			if existing, dupErr := s.findDuplicate(ctx, tenantID, input.IdempotencyKey); dupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}

	s.markProcessed(ctx, tenantID, input.IdempotencyKey)
	s.publish(ctx, events)

	return movement, nil
}

// ListMovements returns a page of a product's movement history ordered by
// effective date descending, ties broken by insertion order descending.
func (s *LedgerService) ListMovements(ctx context.Context, tenantID uuid.UUID, query inventory.MovementQuery) (*shared.Paginated[inventory.StockMovement], error) {
	if query.Filter.Page <= 0 || query.Filter.PageSize <= 0 {
		defaults := shared.DefaultFilter()
		if query.Filter.Page <= 0 {
			query.Filter.Page = defaults.Page
		}
		if query.Filter.PageSize <= 0 {
			query.Filter.PageSize = defaults.PageSize
		}
	}

	movements, total, err := s.movementRepo.FindByQuery(ctx, tenantID, query)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(movements, total, query.Filter.Page, query.Filter.PageSize)
	return &result, nil
}

// ReconciliationResult compares the ledger sum against the catalog counter
type ReconciliationResult struct {
	ProductID       uuid.UUID `json:"product_id"`
	LedgerSum       int64     `json:"ledger_sum"`
	CatalogQuantity int64     `json:"catalog_quantity"`
	Consistent      bool      `json:"consistent"`
}

// ReconcileProduct folds the product's ledger and compares it with the
// catalog quantity. The two must always agree.
func (s *LedgerService) ReconcileProduct(ctx context.Context, tenantID, productID uuid.UUID) (*ReconciliationResult, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	sum, err := s.movementRepo.SumDeltaByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	return &ReconciliationResult{
		ProductID:       productID,
		LedgerSum:       sum,
		CatalogQuantity: product.StockQuantity,
		Consistent:      sum == product.StockQuantity,
	}, nil
}

func (s *LedgerService) findDuplicate(ctx context.Context, tenantID uuid.UUID, key string) (*inventory.StockMovement, error) {
	if s.idempotencyStore != nil && s.idempotencyCfg.Enabled {
		seen, err := s.idempotencyStore.IsProcessed(ctx, idempotencyStoreKey(tenantID, key))
		if err == nil && !seen {
			// Fast path: key never seen, skip the ledger lookup
			return nil, nil
		}
	}

	existing, err := s.movementRepo.FindByIdempotencyKey(ctx, tenantID, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

func (s *LedgerService) markProcessed(ctx context.Context, tenantID uuid.UUID, key string) {
	if key == "" || s.idempotencyStore == nil || !s.idempotencyCfg.Enabled {
		return
	}
	// Best-effort; the unique ledger column is the durable guard
	_, _ = s.idempotencyStore.MarkProcessed(ctx, idempotencyStoreKey(tenantID, key), s.idempotencyCfg.TTL)
}

func (s *LedgerService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}

func idempotencyStoreKey(tenantID uuid.UUID, key string) string {
	return "movement:" + tenantID.String() + ":" + key
}
