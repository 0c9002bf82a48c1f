package inventory

import (
	"context"
	"time"

	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestockService owns the restock order state machine and its interaction
// with the ledger. Receipts post purchase movements; cancellation never
// touches the ledger.
type RestockService struct {
	scope          TransactionScope
	orderRepo      inventory.RestockOrderRepository
	ledger         *LedgerService
	eventPublisher shared.EventPublisher
}

// NewRestockService creates a new RestockService
func NewRestockService(scope TransactionScope, orderRepo inventory.RestockOrderRepository, ledger *LedgerService) *RestockService {
	return &RestockService{
		scope:     scope,
		orderRepo: orderRepo,
		ledger:    ledger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *RestockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrderInput carries a new restock order request
type CreateOrderInput struct {
	ProductID            uuid.UUID
	Quantity             int64
	UnitPrice            decimal.Decimal
	Supplier             string
	PurchaseDate         time.Time
	ExpectedDeliveryDate *time.Time
	Notes                string
}

// CreateOrder creates a pending restock order. No ledger entry is posted
// until goods are received.
func (s *RestockService) CreateOrder(ctx context.Context, tenantID uuid.UUID, input CreateOrderInput) (*inventory.RestockOrder, error) {
	var order *inventory.RestockOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, input.ProductID)
		if err != nil {
			return err
		}

		order, err = inventory.NewRestockOrder(tenantID, product.ID, input.Quantity, input.UnitPrice, input.Supplier, input.PurchaseDate)
		if err != nil {
			return err
		}
		order.SetExpectedDeliveryDate(input.ExpectedDeliveryDate)
		if input.Notes != "" {
			order.SetNotes(input.Notes)
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	return order, nil
}

// Receive records one receipt event against an order. The order transition,
// the purchase movement and the catalog quantity update commit atomically;
// the order and product rows are both locked for the duration.
func (s *RestockService) Receive(ctx context.Context, tenantID, orderID uuid.UUID, quantity int64) (*inventory.RestockOrder, *inventory.StockMovement, error) {
	var (
		order    *inventory.RestockOrder
		movement *inventory.StockMovement
		events   []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		product, err := repos.ProductRepo().FindByIDForUpdate(ctx, tenantID, order.ProductID)
		if err != nil {
			return err
		}

		if err := order.Receive(quantity); err != nil {
			return err
		}

		movement, err = inventory.NewStockMovement(tenantID, product.ID, quantity, inventory.MovementTypePurchase, time.Now())
		if err != nil {
			return err
		}
		movement.WithRestockOrder(order.ID).WithNote("Restock order receipt")

		if err := product.ApplyMovement(quantity); err != nil {
			return err
		}
		movement.WithBalanceAfter(product.StockQuantity)

		if err := repos.MovementRepo().Create(ctx, movement); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		events = append(events, order.GetDomainEvents()...)
		order.ClearDomainEvents()
		events = append(events, product.GetDomainEvents()...)
		product.ClearDomainEvents()
		events = append(events, inventory.NewMovementRecordedEvent(movement))

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events)

	return order, movement, nil
}

// Cancel voids the un-received remainder of an order. Receipts already
// posted stay in the ledger.
func (s *RestockService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*inventory.RestockOrder, error) {
	var order *inventory.RestockOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		if err := order.Cancel(); err != nil {
			return err
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)

	return order, nil
}

// AdjustStockInput carries a manual stock adjustment request
type AdjustStockInput struct {
	ProductID      uuid.UUID
	Quantity       int64
	Type           inventory.MovementType
	Note           string
	IdempotencyKey string
}

// AdjustStock posts a manual ledger entry. Only adjustment, return and loss
// are accepted here; sales and purchases arrive through their own flows.
func (s *RestockService) AdjustStock(ctx context.Context, tenantID uuid.UUID, input AdjustStockInput) (*inventory.StockMovement, error) {
	if !input.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}
	if !input.Type.IsManualAdjustment() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Only adjustment, return and loss movements may be posted directly")
	}

	return s.ledger.RecordMovement(ctx, tenantID, RecordMovementInput{
		ProductID:      input.ProductID,
		Quantity:       input.Quantity,
		Type:           input.Type,
		EffectiveDate:  time.Now(),
		Note:           input.Note,
		IdempotencyKey: input.IdempotencyKey,
	})
}

// List returns a page of restock orders
func (s *RestockService) List(ctx context.Context, tenantID uuid.UUID, query inventory.RestockOrderQuery) (*shared.Paginated[inventory.RestockOrder], error) {
	if query.Filter.Page <= 0 || query.Filter.PageSize <= 0 {
		defaults := shared.DefaultFilter()
		if query.Filter.Page <= 0 {
			query.Filter.Page = defaults.Page
		}
		if query.Filter.PageSize <= 0 {
			query.Filter.PageSize = defaults.PageSize
		}
	}

	if query.Status != "" && !query.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown restock order status")
	}

	orders, total, err := s.orderRepo.FindByQuery(ctx, tenantID, query)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(orders, total, query.Filter.Page, query.Filter.PageSize)
	return &result, nil
}

// Get returns one restock order by ID
func (s *RestockService) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*inventory.RestockOrder, error) {
	return s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
}

func (s *RestockService) publishDomainEvents(ctx context.Context, order *inventory.RestockOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

func (s *RestockService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
