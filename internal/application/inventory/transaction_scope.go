package inventory

import (
	"context"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the ledger repositories.
// All repository operations inside Execute share one database transaction and
// commit or roll back together, which is what keeps the movement append and
// the catalog quantity update atomic.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories participating
// in a ledger transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
	// OrderRepo returns the restock order repository scoped to the current transaction
	OrderRepo() inventory.RestockOrderRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests backed by in-memory repositories.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	movementRepo inventory.StockMovementRepository
	orderRepo    inventory.RestockOrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	movementRepo inventory.StockMovementRepository,
	orderRepo inventory.RestockOrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		orderRepo:    orderRepo,
	}
}

// Execute runs the function without transaction semantics.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// MovementRepo returns the stock movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// OrderRepo returns the restock order repository.
func (s *NoOpTransactionScope) OrderRepo() inventory.RestockOrderRepository {
	return s.orderRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
