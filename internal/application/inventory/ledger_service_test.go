package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/inventory"
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	tenantID     uuid.UUID
	productRepo  *memProductRepo
	movementRepo *memMovementRepo
	orderRepo    *memOrderRepo
	ledger       *LedgerService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	productRepo := newMemProductRepo()
	movementRepo := newMemMovementRepo()
	orderRepo := newMemOrderRepo()
	scope := NewNoOpTransactionScope(productRepo, movementRepo, orderRepo)
	return &ledgerFixture{
		tenantID:     uuid.New(),
		productRepo:  productRepo,
		movementRepo: movementRepo,
		orderRepo:    orderRepo,
		ledger:       NewLedgerService(scope, productRepo, movementRepo),
	}
}

func (f *ledgerFixture) addProduct(t *testing.T, minLevel int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(f.tenantID, "Paracetamol 500mg", decimal.NewFromFloat(2.40))
	require.NoError(t, err)
	require.NoError(t, product.SetMinStockLevel(minLevel))
	product.ClearDomainEvents()
	f.productRepo.put(product)
	return product
}

func (f *ledgerFixture) record(t *testing.T, productID uuid.UUID, qty int64, mt inventory.MovementType) *inventory.StockMovement {
	t.Helper()
	movement, err := f.ledger.RecordMovement(context.Background(), f.tenantID, RecordMovementInput{
		ProductID: productID,
		Quantity:  qty,
		Type:      mt,
	})
	require.NoError(t, err)
	return movement
}

func TestLedgerService_RecordMovement(t *testing.T) {
	ctx := context.Background()

	t.Run("appends entry and updates quantity atomically", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.addProduct(t, 20)

		movement := f.record(t, product.ID, 45, inventory.MovementTypePurchase)

		assert.Equal(t, int64(45), movement.Quantity)
		assert.Equal(t, int64(45), movement.BalanceAfter)

		stored, err := f.productRepo.FindByIDForTenant(ctx, f.tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(45), stored.StockQuantity)
	})

	t.Run("sale through the threshold reclassifies the product", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.addProduct(t, 20)
		f.record(t, product.ID, 45, inventory.MovementTypePurchase)

		stored, err := f.productRepo.FindByIDForTenant(ctx, f.tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.StockStatusIn, stored.StockStatus())

		f.record(t, product.ID, -30, inventory.MovementTypeSale)

		stored, err = f.productRepo.FindByIDForTenant(ctx, f.tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(15), stored.StockQuantity)
		assert.Equal(t, catalog.StockStatusLow, stored.StockStatus())
	})

	t.Run("rejects movement that would drive stock negative", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.addProduct(t, 0)
		f.record(t, product.ID, 10, inventory.MovementTypePurchase)

		_, err := f.ledger.RecordMovement(ctx, f.tenantID, RecordMovementInput{
			ProductID: product.ID,
			Quantity:  -15,
			Type:      inventory.MovementTypeLoss,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)

		stored, findErr := f.productRepo.FindByIDForTenant(ctx, f.tenantID, product.ID)
		require.NoError(t, findErr)
		assert.Equal(t, int64(10), stored.StockQuantity)

		sum, sumErr := f.movementRepo.SumDeltaByProduct(ctx, f.tenantID, product.ID)
		require.NoError(t, sumErr)
		assert.Equal(t, int64(10), sum)
	})

	t.Run("fails with not found for unknown product", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.ledger.RecordMovement(ctx, f.tenantID, RecordMovementInput{
			ProductID: uuid.New(),
			Quantity:  5,
			Type:      inventory.MovementTypeAdjustment,
		})

		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects sign violating the movement type", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.addProduct(t, 0)
		f.record(t, product.ID, 10, inventory.MovementTypePurchase)

		_, err := f.ledger.RecordMovement(ctx, f.tenantID, RecordMovementInput{
			ProductID: product.ID,
			Quantity:  5,
			Type:      inventory.MovementTypeSale,
		})

		require.Error(t, err)
		stored, _ := f.productRepo.FindByIDForTenant(ctx, f.tenantID, product.ID)
		assert.Equal(t, int64(10), stored.StockQuantity)
	})

	t.Run("deduplicates by idempotency key", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.addProduct(t, 0)

		input := RecordMovementInput{
			ProductID:      product.ID,
			Quantity:       10,
			Type:           inventory.MovementTypePurchase,
			IdempotencyKey: "retry-1",
		}

		first, err := f.ledger.RecordMovement(ctx, f.tenantID, input)
		require.NoError(t, err)

		second, err := f.ledger.RecordMovement(ctx, f.tenantID, input)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)

		stored, _ := f.productRepo.FindByIDForTenant(ctx, f.tenantID, product.ID)
		assert.Equal(t, int64(10), stored.StockQuantity)

		sum, _ := f.movementRepo.SumDeltaByProduct(ctx, f.tenantID, product.ID)
		assert.Equal(t, int64(10), sum)
	})

	t.Run("ledger sum always matches catalog quantity", func(t *testing.T) {
		f := newLedgerFixture(t)
		product := f.addProduct(t, 5)

		f.record(t, product.ID, 100, inventory.MovementTypePurchase)
		f.record(t, product.ID, -40, inventory.MovementTypeSale)
		f.record(t, product.ID, 3, inventory.MovementTypeReturn)
		f.record(t, product.ID, -2, inventory.MovementTypeLoss)
		f.record(t, product.ID, -11, inventory.MovementTypeAdjustment)

		result, err := f.ledger.ReconcileProduct(ctx, f.tenantID, product.ID)
		require.NoError(t, err)
		assert.True(t, result.Consistent)
		assert.Equal(t, int64(50), result.LedgerSum)
		assert.Equal(t, int64(50), result.CatalogQuantity)
	})
}

func TestLedgerService_ListMovements(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	product := f.addProduct(t, 0)

	dates := []time.Time{
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		_, err := f.ledger.RecordMovement(ctx, f.tenantID, RecordMovementInput{
			ProductID:     product.ID,
			Quantity:      5,
			Type:          inventory.MovementTypePurchase,
			EffectiveDate: d,
		})
		require.NoError(t, err)
	}

	page, err := f.ledger.ListMovements(ctx, f.tenantID, inventory.MovementQuery{ProductID: &product.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	assert.Equal(t, dates[1], page.Items[0].EffectiveDate)
	assert.Equal(t, dates[2], page.Items[1].EffectiveDate)
	assert.Equal(t, dates[0], page.Items[2].EffectiveDate)

	t.Run("date range filter", func(t *testing.T) {
		start := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
		page, err := f.ledger.ListMovements(ctx, f.tenantID, inventory.MovementQuery{
			ProductID: &product.ID,
			StartDate: &start,
		})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
	})
}
