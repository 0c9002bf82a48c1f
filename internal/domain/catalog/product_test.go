package catalog

import (
	"testing"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct(uuid.New(), "Amoxicillin 500mg", decimal.NewFromFloat(12.50))
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with zero stock", func(t *testing.T) {
		tenantID := uuid.New()
		product, err := NewProduct(tenantID, "Ibuprofen 200mg", decimal.NewFromFloat(5.99))

		require.NoError(t, err)
		assert.Equal(t, tenantID, product.TenantID)
		assert.Equal(t, "Ibuprofen 200mg", product.Name)
		assert.Equal(t, int64(0), product.StockQuantity)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Len(t, product.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductCreated, product.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "  ", decimal.NewFromInt(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Gauze", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestProduct_ApplyMovement(t *testing.T) {
	t.Run("applies positive delta", func(t *testing.T) {
		product := createTestProduct(t)

		err := product.ApplyMovement(45)

		require.NoError(t, err)
		assert.Equal(t, int64(45), product.StockQuantity)
	})

	t.Run("applies negative delta down to zero", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ApplyMovement(10))

		err := product.ApplyMovement(-10)

		require.NoError(t, err)
		assert.Equal(t, int64(0), product.StockQuantity)
	})

	t.Run("rejects delta that would drive stock negative", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.ApplyMovement(10))

		err := product.ApplyMovement(-15)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
		assert.Equal(t, int64(10), product.StockQuantity)
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		product := createTestProduct(t)
		err := product.ApplyMovement(0)
		require.Error(t, err)
	})

	t.Run("emits below-minimum event when crossing threshold", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.SetMinStockLevel(20))
		require.NoError(t, product.ApplyMovement(45))
		product.ClearDomainEvents()

		require.NoError(t, product.ApplyMovement(-30))

		events := product.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeStockQuantityChanged, events[0].EventType())
		assert.Equal(t, EventTypeStockBelowMinimum, events[1].EventType())
	})

	t.Run("does not re-emit below-minimum event while already low", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.SetMinStockLevel(20))
		require.NoError(t, product.ApplyMovement(15))
		product.ClearDomainEvents()

		require.NoError(t, product.ApplyMovement(-5))

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockQuantityChanged, events[0].EventType())
	})
}

func TestClassifyStock(t *testing.T) {
	t.Run("zero quantity is out of stock", func(t *testing.T) {
		assert.Equal(t, StockStatusOut, ClassifyStock(0, 20))
		assert.Equal(t, StockStatusOut, ClassifyStock(0, 0))
	})

	t.Run("boundary quantity equal to minimum is low stock", func(t *testing.T) {
		assert.Equal(t, StockStatusLow, ClassifyStock(20, 20))
	})

	t.Run("quantity below minimum is low stock", func(t *testing.T) {
		assert.Equal(t, StockStatusLow, ClassifyStock(15, 20))
		assert.Equal(t, StockStatusLow, ClassifyStock(1, 20))
	})

	t.Run("quantity above minimum is in stock", func(t *testing.T) {
		assert.Equal(t, StockStatusIn, ClassifyStock(45, 20))
		assert.Equal(t, StockStatusIn, ClassifyStock(21, 20))
	})

	t.Run("sale crossing the threshold reclassifies to low", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.SetMinStockLevel(20))
		require.NoError(t, product.ApplyMovement(45))
		assert.Equal(t, StockStatusIn, product.StockStatus())

		require.NoError(t, product.ApplyMovement(-30))

		assert.Equal(t, int64(15), product.StockQuantity)
		assert.Equal(t, StockStatusLow, product.StockStatus())
	})
}

func TestProduct_CategoryLabel(t *testing.T) {
	product := createTestProduct(t)

	assert.Equal(t, UncategorizedLabel, product.CategoryLabel())

	require.NoError(t, product.Update(product.Name, "", "Antibiotics", "", ""))
	assert.Equal(t, "Antibiotics", product.CategoryLabel())

	require.NoError(t, product.Update(product.Name, "", "   ", "", ""))
	assert.Equal(t, UncategorizedLabel, product.CategoryLabel())
}

func TestProduct_StatusTransitions(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		product := createTestProduct(t)

		require.NoError(t, product.Deactivate())
		assert.Equal(t, ProductStatusInactive, product.Status)
		assert.False(t, product.IsActive())

		require.NoError(t, product.Activate())
		assert.Equal(t, ProductStatusActive, product.Status)
	})

	t.Run("double deactivate fails", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.Deactivate())

		err := product.Deactivate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already inactive")
	})

	t.Run("activate an active product fails", func(t *testing.T) {
		product := createTestProduct(t)
		err := product.Activate()
		require.Error(t, err)
	})
}

func TestProduct_SetMinStockLevel(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.SetMinStockLevel(20))
	assert.Equal(t, int64(20), product.MinStockLevel)

	err := product.SetMinStockLevel(-1)
	require.Error(t, err)
}
