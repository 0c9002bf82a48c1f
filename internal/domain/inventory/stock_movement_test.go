package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates a purchase movement", func(t *testing.T) {
		movement, err := NewStockMovement(tenantID, productID, 60, MovementTypePurchase, date)

		require.NoError(t, err)
		assert.Equal(t, int64(60), movement.Quantity)
		assert.Equal(t, MovementTypePurchase, movement.Type)
		assert.Equal(t, date, movement.EffectiveDate)
		assert.True(t, movement.IsIncrease())
	})

	t.Run("creates a sale movement with negative quantity", func(t *testing.T) {
		movement, err := NewStockMovement(tenantID, productID, -30, MovementTypeSale, date)

		require.NoError(t, err)
		assert.False(t, movement.IsIncrease())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, productID, 0, MovementTypeAdjustment, date)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be zero")
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, productID, 5, MovementType("transfer"), date)
		require.Error(t, err)
	})

	t.Run("rejects negative quantity on inbound types", func(t *testing.T) {
		for _, mt := range []MovementType{MovementTypePurchase, MovementTypeReturn} {
			_, err := NewStockMovement(tenantID, productID, -5, mt, date)
			require.Error(t, err, string(mt))
		}
	})

	t.Run("rejects positive quantity on outbound types", func(t *testing.T) {
		for _, mt := range []MovementType{MovementTypeSale, MovementTypeLoss} {
			_, err := NewStockMovement(tenantID, productID, 5, mt, date)
			require.Error(t, err, string(mt))
		}
	})

	t.Run("adjustment accepts either sign", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, productID, 5, MovementTypeAdjustment, date)
		require.NoError(t, err)
		_, err = NewStockMovement(tenantID, productID, -5, MovementTypeAdjustment, date)
		require.NoError(t, err)
	})

	t.Run("defaults effective date to now when zero", func(t *testing.T) {
		movement, err := NewStockMovement(tenantID, productID, 5, MovementTypeAdjustment, time.Time{})
		require.NoError(t, err)
		assert.False(t, movement.EffectiveDate.IsZero())
	})
}

func TestStockMovement_Builders(t *testing.T) {
	movement, err := NewStockMovement(uuid.New(), uuid.New(), 10, MovementTypePurchase, time.Now())
	require.NoError(t, err)

	orderID := uuid.New()
	movement.WithNote("  delivery batch 2 ").
		WithRestockOrder(orderID).
		WithIdempotencyKey("retry-abc").
		WithBalanceAfter(42)

	assert.Equal(t, "delivery batch 2", movement.Note)
	require.NotNil(t, movement.RestockOrderID)
	assert.Equal(t, orderID, *movement.RestockOrderID)
	require.NotNil(t, movement.IdempotencyKey)
	assert.Equal(t, "retry-abc", *movement.IdempotencyKey)
	assert.Equal(t, int64(42), movement.BalanceAfter)
}

func TestStockMovement_BlankIdempotencyKeyIgnored(t *testing.T) {
	movement, err := NewStockMovement(uuid.New(), uuid.New(), 10, MovementTypePurchase, time.Now())
	require.NoError(t, err)

	movement.WithIdempotencyKey("   ")

	assert.Nil(t, movement.IdempotencyKey)
}

func TestMovementType_IsManualAdjustment(t *testing.T) {
	assert.True(t, MovementTypeAdjustment.IsManualAdjustment())
	assert.True(t, MovementTypeReturn.IsManualAdjustment())
	assert.True(t, MovementTypeLoss.IsManualAdjustment())
	assert.False(t, MovementTypeSale.IsManualAdjustment())
	assert.False(t, MovementTypePurchase.IsManualAdjustment())
}
