package models_test

import (
	"testing"
	"time"

	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOrderDate(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	t.Run("today is allowed", func(t *testing.T) {
		// Earlier the same day still counts as today.
		today := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
		require.NoError(t, models.ValidateOrderDate(today, now))
	})

	t.Run("future is allowed", func(t *testing.T) {
		require.NoError(t, models.ValidateOrderDate(now.AddDate(0, 0, 3), now))
	})

	t.Run("past is rejected", func(t *testing.T) {
		err := models.ValidateOrderDate(now.AddDate(0, 0, -1), now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestValidateOrderItem(t *testing.T) {
	require.NoError(t, models.ValidateOrderItem(decimal.NewFromInt(5), "pack"))
	require.NoError(t, models.ValidateOrderItem(decimal.NewFromFloat(0.5), "kg"))

	err := models.ValidateOrderItem(decimal.Zero, "pack")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	err = models.ValidateOrderItem(decimal.NewFromInt(-2), "liter")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	err = models.ValidateOrderItem(decimal.NewFromInt(1), "dozen")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestValidateDamagedProducts(t *testing.T) {
	items := []models.OrderItem{
		{Product: models.Product{Name: "Toned Milk 500ml"}, Quantity: decimal.NewFromInt(10), Unit: "pack"},
		{Product: models.Product{Name: "Curd 1kg"}, Quantity: decimal.NewFromInt(5), Unit: "pack"},
	}

	t.Run("matching names pass", func(t *testing.T) {
		damaged := []models.DamagedProduct{
			{ProductName: "Toned Milk 500ml", DamagedQuantity: decimal.NewFromInt(2)},
		}
		require.NoError(t, models.ValidateDamagedProducts(items, damaged))
	})

	t.Run("no damage passes", func(t *testing.T) {
		require.NoError(t, models.ValidateDamagedProducts(items, nil))
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		damaged := []models.DamagedProduct{
			{ProductName: "Curd 1kg", DamagedQuantity: decimal.NewFromInt(-1)},
		}
		err := models.ValidateDamagedProducts(items, damaged)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("unknown product name rejected", func(t *testing.T) {
		// A typo must not silently bill the full quantity.
		damaged := []models.DamagedProduct{
			{ProductName: "Tond Milk 500ml", DamagedQuantity: decimal.NewFromInt(2)},
		}
		err := models.ValidateDamagedProducts(items, damaged)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestOrderCanEdit(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusPending}
	require.NoError(t, order.CanEdit())

	locked := &models.Order{Status: models.OrderStatusPending, Locked: true}
	err := locked.CanEdit()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	delivered := &models.Order{Status: models.OrderStatusDelivered, Locked: true}
	err = delivered.CanEdit()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestOrderMarkDelivered(t *testing.T) {
	deliveredAt := time.Date(2026, 3, 15, 6, 30, 0, 0, time.UTC)

	order := &models.Order{Status: models.OrderStatusPending}
	require.NoError(t, order.MarkDelivered(deliveredAt))
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
	assert.True(t, order.Locked)
	require.NotNil(t, order.DeliveryDate)
	assert.Equal(t, deliveredAt, *order.DeliveryDate)

	// Second delivery must be rejected.
	err := order.MarkDelivered(deliveredAt.Add(time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, deliveredAt, *order.DeliveryDate)
}

func TestOrderMarkDeliveredKeepsPresetDeliveryDate(t *testing.T) {
	preset := time.Date(2026, 3, 15, 5, 0, 0, 0, time.UTC)
	order := &models.Order{Status: models.OrderStatusPending, DeliveryDate: &preset}

	require.NoError(t, order.MarkDelivered(preset.Add(2*time.Hour)))
	assert.Equal(t, preset, *order.DeliveryDate)
}
