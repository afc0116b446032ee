package inventory_test

import (
	"testing"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockedItem(t *testing.T, quantity, lowStockThreshold int) *inventory.Item {
	t.Helper()

	unitPrice, err := kernel.NewMoneyFromFloat(5.99)
	require.NoError(t, err)
	item, err := inventory.NewItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Amoxicillin 500mg",
		"antibiotic",
		"capsule",
		quantity,
		unitPrice,
		lowStockThreshold,
	)
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("creates_item_with_initial_stock", func(t *testing.T) {
		item := newStockedItem(t, 10, 3)

		assert.Equal(t, 10, item.Quantity())
		assert.Equal(t, "Amoxicillin 500mg", item.MedicationName())
		require.NoError(t, item.Validate())
	})

	t.Run("rejects_negative_quantity", func(t *testing.T) {
		unitPrice, _ := kernel.NewMoneyFromFloat(5.99)

		_, err := inventory.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), "Amoxicillin 500mg", "antibiotic", "capsule",
			-1, unitPrice, 3,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var item inventory.Item

		require.Error(t, item.Validate())
	})
}

func TestItem_Reserve(t *testing.T) {
	t.Run("decrements_on_hand_quantity", func(t *testing.T) {
		item := newStockedItem(t, 10, 3)

		require.NoError(t, item.Reserve(4))

		assert.Equal(t, 6, item.Quantity())
	})

	t.Run("can_drain_stock_to_zero", func(t *testing.T) {
		item := newStockedItem(t, 4, 0)

		require.NoError(t, item.Reserve(4))

		assert.Equal(t, 0, item.Quantity())
	})

	t.Run("fails_when_fewer_units_on_hand_than_requested", func(t *testing.T) {
		item := newStockedItem(t, 3, 0)

		err := item.Reserve(5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Equal(t, 3, item.Quantity(), "quantity unchanged on failed reservation")
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		item := newStockedItem(t, 3, 0)

		err := item.Reserve(0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestItem_Release(t *testing.T) {
	t.Run("increments_on_hand_quantity", func(t *testing.T) {
		item := newStockedItem(t, 6, 3)

		require.NoError(t, item.Release(4))

		assert.Equal(t, 10, item.Quantity())
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		item := newStockedItem(t, 6, 3)

		err := item.Release(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestItem_IsLowStock(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      bool
	}{
		{"above_threshold", 10, 3, false},
		{"at_threshold", 3, 3, true},
		{"below_threshold", 1, 3, true},
		{"zero_stock", 0, 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			item := newStockedItem(t, test.quantity, test.threshold)

			assert.Equal(t, test.want, item.IsLowStock())
		})
	}
}
