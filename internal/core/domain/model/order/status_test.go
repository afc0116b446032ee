package order_test

import (
	"testing"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	allStatuses := []order.Status{
		order.StatusConfirmed,
		order.StatusPacked,
		order.StatusOutForDelivery,
		order.StatusDelivered,
		order.StatusCancelled,
	}

	validTransitions := map[order.Status][]order.Status{
		order.StatusConfirmed:      {order.StatusPacked, order.StatusCancelled},
		order.StatusPacked:         {order.StatusOutForDelivery, order.StatusCancelled},
		order.StatusOutForDelivery: {order.StatusDelivered, order.StatusCancelled},
	}

	isValid := func(from, to order.Status) bool {
		for _, allowed := range validTransitions[from] {
			if allowed == to {
				return true
			}
		}
		return false
	}

	t.Run("valid_pairs_succeed", func(t *testing.T) {
		for from, allowed := range validTransitions {
			for _, to := range allowed {
				next, err := from.TransitionTo(to)

				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, next)
			}
		}
	})

	t.Run("invalid_pairs_fail_and_report_allowed_set", func(t *testing.T) {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				if isValid(from, to) {
					continue
				}

				_, err := from.TransitionTo(to)

				require.Error(t, err, "%s -> %s should be rejected", from, to)
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		}
	})

	t.Run("terminal_statuses_have_no_outgoing_transitions", func(t *testing.T) {
		assert.True(t, order.StatusDelivered.IsTerminal())
		assert.True(t, order.StatusCancelled.IsTerminal())
		assert.Empty(t, order.StatusDelivered.AllowedTransitions())
		assert.Empty(t, order.StatusCancelled.AllowedTransitions())
	})

	t.Run("round_trips_through_wire_representation", func(t *testing.T) {
		for _, status := range allStatuses {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})
}

func TestPaymentStatus_TransitionTable(t *testing.T) {
	t.Run("valid_payment_moves", func(t *testing.T) {
		paid, err := order.PaymentPending.TransitionTo(order.PaymentPaid)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPaid, paid)

		failed, err := order.PaymentPending.TransitionTo(order.PaymentFailed)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentFailed, failed)

		refunded, err := order.PaymentPaid.TransitionTo(order.PaymentRefunded)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentRefunded, refunded)

		pending, err := order.PaymentFailed.TransitionTo(order.PaymentPending)
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPending, pending)
	})

	t.Run("invalid_payment_moves_fail", func(t *testing.T) {
		_, err := order.PaymentPaid.TransitionTo(order.PaymentPending)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = order.PaymentRefunded.TransitionTo(order.PaymentPaid)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = order.PaymentFailed.TransitionTo(order.PaymentPaid)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestPaymentMethod(t *testing.T) {
	t.Run("round_trips_through_wire_representation", func(t *testing.T) {
		for _, method := range []order.PaymentMethod{
			order.PaymentMethodCard,
			order.PaymentMethodCash,
			order.PaymentMethodOnline,
		} {
			parsed, err := order.PaymentMethodFromString(method.String())

			require.NoError(t, err)
			assert.Equal(t, method, parsed)
		}
	})

	t.Run("unknown_method_is_rejected", func(t *testing.T) {
		_, err := order.PaymentMethodFromString("cheque")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
