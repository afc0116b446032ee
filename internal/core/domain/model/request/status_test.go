package request_test

import (
	"testing"

	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	allStatuses := []request.Status{
		request.StatusPending,
		request.StatusProcessing,
		request.StatusAvailable,
		request.StatusUnavailable,
		request.StatusFulfilled,
		request.StatusCancelled,
	}

	validTransitions := map[request.Status][]request.Status{
		request.StatusPending:     {request.StatusProcessing, request.StatusUnavailable, request.StatusCancelled},
		request.StatusProcessing:  {request.StatusAvailable, request.StatusUnavailable, request.StatusCancelled},
		request.StatusAvailable:   {request.StatusFulfilled, request.StatusCancelled},
		request.StatusUnavailable: {request.StatusCancelled},
	}

	isValid := func(from, to request.Status) bool {
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
		assert.True(t, request.StatusFulfilled.IsTerminal())
		assert.True(t, request.StatusCancelled.IsTerminal())
		assert.Empty(t, request.StatusFulfilled.AllowedTransitions())
		assert.Empty(t, request.StatusCancelled.AllowedTransitions())
	})
}

func TestStatus_Strings(t *testing.T) {
	t.Run("round_trips_through_wire_representation", func(t *testing.T) {
		for _, status := range []request.Status{
			request.StatusPending,
			request.StatusProcessing,
			request.StatusAvailable,
			request.StatusUnavailable,
			request.StatusFulfilled,
			request.StatusCancelled,
		} {
			parsed, err := request.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("unknown_string_is_rejected", func(t *testing.T) {
		_, err := request.StatusFromString("shipped")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid_value_formats_as_unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", request.Status(99).String())
	})
}

func TestUrgency(t *testing.T) {
	t.Run("round_trips_through_wire_representation", func(t *testing.T) {
		for _, urgency := range []request.Urgency{
			request.UrgencyUrgent,
			request.UrgencyNormal,
			request.UrgencyLow,
		} {
			parsed, err := request.UrgencyFromString(urgency.String())

			require.NoError(t, err)
			assert.Equal(t, urgency, parsed)
		}
	})

	t.Run("unknown_value_fails_validation", func(t *testing.T) {
		require.Error(t, request.UrgencyUnknown.Validate())
	})
}
