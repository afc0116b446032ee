package request_test

import (
	"testing"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingRequest(t *testing.T) *request.Request {
	t.Helper()

	r, err := request.NewRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Amoxicillin 500mg",
		2,
		request.UrgencyNormal,
		true,
		"",
		nil,
	)
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	t.Run("starts_pending_with_request_timestamp", func(t *testing.T) {
		r := newPendingRequest(t)

		assert.Equal(t, request.StatusPending, r.Status())
		assert.False(t, r.RequestedAt().IsZero())
		assert.Nil(t, r.RespondedAt())
		require.NoError(t, r.Validate())
	})

	t.Run("rejects_quantity_below_one", func(t *testing.T) {
		_, err := request.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Ibuprofen", 0, request.UrgencyLow, false, "", nil,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_empty_medication_name", func(t *testing.T) {
		_, err := request.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", 1, request.UrgencyLow, false, "", nil,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var r request.Request

		require.Error(t, r.Validate())
	})
}

func TestRequest_UpdateDetails(t *testing.T) {
	t.Run("updates_fields_while_pending", func(t *testing.T) {
		r := newPendingRequest(t)
		quantity := 5
		urgency := request.UrgencyUrgent
		notes := "needed before the weekend"
		image := "prescriptions/abc123.jpg"

		err := r.UpdateDetails(&quantity, &urgency, &notes, &image)

		require.NoError(t, err)
		assert.Equal(t, 5, r.Quantity())
		assert.Equal(t, request.UrgencyUrgent, r.Urgency())
		assert.Equal(t, notes, r.Notes())
		require.NotNil(t, r.PrescriptionImage())
		assert.Equal(t, image, *r.PrescriptionImage())
	})

	t.Run("nil_fields_stay_unchanged", func(t *testing.T) {
		r := newPendingRequest(t)

		require.NoError(t, r.UpdateDetails(nil, nil, nil, nil))

		assert.Equal(t, 2, r.Quantity())
		assert.Equal(t, request.UrgencyNormal, r.Urgency())
	})

	t.Run("fails_once_status_left_pending", func(t *testing.T) {
		r := newPendingRequest(t)
		require.NoError(t, r.ChangeStatus(request.StatusProcessing, nil, nil, nil, time.Now()))
		quantity := 9

		err := r.UpdateDetails(&quantity, nil, nil, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, 2, r.Quantity(), "quantity is immutable after pending")
	})
}

func TestRequest_ChangeStatus(t *testing.T) {
	t.Run("records_response_time_and_optional_fields", func(t *testing.T) {
		r := newPendingRequest(t)
		now := time.Now().UTC()
		notes := "checking the supplier"
		eta := now.Add(48 * time.Hour)

		err := r.ChangeStatus(request.StatusProcessing, &notes, nil, &eta, now)

		require.NoError(t, err)
		assert.Equal(t, request.StatusProcessing, r.Status())
		assert.Equal(t, notes, r.Notes())
		require.NotNil(t, r.RespondedAt())
		assert.Equal(t, now, *r.RespondedAt())
		require.NotNil(t, r.EstimatedAvailability())
		assert.Equal(t, eta, *r.EstimatedAvailability())
	})

	t.Run("explicit_response_date_wins", func(t *testing.T) {
		r := newPendingRequest(t)
		responded := time.Now().Add(-time.Hour).UTC()

		err := r.ChangeStatus(request.StatusUnavailable, nil, &responded, nil, time.Now())

		require.NoError(t, err)
		require.NotNil(t, r.RespondedAt())
		assert.Equal(t, responded, *r.RespondedAt())
	})

	t.Run("rejects_moves_outside_the_table", func(t *testing.T) {
		r := newPendingRequest(t)

		err := r.ChangeStatus(request.StatusFulfilled, nil, nil, nil, time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, request.StatusPending, r.Status(), "record unchanged on invalid transition")
	})
}

func TestRequest_Cancel(t *testing.T) {
	t.Run("cancels_from_any_non_terminal_status", func(t *testing.T) {
		r := newPendingRequest(t)
		now := time.Now().UTC()

		require.NoError(t, r.Cancel(now))

		assert.Equal(t, request.StatusCancelled, r.Status())
		require.NotNil(t, r.RespondedAt())
		assert.Equal(t, now, *r.RespondedAt())
	})

	t.Run("fails_on_terminal_status", func(t *testing.T) {
		r := newPendingRequest(t)
		require.NoError(t, r.Cancel(time.Now()))

		err := r.Cancel(time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestRequest_FulfillAndReopen(t *testing.T) {
	t.Run("available_request_is_fulfilled_and_can_reopen", func(t *testing.T) {
		r := newPendingRequest(t)
		require.NoError(t, r.ChangeStatus(request.StatusProcessing, nil, nil, nil, time.Now()))
		require.NoError(t, r.ChangeStatus(request.StatusAvailable, nil, nil, nil, time.Now()))

		require.NoError(t, r.MarkFulfilled(time.Now()))
		assert.Equal(t, request.StatusFulfilled, r.Status())

		require.NoError(t, r.Reopen())
		assert.Equal(t, request.StatusAvailable, r.Status())
	})

	t.Run("fulfill_requires_available_status", func(t *testing.T) {
		r := newPendingRequest(t)

		err := r.MarkFulfilled(time.Now())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("reopen_requires_fulfilled_status", func(t *testing.T) {
		r := newPendingRequest(t)

		err := r.Reopen()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestRequest_Ownership(t *testing.T) {
	t.Run("owner_and_pharmacy_checks", func(t *testing.T) {
		patientID := kernel.NewUUID()
		pharmacyID := kernel.NewUUID()
		r, err := request.NewRequest(
			kernel.NewUUID(), patientID, pharmacyID,
			"Metformin", 1, request.UrgencyLow, false, "", nil,
		)
		require.NoError(t, err)

		assert.True(t, r.IsOwnedBy(patientID))
		assert.False(t, r.IsOwnedBy(kernel.NewUUID()))
		assert.True(t, r.BelongsToPharmacy(pharmacyID))
		assert.False(t, r.BelongsToPharmacy(kernel.NewUUID()))
	})
}
