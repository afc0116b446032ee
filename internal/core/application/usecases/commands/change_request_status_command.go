package commands

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrChangeRequestStatusCommandIsNotConstructed = errors.New(
		"ChangeRequestStatusCommand must be created via NewChangeRequestStatusCommand constructor",
	)
)

// ChangeRequestStatusCommand represents a pharmacy's response to a medication
// request: acknowledging it, confirming availability, or declining it.
// Cancellation goes through CancelRequestCommand instead.
type ChangeRequestStatusCommand struct { //nolint:recvcheck //using for validation
	requestID             kernel.UUID
	callerID              kernel.UUID
	newStatus             request.Status
	notes                 *string
	responseDate          *time.Time
	estimatedAvailability *time.Time

	guard guard.ConstructorGuard
}

// NewChangeRequestStatusCommand creates a command to move a request to a new
// status. The target status must be a valid non-cancelled status.
func NewChangeRequestStatusCommand(
	requestID kernel.UUID,
	callerID kernel.UUID,
	newStatus request.Status,
	notes *string,
	responseDate *time.Time,
	estimatedAvailability *time.Time,
) (ChangeRequestStatusCommand, error) {
	cmd := ChangeRequestStatusCommand{
		notes:                 notes,
		responseDate:          responseDate,
		estimatedAvailability: estimatedAvailability,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setCallerID(callerID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return ChangeRequestStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeRequestStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeRequestStatusCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to move.
func (c ChangeRequestStatusCommand) RequestID() kernel.UUID {
	return c.requestID
}

// CallerID returns the identifier of the responding pharmacy.
func (c ChangeRequestStatusCommand) CallerID() kernel.UUID {
	return c.callerID
}

// NewStatus returns the target status.
func (c ChangeRequestStatusCommand) NewStatus() request.Status {
	return c.newStatus
}

// Notes returns the optional response notes.
func (c ChangeRequestStatusCommand) Notes() *string {
	return c.notes
}

// ResponseDate returns the optional explicit response timestamp.
func (c ChangeRequestStatusCommand) ResponseDate() *time.Time {
	return c.responseDate
}

// EstimatedAvailability returns the optional expected availability date.
func (c ChangeRequestStatusCommand) EstimatedAvailability() *time.Time {
	return c.estimatedAvailability
}

func (c *ChangeRequestStatusCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *ChangeRequestStatusCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *ChangeRequestStatusCommand) setNewStatus(newStatus request.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if newStatus == request.StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("newStatus",
			errors.New("cancellation must go through the cancel operation"))
	}

	c.newStatus = newStatus
	return nil
}
