package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrCancelRequestCommandIsNotConstructed = errors.New(
		"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
	)
)

// CancelRequestCommand represents a patient withdrawing their own request
// before an order was created from it.
type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	callerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelRequestCommand creates a command to withdraw a request.
func NewCancelRequestCommand(requestID, callerID kernel.UUID) (CancelRequestCommand, error) {
	cmd := CancelRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setCallerID(callerID),
	); err != nil {
		return CancelRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to withdraw.
func (c CancelRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// CallerID returns the identifier of the withdrawing patient.
func (c CancelRequestCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c *CancelRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CancelRequestCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}
