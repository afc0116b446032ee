package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand represents an order moving one step along the
// delivery pipeline: packed by the pharmacy, then out for delivery and
// delivered by the assigned partner. Cancellation goes through
// CancelOrderCommand instead.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	callerID  kernel.UUID
	newStatus order.Status
	location  *string
	notes     *string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to move an order to a new
// status, with an optional location and notes for the tracking entry.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	callerID kernel.UUID,
	newStatus order.Status,
	location *string,
	notes *string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		location: location,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to move.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CallerID returns the identifier of the pharmacy or delivery partner.
func (c ChangeOrderStatusCommand) CallerID() kernel.UUID {
	return c.callerID
}

// NewStatus returns the target status.
func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Location returns the optional location for the tracking entry.
func (c ChangeOrderStatusCommand) Location() *string {
	return c.location
}

// Notes returns the optional notes for the tracking entry.
func (c ChangeOrderStatusCommand) Notes() *string {
	return c.notes
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *ChangeOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if newStatus == order.StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("newStatus",
			errors.New("cancellation must go through the cancel operation"))
	}

	c.newStatus = newStatus
	return nil
}
