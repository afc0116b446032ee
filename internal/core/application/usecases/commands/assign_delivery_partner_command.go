package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrAssignDeliveryPartnerCommandIsNotConstructed = errors.New(
		"AssignDeliveryPartnerCommand must be created via NewAssignDeliveryPartnerCommand constructor",
	)
)

// AssignDeliveryPartnerCommand represents the pharmacy handing an order to a
// delivery partner. Reassignment before the order goes out is allowed.
type AssignDeliveryPartnerCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	callerID  kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDeliveryPartnerCommand creates a command to assign a delivery
// partner to an order.
func NewAssignDeliveryPartnerCommand(orderID, callerID, partnerID kernel.UUID) (AssignDeliveryPartnerCommand, error) {
	cmd := AssignDeliveryPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setPartnerID(partnerID),
	); err != nil {
		return AssignDeliveryPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryPartnerCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignDeliveryPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CallerID returns the identifier of the assigning pharmacy.
func (c AssignDeliveryPartnerCommand) CallerID() kernel.UUID {
	return c.callerID
}

// PartnerID returns the identifier of the delivery partner.
func (c AssignDeliveryPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *AssignDeliveryPartnerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignDeliveryPartnerCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *AssignDeliveryPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
