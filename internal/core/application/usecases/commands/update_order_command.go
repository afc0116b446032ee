package commands

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand represents a pharmacy edit of an active order's
// delivery details. Nil fields are left unchanged. Pricing line items are a
// creation-time snapshot and cannot be edited.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	callerID          kernel.UUID
	address           *order.Address
	deliveryFee       *kernel.Money
	estimatedDelivery *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to edit an order's delivery
// details. At least one field to change must be provided.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	callerID kernel.UUID,
	address *order.Address,
	deliveryFee *kernel.Money,
	estimatedDelivery *time.Time,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		estimatedDelivery: estimatedDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setAddress(address),
		cmd.setDeliveryFee(deliveryFee),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	if address == nil && deliveryFee == nil && estimatedDelivery == nil {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("fields to update")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to edit.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CallerID returns the identifier of the editing pharmacy.
func (c UpdateOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Address returns the new delivery address, or nil to keep the current one.
func (c UpdateOrderCommand) Address() *order.Address {
	return c.address
}

// DeliveryFee returns the new delivery fee, or nil to keep the current one.
func (c UpdateOrderCommand) DeliveryFee() *kernel.Money {
	return c.deliveryFee
}

// EstimatedDelivery returns the new estimated delivery time, or nil.
func (c UpdateOrderCommand) EstimatedDelivery() *time.Time {
	return c.estimatedDelivery
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *UpdateOrderCommand) setAddress(address *order.Address) error {
	if address != nil {
		if err := address.Validate(); err != nil {
			return err
		}
	}

	c.address = address
	return nil
}

func (c *UpdateOrderCommand) setDeliveryFee(deliveryFee *kernel.Money) error {
	if deliveryFee != nil {
		if err := deliveryFee.Validate(); err != nil {
			return err
		}
	}

	c.deliveryFee = deliveryFee
	return nil
}
