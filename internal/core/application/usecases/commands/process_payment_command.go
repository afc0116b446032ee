package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrProcessPaymentCommandIsNotConstructed = errors.New(
		"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
	)
)

// ProcessPaymentCommand represents a patient paying for their order through
// the payment gateway.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID
	method   order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to charge an order.
func NewProcessPaymentCommand(
	orderID kernel.UUID,
	callerID kernel.UUID,
	method order.PaymentMethod,
) (ProcessPaymentCommand, error) {
	cmd := ProcessPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
		cmd.setMethod(method),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to charge.
func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CallerID returns the identifier of the paying patient.
func (c ProcessPaymentCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Method returns the payment method.
func (c ProcessPaymentCommand) Method() order.PaymentMethod {
	return c.method
}

func (c *ProcessPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessPaymentCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *ProcessPaymentCommand) setMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}
