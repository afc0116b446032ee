package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
		"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
	)
)

// GenerateInvoiceCommand represents a request for the order's invoice
// reference. Generation is idempotent: repeated calls yield the same
// reference.
type GenerateInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateInvoiceCommand creates a command to generate an order invoice.
func NewGenerateInvoiceCommand(orderID, callerID kernel.UUID) (GenerateInvoiceCommand, error) {
	cmd := GenerateInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCallerID(callerID),
	); err != nil {
		return GenerateInvoiceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to invoice.
func (c GenerateInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CallerID returns the identifier of the requesting patient or pharmacy.
func (c GenerateInvoiceCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c *GenerateInvoiceCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *GenerateInvoiceCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}
