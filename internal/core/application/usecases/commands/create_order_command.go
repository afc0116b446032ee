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
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderLine is one requested line of a new order: a medication by name and
// the quantity to reserve. Pricing comes from the pharmacy's inventory when
// the order is created, never from the caller.
type OrderLine struct {
	MedicationName string
	Quantity       int
}

// CreateOrderCommand represents the patient turning their available request
// into a priced, deliverable order. Carries the requested lines, delivery
// address, fee, and optional payment method chosen up front.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	addr, _ := order.NewAddress("12 King Fahd Rd", "Riyadh", "11564", "+966500000001", nil)
//	fee, _ := kernel.NewMoneyFromFloat(3.00)
//	lines := []OrderLine{{MedicationName: "Amoxicillin 500mg", Quantity: 2}}
//	cmd, err := NewCreateOrderCommand(orderID, requestID, patientID, lines, addr, fee, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	requestID         kernel.UUID
	callerID          kernel.UUID
	items             []OrderLine
	address           order.Address
	deliveryFee       kernel.Money
	estimatedDelivery *time.Time
	paymentMethod     *order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to build an order from an available
// request. Validates identifiers, address, fee, and the optional payment
// method. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	requestID kernel.UUID,
	callerID kernel.UUID,
	items []OrderLine,
	address order.Address,
	deliveryFee kernel.Money,
	estimatedDelivery *time.Time,
	paymentMethod *order.PaymentMethod,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		estimatedDelivery: estimatedDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequestID(requestID),
		cmd.setCallerID(callerID),
		cmd.setItems(items),
		cmd.setAddress(address),
		cmd.setDeliveryFee(deliveryFee),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequestID returns the identifier of the request to fulfill.
func (c CreateOrderCommand) RequestID() kernel.UUID {
	return c.requestID
}

// CallerID returns the identifier of the patient placing the order.
func (c CreateOrderCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []OrderLine {
	return c.items
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

// DeliveryFee returns the delivery fee.
func (c CreateOrderCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// EstimatedDelivery returns the optional estimated delivery time.
func (c CreateOrderCommand) EstimatedDelivery() *time.Time {
	return c.estimatedDelivery
}

// PaymentMethod returns the payment method chosen up front, or nil.
func (c CreateOrderCommand) PaymentMethod() *order.PaymentMethod {
	return c.paymentMethod
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CreateOrderCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderLine) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, line := range items {
		if line.MedicationName == "" {
			return errs.NewValueIsRequiredError("medicationName")
		}
		if line.Quantity < 1 {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, maxRequestQuantity)
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(deliveryFee kernel.Money) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}

	c.deliveryFee = deliveryFee
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod *order.PaymentMethod) error {
	if paymentMethod != nil {
		if err := paymentMethod.Validate(); err != nil {
			return err
		}
	}

	c.paymentMethod = paymentMethod
	return nil
}
