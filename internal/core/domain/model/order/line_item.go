package order

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is an immutable snapshot of one ordered medication: the inventory
// item reference, the medication name and unit price at order time, and the
// ordered quantity. The line total is always derived as quantity times unit
// price, never stored independently.
type LineItem struct { //nolint:recvcheck //using for validation
	medicationID kernel.UUID
	name         string
	quantity     int
	unitPrice    kernel.Money

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item snapshot.
// Quantity must be at least 1; the unit price must be a valid Money.
func NewLineItem(medicationID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (LineItem, error) {
	item := LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMedicationID(medicationID),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the line item was created through the constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// MedicationID returns the referenced inventory item identifier.
func (li LineItem) MedicationID() kernel.UUID {
	return li.medicationID
}

// Name returns the medication name snapshot.
func (li LineItem) Name() string {
	return li.name
}

// Quantity returns the ordered number of units.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the unit price snapshot.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// LineTotal returns quantity times unit price, rounded to 2 decimal places.
func (li LineItem) LineTotal() kernel.Money {
	return li.unitPrice.MulInt(li.quantity)
}

func (li *LineItem) setMedicationID(medicationID kernel.UUID) error {
	if err := medicationID.Validate(); err != nil {
		return err
	}
	li.medicationID = medicationID
	return nil
}

func (li *LineItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("medicationName")
	}
	li.name = name
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	li.unitPrice = unitPrice
	return nil
}
