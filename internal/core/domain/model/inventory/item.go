package inventory

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem or RestoreItem factory functions.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")
)

// Item represents one medication stocked by a pharmacy. It owns the on-hand
// quantity for reservation and release, the unit price snapshot source, and
// the low-stock threshold used for replenishment alerts.
//
// Item follows these invariants:
//   - On-hand quantity is never negative; a reservation exceeding it fails
//     with an insufficient-stock error and leaves the quantity unchanged
//   - From the engine's perspective, quantity mutations happen only inside a
//     transaction that also mutates a request or order
type Item struct {
	id                kernel.UUID
	pharmacyID        kernel.UUID
	medicationName    string
	category          string
	form              string
	quantity          int
	unitPrice         kernel.Money
	lowStockThreshold int

	isConstructed bool
}

// NewItem creates an inventory item with the given initial stock.
func NewItem(
	id kernel.UUID,
	pharmacyID kernel.UUID,
	medicationName string,
	category string,
	form string,
	quantity int,
	unitPrice kernel.Money,
	lowStockThreshold int,
) (*Item, error) {
	item := &Item{
		category:      category,
		form:          form,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setPharmacyID(pharmacyID),
		item.setMedicationName(medicationName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		item.setLowStockThreshold(lowStockThreshold),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistence.
func RestoreItem(
	id kernel.UUID,
	pharmacyID kernel.UUID,
	medicationName string,
	category string,
	form string,
	quantity int,
	unitPrice kernel.Money,
	lowStockThreshold int,
) (*Item, error) {
	return NewItem(id, pharmacyID, medicationName, category, form, quantity, unitPrice, lowStockThreshold)
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// PharmacyID returns the owning pharmacy's identifier.
func (i *Item) PharmacyID() kernel.UUID {
	return i.pharmacyID
}

// MedicationName returns the medication name.
func (i *Item) MedicationName() string {
	return i.medicationName
}

// Category returns the medication category.
func (i *Item) Category() string {
	return i.category
}

// Form returns the medication form (tablet, syrup, ...).
func (i *Item) Form() string {
	return i.form
}

// Quantity returns the on-hand quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the unit price.
func (i *Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LowStockThreshold returns the replenishment alert threshold.
func (i *Item) LowStockThreshold() int {
	return i.lowStockThreshold
}

// IsLowStock reports whether the on-hand quantity is at or below the
// low-stock threshold.
func (i *Item) IsLowStock() bool {
	return i.quantity <= i.lowStockThreshold
}

// Reserve decrements the on-hand quantity by qty for an order line item.
// Fails with an insufficient-stock error, leaving the quantity unchanged,
// when fewer than qty units are on hand. Callers persist the decrement inside
// the same transaction as the order write.
func (i *Item) Reserve(qty int) error {
	if qty < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", qty))
	}
	if i.quantity < qty {
		return errs.NewInsufficientStockError(i.id.String(), qty, i.quantity)
	}

	i.quantity -= qty
	return nil
}

// Release increments the on-hand quantity by qty when a cancelled order
// returns its reservation. A release always succeeds; there is no upper
// bound check.
func (i *Item) Release(qty int) error {
	if qty < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", qty))
	}

	i.quantity += qty
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return err
	}
	i.pharmacyID = pharmacyID
	return nil
}

func (i *Item) setMedicationName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("medicationName")
	}
	i.medicationName = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return errs.NewValueIsInvalidErrorWithCause("lowStockThreshold",
			fmt.Errorf("%d is negative", threshold))
	}
	i.lowStockThreshold = threshold
	return nil
}
