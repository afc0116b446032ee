package order

import (
	"errors"
	"fmt"

	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

const (
	// NumberSequenceMin is the first sequence issued in a calendar year.
	NumberSequenceMin = 1
	// NumberSequenceMax is the largest sequence the 6-digit format can carry.
	NumberSequenceMax = 999999
)

// ErrNumberIsNotConstructed is returned when a Number was not created via
// NewNumber or ParseNumber.
var ErrNumberIsNotConstructed = errors.New("Number must be created via NewNumber or ParseNumber")

// Number is the human-readable order number in the format
// ORD-<4-digit year>-<6-digit zero-padded sequence>. Sequences restart at 1
// each calendar year and are strictly increasing within a year.
//
// Example:
//
//	n, _ := order.NewNumber(2026, 1)
//	fmt.Println(n) // Output: ORD-2026-000001
type Number struct { //nolint:recvcheck //using for validation
	year     int
	sequence int

	guard guard.ConstructorGuard
}

// NewNumber creates an order number for the given year and sequence.
// The sequence must be within [NumberSequenceMin, NumberSequenceMax].
func NewNumber(year, sequence int) (Number, error) {
	n := Number{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(n.setYear(year), n.setSequence(sequence)); err != nil {
		return Number{}, err
	}

	return n, nil
}

// ParseNumber parses an order number from its ORD-YYYY-NNNNNN representation.
func ParseNumber(s string) (Number, error) {
	var year, sequence int
	if _, err := fmt.Sscanf(s, "ORD-%04d-%06d", &year, &sequence); err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("orderNumber",
			fmt.Errorf("%q does not match ORD-YYYY-NNNNNN: %w", s, err))
	}
	return NewNumber(year, sequence)
}

// Validate ensures the number was created through a constructor.
func (n Number) Validate() error {
	return n.guard.Validate(ErrNumberIsNotConstructed)
}

// Year returns the calendar year the number was issued in.
func (n Number) Year() int {
	return n.year
}

// Sequence returns the per-year sequence.
func (n Number) Sequence() int {
	return n.sequence
}

// Next returns the following number within the same year.
func (n Number) Next() (Number, error) {
	return NewNumber(n.year, n.sequence+1)
}

// IsEqual compares two order numbers.
func (n Number) IsEqual(other Number) bool {
	return n.year == other.year && n.sequence == other.sequence
}

// String returns the canonical ORD-YYYY-NNNNNN representation.
func (n Number) String() string {
	return fmt.Sprintf("ORD-%04d-%06d", n.year, n.sequence)
}

// InvoiceReference deterministically derives the invoice reference for the
// order carrying this number. The derivation is stable, so re-invoicing an
// order always yields the same reference.
func (n Number) InvoiceReference() string {
	return fmt.Sprintf("INV-%04d-%06d", n.year, n.sequence)
}

func (n *Number) setYear(year int) error {
	if year < 1000 || year > 9999 {
		return errs.NewValueIsOutOfRangeError("year", year, 1000, 9999)
	}
	n.year = year
	return nil
}

func (n *Number) setSequence(sequence int) error {
	if sequence < NumberSequenceMin || sequence > NumberSequenceMax {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, NumberSequenceMin, NumberSequenceMax)
	}
	n.sequence = sequence
	return nil
}
