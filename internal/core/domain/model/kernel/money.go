package kernel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created via NewMoney, NewMoneyFromFloat, or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromFloat, or ZeroMoney")

// Money represents a non-negative monetary amount in the platform currency.
// It is an immutable value object backed by exact decimal arithmetic; all
// derived amounts (line totals, tax, order totals) are rounded to 2 decimal
// places through Round2.
//
// The zero value of Money is invalid and will fail validation - use the
// constructors to create instances.
//
// Example:
//
//	price, err := kernel.NewMoneyFromFloat(5.99)
//	if err != nil {
//	    // Handle validation error
//	}
//	total := price.MulInt(2) // 11.98
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money from an exact decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount, rounding to
// 2 decimal places. Returns an error if the amount is negative.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount).Round(2))
}

// ZeroMoney returns a properly constructed Money of amount zero.
// Used as the default delivery fee.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate checks that the Money was constructed via one of the constructors.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for serialization at the edges.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the amount formatted with 2 decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{
		amount: m.amount.Add(other.amount),
		guard:  guard.NewConstructorGuard(),
	}
}

// MulInt returns the amount multiplied by a whole quantity,
// rounded to 2 decimal places.
func (m Money) MulInt(quantity int) Money {
	return Money{
		amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		guard:  guard.NewConstructorGuard(),
	}
}

// Percent returns the given fraction of the amount, rounded to 2 decimal
// places. The rate is a fraction, e.g. 0.05 for 5%.
func (m Money) Percent(rate decimal.Decimal) Money {
	return Money{
		amount: m.amount.Mul(rate).Round(2),
		guard:  guard.NewConstructorGuard(),
	}
}

// Round2 returns the amount rounded to 2 decimal places.
func (m Money) Round2() Money {
	return Money{
		amount: m.amount.Round(2),
		guard:  guard.NewConstructorGuard(),
	}
}
