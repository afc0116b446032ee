package order

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// PaymentStatus represents the payment sub-state of an order. It is an
// orthogonal dimension to the delivery status: an order can be packed while
// payment is still pending.
//
// State transitions:
//
//	Pending ──┬──> Paid ──> Refunded
//	          │
//	          └──> Failed ──> Pending (re-attempt)
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means no successful charge has been made yet.
	PaymentPending

	// PaymentPaid means the gateway confirmed a charge.
	PaymentPaid

	// PaymentFailed means the last charge attempt was declined or errored.
	PaymentFailed

	// PaymentRefunded means a paid order was refunded during cancellation.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentFailed:   "failed",
		PaymentRefunded: "refunded",
	}
}

// paymentTransitions is the allowed-transition table for the payment sub-state.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentPaid:     {PaymentRefunded},
	PaymentFailed:   {PaymentPending},
	PaymentRefunded: {},
}

// PaymentStatusFromString parses a payment status from its wire representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := paymentTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the payment table permits moving to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the payment transition table and
// returns the new payment status.
func (s PaymentStatus) TransitionTo(next PaymentStatus) (PaymentStatus, error) {
	if err := next.Validate(); err != nil {
		return PaymentUnknown, err
	}

	if !s.CanTransitionTo(next) {
		allowed := make([]string, 0, len(paymentTransitions[s]))
		for _, a := range paymentTransitions[s] {
			allowed = append(allowed, a.String())
		}
		return PaymentUnknown, errs.NewInvalidTransitionError("payment", s.String(), next.String(), allowed)
	}

	return next, nil
}

// PaymentMethod identifies how the patient pays for an order.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota

	// PaymentMethodCard is a card charge through the gateway.
	PaymentMethodCard

	// PaymentMethodCash is cash on delivery.
	PaymentMethodCash

	// PaymentMethodOnline is an online wallet charge through the gateway.
	PaymentMethodOnline
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodCard:   "card",
		PaymentMethodCash:   "cash",
		PaymentMethodOnline: "online",
	}
}

// PaymentMethodFromString parses a payment method from its wire representation.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire representation of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}
