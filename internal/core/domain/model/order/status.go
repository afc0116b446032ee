package order

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// Status represents the lifecycle state of a fulfillment order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct delivery workflow.
//
// State transitions:
//
//	Confirmed ──> Packed ──> OutForDelivery ──> Delivered
//	     │           │              │
//	     └───────────┴──────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Every transition is checked against
// the shared transition table before any mutation and appends exactly one
// tracking update on the aggregate.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusConfirmed is the initial status of an order created from an
	// available request.
	StatusConfirmed

	// StatusPacked indicates pharmacy staff packed the order.
	StatusPacked

	// StatusOutForDelivery indicates the order left the pharmacy.
	StatusOutForDelivery

	// StatusDelivered indicates the order reached the patient.
	// This is a terminal state.
	StatusDelivered

	// StatusCancelled indicates the order was cancelled and its inventory
	// released. This is a terminal state.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusConfirmed:      "confirmed",
		StatusPacked:         "packed",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
	}
}

// statusTransitions is the shared allowed-transition table, keyed by current
// status. Terminal statuses map to an empty set.
var statusTransitions = map[Status][]Status{
	StatusConfirmed:      {StatusPacked, StatusCancelled},
	StatusPacked:         {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := statusTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// It implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// AllowedTransitions returns the statuses reachable from this status.
func (s Status) AllowedTransitions() []Status {
	return statusTransitions[s]
}

// CanTransitionTo reports whether the transition table permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the transition table and returns
// the new status. On an invalid move it returns an InvalidTransitionError
// reporting the allowed set.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return StatusUnknown, err
	}

	if !s.CanTransitionTo(next) {
		allowed := make([]string, 0, len(statusTransitions[s]))
		for _, a := range statusTransitions[s] {
			allowed = append(allowed, a.String())
		}
		return StatusUnknown, errs.NewInvalidTransitionError("order", s.String(), next.String(), allowed)
	}

	return next, nil
}
