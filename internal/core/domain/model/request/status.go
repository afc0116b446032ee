package request

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// Status represents the lifecycle state of a medication request.
// It implements a state machine with defined transitions to ensure requests
// follow the correct business workflow.
//
// State transitions:
//
//	Pending ──┬──> Processing ──┬──> Available ──> Fulfilled
//	          │                 │
//	          ├──> Unavailable <┘
//	          │         │
//	          └─────────┴──> Cancelled
//
// Fulfilled and Cancelled are terminal. Every transition is checked against
// the shared transition table before any mutation.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when a request is first created.
	// Requests in this status await triage by pharmacy staff.
	StatusPending

	// StatusProcessing indicates pharmacy staff are checking availability.
	StatusProcessing

	// StatusAvailable indicates the medication can be fulfilled; the request
	// is eligible for order creation.
	StatusAvailable

	// StatusUnavailable indicates the pharmacy cannot fulfill the request.
	StatusUnavailable

	// StatusFulfilled indicates an order was created from the request.
	// This is a terminal state.
	StatusFulfilled

	// StatusCancelled indicates the request was withdrawn or rejected.
	// This is a terminal state.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusPending:     "pending",
		StatusProcessing:  "processing",
		StatusAvailable:   "available",
		StatusUnavailable: "unavailable",
		StatusFulfilled:   "fulfilled",
		StatusCancelled:   "cancelled",
	}
}

// statusTransitions is the shared allowed-transition table, keyed by current
// status. Terminal statuses map to an empty set.
var statusTransitions = map[Status][]Status{
	StatusPending:     {StatusProcessing, StatusUnavailable, StatusCancelled},
	StatusProcessing:  {StatusAvailable, StatusUnavailable, StatusCancelled},
	StatusAvailable:   {StatusFulfilled, StatusCancelled},
	StatusUnavailable: {StatusCancelled},
	StatusFulfilled:   {},
	StatusCancelled:   {},
}

// StatusFromString parses a status from its wire representation.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid request status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := statusTransitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid request status", s))
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
	return s == StatusFulfilled || s == StatusCancelled
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
		return StatusUnknown, errs.NewInvalidTransitionError("request", s.String(), next.String(), allowed)
	}

	return next, nil
}
