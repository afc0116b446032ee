package request

import (
	"fmt"

	"pharmacy/internal/pkg/errs"
)

// Urgency represents how quickly a patient needs the requested medication.
type Urgency int

const (
	// UrgencyUnknown represents an invalid or undefined urgency level.
	UrgencyUnknown Urgency = iota

	// UrgencyUrgent marks requests that need immediate attention.
	UrgencyUrgent

	// UrgencyNormal is the default urgency level.
	UrgencyNormal

	// UrgencyLow marks requests with no time pressure.
	UrgencyLow
)

func getUrgencyStrings() map[Urgency]string {
	return map[Urgency]string{
		UrgencyUrgent: "urgent",
		UrgencyNormal: "normal",
		UrgencyLow:    "low",
	}
}

// UrgencyFromString parses an urgency level from its wire representation.
func UrgencyFromString(s string) (Urgency, error) {
	for urgency, str := range getUrgencyStrings() {
		if str == s {
			return urgency, nil
		}
	}
	return UrgencyUnknown, errs.NewValueIsInvalidErrorWithCause("urgencyLevel",
		fmt.Errorf("%q is not a valid urgency level", s))
}

// Validate checks if the Urgency value is valid.
func (u Urgency) Validate() error {
	if _, ok := getUrgencyStrings()[u]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("urgencyLevel",
			fmt.Errorf("%d is not a valid urgency level", u))
	}
	return nil
}

// String returns the wire representation of the urgency level.
func (u Urgency) String() string {
	if str, ok := getUrgencyStrings()[u]; ok {
		return str
	}
	return "unknown"
}
