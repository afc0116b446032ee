package commands

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrCreateRequestCommandIsNotConstructed = errors.New(
		"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
	)
)

// CreateRequestCommand represents a patient's request for a medication from a
// specific pharmacy. Encapsulates the medication details, urgency, and
// optional prescription information.
//
// Example:
//
//	requestID := kernel.NewUUID()
//	cmd, err := NewCreateRequestCommand(requestID, patientID, pharmacyID,
//	    "Amoxicillin 500mg", 2, request.UrgencyNormal, true, "", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//
//	handler := NewCreateRequestCommandHandler(uowFactory, notifier)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create request: %w", err)
//	}
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID             kernel.UUID
	patientID             kernel.UUID
	pharmacyID            kernel.UUID
	medicationName        string
	quantity              int
	urgency               request.Urgency
	prescriptionRequired  bool
	notes                 string
	estimatedAvailability *time.Time

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to register a new medication
// request. Validates identifiers, medication name, quantity, and urgency.
// Returns an error if any validation fails.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	medicationName string,
	quantity int,
	urgency request.Urgency,
	prescriptionRequired bool,
	notes string,
	estimatedAvailability *time.Time,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		prescriptionRequired:  prescriptionRequired,
		notes:                 notes,
		estimatedAvailability: estimatedAvailability,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setPatientID(patientID),
		cmd.setPharmacyID(pharmacyID),
		cmd.setMedicationName(medicationName),
		cmd.setQuantity(quantity),
		cmd.setUrgency(urgency),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateRequestCommandIsNotConstructed if validation fails.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// RequestID returns the unique identifier for the new request.
func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// PatientID returns the requesting patient's identifier.
func (c CreateRequestCommand) PatientID() kernel.UUID {
	return c.patientID
}

// PharmacyID returns the target pharmacy's identifier.
func (c CreateRequestCommand) PharmacyID() kernel.UUID {
	return c.pharmacyID
}

// MedicationName returns the requested medication name.
func (c CreateRequestCommand) MedicationName() string {
	return c.medicationName
}

// Quantity returns the requested quantity.
func (c CreateRequestCommand) Quantity() int {
	return c.quantity
}

// Urgency returns the request urgency.
func (c CreateRequestCommand) Urgency() request.Urgency {
	return c.urgency
}

// PrescriptionRequired reports whether the medication needs a prescription.
func (c CreateRequestCommand) PrescriptionRequired() bool {
	return c.prescriptionRequired
}

// Notes returns the optional free-text notes.
func (c CreateRequestCommand) Notes() string {
	return c.notes
}

// EstimatedAvailability returns the optional expected availability date.
func (c CreateRequestCommand) EstimatedAvailability() *time.Time {
	return c.estimatedAvailability
}

func (c *CreateRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CreateRequestCommand) setPatientID(patientID kernel.UUID) error {
	if err := patientID.Validate(); err != nil {
		return err
	}

	c.patientID = patientID
	return nil
}

func (c *CreateRequestCommand) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return err
	}

	c.pharmacyID = pharmacyID
	return nil
}

func (c *CreateRequestCommand) setMedicationName(medicationName string) error {
	if medicationName == "" {
		return errs.NewValueIsRequiredError("medicationName")
	}

	c.medicationName = medicationName
	return nil
}

func (c *CreateRequestCommand) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxRequestQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxRequestQuantity)
	}

	c.quantity = quantity
	return nil
}

func (c *CreateRequestCommand) setUrgency(urgency request.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}

	c.urgency = urgency
	return nil
}

// maxRequestQuantity caps a single request. Larger orders go through the
// pharmacy directly.
const maxRequestQuantity = 100
