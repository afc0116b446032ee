package request

import (
	"errors"
	"fmt"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request instance was not created
	// through the NewRequest or RestoreRequest factory functions.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")
)

// Request represents a patient's ask for a medication from a specific pharmacy,
// tracked through availability confirmation. It is the aggregate root for the
// request side of the lifecycle engine.
//
// Request follows these invariants:
//   - Must have valid patient and pharmacy identifiers and a medication name
//   - Quantity must be at least 1 and is immutable once status leaves pending
//   - Status transitions only via the allowed-transition table
//   - Fulfilled and cancelled requests are immutable
type Request struct {
	id                    kernel.UUID
	patientID             kernel.UUID
	pharmacyID            kernel.UUID
	medicationName        string
	quantity              int
	urgency               Urgency
	status                Status
	prescriptionRequired  bool
	prescriptionImage     *string
	notes                 string
	requestedAt           time.Time
	respondedAt           *time.Time
	estimatedAvailability *time.Time

	isConstructed bool
}

// NewRequest creates a new Request in pending status.
//
// Parameters:
//   - id: unique identifier for the request
//   - patientID: the owning patient
//   - pharmacyID: the pharmacy asked to fulfill the request
//   - medicationName: requested medication (required)
//   - quantity: requested units (must be at least 1)
//   - urgency: urgency level
//   - prescriptionRequired: whether a prescription image must accompany fulfillment
//   - notes: optional free-text notes
//   - estimatedAvailability: optional expected availability date
//
// The request timestamp is stamped at construction time.
func NewRequest(
	id kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	medicationName string,
	quantity int,
	urgency Urgency,
	prescriptionRequired bool,
	notes string,
	estimatedAvailability *time.Time,
) (*Request, error) {
	r := &Request{
		status:                StatusPending,
		prescriptionRequired:  prescriptionRequired,
		notes:                 notes,
		requestedAt:           time.Now().UTC(),
		estimatedAvailability: estimatedAvailability,
		isConstructed:         true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setPatientID(patientID),
		r.setPharmacyID(pharmacyID),
		r.setMedicationName(medicationName),
		r.setQuantity(quantity),
		r.setUrgency(urgency),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequestParams carries the full persisted state of a request.
type RestoreRequestParams struct {
	ID                    kernel.UUID
	PatientID             kernel.UUID
	PharmacyID            kernel.UUID
	MedicationName        string
	Quantity              int
	Urgency               Urgency
	Status                Status
	PrescriptionRequired  bool
	PrescriptionImage     *string
	Notes                 string
	RequestedAt           time.Time
	RespondedAt           *time.Time
	EstimatedAvailability *time.Time
}

// RestoreRequest reconstructs a Request from persistence.
// Used by repositories; validates all restored values.
func RestoreRequest(params RestoreRequestParams) (*Request, error) {
	r := &Request{
		prescriptionRequired:  params.PrescriptionRequired,
		prescriptionImage:     params.PrescriptionImage,
		notes:                 params.Notes,
		requestedAt:           params.RequestedAt,
		respondedAt:           params.RespondedAt,
		estimatedAvailability: params.EstimatedAvailability,
		isConstructed:         true,
	}

	if err := errors.Join(
		r.setID(params.ID),
		r.setPatientID(params.PatientID),
		r.setPharmacyID(params.PharmacyID),
		r.setMedicationName(params.MedicationName),
		r.setQuantity(params.Quantity),
		r.setUrgency(params.Urgency),
		params.Status.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = params.Status

	return r, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two requests by their unique identifiers.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID {
	return r.id
}

// PatientID returns the owning patient's identifier.
func (r *Request) PatientID() kernel.UUID {
	return r.patientID
}

// PharmacyID returns the target pharmacy's identifier.
func (r *Request) PharmacyID() kernel.UUID {
	return r.pharmacyID
}

// MedicationName returns the requested medication name.
func (r *Request) MedicationName() string {
	return r.medicationName
}

// Quantity returns the requested number of units.
func (r *Request) Quantity() int {
	return r.quantity
}

// Urgency returns the urgency level.
func (r *Request) Urgency() Urgency {
	return r.urgency
}

// Status returns the current status of the request.
func (r *Request) Status() Status {
	return r.status
}

// PrescriptionRequired reports whether fulfillment needs a prescription.
func (r *Request) PrescriptionRequired() bool {
	return r.prescriptionRequired
}

// PrescriptionImage returns the optional prescription image reference.
func (r *Request) PrescriptionImage() *string {
	return r.prescriptionImage
}

// Notes returns the free-text notes.
func (r *Request) Notes() string {
	return r.notes
}

// RequestedAt returns the request timestamp.
func (r *Request) RequestedAt() time.Time {
	return r.requestedAt
}

// RespondedAt returns the optional response timestamp.
func (r *Request) RespondedAt() *time.Time {
	return r.respondedAt
}

// EstimatedAvailability returns the optional estimated availability date.
func (r *Request) EstimatedAvailability() *time.Time {
	return r.estimatedAvailability
}

// IsOwnedBy reports whether the given patient owns the request.
func (r *Request) IsOwnedBy(patientID kernel.UUID) bool {
	return r.patientID.IsEqual(patientID)
}

// BelongsToPharmacy reports whether the request targets the given pharmacy.
func (r *Request) BelongsToPharmacy(pharmacyID kernel.UUID) bool {
	return r.pharmacyID.IsEqual(pharmacyID)
}

// UpdateDetails mutates the patient-editable fields. Permitted only while the
// request is pending; quantity stays immutable afterwards. Nil parameters
// leave the corresponding field unchanged.
func (r *Request) UpdateDetails(quantity *int, urgency *Urgency, notes *string, prescriptionImage *string) error {
	if r.status != StatusPending {
		return errs.NewInvalidStateError("request", r.status.String(), "update")
	}

	if quantity != nil {
		if err := r.setQuantity(*quantity); err != nil {
			return err
		}
	}
	if urgency != nil {
		if err := r.setUrgency(*urgency); err != nil {
			return err
		}
	}
	if notes != nil {
		r.notes = *notes
	}
	if prescriptionImage != nil {
		r.prescriptionImage = prescriptionImage
	}

	return nil
}

// ChangeStatus transitions the request to newStatus, validating against the
// transition table. Optional notes and estimated availability are recorded
// when provided; the response timestamp is set to responseDate when given,
// otherwise to now.
func (r *Request) ChangeStatus(
	newStatus Status,
	notes *string,
	responseDate *time.Time,
	estimatedAvailability *time.Time,
	now time.Time,
) error {
	next, err := r.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	r.status = next
	if notes != nil {
		r.notes = *notes
	}
	if estimatedAvailability != nil {
		r.estimatedAvailability = estimatedAvailability
	}
	responded := now
	if responseDate != nil {
		responded = *responseDate
	}
	r.respondedAt = &responded

	return nil
}

// Cancel withdraws the request. Fails with an invalid-state error if the
// request already reached a terminal status; otherwise the transition table
// permits cancellation from any remaining status.
func (r *Request) Cancel(now time.Time) error {
	if r.status.IsTerminal() {
		return errs.NewInvalidStateError("request", r.status.String(), "cancel")
	}

	next, err := r.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	r.status = next
	r.respondedAt = &now
	return nil
}

// MarkFulfilled moves an available request to fulfilled and stamps the
// response time. Called by the lifecycle coordinator when an order is created
// from the request.
func (r *Request) MarkFulfilled(now time.Time) error {
	next, err := r.status.TransitionTo(StatusFulfilled)
	if err != nil {
		return err
	}

	r.status = next
	r.respondedAt = &now
	return nil
}

// Reopen returns a fulfilled request to available, re-enabling a new order
// attempt after its order was cancelled.
func (r *Request) Reopen() error {
	if r.status != StatusFulfilled {
		return errs.NewInvalidStateError("request", r.status.String(), "reopen")
	}

	r.status = StatusAvailable
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setPatientID(patientID kernel.UUID) error {
	if err := patientID.Validate(); err != nil {
		return err
	}
	r.patientID = patientID
	return nil
}

func (r *Request) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return err
	}
	r.pharmacyID = pharmacyID
	return nil
}

func (r *Request) setMedicationName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("medicationName")
	}
	r.medicationName = name
	return nil
}

func (r *Request) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	r.quantity = quantity
	return nil
}

func (r *Request) setUrgency(urgency Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	r.urgency = urgency
	return nil
}
