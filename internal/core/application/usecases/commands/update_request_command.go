package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrUpdateRequestCommandIsNotConstructed = errors.New(
		"UpdateRequestCommand must be created via NewUpdateRequestCommand constructor",
	)
)

// UpdateRequestCommand represents a patient's edit of their own pending
// request. Nil fields are left unchanged; edits are rejected once the
// pharmacy has responded.
type UpdateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID         kernel.UUID
	callerID          kernel.UUID
	quantity          *int
	urgency           *request.Urgency
	notes             *string
	prescriptionImage *string

	guard guard.ConstructorGuard
}

// NewUpdateRequestCommand creates a command to edit a pending request.
// At least one field to change must be provided.
func NewUpdateRequestCommand(
	requestID kernel.UUID,
	callerID kernel.UUID,
	quantity *int,
	urgency *request.Urgency,
	notes *string,
	prescriptionImage *string,
) (UpdateRequestCommand, error) {
	cmd := UpdateRequestCommand{
		notes:             notes,
		prescriptionImage: prescriptionImage,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setCallerID(callerID),
		cmd.setQuantity(quantity),
		cmd.setUrgency(urgency),
	); err != nil {
		return UpdateRequestCommand{}, err
	}

	if quantity == nil && urgency == nil && notes == nil && prescriptionImage == nil {
		return UpdateRequestCommand{}, errs.NewValueIsRequiredError("fields to update")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRequestCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRequestCommandIsNotConstructed)
}

// RequestID returns the identifier of the request to edit.
func (c UpdateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// CallerID returns the identifier of the patient performing the edit.
func (c UpdateRequestCommand) CallerID() kernel.UUID {
	return c.callerID
}

// Quantity returns the new quantity, or nil to keep the current one.
func (c UpdateRequestCommand) Quantity() *int {
	return c.quantity
}

// Urgency returns the new urgency, or nil to keep the current one.
func (c UpdateRequestCommand) Urgency() *request.Urgency {
	return c.urgency
}

// Notes returns the new notes, or nil to keep the current ones.
func (c UpdateRequestCommand) Notes() *string {
	return c.notes
}

// PrescriptionImage returns the new prescription image reference, or nil.
func (c UpdateRequestCommand) PrescriptionImage() *string {
	return c.prescriptionImage
}

func (c *UpdateRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *UpdateRequestCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

func (c *UpdateRequestCommand) setQuantity(quantity *int) error {
	if quantity != nil && (*quantity < 1 || *quantity > maxRequestQuantity) {
		return errs.NewValueIsOutOfRangeError("quantity", *quantity, 1, maxRequestQuantity)
	}

	c.quantity = quantity
	return nil
}

func (c *UpdateRequestCommand) setUrgency(urgency *request.Urgency) error {
	if urgency != nil {
		if err := urgency.Validate(); err != nil {
			return err
		}
	}

	c.urgency = urgency
	return nil
}
