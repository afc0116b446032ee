// Package requestrepo provides data transfer objects and mapping functions for
// request persistence. This package implements the repository pattern for the
// request domain aggregate, handling the conversion between domain entities
// and database representations.
package requestrepo

import (
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting request
// aggregates. Status and urgency are stored as their string forms so the
// read-side listing queries can filter on them without decoding.
type RequestDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	PatientID             uuid.UUID `gorm:"type:uuid;index"`
	PharmacyID            uuid.UUID `gorm:"type:uuid;index"`
	MedicationName        string
	Quantity              int
	Urgency               string
	Status                string `gorm:"index"`
	PrescriptionRequired  bool
	PrescriptionImage     *string
	Notes                 string
	RequestedAt           time.Time `gorm:"index"`
	RespondedAt           *time.Time
	EstimatedAvailability *time.Time
}

// TableName specifies the database table name for request entities.
func (RequestDTO) TableName() string {
	return "requests"
}

// fromDomain converts a request domain aggregate to its database representation.
func fromDomain(aggregate *request.Request) RequestDTO {
	return RequestDTO{
		ID:                    aggregate.ID().Bytes(),
		PatientID:             aggregate.PatientID().Bytes(),
		PharmacyID:            aggregate.PharmacyID().Bytes(),
		MedicationName:        aggregate.MedicationName(),
		Quantity:              aggregate.Quantity(),
		Urgency:               aggregate.Urgency().String(),
		Status:                aggregate.Status().String(),
		PrescriptionRequired:  aggregate.PrescriptionRequired(),
		PrescriptionImage:     aggregate.PrescriptionImage(),
		Notes:                 aggregate.Notes(),
		RequestedAt:           aggregate.RequestedAt(),
		RespondedAt:           aggregate.RespondedAt(),
		EstimatedAvailability: aggregate.EstimatedAvailability(),
	}
}

// toDomain converts a database DTO to a request domain aggregate using
// RestoreRequest.
func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	patientID, err := kernel.UUIDFromBytes(dto.PatientID[:])
	if err != nil {
		return nil, err
	}
	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}

	status, err := request.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	urgency, err := request.UrgencyFromString(dto.Urgency)
	if err != nil {
		return nil, err
	}

	return request.RestoreRequest(request.RestoreRequestParams{
		ID:                    id,
		PatientID:             patientID,
		PharmacyID:            pharmacyID,
		MedicationName:        dto.MedicationName,
		Quantity:              dto.Quantity,
		Urgency:               urgency,
		Status:                status,
		PrescriptionRequired:  dto.PrescriptionRequired,
		PrescriptionImage:     dto.PrescriptionImage,
		Notes:                 dto.Notes,
		RequestedAt:           dto.RequestedAt,
		RespondedAt:           dto.RespondedAt,
		EstimatedAvailability: dto.EstimatedAvailability,
	})
}
