package queries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pharmacy/internal/core/domain/model/kernel"
)

// GetRequestsQueryHandler retrieves pages of medication requests from the
// database.
type GetRequestsQueryHandler struct {
	db *gorm.DB
}

// NewGetRequestsQueryHandler creates a handler for request listing queries.
// Requires a GORM database connection for query execution.
func NewGetRequestsQueryHandler(db *gorm.DB) GetRequestsQueryHandler {
	return GetRequestsQueryHandler{db: db}
}

// Handle executes the listing query and returns one page of summaries with
// the total row count for the same filters.
func (h GetRequestsQueryHandler) Handle(ctx context.Context, query GetRequestsQuery) (RequestPage, error) {
	if err := query.Validate(); err != nil {
		return RequestPage{}, err
	}

	where := "patient_id = ?"
	if query.Scope() == RequestScopePharmacy {
		where = "pharmacy_id = ?"
	}
	args := []any{query.ScopeID().String()}

	if query.Status() != nil {
		where += " AND status = ?"
		args = append(args, query.Status().String())
	}
	if query.Urgency() != nil {
		where += " AND urgency = ?"
		args = append(args, query.Urgency().String())
	}

	var total int
	countRow := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM requests WHERE "+where, args...,
	).Row()
	if err := countRow.Scan(&total); err != nil {
		return RequestPage{}, err
	}

	pagination := query.Pagination()
	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			id,
			patient_id,
			pharmacy_id,
			medication_name,
			quantity,
			urgency,
			status,
			prescription_required,
			notes,
			requested_at,
			responded_at,
			estimated_availability
		FROM requests
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, where, pagination.OrderBy()), append(args, pagination.Limit(), pagination.Offset())...).Rows()
	if err != nil {
		return RequestPage{}, err
	}
	defer rows.Close()

	summaries := make([]RequestSummary, 0, pagination.Limit())
	for rows.Next() {
		var (
			id, patientID, pharmacyID          uuid.UUID
			summary                            RequestSummary
			respondedAt, estimatedAvailability sql.NullTime
		)

		if err := rows.Scan(
			&id,
			&patientID,
			&pharmacyID,
			&summary.MedicationName,
			&summary.Quantity,
			&summary.Urgency,
			&summary.Status,
			&summary.PrescriptionRequired,
			&summary.Notes,
			&summary.RequestedAt,
			&respondedAt,
			&estimatedAvailability,
		); err != nil {
			return RequestPage{}, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return RequestPage{}, err
		}
		if summary.PatientID, err = kernel.UUIDFromBytes(patientID[:]); err != nil {
			return RequestPage{}, err
		}
		if summary.PharmacyID, err = kernel.UUIDFromBytes(pharmacyID[:]); err != nil {
			return RequestPage{}, err
		}
		if respondedAt.Valid {
			summary.RespondedAt = &respondedAt.Time
		}
		if estimatedAvailability.Valid {
			summary.EstimatedAvailability = &estimatedAvailability.Time
		}

		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return RequestPage{}, err
	}

	return RequestPage{
		Items: summaries,
		Total: total,
		Page:  pagination.Page(),
		Pages: pagination.Pages(total),
	}, nil
}
