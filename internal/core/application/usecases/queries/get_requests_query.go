package queries

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrGetRequestsQueryIsNotConstructed = errors.New(
		"GetRequestsQuery must be created via NewGetRequestsQuery constructor",
	)
)

// RequestScope restricts a request listing to the rows its caller may see.
type RequestScope int

const (
	// RequestScopeUnknown represents an invalid scope.
	RequestScopeUnknown RequestScope = iota
	// RequestScopePatient lists the requests made by the scoped patient.
	RequestScopePatient
	// RequestScopePharmacy lists the requests sent to the scoped pharmacy.
	RequestScopePharmacy
)

// Validate returns an error for an unknown scope.
func (s RequestScope) Validate() error {
	switch s {
	case RequestScopePatient, RequestScopePharmacy:
		return nil
	default:
		return errors.New("request scope must be patient or pharmacy")
	}
}

// GetRequestsQuery retrieves a page of medication requests visible to one
// caller, optionally filtered by status and urgency.
type GetRequestsQuery struct {
	scope      RequestScope
	scopeID    kernel.UUID
	status     *request.Status
	urgency    *request.Urgency
	pagination Pagination

	guard guard.ConstructorGuard
}

// RequestSortColumns returns the columns a request listing may sort by.
// The first entry is the default.
func RequestSortColumns() []string {
	return []string{"requested_at", "urgency", "status"}
}

// NewGetRequestsQuery creates a validated request listing query.
func NewGetRequestsQuery(
	scope RequestScope,
	scopeID kernel.UUID,
	status *request.Status,
	urgency *request.Urgency,
	pagination Pagination,
) (GetRequestsQuery, error) {
	if err := scope.Validate(); err != nil {
		return GetRequestsQuery{}, err
	}
	if err := scopeID.Validate(); err != nil {
		return GetRequestsQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetRequestsQuery{}, err
		}
	}
	if urgency != nil {
		if err := urgency.Validate(); err != nil {
			return GetRequestsQuery{}, err
		}
	}

	return GetRequestsQuery{
		scope:      scope,
		scopeID:    scopeID,
		status:     status,
		urgency:    urgency,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestsQueryIsNotConstructed)
}

// Scope returns the visibility scope.
func (q GetRequestsQuery) Scope() RequestScope {
	return q.scope
}

// ScopeID returns the patient or pharmacy the scope binds to.
func (q GetRequestsQuery) ScopeID() kernel.UUID {
	return q.scopeID
}

// Status returns the optional status filter.
func (q GetRequestsQuery) Status() *request.Status {
	return q.status
}

// Urgency returns the optional urgency filter.
func (q GetRequestsQuery) Urgency() *request.Urgency {
	return q.urgency
}

// Pagination returns the paging parameters.
func (q GetRequestsQuery) Pagination() Pagination {
	return q.pagination
}

// RequestSummary is one row of a request listing.
type RequestSummary struct {
	ID                    kernel.UUID
	PatientID             kernel.UUID
	PharmacyID            kernel.UUID
	MedicationName        string
	Quantity              int
	Urgency               string
	Status                string
	PrescriptionRequired  bool
	Notes                 string
	RequestedAt           time.Time
	RespondedAt           *time.Time
	EstimatedAvailability *time.Time
}

// RequestPage is a page of request summaries with the paging envelope.
type RequestPage struct {
	Items []RequestSummary
	Total int
	Page  int
	Pages int
}
