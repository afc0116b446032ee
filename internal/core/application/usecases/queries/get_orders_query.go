package queries

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// OrderScope restricts a listing to the rows its caller may see.
type OrderScope int

const (
	// OrderScopeUnknown represents an invalid scope.
	OrderScopeUnknown OrderScope = iota
	// OrderScopeAll lists every order. It binds to no scope ID.
	OrderScopeAll
	// OrderScopePatient lists the orders owned by the scoped patient.
	OrderScopePatient
	// OrderScopePharmacy lists the orders fulfilled by the scoped pharmacy.
	OrderScopePharmacy
	// OrderScopeDeliveryPartner lists the orders assigned to the scoped partner.
	OrderScopeDeliveryPartner
)

// Validate returns an error for an unknown scope.
func (s OrderScope) Validate() error {
	switch s {
	case OrderScopeAll, OrderScopePatient, OrderScopePharmacy, OrderScopeDeliveryPartner:
		return nil
	default:
		return errors.New("order scope must be all, patient, pharmacy, or delivery partner")
	}
}

// GetOrdersQuery retrieves a page of orders visible to one caller, optionally
// filtered by delivery status and payment status.
//
// Example:
//
//	pagination, _ := NewPagination(1, 20, "created_at", "desc", OrderSortColumns())
//	query, err := NewGetOrdersQuery(OrderScopePatient, patientID, nil, nil, pagination)
//	if err != nil {
//	    return fmt.Errorf("invalid listing: %w", err)
//	}
//
//	page, err := NewGetOrdersQueryHandler(db).Handle(ctx, query)
type GetOrdersQuery struct {
	scope         OrderScope
	scopeID       kernel.UUID
	status        *order.Status
	paymentStatus *order.PaymentStatus
	pagination    Pagination

	guard guard.ConstructorGuard
}

// OrderSortColumns returns the columns an order listing may sort by.
// The first entry is the default.
func OrderSortColumns() []string {
	return []string{"created_at", "order_year", "order_seq", "status"}
}

// NewGetOrdersQuery creates a validated order listing query.
func NewGetOrdersQuery(
	scope OrderScope,
	scopeID kernel.UUID,
	status *order.Status,
	paymentStatus *order.PaymentStatus,
	pagination Pagination,
) (GetOrdersQuery, error) {
	if err := scope.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if scope != OrderScopeAll {
		if err := scopeID.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	if paymentStatus != nil {
		if err := paymentStatus.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		scope:         scope,
		scopeID:       scopeID,
		status:        status,
		paymentStatus: paymentStatus,
		pagination:    pagination,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Scope returns the visibility scope.
func (q GetOrdersQuery) Scope() OrderScope {
	return q.scope
}

// ScopeID returns the patient, pharmacy, or partner the scope binds to.
// It is the zero UUID for OrderScopeAll.
func (q GetOrdersQuery) ScopeID() kernel.UUID {
	return q.scopeID
}

// Status returns the optional delivery status filter.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// PaymentStatus returns the optional payment status filter.
func (q GetOrdersQuery) PaymentStatus() *order.PaymentStatus {
	return q.paymentStatus
}

// Pagination returns the paging parameters.
func (q GetOrdersQuery) Pagination() Pagination {
	return q.pagination
}

// OrderSummary is one row of an order listing. Money amounts are formatted
// with two decimal places.
type OrderSummary struct {
	ID                kernel.UUID
	Number            string
	RequestID         kernel.UUID
	PatientID         kernel.UUID
	PharmacyID        kernel.UUID
	Status            string
	PaymentStatus     string
	Subtotal          string
	DeliveryFee       string
	Tax               string
	Total             string
	EstimatedDelivery *time.Time
	CreatedAt         time.Time
}

// OrderPage is a page of order summaries with the paging envelope.
type OrderPage struct {
	Items []OrderSummary
	Total int
	Page  int
	Pages int
}
