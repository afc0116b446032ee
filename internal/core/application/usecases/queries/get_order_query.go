package queries

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full detail of one order, including the line
// item snapshot and the tracking log. The caller must be the owning patient,
// the fulfilling pharmacy, or the assigned delivery partner.
type GetOrderQuery struct {
	orderID  kernel.UUID
	callerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated order detail query.
func NewGetOrderQuery(orderID, callerID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := callerID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:  orderID,
		callerID: callerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CallerID returns the identifier of the reader.
func (q GetOrderQuery) CallerID() kernel.UUID {
	return q.callerID
}

// OrderLineItemView is one priced line of an order detail.
type OrderLineItemView struct {
	MedicationID string
	Name         string
	Quantity     int
	UnitPrice    string
	LineTotal    string
}

// TrackingEntryView is one entry of the order's tracking log.
type TrackingEntryView struct {
	Status    string
	Timestamp time.Time
	Location  *string
	Notes     *string
}

// AddressView is the delivery address of an order detail.
type AddressView struct {
	Street     string
	City       string
	PostalCode string
	Phone      string
	Latitude   *float64
	Longitude  *float64
}

// OrderDetails is the full read model of one order.
type OrderDetails struct {
	OrderSummary
	Items             []OrderLineItemView
	Address           AddressView
	Tracking          []TrackingEntryView
	PaymentMethod     *string
	PaymentIntentID   *string
	InvoiceReference  *string
	DeliveryPartnerID *kernel.UUID
	ActualDelivery    *time.Time
}
