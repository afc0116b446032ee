package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/request"
)

// Contact holds the delivery coordinates for one patient. Phone is optional;
// channels that need it skip the patient silently when it is absent.
type Contact struct {
	Name  string
	Email string
	Phone *string
}

// PatientDirectory resolves patient identifiers to notification contacts.
type PatientDirectory interface {
	// LookupContact returns the patient's contact details, or an
	// object-not-found error when the patient is unknown.
	LookupContact(ctx context.Context, patientID kernel.UUID) (Contact, error)
}

// NotificationChannel delivers one rendered message over a single transport
// (email, SMS, webhook). Implementations report delivery failures through the
// returned error; the dispatcher logs and swallows them.
type NotificationChannel interface {
	// Name identifies the channel in logs.
	Name() string

	// Send delivers the message to the contact.
	Send(ctx context.Context, contact Contact, subject, body string) error
}

// Notifier fans lifecycle events out to patients and pharmacy staff.
// All methods are fire-and-forget: they return immediately and never
// propagate delivery failures back into the calling transaction.
type Notifier interface {
	RequestCreated(ctx context.Context, aggregate *request.Request)
	RequestStatusChanged(ctx context.Context, aggregate *request.Request)
	RequestCancelled(ctx context.Context, aggregate *request.Request)
	OrderCreated(ctx context.Context, aggregate *order.Order)
	OrderStatusChanged(ctx context.Context, aggregate *order.Order)
	OrderCancelled(ctx context.Context, aggregate *order.Order)
	PaymentReceived(ctx context.Context, aggregate *order.Order)
	LowStock(ctx context.Context, items []*inventory.Item)
}
