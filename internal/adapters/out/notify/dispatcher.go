// Package notify implements the Notifier port as a fire-and-forget
// dispatcher. Every event is delivered on its own goroutine over all
// configured channels; delivery failures are logged and never propagate back
// into the calling transaction.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/core/ports"
)

const sendTimeout = 15 * time.Second

// Dispatcher fans lifecycle events out to the configured channels.
// The ops contact receives staff-facing alerts such as low stock reports.
type Dispatcher struct {
	directory ports.PatientDirectory
	channels  []ports.NotificationChannel
	ops       ports.Contact
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher delivering over the given channels.
func NewDispatcher(directory ports.PatientDirectory, channels []ports.NotificationChannel, ops ports.Contact, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		directory: directory,
		channels:  channels,
		ops:       ops,
		logger:    logger,
	}
}

// RequestCreated confirms receipt of a new request to the patient.
func (d *Dispatcher) RequestCreated(ctx context.Context, aggregate *request.Request) {
	subject := fmt.Sprintf("Request received for %s", aggregate.MedicationName())
	body := fmt.Sprintf(
		"Hello,\n\nWe received your medication request for %s (quantity %d). The pharmacy will respond shortly.",
		aggregate.MedicationName(), aggregate.Quantity(),
	)

	d.toPatient(ctx, aggregate.PatientID(), subject, body)
}

// RequestStatusChanged tells the patient their request moved to a new status.
func (d *Dispatcher) RequestStatusChanged(ctx context.Context, aggregate *request.Request) {
	subject := fmt.Sprintf("Your request for %s is now %s", aggregate.MedicationName(), aggregate.Status())
	body := fmt.Sprintf(
		"Hello,\n\nYour medication request for %s (quantity %d) has been updated to %q.",
		aggregate.MedicationName(), aggregate.Quantity(), aggregate.Status(),
	)
	if eta := aggregate.EstimatedAvailability(); eta != nil {
		body += fmt.Sprintf("\nEstimated availability: %s.", eta.Format("2 Jan 2006"))
	}

	d.toPatient(ctx, aggregate.PatientID(), subject, body)
}

// RequestCancelled confirms the withdrawal of a request to the patient.
func (d *Dispatcher) RequestCancelled(ctx context.Context, aggregate *request.Request) {
	subject := fmt.Sprintf("Request for %s cancelled", aggregate.MedicationName())
	body := fmt.Sprintf(
		"Hello,\n\nYour medication request for %s has been cancelled.",
		aggregate.MedicationName(),
	)

	d.toPatient(ctx, aggregate.PatientID(), subject, body)
}

// OrderCreated confirms the new order and its total to the patient.
func (d *Dispatcher) OrderCreated(ctx context.Context, aggregate *order.Order) {
	subject := fmt.Sprintf("Order %s confirmed", aggregate.Number())
	body := fmt.Sprintf(
		"Hello,\n\nYour order %s has been confirmed.\nSubtotal: %s\nDelivery fee: %s\nTax: %s\nTotal: %s",
		aggregate.Number(), aggregate.Subtotal(), aggregate.DeliveryFee(), aggregate.Tax(), aggregate.Total(),
	)

	d.toPatient(ctx, aggregate.PatientID(), subject, body)
}

// OrderStatusChanged reports a delivery progress update to the patient.
func (d *Dispatcher) OrderStatusChanged(ctx context.Context, aggregate *order.Order) {
	subject := fmt.Sprintf("Order %s is %s", aggregate.Number(), aggregate.Status())
	body := fmt.Sprintf("Hello,\n\nYour order %s is now %q.", aggregate.Number(), aggregate.Status())
	if tracking := aggregate.Tracking(); len(tracking) > 0 {
		last := tracking[len(tracking)-1]
		if last.Location() != nil {
			body += fmt.Sprintf("\nLast seen at: %s.", *last.Location())
		}
	}

	d.toPatient(ctx, aggregate.PatientID(), subject, body)
}

// OrderCancelled confirms the cancellation and, when a refund was issued,
// tells the patient the payment was returned.
func (d *Dispatcher) OrderCancelled(ctx context.Context, aggregate *order.Order) {
	subject := fmt.Sprintf("Order %s cancelled", aggregate.Number())
	body := fmt.Sprintf("Hello,\n\nYour order %s has been cancelled.", aggregate.Number())
	if aggregate.PaymentStatus() == order.PaymentRefunded {
		body += fmt.Sprintf("\nYour payment of %s has been refunded.", aggregate.Total())
	}

	d.toPatient(ctx, aggregate.PatientID(), subject, body)
}

// PaymentReceived confirms a successful charge to the patient.
func (d *Dispatcher) PaymentReceived(ctx context.Context, aggregate *order.Order) {
	subject := fmt.Sprintf("Payment received for order %s", aggregate.Number())
	body := fmt.Sprintf(
		"Hello,\n\nWe received your payment of %s for order %s.\nInvoice: %s",
		aggregate.Total(), aggregate.Number(), aggregate.Number().InvoiceReference(),
	)

	d.toPatient(ctx, aggregate.PatientID(), subject, body)
}

// LowStock sends the staff contact a digest of items at or below threshold.
func (d *Dispatcher) LowStock(ctx context.Context, items []*inventory.Item) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("The following inventory items are at or below their low stock threshold:\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s: %d left (threshold %d)\n",
			item.MedicationName(), item.Quantity(), item.LowStockThreshold())
	}

	subject := fmt.Sprintf("Low stock alert: %d items", len(items))
	d.deliver(ctx, d.ops, subject, sb.String())
}

// toPatient resolves the patient contact and delivers in the background.
// Unknown patients are skipped silently apart from a log line.
func (d *Dispatcher) toPatient(ctx context.Context, patientID kernel.UUID, subject, body string) {
	d.background(ctx, func(ctx context.Context) {
		contact, err := d.directory.LookupContact(ctx, patientID)
		if err != nil {
			d.logger.Warn("notification skipped, contact lookup failed",
				"patient_id", patientID.String(), "error", err)
			return
		}
		d.send(ctx, contact, subject, body)
	})
}

// deliver sends to a known contact in the background.
func (d *Dispatcher) deliver(ctx context.Context, contact ports.Contact, subject, body string) {
	d.background(ctx, func(ctx context.Context) {
		d.send(ctx, contact, subject, body)
	})
}

func (d *Dispatcher) send(ctx context.Context, contact ports.Contact, subject, body string) {
	for _, channel := range d.channels {
		if err := channel.Send(ctx, contact, subject, body); err != nil {
			d.logger.Warn("notification delivery failed",
				"channel", channel.Name(), "subject", subject, "error", err)
			continue
		}
		d.logger.Debug("notification delivered",
			"channel", channel.Name(), "subject", subject)
	}
}

// background detaches from the caller's cancellation so a finished HTTP
// request does not abort in-flight deliveries.
func (d *Dispatcher) background(ctx context.Context, fn func(context.Context)) {
	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	go func() {
		defer cancel()
		fn(detached)
	}()
}
