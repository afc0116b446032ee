package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
)

// TaxRate is the fraction of the subtotal charged as tax.
var TaxRate = decimal.NewFromFloat(0.05)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a priced, deliverable fulfillment created from an available
// medication request. It is the aggregate root that manages the order
// lifecycle from confirmation through delivery or cancellation, together with
// the orthogonal payment sub-state and the append-only tracking log.
//
// Order follows these invariants:
//   - Created exclusively from an available request; at most one order per request
//   - Owns a pricing snapshot: line totals, subtotal, tax, and total are always
//     derived, never stored independently
//   - Status transitions follow the shared transition table; every transition
//     appends exactly one tracking update
//   - Reaching delivered stamps the actual delivery time
type Order struct {
	id          kernel.UUID
	number      Number
	requestID   kernel.UUID
	patientID   kernel.UUID
	pharmacyID  kernel.UUID
	items       []LineItem
	deliveryFee kernel.Money
	address     Address

	status            Status
	deliveryPartnerID *kernel.UUID
	estimatedDelivery *time.Time
	actualDelivery    *time.Time

	paymentStatus   PaymentStatus
	paymentMethod   *PaymentMethod
	paymentIntentID *string

	tracking         []TrackingUpdate
	invoiceReference *string
	createdAt        time.Time

	isConstructed bool
}

// NewOrder creates an Order in confirmed status with payment pending and one
// initial tracking entry. The items are the pricing snapshot taken at
// creation time; they must be non-empty.
func NewOrder(
	id kernel.UUID,
	number Number,
	requestID kernel.UUID,
	patientID kernel.UUID,
	pharmacyID kernel.UUID,
	items []LineItem,
	address Address,
	deliveryFee kernel.Money,
	paymentMethod *PaymentMethod,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusConfirmed,
		paymentStatus: PaymentPending,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setRequestID(requestID),
		o.setPatientID(patientID),
		o.setPharmacyID(pharmacyID),
		o.setItems(items),
		o.setAddress(address),
		o.setDeliveryFee(deliveryFee),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.tracking = append(o.tracking, newTrackingUpdate(StatusConfirmed, now, nil, nil))

	return o, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                kernel.UUID
	Number            Number
	RequestID         kernel.UUID
	PatientID         kernel.UUID
	PharmacyID        kernel.UUID
	Items             []LineItem
	DeliveryFee       kernel.Money
	Address           Address
	Status            Status
	DeliveryPartnerID *kernel.UUID
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	PaymentStatus     PaymentStatus
	PaymentMethod     *PaymentMethod
	PaymentIntentID   *string
	Tracking          []TrackingUpdate
	InvoiceReference  *string
	CreatedAt         time.Time
}

// RestoreOrder reconstructs an Order from persistence.
// Used by repositories; validates all restored values.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		deliveryPartnerID: params.DeliveryPartnerID,
		estimatedDelivery: params.EstimatedDelivery,
		actualDelivery:    params.ActualDelivery,
		paymentIntentID:   params.PaymentIntentID,
		tracking:          params.Tracking,
		invoiceReference:  params.InvoiceReference,
		createdAt:         params.CreatedAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setNumber(params.Number),
		o.setRequestID(params.RequestID),
		o.setPatientID(params.PatientID),
		o.setPharmacyID(params.PharmacyID),
		o.setItems(params.Items),
		o.setAddress(params.Address),
		o.setDeliveryFee(params.DeliveryFee),
		o.setPaymentMethod(params.PaymentMethod),
		params.Status.Validate(),
		params.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = params.Status
	o.paymentStatus = params.PaymentStatus

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() Number {
	return o.number
}

// RequestID returns the originating request's identifier.
func (o *Order) RequestID() kernel.UUID {
	return o.requestID
}

// PatientID returns the owning patient's identifier.
func (o *Order) PatientID() kernel.UUID {
	return o.patientID
}

// PharmacyID returns the fulfilling pharmacy's identifier.
func (o *Order) PharmacyID() kernel.UUID {
	return o.pharmacyID
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Address returns the delivery address.
func (o *Order) Address() Address {
	return o.address
}

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Tax returns the tax amount, rounded to 2 decimal places.
func (o *Order) Tax() kernel.Money {
	return o.Subtotal().Percent(TaxRate)
}

// Total returns subtotal plus delivery fee plus tax, rounded to 2 decimal
// places. The total is always recomputed, never stored.
func (o *Order) Total() kernel.Money {
	return o.Subtotal().Add(o.deliveryFee).Add(o.Tax()).Round2()
}

// Status returns the current delivery status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryPartnerID returns the assigned delivery partner, or nil.
func (o *Order) DeliveryPartnerID() *kernel.UUID {
	return o.deliveryPartnerID
}

// EstimatedDelivery returns the optional estimated delivery time.
func (o *Order) EstimatedDelivery() *time.Time {
	return o.estimatedDelivery
}

// ActualDelivery returns the actual delivery time, set when the order
// reaches delivered.
func (o *Order) ActualDelivery() *time.Time {
	return o.actualDelivery
}

// PaymentStatus returns the payment sub-state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentMethod returns the chosen payment method, or nil.
func (o *Order) PaymentMethod() *PaymentMethod {
	return o.paymentMethod
}

// PaymentIntentID returns the gateway intent identifier, or nil.
func (o *Order) PaymentIntentID() *string {
	return o.paymentIntentID
}

// Tracking returns a copy of the append-only tracking log.
func (o *Order) Tracking() []TrackingUpdate {
	tracking := make([]TrackingUpdate, len(o.tracking))
	copy(tracking, o.tracking)
	return tracking
}

// InvoiceReference returns the stored invoice reference, or nil if the order
// has not been invoiced yet.
func (o *Order) InvoiceReference() *string {
	return o.invoiceReference
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsOwnedBy reports whether the given patient owns the order.
func (o *Order) IsOwnedBy(patientID kernel.UUID) bool {
	return o.patientID.IsEqual(patientID)
}

// ChangeStatus transitions the order to newStatus, validating against the
// transition table, and appends one tracking entry. Reaching delivered stamps
// the actual delivery time. Fails with an invalid-state error when the order
// is already terminal.
func (o *Order) ChangeStatus(newStatus Status, now time.Time, location, notes *string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status.String(), "status change")
	}

	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	o.status = next
	o.tracking = append(o.tracking, newTrackingUpdate(next, now, location, notes))
	if next == StatusDelivered {
		o.actualDelivery = &now
	}

	return nil
}

// UpdateDetails mutates the delivery address, delivery fee, and estimated
// delivery time. Fails with an invalid-state error once the order is
// delivered or cancelled. Nil parameters leave fields unchanged; a changed
// fee flows into the derived total automatically.
func (o *Order) UpdateDetails(address *Address, deliveryFee *kernel.Money, estimatedDelivery *time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status.String(), "update")
	}

	if address != nil {
		if err := o.setAddress(*address); err != nil {
			return err
		}
	}
	if deliveryFee != nil {
		if err := o.setDeliveryFee(*deliveryFee); err != nil {
			return err
		}
	}
	if estimatedDelivery != nil {
		o.estimatedDelivery = estimatedDelivery
	}

	return nil
}

// CanAttemptPayment reports whether a payment attempt is currently allowed.
// Payment is rejected once the order is paid or cancelled.
func (o *Order) CanAttemptPayment() error {
	if o.status == StatusCancelled {
		return errs.NewInvalidStateError("order", o.status.String(), "payment")
	}
	if o.paymentStatus == PaymentPaid {
		return errs.NewInvalidStateError("payment", o.paymentStatus.String(), "payment")
	}
	return nil
}

// MarkPaid records a confirmed gateway charge: payment becomes paid and the
// method and gateway intent identifier are stored. A failed payment first
// re-enters pending per the payment transition table.
func (o *Order) MarkPaid(method PaymentMethod, intentID string) error {
	if err := o.CanAttemptPayment(); err != nil {
		return err
	}

	if o.paymentStatus == PaymentFailed {
		pending, err := o.paymentStatus.TransitionTo(PaymentPending)
		if err != nil {
			return err
		}
		o.paymentStatus = pending
	}

	next, err := o.paymentStatus.TransitionTo(PaymentPaid)
	if err != nil {
		return err
	}

	if err := o.setPaymentMethod(&method); err != nil {
		return err
	}
	o.paymentStatus = next
	o.paymentIntentID = &intentID
	return nil
}

// MarkPaymentFailed records a declined or errored gateway charge.
// The order itself is otherwise unchanged.
func (o *Order) MarkPaymentFailed(method PaymentMethod) error {
	if err := o.CanAttemptPayment(); err != nil {
		return err
	}

	if err := o.setPaymentMethod(&method); err != nil {
		return err
	}
	if o.paymentStatus != PaymentFailed {
		next, err := o.paymentStatus.TransitionTo(PaymentFailed)
		if err != nil {
			return err
		}
		o.paymentStatus = next
	}
	return nil
}

// MarkRefunded records a gateway refund during cancellation: paid becomes
// refunded.
func (o *Order) MarkRefunded() error {
	next, err := o.paymentStatus.TransitionTo(PaymentRefunded)
	if err != nil {
		return err
	}

	o.paymentStatus = next
	return nil
}

// Cancel moves the order to cancelled with one tracking entry carrying the
// optional reason. Fails with an invalid-state error when the order is
// already delivered or cancelled. Inventory release and refund handling are
// the coordinator's responsibility.
func (o *Order) Cancel(now time.Time, reason *string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status.String(), "cancel")
	}

	next, err := o.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	o.status = next
	o.tracking = append(o.tracking, newTrackingUpdate(next, now, nil, reason))
	return nil
}

// AssignDeliveryPartner sets the delivery partner reference and appends a
// tracking entry. Fails with an invalid-state error once the order is
// delivered or cancelled.
func (o *Order) AssignDeliveryPartner(partnerID kernel.UUID, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidStateError("order", o.status.String(), "partner assignment")
	}
	if err := partnerID.Validate(); err != nil {
		return err
	}

	o.deliveryPartnerID = &partnerID
	note := "delivery partner assigned"
	o.tracking = append(o.tracking, newTrackingUpdate(o.status, now, nil, &note))
	return nil
}

// EnsureInvoice derives and stores the invoice reference from the order
// number on first call and returns the same reference on every subsequent
// call.
func (o *Order) EnsureInvoice() string {
	if o.invoiceReference == nil {
		ref := o.number.InvoiceReference()
		o.invoiceReference = &ref
	}
	return *o.invoiceReference
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	o.requestID = requestID
	return nil
}

func (o *Order) setPatientID(patientID kernel.UUID) error {
	if err := patientID.Validate(); err != nil {
		return err
	}
	o.patientID = patientID
	return nil
}

func (o *Order) setPharmacyID(pharmacyID kernel.UUID) error {
	if err := pharmacyID.Validate(); err != nil {
		return err
	}
	o.pharmacyID = pharmacyID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setDeliveryFee(deliveryFee kernel.Money) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}
	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setPaymentMethod(method *PaymentMethod) error {
	if method != nil {
		if err := method.Validate(); err != nil {
			return err
		}
	}
	o.paymentMethod = method
	return nil
}
