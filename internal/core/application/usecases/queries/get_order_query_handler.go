package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"
)

// GetOrderQueryHandler retrieves one order's full detail from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// trackingRow mirrors the JSON serialization of one tracking entry.
type trackingRow struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  *string   `json:"location,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

// Handle executes the detail query. Callers outside the order's patient,
// pharmacy, and assigned partner get a forbidden error rather than a view of
// someone else's order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_year,
			order_seq,
			request_id,
			patient_id,
			pharmacy_id,
			items,
			delivery_fee,
			street,
			city,
			postal_code,
			phone,
			latitude,
			longitude,
			status,
			delivery_partner_id,
			estimated_delivery,
			actual_delivery,
			payment_status,
			payment_method,
			payment_intent_id,
			tracking,
			invoice_reference,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		id, requestID, patientID, pharmacyID uuid.UUID
		details                              OrderDetails
		orderYear, orderSeq                  int
		itemsJSON, trackingJSON              []byte
		deliveryFee                          decimal.Decimal
		latitude, longitude                  sql.NullFloat64
		deliveryPartnerID                    uuid.NullUUID
		estimatedDelivery, actualDelivery    sql.NullTime
		paymentMethod, paymentIntentID       sql.NullString
		invoiceReference                     sql.NullString
	)

	err := row.Scan(
		&id,
		&orderYear,
		&orderSeq,
		&requestID,
		&patientID,
		&pharmacyID,
		&itemsJSON,
		&deliveryFee,
		&details.Address.Street,
		&details.Address.City,
		&details.Address.PostalCode,
		&details.Address.Phone,
		&latitude,
		&longitude,
		&details.Status,
		&deliveryPartnerID,
		&estimatedDelivery,
		&actualDelivery,
		&details.PaymentStatus,
		&paymentMethod,
		&paymentIntentID,
		&trackingJSON,
		&invoiceReference,
		&details.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderDetails{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return OrderDetails{}, err
	}

	if details.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderDetails{}, err
	}
	if details.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
		return OrderDetails{}, err
	}
	if details.PatientID, err = kernel.UUIDFromBytes(patientID[:]); err != nil {
		return OrderDetails{}, err
	}
	if details.PharmacyID, err = kernel.UUIDFromBytes(pharmacyID[:]); err != nil {
		return OrderDetails{}, err
	}
	if deliveryPartnerID.Valid {
		partnerID, idErr := kernel.UUIDFromBytes(deliveryPartnerID.UUID[:])
		if idErr != nil {
			return OrderDetails{}, idErr
		}
		details.DeliveryPartnerID = &partnerID
	}

	if !h.visibleTo(details, query.CallerID()) {
		return OrderDetails{}, errs.NewForbiddenError(query.CallerID().String(), "order", details.ID.String())
	}

	number, err := order.NewNumber(orderYear, orderSeq)
	if err != nil {
		return OrderDetails{}, err
	}
	details.Number = number.String()

	if latitude.Valid && longitude.Valid {
		details.Address.Latitude = &latitude.Float64
		details.Address.Longitude = &longitude.Float64
	}
	if estimatedDelivery.Valid {
		details.EstimatedDelivery = &estimatedDelivery.Time
	}
	if actualDelivery.Valid {
		details.ActualDelivery = &actualDelivery.Time
	}
	if paymentMethod.Valid {
		details.PaymentMethod = &paymentMethod.String
	}
	if paymentIntentID.Valid {
		details.PaymentIntentID = &paymentIntentID.String
	}
	if invoiceReference.Valid {
		details.InvoiceReference = &invoiceReference.String
	}

	var itemRows []lineItemRow
	if err := json.Unmarshal(itemsJSON, &itemRows); err != nil {
		return OrderDetails{}, err
	}
	for _, item := range itemRows {
		unitPrice, parseErr := decimal.NewFromString(item.UnitPrice)
		if parseErr != nil {
			return OrderDetails{}, parseErr
		}
		details.Items = append(details.Items, OrderLineItemView{
			MedicationID: item.MedicationID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			UnitPrice:    unitPrice.StringFixed(2),
			LineTotal:    unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2).StringFixed(2),
		})
	}

	subtotal, tax, totalAmount, err := sumLineItems(itemsJSON, deliveryFee)
	if err != nil {
		return OrderDetails{}, err
	}
	details.Subtotal = subtotal.StringFixed(2)
	details.DeliveryFee = deliveryFee.StringFixed(2)
	details.Tax = tax.StringFixed(2)
	details.Total = totalAmount.StringFixed(2)

	var trackingRows []trackingRow
	if err := json.Unmarshal(trackingJSON, &trackingRows); err != nil {
		return OrderDetails{}, err
	}
	for _, entry := range trackingRows {
		details.Tracking = append(details.Tracking, TrackingEntryView{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Location:  entry.Location,
			Notes:     entry.Notes,
		})
	}

	return details, nil
}

func (h GetOrderQueryHandler) visibleTo(details OrderDetails, callerID kernel.UUID) bool {
	if details.PatientID.IsEqual(callerID) || details.PharmacyID.IsEqual(callerID) {
		return true
	}
	return details.DeliveryPartnerID != nil && details.DeliveryPartnerID.IsEqual(callerID)
}
