package http

import (
	"time"

	"pharmacy/internal/core/application/usecases/queries"
)

// createRequestBody is the payload for POST /api/v1/requests.
type createRequestBody struct {
	PatientID             string     `json:"patient_id"`
	PharmacyID            string     `json:"pharmacy_id"`
	MedicationName        string     `json:"medication_name"`
	Quantity              int        `json:"quantity"`
	Urgency               string     `json:"urgency"`
	PrescriptionRequired  bool       `json:"prescription_required"`
	Notes                 string     `json:"notes"`
	EstimatedAvailability *time.Time `json:"estimated_availability"`
}

// updateRequestBody is the payload for PATCH /api/v1/requests/:id.
// Absent fields keep their current values.
type updateRequestBody struct {
	Quantity          *int    `json:"quantity"`
	Urgency           *string `json:"urgency"`
	Notes             *string `json:"notes"`
	PrescriptionImage *string `json:"prescription_image"`
}

// changeRequestStatusBody is the payload for POST /api/v1/requests/:id/status.
type changeRequestStatusBody struct {
	Status                string     `json:"status"`
	Notes                 *string    `json:"notes"`
	EstimatedAvailability *time.Time `json:"estimated_availability"`
}

// addressBody carries a delivery address in order payloads.
type addressBody struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	PostalCode string   `json:"postal_code"`
	Phone      string   `json:"phone"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// createOrderBody is the payload for POST /api/v1/orders.
type createOrderBody struct {
	RequestID         string          `json:"request_id"`
	Items             []orderLineBody `json:"items"`
	Address           addressBody     `json:"address"`
	DeliveryFee       float64         `json:"delivery_fee"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery"`
	PaymentMethod     *string         `json:"payment_method"`
}

// orderLineBody is one requested line of a new order.
type orderLineBody struct {
	MedicationName string `json:"medication_name"`
	Quantity       int    `json:"quantity"`
}

// updateOrderBody is the payload for PATCH /api/v1/orders/:id.
// Absent fields keep their current values.
type updateOrderBody struct {
	Address           *addressBody `json:"address"`
	DeliveryFee       *float64     `json:"delivery_fee"`
	EstimatedDelivery *time.Time   `json:"estimated_delivery"`
}

// changeOrderStatusBody is the payload for POST /api/v1/orders/:id/status.
type changeOrderStatusBody struct {
	Status   string  `json:"status"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// processPaymentBody is the payload for POST /api/v1/orders/:id/payment.
type processPaymentBody struct {
	Method string `json:"method"`
}

// cancelOrderBody is the payload for POST /api/v1/orders/:id/cancel.
type cancelOrderBody struct {
	Reason *string `json:"reason"`
}

// assignPartnerBody is the payload for POST /api/v1/orders/:id/delivery-partner.
type assignPartnerBody struct {
	PartnerID string `json:"partner_id"`
}

// requestSummaryResponse is one row of a request listing.
type requestSummaryResponse struct {
	ID                    string     `json:"id"`
	PatientID             string     `json:"patient_id"`
	PharmacyID            string     `json:"pharmacy_id"`
	MedicationName        string     `json:"medication_name"`
	Quantity              int        `json:"quantity"`
	Urgency               string     `json:"urgency"`
	Status                string     `json:"status"`
	PrescriptionRequired  bool       `json:"prescription_required"`
	Notes                 string     `json:"notes,omitempty"`
	RequestedAt           time.Time  `json:"requested_at"`
	RespondedAt           *time.Time `json:"responded_at,omitempty"`
	EstimatedAvailability *time.Time `json:"estimated_availability,omitempty"`
}

// orderSummaryResponse is one row of an order listing.
type orderSummaryResponse struct {
	ID                string     `json:"id"`
	Number            string     `json:"number"`
	RequestID         string     `json:"request_id"`
	PatientID         string     `json:"patient_id"`
	PharmacyID        string     `json:"pharmacy_id"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	Subtotal          string     `json:"subtotal"`
	DeliveryFee       string     `json:"delivery_fee"`
	Tax               string     `json:"tax"`
	Total             string     `json:"total"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// lineItemResponse is one line of an order detail.
type lineItemResponse struct {
	MedicationID string `json:"medication_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	LineTotal    string `json:"line_total"`
}

// trackingEntryResponse is one entry of an order's tracking log.
type trackingEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  *string   `json:"location,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

// addressResponse is the delivery address of an order detail.
type addressResponse struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	PostalCode string   `json:"postal_code"`
	Phone      string   `json:"phone"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// orderDetailsResponse is the full order read model.
type orderDetailsResponse struct {
	orderSummaryResponse
	Items             []lineItemResponse      `json:"items"`
	Address           addressResponse         `json:"address"`
	Tracking          []trackingEntryResponse `json:"tracking"`
	PaymentMethod     *string                 `json:"payment_method,omitempty"`
	InvoiceReference  *string                 `json:"invoice_reference,omitempty"`
	DeliveryPartnerID *string                 `json:"delivery_partner_id,omitempty"`
	ActualDelivery    *time.Time              `json:"actual_delivery,omitempty"`
}

// pageResponse is the envelope around any listing.
type pageResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// invoiceResponse is returned by POST /api/v1/orders/:id/invoice.
type invoiceResponse struct {
	InvoiceReference string `json:"invoice_reference"`
}

func toRequestSummaryResponse(summary queries.RequestSummary) requestSummaryResponse {
	return requestSummaryResponse{
		ID:                    summary.ID.String(),
		PatientID:             summary.PatientID.String(),
		PharmacyID:            summary.PharmacyID.String(),
		MedicationName:        summary.MedicationName,
		Quantity:              summary.Quantity,
		Urgency:               summary.Urgency,
		Status:                summary.Status,
		PrescriptionRequired:  summary.PrescriptionRequired,
		Notes:                 summary.Notes,
		RequestedAt:           summary.RequestedAt,
		RespondedAt:           summary.RespondedAt,
		EstimatedAvailability: summary.EstimatedAvailability,
	}
}

func toOrderSummaryResponse(summary queries.OrderSummary) orderSummaryResponse {
	return orderSummaryResponse{
		ID:                summary.ID.String(),
		Number:            summary.Number,
		RequestID:         summary.RequestID.String(),
		PatientID:         summary.PatientID.String(),
		PharmacyID:        summary.PharmacyID.String(),
		Status:            summary.Status,
		PaymentStatus:     summary.PaymentStatus,
		Subtotal:          summary.Subtotal,
		DeliveryFee:       summary.DeliveryFee,
		Tax:               summary.Tax,
		Total:             summary.Total,
		EstimatedDelivery: summary.EstimatedDelivery,
		CreatedAt:         summary.CreatedAt,
	}
}

func toOrderDetailsResponse(details queries.OrderDetails) orderDetailsResponse {
	items := make([]lineItemResponse, len(details.Items))
	for i, item := range details.Items {
		items[i] = lineItemResponse{
			MedicationID: item.MedicationID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.LineTotal,
		}
	}

	tracking := make([]trackingEntryResponse, len(details.Tracking))
	for i, entry := range details.Tracking {
		tracking[i] = trackingEntryResponse{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Location:  entry.Location,
			Notes:     entry.Notes,
		}
	}

	var partnerID *string
	if details.DeliveryPartnerID != nil {
		s := details.DeliveryPartnerID.String()
		partnerID = &s
	}

	return orderDetailsResponse{
		orderSummaryResponse: toOrderSummaryResponse(details.OrderSummary),
		Items:                items,
		Address: addressResponse{
			Street:     details.Address.Street,
			City:       details.Address.City,
			PostalCode: details.Address.PostalCode,
			Phone:      details.Address.Phone,
			Latitude:   details.Address.Latitude,
			Longitude:  details.Address.Longitude,
		},
		Tracking:          tracking,
		PaymentMethod:     details.PaymentMethod,
		InvoiceReference:  details.InvoiceReference,
		DeliveryPartnerID: partnerID,
		ActualDelivery:    details.ActualDelivery,
	}
}
