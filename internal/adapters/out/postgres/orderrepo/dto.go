// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Line items and tracking history are stored as jsonb
// snapshots; money amounts are serialized as strings inside the snapshot so
// no precision is lost on the round trip.
package orderrepo

import (
	"encoding/json"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The order number is split into year and sequence columns so the next
// sequence for a year can be selected with a plain MAX. Subtotal, tax and
// total are never stored; they are recomputed from the items snapshot.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderYear         int             `gorm:"uniqueIndex:idx_orders_number"`
	OrderSeq          int             `gorm:"uniqueIndex:idx_orders_number"`
	RequestID         uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	PatientID         uuid.UUID       `gorm:"type:uuid;index"`
	PharmacyID        uuid.UUID       `gorm:"type:uuid;index"`
	Items             []byte          `gorm:"type:jsonb"`
	DeliveryFee       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Street            string
	City              string
	PostalCode        string
	Phone             string
	Latitude          *float64
	Longitude         *float64
	Status            string     `gorm:"index"`
	DeliveryPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
	PaymentStatus     string `gorm:"index"`
	PaymentMethod     *string
	PaymentIntentID   *string
	Tracking          []byte `gorm:"type:jsonb"`
	InvoiceReference  *string
	CreatedAt         time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// lineItemJSON is the wire shape of one element of the items snapshot.
// The read-side listing queries decode the same shape.
type lineItemJSON struct {
	MedicationID uuid.UUID `json:"medication_id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	UnitPrice    string    `json:"unit_price"`
}

// trackingJSON is the wire shape of one element of the tracking snapshot.
type trackingJSON struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Location  *string   `json:"location,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]lineItemJSON, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, lineItemJSON{
			MedicationID: item.MedicationID().Bytes(),
			Name:         item.Name(),
			Quantity:     item.Quantity(),
			UnitPrice:    item.UnitPrice().String(),
		})
	}
	itemsRaw, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	tracking := make([]trackingJSON, 0, len(aggregate.Tracking()))
	for _, entry := range aggregate.Tracking() {
		tracking = append(tracking, trackingJSON{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			Location:  entry.Location(),
			Notes:     entry.Notes(),
		})
	}
	trackingRaw, err := json.Marshal(tracking)
	if err != nil {
		return OrderDTO{}, err
	}

	var partnerID *uuid.UUID
	if id := aggregate.DeliveryPartnerID(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	var latitude, longitude *float64
	if point := aggregate.Address().Coordinates(); point != nil {
		lat, lng := point.Latitude(), point.Longitude()
		latitude, longitude = &lat, &lng
	}

	var method *string
	if m := aggregate.PaymentMethod(); m != nil {
		s := m.String()
		method = &s
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OrderYear:         aggregate.Number().Year(),
		OrderSeq:          aggregate.Number().Sequence(),
		RequestID:         aggregate.RequestID().Bytes(),
		PatientID:         aggregate.PatientID().Bytes(),
		PharmacyID:        aggregate.PharmacyID().Bytes(),
		Items:             itemsRaw,
		DeliveryFee:       aggregate.DeliveryFee().Amount(),
		Street:            aggregate.Address().Street(),
		City:              aggregate.Address().City(),
		PostalCode:        aggregate.Address().PostalCode(),
		Phone:             aggregate.Address().Phone(),
		Latitude:          latitude,
		Longitude:         longitude,
		Status:            aggregate.Status().String(),
		DeliveryPartnerID: partnerID,
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		ActualDelivery:    aggregate.ActualDelivery(),
		PaymentStatus:     aggregate.PaymentStatus().String(),
		PaymentMethod:     method,
		PaymentIntentID:   aggregate.PaymentIntentID(),
		Tracking:          trackingRaw,
		InvoiceReference:  aggregate.InvoiceReference(),
		CreatedAt:         aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
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

	number, err := order.NewNumber(dto.OrderYear, dto.OrderSeq)
	if err != nil {
		return nil, err
	}

	var itemsRaw []lineItemJSON
	if err := json.Unmarshal(dto.Items, &itemsRaw); err != nil {
		return nil, err
	}
	items := make([]order.LineItem, 0, len(itemsRaw))
	for _, raw := range itemsRaw {
		medicationID, err := kernel.UUIDFromBytes(raw.MedicationID[:])
		if err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(raw.UnitPrice)
		if err != nil {
			return nil, err
		}
		unitPrice, err := kernel.NewMoney(amount)
		if err != nil {
			return nil, err
		}
		item, err := order.NewLineItem(medicationID, raw.Name, raw.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var trackingRaw []trackingJSON
	if err := json.Unmarshal(dto.Tracking, &trackingRaw); err != nil {
		return nil, err
	}
	tracking := make([]order.TrackingUpdate, 0, len(trackingRaw))
	for _, raw := range trackingRaw {
		entryStatus, err := order.StatusFromString(raw.Status)
		if err != nil {
			return nil, err
		}
		tracking = append(tracking, order.RestoreTrackingUpdate(entryStatus, raw.Timestamp, raw.Location, raw.Notes))
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	var coordinates *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return nil, err
		}
		coordinates = &point
	}
	address, err := order.NewAddress(dto.Street, dto.City, dto.PostalCode, dto.Phone, coordinates)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var method *order.PaymentMethod
	if dto.PaymentMethod != nil {
		m, err := order.PaymentMethodFromString(*dto.PaymentMethod)
		if err != nil {
			return nil, err
		}
		method = &m
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pid, err := kernel.UUIDFromBytes(dto.DeliveryPartnerID[:])
		if err != nil {
			return nil, err
		}
		partnerID = &pid
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		Number:            number,
		RequestID:         requestID,
		PatientID:         patientID,
		PharmacyID:        pharmacyID,
		Items:             items,
		DeliveryFee:       deliveryFee,
		Address:           address,
		Status:            status,
		DeliveryPartnerID: partnerID,
		EstimatedDelivery: dto.EstimatedDelivery,
		ActualDelivery:    dto.ActualDelivery,
		PaymentStatus:     paymentStatus,
		PaymentMethod:     method,
		PaymentIntentID:   dto.PaymentIntentID,
		Tracking:          tracking,
		InvoiceReference:  dto.InvoiceReference,
		CreatedAt:         dto.CreatedAt,
	})
}
