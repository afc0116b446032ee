package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
)

// GetOrdersQueryHandler retrieves pages of orders from the database.
// Derived money amounts are recomputed from the stored line item snapshot
// rather than read from columns, so listings always agree with the domain's
// pricing rules.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// lineItemRow mirrors the JSON serialization of one stored line item.
type lineItemRow struct {
	MedicationID string `json:"medication_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
}

// sumLineItems recomputes subtotal, tax, and total from the stored items.
func sumLineItems(itemsJSON []byte, deliveryFee decimal.Decimal) (subtotal, tax, total decimal.Decimal, err error) {
	var items []lineItemRow
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}

	for _, item := range items {
		unitPrice, parseErr := decimal.NewFromString(item.UnitPrice)
		if parseErr != nil {
			return decimal.Zero, decimal.Zero, decimal.Zero, parseErr
		}
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2))
	}

	tax = subtotal.Mul(order.TaxRate).Round(2)
	total = subtotal.Add(deliveryFee).Add(tax).Round(2)
	return subtotal, tax, total, nil
}

// Handle executes the listing query and returns one page of summaries with
// the total row count for the same filters.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}

	where := "TRUE"
	args := []any{}
	switch query.Scope() {
	case OrderScopePatient:
		where = "patient_id = ?"
	case OrderScopePharmacy:
		where = "pharmacy_id = ?"
	case OrderScopeDeliveryPartner:
		where = "delivery_partner_id = ?"
	}
	if query.Scope() != OrderScopeAll {
		args = append(args, query.ScopeID().String())
	}

	if query.Status() != nil {
		where += " AND status = ?"
		args = append(args, query.Status().String())
	}
	if query.PaymentStatus() != nil {
		where += " AND payment_status = ?"
		args = append(args, query.PaymentStatus().String())
	}

	var total int
	countRow := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM orders WHERE "+where, args...,
	).Row()
	if err := countRow.Scan(&total); err != nil {
		return OrderPage{}, err
	}

	pagination := query.Pagination()
	rows, err := h.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			id,
			order_year,
			order_seq,
			request_id,
			patient_id,
			pharmacy_id,
			items,
			delivery_fee,
			status,
			payment_status,
			estimated_delivery,
			created_at
		FROM orders
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?
	`, where, pagination.OrderBy()), append(args, pagination.Limit(), pagination.Offset())...).Rows()
	if err != nil {
		return OrderPage{}, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0, pagination.Limit())
	for rows.Next() {
		var (
			id, requestID, patientID, pharmacyID uuid.UUID
			summary                              OrderSummary
			orderYear, orderSeq                  int
			itemsJSON                            []byte
			deliveryFee                          decimal.Decimal
			estimatedDelivery                    sql.NullTime
		)

		if err := rows.Scan(
			&id,
			&orderYear,
			&orderSeq,
			&requestID,
			&patientID,
			&pharmacyID,
			&itemsJSON,
			&deliveryFee,
			&summary.Status,
			&summary.PaymentStatus,
			&estimatedDelivery,
			&summary.CreatedAt,
		); err != nil {
			return OrderPage{}, err
		}
		if estimatedDelivery.Valid {
			summary.EstimatedDelivery = &estimatedDelivery.Time
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return OrderPage{}, err
		}
		if summary.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
			return OrderPage{}, err
		}
		if summary.PatientID, err = kernel.UUIDFromBytes(patientID[:]); err != nil {
			return OrderPage{}, err
		}
		if summary.PharmacyID, err = kernel.UUIDFromBytes(pharmacyID[:]); err != nil {
			return OrderPage{}, err
		}

		number, numErr := order.NewNumber(orderYear, orderSeq)
		if numErr != nil {
			return OrderPage{}, numErr
		}
		summary.Number = number.String()

		subtotal, tax, totalAmount, sumErr := sumLineItems(itemsJSON, deliveryFee)
		if sumErr != nil {
			return OrderPage{}, sumErr
		}
		summary.Subtotal = subtotal.StringFixed(2)
		summary.DeliveryFee = deliveryFee.StringFixed(2)
		summary.Tax = tax.StringFixed(2)
		summary.Total = totalAmount.StringFixed(2)

		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return OrderPage{}, err
	}

	return OrderPage{
		Items: summaries,
		Total: total,
		Page:  pagination.Page(),
		Pages: pagination.Pages(total),
	}, nil
}
