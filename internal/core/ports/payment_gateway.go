package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
)

// PaymentIntent is the gateway's record of a charge attempt.
type PaymentIntent struct {
	ID     string
	Status string
}

// Refund is the gateway's record of a returned charge.
type Refund struct {
	ID     string
	Status string
}

// PaymentGateway defines the contract with the external payment provider.
// Implementations are expected to be side-effecting network clients; callers
// treat any returned error as a declined or failed operation.
type PaymentGateway interface {
	// CreatePaymentIntent registers a charge for the given amount against the
	// order and returns the provider's intent. The order number appears on the
	// provider's statements, so both identifiers travel with the charge.
	CreatePaymentIntent(ctx context.Context, orderID kernel.UUID, orderNumber string, amount kernel.Money, method string) (PaymentIntent, error)

	// ConfirmPaymentIntent captures a previously created intent.
	ConfirmPaymentIntent(ctx context.Context, intentID string) (PaymentIntent, error)

	// CreateRefund returns the full captured amount of the intent.
	// A refund failure must abort the surrounding cancellation.
	CreateRefund(ctx context.Context, intentID string) (Refund, error)
}
