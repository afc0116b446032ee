package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities,
// plus the per-year sequence lookup behind order number generation.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an object-not-found error when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByRequestID retrieves the order created from the given request,
	// or an object-not-found error when the request has no order yet.
	// At most one order exists per request.
	GetByRequestID(ctx context.Context, requestID kernel.UUID) (*order.Order, error)

	// MaxSequenceForYear returns the highest order number sequence issued in
	// the given year, or 0 when no orders exist for it. Must be called inside
	// the same transaction as the subsequent Add so concurrent creations
	// cannot issue the same number.
	MaxSequenceForYear(ctx context.Context, year int) (int, error)
}
