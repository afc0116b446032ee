package ports

import (
	"context"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for medication request
// aggregates. Provides methods for storing, retrieving, and scanning request
// entities by status and age.
type RequestRepository interface {
	// Add persists a new request aggregate to storage.
	// The request must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request aggregate.
	// The request must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request aggregate by its unique identifier.
	// Returns an object-not-found error when no such request exists.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetAllPendingOlderThan retrieves all requests still pending whose
	// request date is before the cutoff. Used by the stale-request job to
	// nudge pharmacies about unanswered requests.
	GetAllPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*request.Request, error)
}
