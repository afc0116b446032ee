package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for inventory items.
// Reservation and release mutations are persisted through Update inside the
// same transaction as the order write they belong to.
type InventoryRepository interface {
	// Add persists a new inventory item to storage.
	Add(ctx context.Context, aggregate *inventory.Item) error

	// Update persists changes to an existing inventory item.
	Update(ctx context.Context, aggregate *inventory.Item) error

	// Get retrieves an inventory item by its unique identifier.
	// Returns an object-not-found error when no such item exists.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)

	// GetByMedication retrieves the pharmacy's item for the given medication
	// name, or an object-not-found error when the pharmacy does not stock it.
	GetByMedication(ctx context.Context, pharmacyID kernel.UUID, medicationName string) (*inventory.Item, error)

	// GetAllLowStock retrieves every item whose on-hand quantity is at or
	// below its low-stock threshold. Used by the replenishment alert job.
	GetAllLowStock(ctx context.Context) ([]*inventory.Item, error)
}
