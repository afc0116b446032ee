package inventoryrepo

import (
	"context"
	"errors"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inventory item to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Update saves an existing inventory item to the database. Quantity is
// written explicitly because a fully drained item updates to zero.
func (r *GormInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&ItemDTO{}).Where("id = ?", dto.ID).
		Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(item.ID(), item)
	return nil
}

// Get retrieves an inventory item by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByMedication retrieves a pharmacy's inventory item for a medication.
func (r *GormInventoryRepository) GetByMedication(ctx context.Context, pharmacyID kernel.UUID, medicationName string) (*inventory.Item, error) {
	if err := pharmacyID.Validate(); err != nil {
		return nil, err
	}
	if medicationName == "" {
		return nil, errs.NewValueIsRequiredError("medicationName")
	}

	var dto ItemDTO
	err := r.db.WithContext(ctx).
		First(&dto, "pharmacy_id = ? AND medication_name = ?", pharmacyID.Bytes(), medicationName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("medicationName", medicationName)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllLowStock retrieves all items at or below their low stock threshold.
func (r *GormInventoryRepository) GetAllLowStock(ctx context.Context) ([]*inventory.Item, error) {
	var dtos []ItemDTO
	err := r.db.WithContext(ctx).
		Order("pharmacy_id, medication_name").
		Find(&dtos, "quantity <= low_stock_threshold").Error
	if err != nil {
		return nil, err
	}

	items := make([]*inventory.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
