// Package inventoryrepo provides data transfer objects and mapping functions
// for inventory persistence. A pharmacy carries at most one row per
// medication, enforced with a composite unique index.
package inventoryrepo

import (
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO represents the database structure for persisting inventory items.
type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	PharmacyID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_inventory_medication"`
	MedicationName    string    `gorm:"uniqueIndex:idx_inventory_medication"`
	Category          string
	Form              string
	Quantity          int
	UnitPrice         decimal.Decimal `gorm:"type:numeric(12,2)"`
	LowStockThreshold int
}

// TableName specifies the database table name for inventory items.
func (ItemDTO) TableName() string {
	return "inventory_items"
}

// fromDomain converts an inventory item to its database representation.
func fromDomain(item *inventory.Item) ItemDTO {
	return ItemDTO{
		ID:                item.ID().Bytes(),
		PharmacyID:        item.PharmacyID().Bytes(),
		MedicationName:    item.MedicationName(),
		Category:          item.Category(),
		Form:              item.Form(),
		Quantity:          item.Quantity(),
		UnitPrice:         item.UnitPrice().Amount(),
		LowStockThreshold: item.LowStockThreshold(),
	}
}

// toDomain converts a database DTO to an inventory item using RestoreItem.
func toDomain(dto ItemDTO) (*inventory.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	pharmacyID, err := kernel.UUIDFromBytes(dto.PharmacyID[:])
	if err != nil {
		return nil, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreItem(
		id,
		pharmacyID,
		dto.MedicationName,
		dto.Category,
		dto.Form,
		dto.Quantity,
		unitPrice,
		dto.LowStockThreshold,
	)
}
