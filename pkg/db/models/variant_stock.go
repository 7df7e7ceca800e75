package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariantStock tracks quantity and reservations per variant and warehouse.
// The available count is always derived, never stored.
type VariantStock struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VariantID    uuid.UUID `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:ux_variant_warehouse"`
	WarehouseID  uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:ux_variant_warehouse"`
	Quantity     int       `gorm:"column:quantity;not null;default:0"`
	Reserved     int       `gorm:"column:reserved;not null;default:0"`
	MinimumStock int       `gorm:"column:minimum_stock;not null;default:0"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *VariantStock) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Available returns the quantity still open for reservation, floored at zero.
func (v VariantStock) Available() int {
	available := v.Quantity - v.Reserved
	if available < 0 {
		return 0
	}
	return available
}

// IsLow reports whether the available quantity has reached the minimum
// stock threshold while some stock remains.
func (v VariantStock) IsLow() bool {
	available := v.Available()
	return available > 0 && available <= v.MinimumStock
}
