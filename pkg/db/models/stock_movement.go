package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/enums"
)

// StockMovement is an append-only audit entry written alongside every
// successful stock mutation.
type StockMovement struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	VariantID    uuid.UUID          `gorm:"column:variant_id;type:uuid;not null;index"`
	WarehouseID  uuid.UUID          `gorm:"column:warehouse_id;type:uuid;not null"`
	MovementType enums.MovementType `gorm:"column:movement_type;type:movement_type;not null"`
	Quantity     int                `gorm:"column:quantity;not null"`
	Reason       *string            `gorm:"column:reason"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
}

func (s *StockMovement) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
