package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttributeValue is one allowed value of an attribute type. Variant rows
// reference values by ID, never by free text.
type AttributeValue struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	AttributeTypeID uuid.UUID `gorm:"column:attribute_type_id;type:uuid;not null;index"`
	Value           string    `gorm:"column:value;not null"`
	ColorHex        *string   `gorm:"column:color_hex"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	Position        int       `gorm:"column:position;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *AttributeValue) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
