package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariantAttribute joins a variant to one value of one attribute type.
// The value must belong to the type's value set; the variant service checks
// this before writing.
type VariantAttribute struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	VariantID        uuid.UUID      `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:ux_variant_attribute_type"`
	AttributeTypeID  uuid.UUID      `gorm:"column:attribute_type_id;type:uuid;not null;uniqueIndex:ux_variant_attribute_type"`
	AttributeValueID uuid.UUID      `gorm:"column:attribute_value_id;type:uuid;not null"`
	ColorHex         *string        `gorm:"column:color_hex"`
	Value            AttributeValue `gorm:"foreignKey:AttributeValueID"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (v *VariantAttribute) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
