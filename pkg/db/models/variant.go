package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Variant is a purchasable SKU-level unit of a product, distinguished by
// attribute selections. It exclusively owns its attribute, stock, price and
// image rows (cascade delete).
type Variant struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID          `gorm:"column:product_id;type:uuid;not null;index"`
	SKU        string             `gorm:"column:sku;not null;uniqueIndex"`
	Name       string             `gorm:"column:name;not null"`
	EAN        *string            `gorm:"column:ean"`
	IsDefault  bool               `gorm:"column:is_default;not null;default:false"`
	IsActive   bool               `gorm:"column:is_active;not null;default:true"`
	Position   int                `gorm:"column:position;not null;default:0"`
	Attributes []VariantAttribute `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	Stock      []VariantStock     `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	Prices     []VariantPrice     `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	Images     []VariantImage     `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Variant) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
