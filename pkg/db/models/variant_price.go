package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VariantPrice holds the regular price of a variant within one price group,
// optionally overridden by a time-bounded special price. Window bounds are
// inclusive; an absent bound means unbounded on that side.
type VariantPrice struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	VariantID        uuid.UUID        `gorm:"column:variant_id;type:uuid;not null;uniqueIndex:ux_variant_price_group"`
	PriceGroupID     uuid.UUID        `gorm:"column:price_group_id;type:uuid;not null;uniqueIndex:ux_variant_price_group"`
	Price            decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	SpecialPrice     *decimal.Decimal `gorm:"column:special_price;type:numeric(12,2)"`
	SpecialPriceFrom *time.Time       `gorm:"column:special_price_from"`
	SpecialPriceTo   *time.Time       `gorm:"column:special_price_to"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *VariantPrice) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
