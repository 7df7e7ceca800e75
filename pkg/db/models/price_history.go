package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceHistory snapshots a price change for a variant and price group.
type PriceHistory struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	VariantID    uuid.UUID        `gorm:"column:variant_id;type:uuid;not null;index"`
	PriceGroupID uuid.UUID        `gorm:"column:price_group_id;type:uuid;not null"`
	OldPrice     *decimal.Decimal `gorm:"column:old_price;type:numeric(12,2)"`
	NewPrice     decimal.Decimal  `gorm:"column:new_price;type:numeric(12,2);not null"`
	Reason       *string          `gorm:"column:reason"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (p *PriceHistory) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
