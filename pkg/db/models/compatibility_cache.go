package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompatibilityCache stores a precomputed compatibility payload for a
// product, scoped to one shop or global when shop_id is null. Expiry is
// checked lazily on read; expired rows stay in place until invalidated or
// overwritten.
type CompatibilityCache struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_compat_cache_scope"`
	ShopID    *uuid.UUID      `gorm:"column:shop_id;type:uuid;uniqueIndex:ux_compat_cache_scope"`
	Payload   json.RawMessage `gorm:"column:payload;type:jsonb;not null"`
	ExpiresAt time.Time       `gorm:"column:expires_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *CompatibilityCache) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsFresh reports whether the entry is still valid at the given instant.
func (c CompatibilityCache) IsFresh(now time.Time) bool {
	return c.ExpiresAt.After(now)
}
