package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/enums"
)

// AttributeValuePsMapping links a local attribute value to its PrestaShop
// counterpart on one shop and records the reconciliation state. One row per
// (value, shop) pair; the reconciler upsert keeps it unique.
type AttributeValuePsMapping struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	AttributeValueID uuid.UUID        `gorm:"column:attribute_value_id;type:uuid;not null;uniqueIndex:ux_value_shop"`
	ShopID           uuid.UUID        `gorm:"column:shop_id;type:uuid;not null;uniqueIndex:ux_value_shop"`
	PsAttributeID    *int             `gorm:"column:ps_attribute_id"`
	PsLabel          *string          `gorm:"column:ps_label"`
	PsColor          *string          `gorm:"column:ps_color"`
	SyncStatus       enums.SyncStatus `gorm:"column:sync_status;type:sync_status;not null;default:pending"`
	LastSyncedAt     *time.Time       `gorm:"column:last_synced_at"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *AttributeValuePsMapping) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
