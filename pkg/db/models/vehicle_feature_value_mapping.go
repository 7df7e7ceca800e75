package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleFeatureValueMapping records which PrestaShop feature value a local
// vehicle product maps to on a shop. Unique per (vehicle, feature, shop);
// lookups run in both directions.
type VehicleFeatureValueMapping struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VehicleProductID uuid.UUID `gorm:"column:vehicle_product_id;type:uuid;not null;uniqueIndex:ux_vehicle_feature_shop"`
	PsFeatureID      int       `gorm:"column:ps_feature_id;not null;uniqueIndex:ux_vehicle_feature_shop"`
	PsFeatureValueID int       `gorm:"column:ps_feature_value_id;not null;index"`
	ShopID           uuid.UUID `gorm:"column:shop_id;type:uuid;not null;uniqueIndex:ux_vehicle_feature_shop"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *VehicleFeatureValueMapping) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
