package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/enums"
)

// AttributeType defines a selectable axis for variants (color, size).
// Immutable after creation except for deactivation.
type AttributeType struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Code        string            `gorm:"column:code;not null;uniqueIndex"`
	Name        string            `gorm:"column:name;not null"`
	DisplayKind enums.DisplayKind `gorm:"column:display_kind;type:display_kind;not null"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	Position    int               `gorm:"column:position;not null;default:0"`
	Values      []AttributeValue  `gorm:"foreignKey:AttributeTypeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *AttributeType) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
