package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/enums"
)

// Trader is the single table behind the supplier and importer views. The
// kind column discriminates; factories set it and repositories always
// filter by it.
type Trader struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Kind      enums.TraderKind `gorm:"column:kind;type:trader_kind;not null;uniqueIndex:ux_trader_kind_code"`
	Code      string           `gorm:"column:code;not null;uniqueIndex:ux_trader_kind_code"`
	Name      string           `gorm:"column:name;not null"`
	IsActive  bool             `gorm:"column:is_active;not null;default:true"`
	Settings  json.RawMessage  `gorm:"column:settings;type:jsonb"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (t *Trader) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// NewSupplier constructs a trader row with the supplier discriminant set.
func NewSupplier(code, name string) *Trader {
	return &Trader{Kind: enums.TraderKindSupplier, Code: code, Name: name, IsActive: true}
}

// NewImporter constructs a trader row with the importer discriminant set.
func NewImporter(code, name string) *Trader {
	return &Trader{Kind: enums.TraderKindImporter, Code: code, Name: name, IsActive: true}
}
