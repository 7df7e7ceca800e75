package compat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ppmsoft/pim-core/pkg/clock"
	"github.com/ppmsoft/pim-core/pkg/db/models"
	"github.com/ppmsoft/pim-core/pkg/enums"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

// Mappings reconciles local attribute values and vehicle products against
// their PrestaShop identifiers.
type Mappings struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewMappings builds the mapping reconciler. A nil clock falls back to the
// wall clock.
func NewMappings(db *gorm.DB, c clock.Clock) (*Mappings, error) {
	if db == nil {
		return nil, fmt.Errorf("mappings database required")
	}
	if c == nil {
		c = clock.System{}
	}
	return &Mappings{db: db, clock: c}, nil
}

// ValueMappingInput carries the remote identifiers for one attribute value
// on one shop.
type ValueMappingInput struct {
	PsAttributeID *int
	PsLabel       *string
	PsColor       *string
}

// UpsertValueMapping writes the mapping for (value, shop). Repeated calls
// overwrite the remote fields and reset the status to pending; the last
// write wins.
func (m *Mappings) UpsertValueMapping(ctx context.Context, valueID, shopID uuid.UUID, input ValueMappingInput) (*models.AttributeValuePsMapping, error) {
	row := &models.AttributeValuePsMapping{
		AttributeValueID: valueID,
		ShopID:           shopID,
		PsAttributeID:    input.PsAttributeID,
		PsLabel:          input.PsLabel,
		PsColor:          input.PsColor,
		SyncStatus:       enums.SyncStatusPending,
	}
	err := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attribute_value_id"}, {Name: "shop_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ps_attribute_id", "ps_label", "ps_color", "sync_status", "updated_at",
			}),
		}).
		Create(row).
		Error
	if err != nil {
		return nil, err
	}
	return m.GetValueMapping(ctx, valueID, shopID)
}

// GetValueMapping loads the mapping for (value, shop).
func (m *Mappings) GetValueMapping(ctx context.Context, valueID, shopID uuid.UUID) (*models.AttributeValuePsMapping, error) {
	var row models.AttributeValuePsMapping
	err := m.db.WithContext(ctx).
		First(&row, "attribute_value_id = ? AND shop_id = ?", valueID, shopID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("no mapping for value %s on shop %s", valueID, shopID))
		}
		return nil, err
	}
	return &row, nil
}

// ListByStatus returns the mappings for a shop in the given sync state,
// oldest update first so stale entries surface at the top.
func (m *Mappings) ListByStatus(ctx context.Context, shopID uuid.UUID, status enums.SyncStatus) ([]models.AttributeValuePsMapping, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unknown sync status %q", status))
	}
	var rows []models.AttributeValuePsMapping
	err := m.db.WithContext(ctx).
		Where("shop_id = ? AND sync_status = ?", shopID, status).
		Order("updated_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkSynced records a successful push, stamping last_synced_at.
func (m *Mappings) MarkSynced(ctx context.Context, valueID, shopID uuid.UUID, psAttributeID int) error {
	now := m.clock.Now()
	return m.setStatus(ctx, valueID, shopID, map[string]any{
		"sync_status":     enums.SyncStatusSynced,
		"ps_attribute_id": psAttributeID,
		"last_synced_at":  &now,
	})
}

// MarkConflict flags the mapping as diverged from the shop.
func (m *Mappings) MarkConflict(ctx context.Context, valueID, shopID uuid.UUID) error {
	return m.setStatus(ctx, valueID, shopID, map[string]any{
		"sync_status": enums.SyncStatusConflict,
	})
}

// MarkMissing flags the mapping as absent on the shop side.
func (m *Mappings) MarkMissing(ctx context.Context, valueID, shopID uuid.UUID) error {
	return m.setStatus(ctx, valueID, shopID, map[string]any{
		"sync_status": enums.SyncStatusMissing,
	})
}

func (m *Mappings) setStatus(ctx context.Context, valueID, shopID uuid.UUID, updates map[string]any) error {
	result := m.db.WithContext(ctx).
		Model(&models.AttributeValuePsMapping{}).
		Where("attribute_value_id = ? AND shop_id = ?", valueID, shopID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("no mapping for value %s on shop %s", valueID, shopID))
	}
	return nil
}

// UpsertVehicleMapping writes the feature value mapping for
// (vehicle, feature, shop); the last write wins.
func (m *Mappings) UpsertVehicleMapping(ctx context.Context, vehicleProductID uuid.UUID, psFeatureID, psFeatureValueID int, shopID uuid.UUID) (*models.VehicleFeatureValueMapping, error) {
	row := &models.VehicleFeatureValueMapping{
		VehicleProductID: vehicleProductID,
		PsFeatureID:      psFeatureID,
		PsFeatureValueID: psFeatureValueID,
		ShopID:           shopID,
	}
	err := m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vehicle_product_id"}, {Name: "ps_feature_id"}, {Name: "shop_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"ps_feature_value_id", "updated_at"}),
		}).
		Create(row).
		Error
	if err != nil {
		return nil, err
	}

	var fresh models.VehicleFeatureValueMapping
	err = m.db.WithContext(ctx).
		First(&fresh, "vehicle_product_id = ? AND ps_feature_id = ? AND shop_id = ?",
			vehicleProductID, psFeatureID, shopID).
		Error
	if err != nil {
		return nil, err
	}
	return &fresh, nil
}

// FindVehicleID resolves a feature value back to the local vehicle product.
// Absence is not an error; the caller gets nil.
func (m *Mappings) FindVehicleID(ctx context.Context, psFeatureValueID int, shopID uuid.UUID) (*uuid.UUID, error) {
	var row models.VehicleFeatureValueMapping
	err := m.db.WithContext(ctx).
		First(&row, "ps_feature_value_id = ? AND shop_id = ?", psFeatureValueID, shopID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.VehicleProductID, nil
}

// FindFeatureValueID resolves the shop-side feature value for a vehicle.
// Absence is not an error; the caller gets nil.
func (m *Mappings) FindFeatureValueID(ctx context.Context, vehicleProductID uuid.UUID, psFeatureID int, shopID uuid.UUID) (*int, error) {
	var row models.VehicleFeatureValueMapping
	err := m.db.WithContext(ctx).
		First(&row, "vehicle_product_id = ? AND ps_feature_id = ? AND shop_id = ?",
			vehicleProductID, psFeatureID, shopID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.PsFeatureValueID, nil
}
