package compat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ppmsoft/pim-core/pkg/clock"
	"github.com/ppmsoft/pim-core/pkg/db/models"
	"github.com/ppmsoft/pim-core/pkg/enums"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:compat_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.AttributeValuePsMapping{},
		&models.VehicleFeatureValueMapping{},
		&models.CompatibilityCache{},
	))
	return db
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestUpsertValueMappingLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	valueID, shopID := uuid.New(), uuid.New()

	first, err := mappings.UpsertValueMapping(context.Background(), valueID, shopID, ValueMappingInput{
		PsAttributeID: intPtr(101),
		PsLabel:       strPtr("Rouge"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SyncStatusPending, first.SyncStatus)

	second, err := mappings.UpsertValueMapping(context.Background(), valueID, shopID, ValueMappingInput{
		PsAttributeID: intPtr(202),
		PsLabel:       strPtr("Red"),
		PsColor:       strPtr("#ff0000"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert keeps one row per value and shop")
	require.NotNil(t, second.PsAttributeID)
	assert.Equal(t, 202, *second.PsAttributeID)
	require.NotNil(t, second.PsLabel)
	assert.Equal(t, "Red", *second.PsLabel)

	var count int64
	require.NoError(t, db.Model(&models.AttributeValuePsMapping{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertValueMappingResetsStatusToPending(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	valueID, shopID := uuid.New(), uuid.New()

	_, err = mappings.UpsertValueMapping(context.Background(), valueID, shopID, ValueMappingInput{})
	require.NoError(t, err)
	require.NoError(t, mappings.MarkSynced(context.Background(), valueID, shopID, 55))

	row, err := mappings.UpsertValueMapping(context.Background(), valueID, shopID, ValueMappingInput{
		PsLabel: strPtr("renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SyncStatusPending, row.SyncStatus, "a new push is required after local edits")
}

func TestMarkSyncedStampsClock(t *testing.T) {
	db := newTestDB(t)
	instant := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	mappings, err := NewMappings(db, clock.At(instant))
	require.NoError(t, err)

	valueID, shopID := uuid.New(), uuid.New()
	_, err = mappings.UpsertValueMapping(context.Background(), valueID, shopID, ValueMappingInput{})
	require.NoError(t, err)

	require.NoError(t, mappings.MarkSynced(context.Background(), valueID, shopID, 77))

	row, err := mappings.GetValueMapping(context.Background(), valueID, shopID)
	require.NoError(t, err)
	assert.Equal(t, enums.SyncStatusSynced, row.SyncStatus)
	require.NotNil(t, row.PsAttributeID)
	assert.Equal(t, 77, *row.PsAttributeID)
	require.NotNil(t, row.LastSyncedAt)
	assert.True(t, row.LastSyncedAt.Equal(instant))
}

func TestMarkConflictAndMissing(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	valueID, shopID := uuid.New(), uuid.New()
	_, err = mappings.UpsertValueMapping(context.Background(), valueID, shopID, ValueMappingInput{})
	require.NoError(t, err)

	require.NoError(t, mappings.MarkConflict(context.Background(), valueID, shopID))
	row, err := mappings.GetValueMapping(context.Background(), valueID, shopID)
	require.NoError(t, err)
	assert.Equal(t, enums.SyncStatusConflict, row.SyncStatus)

	require.NoError(t, mappings.MarkMissing(context.Background(), valueID, shopID))
	row, err = mappings.GetValueMapping(context.Background(), valueID, shopID)
	require.NoError(t, err)
	assert.Equal(t, enums.SyncStatusMissing, row.SyncStatus)
}

func TestMarkOnUnknownMappingReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	err = mappings.MarkSynced(context.Background(), uuid.New(), uuid.New(), 1)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListByStatusScopesToShop(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	shopA, shopB := uuid.New(), uuid.New()
	valueA, valueB := uuid.New(), uuid.New()

	_, err = mappings.UpsertValueMapping(context.Background(), valueA, shopA, ValueMappingInput{})
	require.NoError(t, err)
	_, err = mappings.UpsertValueMapping(context.Background(), valueB, shopA, ValueMappingInput{})
	require.NoError(t, err)
	_, err = mappings.UpsertValueMapping(context.Background(), valueA, shopB, ValueMappingInput{})
	require.NoError(t, err)

	require.NoError(t, mappings.MarkSynced(context.Background(), valueA, shopA, 5))

	pending, err := mappings.ListByStatus(context.Background(), shopA, enums.SyncStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, valueB, pending[0].AttributeValueID)

	synced, err := mappings.ListByStatus(context.Background(), shopA, enums.SyncStatusSynced)
	require.NoError(t, err)
	require.Len(t, synced, 1)
	assert.Equal(t, valueA, synced[0].AttributeValueID)
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	_, err = mappings.ListByStatus(context.Background(), uuid.New(), enums.SyncStatus("bogus"))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestVehicleMappingRoundTrip(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	vehicleID, shopID := uuid.New(), uuid.New()

	_, err = mappings.UpsertVehicleMapping(context.Background(), vehicleID, 12, 340, shopID)
	require.NoError(t, err)

	featureValueID, err := mappings.FindFeatureValueID(context.Background(), vehicleID, 12, shopID)
	require.NoError(t, err)
	require.NotNil(t, featureValueID)
	assert.Equal(t, 340, *featureValueID)

	foundVehicle, err := mappings.FindVehicleID(context.Background(), 340, shopID)
	require.NoError(t, err)
	require.NotNil(t, foundVehicle)
	assert.Equal(t, vehicleID, *foundVehicle)
}

func TestVehicleMappingUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	vehicleID, shopID := uuid.New(), uuid.New()

	first, err := mappings.UpsertVehicleMapping(context.Background(), vehicleID, 12, 340, shopID)
	require.NoError(t, err)
	second, err := mappings.UpsertVehicleMapping(context.Background(), vehicleID, 12, 341, shopID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 341, second.PsFeatureValueID)

	var count int64
	require.NoError(t, db.Model(&models.VehicleFeatureValueMapping{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLookupsReturnNilWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	mappings, err := NewMappings(db, nil)
	require.NoError(t, err)

	vehicleID, err := mappings.FindVehicleID(context.Background(), 999, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, vehicleID)

	featureValueID, err := mappings.FindFeatureValueID(context.Background(), uuid.New(), 1, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, featureValueID)
}
