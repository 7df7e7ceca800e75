package traders

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ppmsoft/pim-core/pkg/db/models"
	"github.com/ppmsoft/pim-core/pkg/enums"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:traders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Trader{}))
	return db
}

func TestKindScopingIsolatesViews(t *testing.T) {
	db := newTestDB(t)
	suppliers := ForSuppliers(db)
	importers := ForImporters(db)

	created, err := suppliers.Create(context.Background(), models.NewSupplier("acme", "ACME Parts"))
	require.NoError(t, err)
	assert.Equal(t, enums.TraderKindSupplier, created.Kind)

	_, err = importers.GetByCode(context.Background(), "acme")
	require.Error(t, err, "importer view must not see supplier rows")

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	found, err := suppliers.GetByCode(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestSameCodeAllowedAcrossKinds(t *testing.T) {
	db := newTestDB(t)

	_, err := ForSuppliers(db).Create(context.Background(), models.NewSupplier("nord", "Nord Supply"))
	require.NoError(t, err)
	_, err = ForImporters(db).Create(context.Background(), models.NewImporter("nord", "Nord Import"))
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Trader{}).Where("code = ?", "nord").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDuplicateCodeWithinKind(t *testing.T) {
	db := newTestDB(t)
	suppliers := ForSuppliers(db)

	_, err := suppliers.Create(context.Background(), models.NewSupplier("dup", "First"))
	require.NoError(t, err)
	_, err = suppliers.Create(context.Background(), models.NewSupplier("dup", "Second"))
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCreateForcesKind(t *testing.T) {
	db := newTestDB(t)

	row := models.NewImporter("sneaky", "Wrong Kind")
	created, err := ForSuppliers(db).Create(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, enums.TraderKindSupplier, created.Kind)
}

func TestParseTraderSettings(t *testing.T) {
	settings, err := ParseTraderSettings(json.RawMessage(`{"contact_email":"buy@acme.test","lead_time_days":5}`))
	require.NoError(t, err)
	assert.Equal(t, "buy@acme.test", settings.ContactEmail)
	assert.Equal(t, 5, settings.LeadTimeDays)

	settings, err = ParseTraderSettings(nil)
	require.NoError(t, err)
	assert.Zero(t, settings.LeadTimeDays)
}

func TestParseTraderSettingsRejectsBadInput(t *testing.T) {
	cases := []string{
		`{"contact_email":"not-an-email"}`,
		`{"lead_time_days":-1}`,
		`[1,2]`,
	}
	for _, raw := range cases {
		_, err := ParseTraderSettings(json.RawMessage(raw))
		require.Error(t, err, "settings %s", raw)

		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestCreateValidatesSettings(t *testing.T) {
	db := newTestDB(t)

	row := models.NewSupplier("bad", "Bad Settings")
	row.Settings = json.RawMessage(`{"contact_email":"nope"}`)

	_, err := ForSuppliers(db).Create(context.Background(), row)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateSettingsAndDeactivate(t *testing.T) {
	db := newTestDB(t)
	suppliers := ForSuppliers(db)

	created, err := suppliers.Create(context.Background(), models.NewSupplier("upd", "Updatable"))
	require.NoError(t, err)

	require.NoError(t, suppliers.UpdateSettings(context.Background(), created.ID,
		json.RawMessage(`{"lead_time_days":7}`)))

	fresh, err := suppliers.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	parsed, err := ParseTraderSettings(fresh.Settings)
	require.NoError(t, err)
	assert.Equal(t, 7, parsed.LeadTimeDays)

	require.NoError(t, suppliers.Deactivate(context.Background(), created.ID))

	active, err := suppliers.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := suppliers.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListOrdersByName(t *testing.T) {
	db := newTestDB(t)
	importers := ForImporters(db)

	for _, name := range []string{"Zeta Import", "Alpha Import", "Mid Import"} {
		_, err := importers.Create(context.Background(), models.NewImporter(name[:4], name))
		require.NoError(t, err)
	}

	rows, err := importers.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha Import", rows[0].Name)
	assert.Equal(t, "Zeta Import", rows[2].Name)
}
