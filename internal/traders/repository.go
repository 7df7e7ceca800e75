package traders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/db/models"
	"github.com/ppmsoft/pim-core/pkg/enums"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

var validate = validator.New()

// TraderSettings is the validated shape of a trader's settings document.
type TraderSettings struct {
	ContactEmail     string `json:"contact_email" validate:"omitempty,email"`
	LeadTimeDays     int    `json:"lead_time_days" validate:"gte=0"`
	MinOrderValue    int    `json:"min_order_value" validate:"gte=0"`
	PreferredShipper string `json:"preferred_shipper"`
}

// ParseTraderSettings decodes and validates a settings document. An empty
// document yields zero-valued settings.
func ParseTraderSettings(raw json.RawMessage) (*TraderSettings, error) {
	settings := &TraderSettings{}
	if len(raw) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(raw, settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "trader settings must be a JSON object")
	}
	if err := validate.Struct(settings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid trader settings")
	}
	return settings, nil
}

// Repository reads and writes trader rows of one kind. Obtain instances via
// ForSuppliers or ForImporters so the kind filter is always present.
type Repository struct {
	db   *gorm.DB
	kind enums.TraderKind
}

// ForSuppliers returns a repository constrained to supplier rows.
func ForSuppliers(db *gorm.DB) *Repository {
	return &Repository{db: db, kind: enums.TraderKindSupplier}
}

// ForImporters returns a repository constrained to importer rows.
func ForImporters(db *gorm.DB) *Repository {
	return &Repository{db: db, kind: enums.TraderKindImporter}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx, kind: r.kind}
}

// Kind returns the discriminant this repository is scoped to.
func (r *Repository) Kind() enums.TraderKind {
	return r.kind
}

func (r *Repository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("kind = ?", r.kind)
}

// Create inserts a trader, forcing the repository's kind and validating the
// settings document when present.
func (r *Repository) Create(ctx context.Context, trader *models.Trader) (*models.Trader, error) {
	trader.Kind = r.kind
	if _, err := ParseTraderSettings(trader.Settings); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Create(trader).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("%s code %q already exists", r.kind, trader.Code))
		}
		return nil, err
	}
	return trader, nil
}

// GetByID loads a trader of the repository's kind.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trader, error) {
	var trader models.Trader
	err := r.scoped(ctx).First(&trader, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("%s %s not found", r.kind, id))
		}
		return nil, err
	}
	return &trader, nil
}

// GetByCode loads a trader of the repository's kind by its code.
func (r *Repository) GetByCode(ctx context.Context, code string) (*models.Trader, error) {
	var trader models.Trader
	err := r.scoped(ctx).First(&trader, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("%s with code %q not found", r.kind, code))
		}
		return nil, err
	}
	return &trader, nil
}

// List returns traders of the repository's kind ordered by name.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]models.Trader, error) {
	query := r.scoped(ctx)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var traders []models.Trader
	if err := query.Order("name ASC").Find(&traders).Error; err != nil {
		return nil, err
	}
	return traders, nil
}

// UpdateSettings replaces the settings document after validating it.
func (r *Repository) UpdateSettings(ctx context.Context, id uuid.UUID, settings json.RawMessage) error {
	if _, err := ParseTraderSettings(settings); err != nil {
		return err
	}

	result := r.scoped(ctx).Model(&models.Trader{}).
		Where("id = ?", id).
		Update("settings", settings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("%s %s not found", r.kind, id))
	}
	return nil
}

// Deactivate soft-disables a trader of the repository's kind.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.scoped(ctx).Model(&models.Trader{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("%s %s not found", r.kind, id))
	}
	return nil
}
