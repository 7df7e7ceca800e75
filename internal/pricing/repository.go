package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/db/models"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

// Repository persists variant prices and their change history.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateGroup inserts a price group. Group codes are unique.
func (r *Repository) CreateGroup(ctx context.Context, group *models.PriceGroup) error {
	err := r.db.WithContext(ctx).Create(group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("price group code %q already exists", group.Code))
		}
		return err
	}
	return nil
}

// DefaultGroup returns the default price group.
func (r *Repository) DefaultGroup(ctx context.Context) (*models.PriceGroup, error) {
	var group models.PriceGroup
	err := r.db.WithContext(ctx).First(&group, "is_default = ?", true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no default price group configured")
		}
		return nil, err
	}
	return &group, nil
}

// Upsert writes the regular price for a (variant, price group) pair and
// snapshots the change into the price history when the price moved.
func (r *Repository) Upsert(ctx context.Context, variantID, groupID uuid.UUID, price decimal.Decimal, reason *string) (*models.VariantPrice, error) {
	if price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	var row models.VariantPrice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldPrice *decimal.Decimal

		err := tx.First(&row, "variant_id = ? AND price_group_id = ?", variantID, groupID).Error
		switch {
		case err == nil:
			if row.Price.Equal(price) {
				return nil
			}
			previous := row.Price
			oldPrice = &previous
			row.Price = price
			if err := tx.Model(&row).Update("price", price).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.VariantPrice{
				VariantID:    variantID,
				PriceGroupID: groupID,
				Price:        price,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		default:
			return err
		}

		entry := &models.PriceHistory{
			VariantID:    variantID,
			PriceGroupID: groupID,
			OldPrice:     oldPrice,
			NewPrice:     price,
			Reason:       reason,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByVariant returns all price rows for a variant.
func (r *Repository) ListByVariant(ctx context.Context, variantID uuid.UUID) ([]models.VariantPrice, error) {
	var rows []models.VariantPrice
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetFor returns the price row for the pair, falling back to the default
// price group when the requested group has no row.
func (r *Repository) GetFor(ctx context.Context, variantID, groupID uuid.UUID) (*models.VariantPrice, error) {
	var row models.VariantPrice
	err := r.db.WithContext(ctx).
		First(&row, "variant_id = ? AND price_group_id = ?", variantID, groupID).
		Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	group, err := r.DefaultGroup(ctx)
	if err != nil {
		return nil, err
	}
	if group.ID == groupID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("variant %s has no price in the default group", variantID))
	}

	err = r.db.WithContext(ctx).
		First(&row, "variant_id = ? AND price_group_id = ?", variantID, group.ID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("variant %s has no price in group %s or the default group", variantID, groupID))
		}
		return nil, err
	}
	return &row, nil
}

// SetSpecial attaches a special price window to the pair. Bounds are
// inclusive and either side may be nil.
func (r *Repository) SetSpecial(ctx context.Context, variantID, groupID uuid.UUID, special decimal.Decimal, from, to *time.Time) error {
	if special.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "special price must not be negative")
	}
	if from != nil && to != nil && to.Before(*from) {
		return pkgerrors.New(pkgerrors.CodeValidation, "special price window ends before it starts")
	}

	result := r.db.WithContext(ctx).
		Model(&models.VariantPrice{}).
		Where("variant_id = ? AND price_group_id = ?", variantID, groupID).
		Updates(map[string]any{
			"special_price":      special,
			"special_price_from": from,
			"special_price_to":   to,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("no price row for variant %s in group %s", variantID, groupID))
	}
	return nil
}

// ClearSpecial removes the special price and its window from the pair.
func (r *Repository) ClearSpecial(ctx context.Context, variantID, groupID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.VariantPrice{}).
		Where("variant_id = ? AND price_group_id = ?", variantID, groupID).
		Updates(map[string]any{
			"special_price":      nil,
			"special_price_from": nil,
			"special_price_to":   nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("no price row for variant %s in group %s", variantID, groupID))
	}
	return nil
}

// History returns the price change log for a variant, oldest first.
func (r *Repository) History(ctx context.Context, variantID uuid.UUID) ([]models.PriceHistory, error) {
	var rows []models.PriceHistory
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
