package variant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/db/models"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

// Repository persists variants and their owned attribute, image, stock and
// price rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a variant repository.
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

// Create inserts the variant together with its attribute rows.
func (r *Repository) Create(ctx context.Context, variant *models.Variant) (*models.Variant, error) {
	err := r.db.WithContext(ctx).Create(variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("sku %q already exists", variant.SKU))
		}
		return nil, err
	}
	return variant, nil
}

// GetDetail loads the variant with attributes (and their values), stock,
// prices and position-ordered images.
func (r *Repository) GetDetail(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).
		Preload("Attributes.Value").
		Preload("Stock").
		Preload("Prices").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&variant, "id = ?", id).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("variant %s not found", id))
		}
		return nil, err
	}
	return &variant, nil
}

// GetBySKU loads the bare variant row by its SKU.
func (r *Repository) GetBySKU(ctx context.Context, sku string) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.WithContext(ctx).First(&variant, "sku = ?", sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("variant with sku %q not found", sku))
		}
		return nil, err
	}
	return &variant, nil
}

// ListByProduct returns a product's variants ordered by position then id.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	var variants []models.Variant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC, id ASC").
		Find(&variants).
		Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// Delete removes the variant and everything it owns.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, owned := range []any{
			&models.VariantAttribute{},
			&models.VariantStock{},
			&models.VariantPrice{},
			&models.VariantImage{},
		} {
			if err := tx.Where("variant_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Variant{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("variant %s not found", id))
		}
		return nil
	})
}

// ReplaceAttributes swaps the variant's full attribute selection in one
// transaction.
func (r *Repository) ReplaceAttributes(ctx context.Context, id uuid.UUID, attributes []models.VariantAttribute) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.requireVariant(tx, id); err != nil {
			return err
		}
		if err := tx.Where("variant_id = ?", id).Delete(&models.VariantAttribute{}).Error; err != nil {
			return err
		}
		for i := range attributes {
			attributes[i].ID = uuid.Nil
			attributes[i].VariantID = id
		}
		if len(attributes) == 0 {
			return nil
		}
		return tx.Create(&attributes).Error
	})
}

// ReplaceImages swaps the variant's full image set in one transaction.
func (r *Repository) ReplaceImages(ctx context.Context, id uuid.UUID, images []models.VariantImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.requireVariant(tx, id); err != nil {
			return err
		}
		if err := tx.Where("variant_id = ?", id).Delete(&models.VariantImage{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ID = uuid.Nil
			images[i].VariantID = id
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
}

func (r *Repository) requireVariant(tx *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Variant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("variant %s not found", id))
	}
	return nil
}
