package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/db/models"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

// Repository manages persistence for attribute types and their values.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
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

// CreateType inserts a new attribute type row.
func (r *Repository) CreateType(ctx context.Context, attributeType *models.AttributeType) (*models.AttributeType, error) {
	if err := r.db.WithContext(ctx).Create(attributeType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err,
				fmt.Sprintf("attribute type code %q already exists", attributeType.Code))
		}
		return nil, err
	}
	return attributeType, nil
}

// GetTypeByID loads a type without its values.
func (r *Repository) GetTypeByID(ctx context.Context, id uuid.UUID) (*models.AttributeType, error) {
	var attributeType models.AttributeType
	if err := r.db.WithContext(ctx).First(&attributeType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("attribute type %s not found", id))
		}
		return nil, err
	}
	return &attributeType, nil
}

// GetTypeByCode loads a type with its values ordered by position.
func (r *Repository) GetTypeByCode(ctx context.Context, code string) (*models.AttributeType, error) {
	var attributeType models.AttributeType
	err := r.db.WithContext(ctx).
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC").Order("id ASC")
		}).
		First(&attributeType, "code = ?", code).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("attribute type %q not found", code))
		}
		return nil, err
	}
	return &attributeType, nil
}

// ListTypes returns attribute types ordered by position with id as the
// tie-break, optionally restricted to active rows.
func (r *Repository) ListTypes(ctx context.Context, onlyActive bool) ([]models.AttributeType, error) {
	qb := r.db.WithContext(ctx).
		Order("position ASC").
		Order("id ASC")
	if onlyActive {
		qb = qb.Where("is_active = ?", true)
	}
	var rows []models.AttributeType
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeactivateType flips the type inactive. Types are otherwise immutable
// after creation.
func (r *Repository) DeactivateType(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.AttributeType{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("attribute type %s not found", id))
	}
	return nil
}

// AddValue inserts a value row for an existing type.
func (r *Repository) AddValue(ctx context.Context, value *models.AttributeValue) (*models.AttributeValue, error) {
	if err := r.db.WithContext(ctx).Create(value).Error; err != nil {
		return nil, err
	}
	return value, nil
}

// GetValueByID loads a single attribute value.
func (r *Repository) GetValueByID(ctx context.Context, id uuid.UUID) (*models.AttributeValue, error) {
	var value models.AttributeValue
	if err := r.db.WithContext(ctx).First(&value, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("attribute value %s not found", id))
		}
		return nil, err
	}
	return &value, nil
}

// ListValues returns the values of one type ordered by position with id as
// the tie-break.
func (r *Repository) ListValues(ctx context.Context, typeID uuid.UUID, onlyActive bool) ([]models.AttributeValue, error) {
	qb := r.db.WithContext(ctx).
		Where("attribute_type_id = ?", typeID).
		Order("position ASC").
		Order("id ASC")
	if onlyActive {
		qb = qb.Where("is_active = ?", true)
	}
	var rows []models.AttributeValue
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeactivateValue flips a value inactive.
func (r *Repository) DeactivateValue(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.AttributeValue{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("attribute value %s not found", id))
	}
	return nil
}
