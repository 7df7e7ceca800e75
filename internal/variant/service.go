package variant

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ppmsoft/pim-core/internal/catalog"
	"github.com/ppmsoft/pim-core/pkg/db/models"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

var validate = validator.New()

// Service defines the variant record operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Variant, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Variant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetAttributes(ctx context.Context, id uuid.UUID, selections []AttributeSelection) error
	ReplaceImages(ctx context.Context, id uuid.UUID, images []ImageInput) error
}

// AttributeSelection names one attribute value for one attribute type.
type AttributeSelection struct {
	AttributeTypeID  uuid.UUID `validate:"required"`
	AttributeValueID uuid.UUID `validate:"required"`
}

// CreateInput captures the data required to create a variant.
type CreateInput struct {
	ProductID  uuid.UUID `validate:"required"`
	SKU        string    `validate:"required,min=1,max=64"`
	Name       string    `validate:"required,min=1,max=255"`
	EAN        *string   `validate:"omitempty,max=14"`
	IsDefault  bool
	Position   int                  `validate:"gte=0"`
	Selections []AttributeSelection `validate:"dive"`
}

// ImageInput captures one image reference.
type ImageInput struct {
	FilePath  string `validate:"required"`
	AltText   *string
	Position  int `validate:"gte=0"`
	IsPrimary bool
}

type service struct {
	repo    *Repository
	catalog *catalog.Repository
}

// NewService wires a variant service with its repository and the attribute
// catalog used to validate selections.
func NewService(repo *Repository, catalogRepo *catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("variant repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, catalog: catalogRepo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Variant, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)

	if err := validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant input")
	}

	attributes, err := s.buildAttributes(ctx, input.Selections)
	if err != nil {
		return nil, err
	}

	variant := &models.Variant{
		ProductID:  input.ProductID,
		SKU:        input.SKU,
		Name:       input.Name,
		EAN:        input.EAN,
		IsDefault:  input.IsDefault,
		IsActive:   true,
		Position:   input.Position,
		Attributes: attributes,
	}
	return s.repo.Create(ctx, variant)
}

func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Variant, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) SetAttributes(ctx context.Context, id uuid.UUID, selections []AttributeSelection) error {
	attributes, err := s.buildAttributes(ctx, selections)
	if err != nil {
		return err
	}
	return s.repo.ReplaceAttributes(ctx, id, attributes)
}

func (s *service) ReplaceImages(ctx context.Context, id uuid.UUID, images []ImageInput) error {
	rows := make([]models.VariantImage, 0, len(images))
	for _, img := range images {
		if err := validate.Struct(img); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image input")
		}
		rows = append(rows, models.VariantImage{
			FilePath:  img.FilePath,
			AltText:   img.AltText,
			Position:  img.Position,
			IsPrimary: img.IsPrimary,
		})
	}
	return s.repo.ReplaceImages(ctx, id, rows)
}

// buildAttributes resolves each selection against the catalog, making sure
// the value actually belongs to the named type.
func (s *service) buildAttributes(ctx context.Context, selections []AttributeSelection) ([]models.VariantAttribute, error) {
	seen := make(map[uuid.UUID]bool, len(selections))
	attributes := make([]models.VariantAttribute, 0, len(selections))

	for _, selection := range selections {
		if err := validate.Struct(selection); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid attribute selection")
		}
		if seen[selection.AttributeTypeID] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("attribute type %s selected more than once", selection.AttributeTypeID))
		}
		seen[selection.AttributeTypeID] = true

		value, err := s.catalog.GetValueByID(ctx, selection.AttributeValueID)
		if err != nil {
			return nil, err
		}
		if value.AttributeTypeID != selection.AttributeTypeID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("value %s does not belong to attribute type %s",
					selection.AttributeValueID, selection.AttributeTypeID))
		}

		attributes = append(attributes, models.VariantAttribute{
			AttributeTypeID:  selection.AttributeTypeID,
			AttributeValueID: selection.AttributeValueID,
			ColorHex:         value.ColorHex,
		})
	}
	return attributes, nil
}
