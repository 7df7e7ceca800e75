package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ppmsoft/pim-core/pkg/db/models"
	"github.com/ppmsoft/pim-core/pkg/enums"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
)

var validate = validator.New()

// Service defines the attribute catalog operations.
type Service interface {
	CreateType(ctx context.Context, input CreateTypeInput) (*models.AttributeType, error)
	GetTypeByCode(ctx context.Context, code string) (*models.AttributeType, error)
	ListTypes(ctx context.Context, onlyActive bool) ([]models.AttributeType, error)
	DeactivateType(ctx context.Context, id uuid.UUID) error
	AddValue(ctx context.Context, input AddValueInput) (*models.AttributeValue, error)
	ListValues(ctx context.Context, typeID uuid.UUID, onlyActive bool) ([]models.AttributeValue, error)
	DeactivateValue(ctx context.Context, id uuid.UUID) error
}

// CreateTypeInput captures the data required to define an attribute type.
type CreateTypeInput struct {
	Code        string `validate:"required,min=1,max=64"`
	Name        string `validate:"required,min=1,max=255"`
	DisplayKind string `validate:"required"`
	Position    int    `validate:"gte=0"`
}

// AddValueInput captures the data required to add a value to a type.
type AddValueInput struct {
	AttributeTypeID uuid.UUID `validate:"required"`
	Value           string    `validate:"required,min=1,max=255"`
	ColorHex        *string   `validate:"omitempty,hexcolor"`
	Position        int       `validate:"gte=0"`
}

type service struct {
	repo *Repository
}

// NewService wires a catalog service with the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateType(ctx context.Context, input CreateTypeInput) (*models.AttributeType, error) {
	input.Code = strings.TrimSpace(strings.ToLower(input.Code))
	input.Name = strings.TrimSpace(input.Name)

	if err := validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid attribute type input")
	}

	displayKind, err := enums.ParseDisplayKind(input.DisplayKind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid display kind")
	}

	attributeType := &models.AttributeType{
		Code:        input.Code,
		Name:        input.Name,
		DisplayKind: displayKind,
		IsActive:    true,
		Position:    input.Position,
	}
	return s.repo.CreateType(ctx, attributeType)
}

func (s *service) GetTypeByCode(ctx context.Context, code string) (*models.AttributeType, error) {
	code = strings.TrimSpace(strings.ToLower(code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute type code required")
	}
	return s.repo.GetTypeByCode(ctx, code)
}

func (s *service) ListTypes(ctx context.Context, onlyActive bool) ([]models.AttributeType, error) {
	return s.repo.ListTypes(ctx, onlyActive)
}

func (s *service) DeactivateType(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "attribute type id required")
	}
	return s.repo.DeactivateType(ctx, id)
}

func (s *service) AddValue(ctx context.Context, input AddValueInput) (*models.AttributeValue, error) {
	input.Value = strings.TrimSpace(input.Value)

	if err := validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid attribute value input")
	}

	attributeType, err := s.repo.GetTypeByID(ctx, input.AttributeTypeID)
	if err != nil {
		return nil, err
	}
	if !attributeType.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("attribute type %q is inactive", attributeType.Code))
	}

	value := &models.AttributeValue{
		AttributeTypeID: input.AttributeTypeID,
		Value:           input.Value,
		ColorHex:        input.ColorHex,
		IsActive:        true,
		Position:        input.Position,
	}
	return s.repo.AddValue(ctx, value)
}

func (s *service) ListValues(ctx context.Context, typeID uuid.UUID, onlyActive bool) ([]models.AttributeValue, error) {
	if typeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute type id required")
	}
	return s.repo.ListValues(ctx, typeID, onlyActive)
}

func (s *service) DeactivateValue(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "attribute value id required")
	}
	return s.repo.DeactivateValue(ctx, id)
}
