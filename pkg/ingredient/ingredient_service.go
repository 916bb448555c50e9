package ingredient

import (
	"context"
	"strings"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
)

type (
	IngredientService interface {
		CreateIngredient(ctx context.Context, req domain.IngredientCreateRequest) (domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id uuid.UUID) (domain.IngredientResponse, error)
		SearchIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func ToIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.IngredientCreateRequest) (domain.IngredientResponse, error) {
	ingredient := entities.Ingredient{
		ID:              uuid.New(),
		Name:            strings.ToLower(strings.TrimSpace(req.Name)),
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, &ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(&ingredient), nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id uuid.UUID) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) SearchIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, err
	}
	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, ToIngredientResponse(i))
	}
	return res, nil
}
