package domain

import (
	"fmt"

	"github.com/google/uuid"
)

var (
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessGetIngredient    = "success get ingredient"
	MessageSuccessCreateIngredient = "ingredient created successfully"

	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedGetIngredient    = "failed to get ingredient"
	MessageFailedCreateIngredient = "failed to create ingredient"

	ErrIngredientNotFound      = fmt.Errorf("ingredient %w", ErrNotFound)
	ErrIngredientAlreadyExists = fmt.Errorf("an ingredient with this name and unit %w", ErrConflict)
)

type (
	IngredientCreateRequest struct {
		Name            string `json:"name" validate:"required,max=200"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
	}

	IngredientResponse struct {
		ID              uuid.UUID `json:"id"`
		Name            string    `json:"name"`
		MeasurementUnit string    `json:"measurement_unit"`
	}
)
