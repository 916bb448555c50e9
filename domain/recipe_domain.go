package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	MinCookingTime      = 1
	MinIngredientAmount = 1
	MaxIngredientAmount = 1000
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddToList       = "recipe added successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddToList       = "failed to add recipe"
	MessageFailedRemoveFromList  = "failed to remove recipe"

	ErrRecipeNotFound           = fmt.Errorf("recipe %w", ErrNotFound)
	ErrUnauthorizedRecipeAccess = fmt.Errorf("%w: only the author can change this recipe", ErrForbidden)

	ErrCookingTimeBelowMin = NewFieldError("cooking_time", "cooking time below minimum")
	ErrIngredientsRequired = NewFieldError("ingredients", "ingredients are required")
	ErrIngredientAmount    = NewFieldError("ingredients", fmt.Sprintf("ingredient amount must be between %d and %d", MinIngredientAmount, MaxIngredientAmount))
	ErrDuplicateIngredient = NewFieldError("ingredients", "duplicate ingredient")
	ErrTagsRequired        = NewFieldError("tags", "tags are required")
	ErrDuplicateTag        = NewFieldError("tags", "duplicate tag")
	ErrImageRequired       = NewFieldError("image", "image is required")
	ErrImageInvalid        = NewFieldError("image", "image must be a base64 encoded jpeg, png, gif or webp")
)

type (
	RecipeIngredientRequest struct {
		ID     uuid.UUID `json:"id" validate:"required"`
		Amount int       `json:"amount"`
	}

	// RecipeRequest is the body of both create and update. Image may be empty on update.
	RecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time"`
		Image       string                    `json:"image"`
		Tags        []uuid.UUID               `json:"tags"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
	}

	RecipeListQuery struct {
		AuthorID         *uuid.UUID
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	// RecipeFilter is RecipeListQuery resolved against a concrete viewer.
	RecipeFilter struct {
		AuthorID    *uuid.UUID
		TagSlugs    []string
		FavoritedBy *uuid.UUID
		InCartOf    *uuid.UUID
	}

	RecipeIngredientResponse struct {
		ID              uuid.UUID `json:"id"`
		Name            string    `json:"name"`
		MeasurementUnit string    `json:"measurement_unit"`
		Amount          int       `json:"amount"`
	}

	RecipeResponse struct {
		ID               uuid.UUID                  `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		PubDate          time.Time                  `json:"pub_date"`
	}

	RecipeShortResponse struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		Image       string    `json:"image"`
		CookingTime int       `json:"cooking_time"`
	}

	// RecipeFlags are the per-viewer list memberships of one recipe.
	RecipeFlags struct {
		IsFavorited      bool
		IsInShoppingCart bool
	}
)

func ErrAlreadyInList(kind ListKind) error {
	return fmt.Errorf("recipe is already in %s: %w", kind, ErrConflict)
}

func ErrNotInList(kind ListKind) error {
	return fmt.Errorf("recipe is not in %s: %w", kind, ErrNotFound)
}
