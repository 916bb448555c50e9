package recipe

import (
	"sort"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/tag"
	"foodgram/pkg/user"
)

func ToRecipeResponse(recipe *entities.Recipe, flags domain.RecipeFlags, authorSubscribed bool) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, tag.ToTagResponse(&recipe.Tags[i]))
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		item := domain.RecipeIngredientResponse{ID: ri.IngredientID, Amount: ri.Amount}
		if ri.Ingredient != nil {
			item.Name = ri.Ingredient.Name
			item.MeasurementUnit = ri.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, item)
	}
	sort.SliceStable(ingredients, func(i, j int) bool {
		return ingredients[i].Name < ingredients[j].Name
	})

	return domain.RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           user.ToUserResponse(recipe.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      flags.IsFavorited,
		IsInShoppingCart: flags.IsInShoppingCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		PubDate:          recipe.PubDate,
	}
}

func ToRecipeShort(recipe *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
