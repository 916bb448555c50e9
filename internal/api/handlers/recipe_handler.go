package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/pkg/membership"
	"foodgram/pkg/recipe"
	"foodgram/pkg/shopping"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService     recipe.RecipeService
		membershipService membership.MembershipService
		shoppingService   shopping.ShoppingService
		validator         *validator.Validate
	}
)

func NewRecipeHandler(
	recipeService recipe.RecipeService,
	membershipService membership.MembershipService,
	shoppingService shopping.ShoppingService,
	validator *validator.Validate,
) RecipeHandler {
	return &recipeHandler{
		recipeService:     recipeService,
		membershipService: membershipService,
		shoppingService:   shoppingService,
		validator:         validator,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.RecipeRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedCreateRecipe); !ok {
		return err
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), viewerFrom(c), *req)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedUpdateRecipe, err)
	}
	req := new(domain.RecipeRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedUpdateRecipe); !ok {
		return err
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), viewerFrom(c), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.UserContext(), viewerFrom(c), id); err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedDeleteRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipe(c.UserContext(), viewerFrom(c), id)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	query, err := recipeListQuery(c)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetRecipes, err)
	}
	page, limit := pagination(c)

	recipes, count, err := h.recipeService.GetRecipes(c.UserContext(), viewerFrom(c), query, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, listResponse(recipes, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

// recipeListQuery reads author, the repeatable tags slug and the is_favorited / is_in_shopping_cart flags.
func recipeListQuery(c *fiber.Ctx) (domain.RecipeListQuery, error) {
	var query domain.RecipeListQuery
	if raw := c.Query("author"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return query, domain.NewFieldError("author", "must be a user id")
		}
		query.AuthorID = &id
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		if len(slug) > 0 {
			query.TagSlugs = append(query.TagSlugs, string(slug))
		}
	}
	query.IsFavorited = flagSet(c.Query("is_favorited"))
	query.IsInShoppingCart = flagSet(c.Query("is_in_shopping_cart"))
	return query, nil
}

func flagSet(v string) bool {
	return v == "1" || v == "true"
}

func (h *recipeHandler) addToList(c *fiber.Ctx, kind domain.ListKind) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedAddToList, err)
	}

	res, err := h.membershipService.AddRecipe(c.UserContext(), viewerFrom(c), kind, id)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedAddToList, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToList)
}

func (h *recipeHandler) removeFromList(c *fiber.Ctx, kind domain.ListKind) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedRemoveFromList, err)
	}

	if err := h.membershipService.RemoveRecipe(c.UserContext(), viewerFrom(c), kind, id); err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedRemoveFromList, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	return h.addToList(c, domain.ListFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.removeFromList(c, domain.ListFavorite)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	return h.addToList(c, domain.ListShoppingCart)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	return h.removeFromList(c, domain.ListShoppingCart)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	filename, content, err := h.shoppingService.DownloadShoppingList(c.UserContext(), viewerFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedDownloadShoppingList, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Status(fiber.StatusOK).Send(content)
}
