package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/pkg/ingredient"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		CreateIngredient(c *fiber.Ctx) error
		GetIngredient(c *fiber.Ctx) error
		SearchIngredients(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{ingredientService: ingredientService, validator: validator}
}

func (h *ingredientHandler) CreateIngredient(c *fiber.Ctx) error {
	req := new(domain.IngredientCreateRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedCreateIngredient); !ok {
		return err
	}

	res, err := h.ingredientService.CreateIngredient(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedCreateIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *ingredientHandler) GetIngredient(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetIngredient, err)
	}

	res, err := h.ingredientService.GetIngredient(c.UserContext(), id)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredient)
}

// SearchIngredients matches the name query parameter as a case-insensitive prefix.
func (h *ingredientHandler) SearchIngredients(c *fiber.Ctx) error {
	res, err := h.ingredientService.SearchIngredients(c.UserContext(), c.Query("name"))
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}
