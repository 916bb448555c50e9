package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/pkg/tag"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TagHandler interface {
		CreateTag(c *fiber.Ctx) error
		GetTag(c *fiber.Ctx) error
		GetTags(c *fiber.Ctx) error
	}

	tagHandler struct {
		tagService tag.TagService
		validator  *validator.Validate
	}
)

func NewTagHandler(tagService tag.TagService, validator *validator.Validate) TagHandler {
	return &tagHandler{tagService: tagService, validator: validator}
}

func (h *tagHandler) CreateTag(c *fiber.Ctx) error {
	req := new(domain.TagCreateRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedCreateTag); !ok {
		return err
	}

	res, err := h.tagService.CreateTag(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedCreateTag, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTag)
}

func (h *tagHandler) GetTag(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetTag, err)
	}

	res, err := h.tagService.GetTag(c.UserContext(), id)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetTag, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTag)
}

func (h *tagHandler) GetTags(c *fiber.Ctx) error {
	res, err := h.tagService.GetTags(c.UserContext())
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetTags, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}
