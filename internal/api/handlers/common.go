package handlers

import (
	"strconv"

	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// viewerFrom returns the authenticated user of the request, or the anonymous viewer.
func viewerFrom(c *fiber.Ctx) domain.Viewer {
	raw, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok {
		return domain.Anonymous()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return domain.Anonymous()
	}
	return domain.NewViewer(id)
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	return id, nil
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = domain.DefaultPage
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	return page, limit
}

// recipesLimit reads the optional recipes_limit query parameter; 0 means no limit.
func recipesLimit(c *fiber.Ctx) (int, error) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewFieldError("recipes_limit", "must be a non-negative integer")
	}
	return n, nil
}

// bind parses the JSON body into req and validates it, writing the error response on failure.
func bind(c *fiber.Ctx, v *validator.Validate, req any, failedMessage string) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := v.Struct(req); err != nil {
		return false, presenters.ErrorResponse(c, fiber.StatusBadRequest, failedMessage, err)
	}
	return true, nil
}

func listResponse(items any, page, limit int, total int64) presenters.ListResponse {
	return presenters.ListResponse{
		Items:      items,
		Pagination: domain.NewPagination(page, limit, total),
	}
}
