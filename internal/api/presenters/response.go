package presenters

import (
	"errors"

	"foodgram/domain"
	"foodgram/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	Response struct {
		Status  bool              `json:"status"`
		Message string            `json:"message"`
		Data    any               `json:"data,omitempty"`
		Error   string            `json:"error,omitempty"`
		Fields  map[string]string `json:"fields,omitempty"`
	}

	ListResponse struct {
		Items      any               `json:"items"`
		Pagination domain.Pagination `json:"pagination"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse renders err. A statusCode of 0 derives the status from the error kind.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	if statusCode == 0 {
		statusCode = StatusFromError(err)
	}
	res := Response{Status: false, Message: message}
	if err != nil {
		res.Error = err.Error()
		res.Fields = fieldErrors(err)
	}

	if statusCode >= fiber.StatusInternalServerError {
		logging.Error().
			Err(err).
			Str("request_id", requestID(c)).
			Str("path", c.Path()).
			Msg(message)
		res.Error = "internal server error"
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFromError maps the error kinds onto HTTP statuses.
func StatusFromError(err error) int {
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

func fieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = describe(fe)
		}
		return fields
	}

	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) && fieldErr.Field != "" {
		return map[string]string{fieldErr.Field: fieldErr.Message}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "username":
		return "enter a valid username"
	case "hexcolor", "rgbcolor":
		return "enter a color in #RRGGBB form"
	}
	return "failed on the " + fe.Tag() + " rule"
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// ErrorHandler is the fiber fallback for errors returned by handlers and middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return ErrorResponse(c, 0, domain.MessageFailedProcessRequest, err)
}
