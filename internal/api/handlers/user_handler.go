package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		SetPassword(c *fiber.Ctx) error
		ForgotPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.UserRegisterRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedRegister); !ok {
		return err
	}

	res, err := h.userService.Register(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedRegister, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.UserLoginRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedLogin); !ok {
		return err
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedLogin, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.LocalToken).(string)
	if err := h.userService.Logout(c.UserContext(), token); err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedLogout, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	res, err := h.userService.Me(c.UserContext(), viewerFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetUser, err)
	}

	res, err := h.userService.GetUser(c.UserContext(), viewerFrom(c), id)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *userHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := pagination(c)

	users, count, err := h.userService.GetUsers(c.UserContext(), viewerFrom(c), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetUsers, err)
	}
	return presenters.SuccessResponse(c, listResponse(users, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *userHandler) SetPassword(c *fiber.Ctx) error {
	req := new(domain.SetPasswordRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedSetPassword); !ok {
		return err
	}

	if err := h.userService.SetPassword(c.UserContext(), viewerFrom(c), *req); err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedSetPassword, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) ForgotPassword(c *fiber.Ctx) error {
	req := new(domain.ForgotPasswordRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedForgotPassword); !ok {
		return err
	}

	if err := h.userService.ForgotPassword(c.UserContext(), *req); err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedForgotPassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessForgotPassword)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if ok, err := bind(c, h.validator, req, domain.MessageFailedResetPassword); !ok {
		return err
	}

	if err := h.userService.ResetPassword(c.UserContext(), *req); err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedResetPassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}
