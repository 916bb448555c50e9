package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/pkg/subscription"

	"github.com/gofiber/fiber/v2"
)

type (
	SubscriptionHandler interface {
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{subscriptionService: subscriptionService}
}

func (h *subscriptionHandler) Subscribe(c *fiber.Ctx) error {
	authorID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedSubscribe, err)
	}
	limit, err := recipesLimit(c)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedSubscribe, err)
	}

	res, err := h.subscriptionService.Subscribe(c.UserContext(), viewerFrom(c), authorID, limit)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedSubscribe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubscribe)
}

func (h *subscriptionHandler) Unsubscribe(c *fiber.Ctx) error {
	authorID, err := paramUUID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedUnsubscribe, err)
	}

	if err := h.subscriptionService.Unsubscribe(c.UserContext(), viewerFrom(c), authorID); err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedUnsubscribe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *subscriptionHandler) GetSubscriptions(c *fiber.Ctx) error {
	limit, err := recipesLimit(c)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetSubscriptions, err)
	}
	page, pageSize := pagination(c)

	subs, count, err := h.subscriptionService.GetSubscriptions(c.UserContext(), viewerFrom(c), page, pageSize, limit)
	if err != nil {
		return presenters.ErrorResponse(c, 0, domain.MessageFailedGetSubscriptions, err)
	}
	return presenters.SuccessResponse(c, listResponse(subs, page, pageSize, count), fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}
