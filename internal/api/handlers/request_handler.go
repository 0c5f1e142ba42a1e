package handlers

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/api/presenters"
	"Surplus-Reduction-Backend/internal/middleware"
	"Surplus-Reduction-Backend/pkg/request"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	RequestHandler interface {
		ListRequests(c *fiber.Ctx) error
		CreateRequest(c *fiber.Ctx) error
	}

	requestHandler struct {
		requestService request.RequestService
	}
)

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &requestHandler{requestService: requestService}
}

func (h *requestHandler) ListRequests(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthorizedNoToken, domain.ErrTokenNotFound)
	}

	docs, err := h.requestService.ListRequests(c.UserContext(), identity, c.Query("requestUserEmail"))
	if err != nil {
		if errors.Is(err, domain.ErrForbiddenAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageForbiddenAccess, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRequests, err)
	}
	return presenters.SuccessResponse(c, docs, fiber.StatusOK)
}

func (h *requestHandler) CreateRequest(c *fiber.Ctx) error {
	payload := domain.Document{}
	if err := c.BodyParser(&payload); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.requestService.CreateRequest(c.UserContext(), payload)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateRequest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
