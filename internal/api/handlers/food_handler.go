package handlers

import (
	"Surplus-Reduction-Backend/domain"
	"Surplus-Reduction-Backend/internal/api/presenters"
	"Surplus-Reduction-Backend/pkg/food"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		ListFood(c *fiber.Ctx) error
		GetFood(c *fiber.Ctx) error
		CreateFood(c *fiber.Ctx) error
		UpdateFood(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

// storeError maps a malformed identifier to 400 and any other store failure
// to 500 with the operation's message.
func storeError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, domain.ErrInvalidID) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidID, err)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
}

func (h *foodHandler) ListFood(c *fiber.Ctx) error {
	query := domain.NewQuerySpec(
		c.Query("foodName"),
		c.Query("donatorEmail"),
		c.Query("page"),
		c.Query("limit"),
	)

	res, err := h.foodService.ListFood(c.UserContext(), query)
	if err != nil {
		return storeError(c, err, domain.MessageFailedGetFood)
	}

	if res.Page != nil {
		return presenters.SuccessResponse(c, domain.PagedFoodResponse{
			Data:        res.Items,
			TotalItems:  res.Page.TotalItems,
			TotalPages:  res.Page.TotalPages,
			CurrentPage: res.Page.CurrentPage,
		}, fiber.StatusOK)
	}
	return presenters.SuccessResponse(c, res.Items, fiber.StatusOK)
}

func (h *foodHandler) GetFood(c *fiber.Ctx) error {
	doc, err := h.foodService.GetFood(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, err, domain.MessageFailedGetFood)
	}
	return presenters.SuccessResponse(c, doc, fiber.StatusOK)
}

func (h *foodHandler) CreateFood(c *fiber.Ctx) error {
	payload := domain.Document{}
	if err := c.BodyParser(&payload); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.foodService.CreateFood(c.UserContext(), payload)
	if err != nil {
		return storeError(c, err, domain.MessageFailedCreateFood)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *foodHandler) UpdateFood(c *fiber.Ctx) error {
	payload := domain.Document{}
	if err := c.BodyParser(&payload); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.foodService.UpdateFood(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return storeError(c, err, domain.MessageFailedUpdateFood)
	}
	return presenters.SuccessResponse(c, domain.NewUpdateFoodResponse(res), fiber.StatusOK)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	res, err := h.foodService.DeleteFood(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(c, err, domain.MessageFailedDeleteFood)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	req := new(domain.UploadFoodImageRequest)
	image, err := c.FormFile("foodImage")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFoodImage, err)
	}
	req.Image = image

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFoodImage, err)
	}

	res, err := h.foodService.UploadFoodImage(c.UserContext(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStorageUnavailable):
			return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageStorageUnavailable, err)
		case errors.Is(err, domain.ErrInvalidImageFormat):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadFoodImage, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadFoodImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}
