package presenters

import (
	"Surplus-Reduction-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type ErrorBody struct {
	Message string `json:"message"`
}

// ErrorResponse logs the cause and answers with a {message} body.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	if err != nil {
		log.Warnf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
	}
	return c.Status(statusCode).JSON(ErrorBody{Message: message})
}

// SuccessResponse writes data as the whole response body. A nil data is
// sent as JSON null.
func SuccessResponse(c *fiber.Ctx, data any, statusCode int) error {
	return c.Status(statusCode).JSON(data)
}

// ErrorHandler is the last resort for errors handlers did not answer
// themselves, typically store failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := domain.MessageFailedProcessRequest

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(code).JSON(ErrorBody{Message: message})
}
