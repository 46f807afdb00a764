package serverutils

import (
	"context"
	"errors"

	redisrepo "legislation-qa-be/internal/repository/redis"
	"legislation-qa-be/pkg/agent"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) *Response {
	return &Response{
		Message: message,
		Data:    data,
	}
}

// ValidateRequest runs struct-tag validation and converts failures into a
// fiber 400 error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandlerMiddleware maps service errors onto HTTP statuses. A failed
// request always carries an error body, never an empty success response.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(Response{Message: fiberErr.Message})
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, redisrepo.ErrSessionNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, agent.ErrEmptyHistory):
			status = fiber.StatusBadRequest
		case errors.Is(err, agent.ErrRouting), errors.Is(err, agent.ErrSynthesis):
			status = fiber.StatusBadGateway
		case errors.Is(err, context.DeadlineExceeded):
			status = fiber.StatusGatewayTimeout
		}

		return ctx.Status(status).JSON(Response{Message: err.Error()})
	}
}
