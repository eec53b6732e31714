package common

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// сообщение для ответа 500, детали ошибки остаются только в логах
const InternalErrorMessage = "Internal server error"

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"error"`
	Data    T      `json:"data,omitempty"`
} // @name Response

func ErrResponse(
	c *fiber.Ctx,
	code int,
	message string,
	data ...any,
) error {
	response := Response[any]{
		Success: false,
		Message: message,
	}
	if len(data) > 0 {
		response.Data = data[0]
	}
	return c.Status(code).JSON(response)
}

func OkResponse[T any](
	c *fiber.Ctx,
	data T,
) error {
	return c.JSON(&Response[T]{
		Success: true,
		Data:    data,
	})
}

// CreatedResponse то же, что OkResponse, но с кодом 201
func CreatedResponse[T any](
	c *fiber.Ctx,
	data T,
) error {
	return c.Status(fiber.StatusCreated).JSON(&Response[T]{
		Success: true,
		Data:    data,
	})
}

// StatusFor возвращает HTTP-код для ошибки сервисного слоя
func StatusFor(err error) int {
	switch {
	case errors.As(err, &RequestValidationError{}),
		errors.As(err, &ReferenceNotFoundError{}),
		errors.As(err, &ConstraintViolationError{}):
		return fiber.StatusBadRequest
	case errors.As(err, &UnauthorizedError{}):
		return fiber.StatusUnauthorized
	case errors.As(err, &NotFoundError{}):
		return fiber.StatusNotFound
	case errors.As(err, &AlreadyExistsError{}):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// ServiceErrResponse формирует ответ по ошибке сервисного слоя.
// Для неизвестных ошибок наружу уходит только общее сообщение.
func ServiceErrResponse(ctx *fiber.Ctx, err error) error {
	var validationErr RequestValidationError
	if errors.As(err, &validationErr) {
		return ErrResponse(ctx, fiber.StatusBadRequest, validationErr.Message, validationErr.Data)
	}
	var referenceErr ReferenceNotFoundError
	if errors.As(err, &referenceErr) {
		return ErrResponse(ctx, fiber.StatusBadRequest, referenceErr.Message, referenceErr.Data)
	}
	code := StatusFor(err)
	if code == fiber.StatusInternalServerError {
		return ErrResponse(ctx, code, InternalErrorMessage)
	}
	return ErrResponse(ctx, code, err.Error())
}

// NewNotFoundError создаёт новую ошибку "not found"
func NewNotFoundError(message string) error {
	return NotFoundError{Message: message}
}
