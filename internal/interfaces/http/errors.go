package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/domain"
)

// errorStatus traduce errores de dominio a status HTTP + código.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidFile):
		return fiber.StatusBadRequest, "INVALID_FILE"
	case errors.Is(err, domain.ErrMissingToken):
		return fiber.StatusUnauthorized, "MISSING_TOKEN"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return fiber.StatusServiceUnavailable, "BACKEND_UNAVAILABLE"
	case errors.Is(err, domain.ErrBackend):
		return fiber.StatusBadGateway, "BACKEND_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// messageOf prefiere el mensaje del backend; si no, el texto del error en una línea.
func messageOf(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: messageOf(err)})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// writeForm responde con el estado del formulario: 201 si se envió, o el status del error
// (409 con duplicate=true en conflictos) manteniendo los valores capturados.
func writeForm(c *fiber.Ctx, res dto.FormResult, err error) error {
	if err == nil {
		return c.Status(fiber.StatusCreated).JSON(res)
	}
	status, _ := errorStatus(err)
	return c.Status(status).JSON(res)
}
