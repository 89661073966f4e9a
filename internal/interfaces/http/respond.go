// Package http expone la API del checkout sobre Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/checkout-api/internal/application/dto"
	"github.com/jhoicas/checkout-api/internal/domain"
)

// Mapeo declarativo Kind → HTTP status. Ningún handler inspecciona mensajes.
var statusByKind = map[domain.Kind]int{
	domain.KindInvalidInput:  fiber.StatusBadRequest,
	domain.KindUnauthorized:  fiber.StatusUnauthorized,
	domain.KindNotFound:      fiber.StatusNotFound,
	domain.KindConflict:      fiber.StatusConflict,
	domain.KindUnprocessable: fiber.StatusUnprocessableEntity,
	domain.KindInternal:      fiber.StatusInternalServerError,
}

var codeByKind = map[domain.Kind]string{
	domain.KindInvalidInput:  "VALIDATION",
	domain.KindUnauthorized:  "UNAUTHORIZED",
	domain.KindNotFound:      "NOT_FOUND",
	domain.KindConflict:      "CONFLICT",
	domain.KindUnprocessable: "UNPROCESSABLE",
	domain.KindInternal:      "INTERNAL",
}

type hint struct {
	nextStep       string
	recommendation string
}

// Hints de recuperación por categoría, incluidos en metadata de la respuesta.
var hintByKind = map[domain.Kind]hint{
	domain.KindInvalidInput:  {"fix the indicated fields and retry", "check the request payload format"},
	domain.KindUnauthorized:  {"authenticate and retry", "verify your credentials or token"},
	domain.KindNotFound:      {"verify the resource id", "the resource may not exist or may have been removed"},
	domain.KindConflict:      {"refresh the resource and review its current state", "the operation is not allowed in the current state"},
	domain.KindUnprocessable: {"review the transaction amounts", "recreate the transaction if the product price changed"},
	domain.KindInternal:      {"retry in a few seconds", "contact support if the problem persists"},
}

// RespondError serializa un error de dominio como envelope con status HTTP.
func RespondError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	msg := err.Error()
	if kind == domain.KindInternal {
		// No filtrar detalles de infraestructura al cliente.
		msg = "internal server error"
	}
	h := hintByKind[kind]
	return c.Status(status).JSON(dto.Fail(msg, codeByKind[kind], h.nextStep, h.recommendation))
}

// respondOK serializa data como envelope exitoso.
func respondOK(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.OK(data))
}

// respondBadBody respuesta estándar para cuerpos JSON que no parsean.
func respondBadBody(c *fiber.Ctx) error {
	return RespondError(c, domain.InvalidInput("invalid request body"))
}
