package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/pkg/validation"
)

// localError guarda el error interno para que RequestLogger lo registre.
const localError = "error"

// errorMapping traduce errores de dominio a HTTP. El orden importa: el primero que coincide gana.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{validation.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnknownRuleCode, fiber.StatusNotFound, "UNKNOWN_RULE"},
	{domain.ErrInvalidAnchor, fiber.StatusUnprocessableEntity, "INVALID_ANCHOR"},
	{domain.ErrUnsupportedFrequency, fiber.StatusUnprocessableEntity, "UNSUPPORTED_FREQUENCY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
}

// respondError escribe la respuesta de error estándar {"code","message"}.
// Los errores no mapeados responden 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{
				Code:    m.code,
				Message: err.Error(),
				Fields:  validation.Fields(err),
			})
		}
	}
	c.Locals(localError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}

// pathUUID lee un parámetro de ruta y exige formato UUID; responde 400 si no lo es.
func pathUUID(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: name + " debe ser un UUID"})
		return "", false
	}
	return id, true
}
