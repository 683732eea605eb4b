package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compliance-api/internal/application/dto"
)

// companyChecker es el contrato mínimo que necesita el middleware para verificar la firma.
// Lo implementa *usecase.CompanyUseCase; el uso de interfaz evita el import circular.
type companyChecker interface {
	IsActive(ctx context.Context, companyID string) (bool, error)
}

// RequireActiveCompany devuelve un middleware Fiber que verifica que la firma del token JWT
// siga activa. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalCompanyID).
//
// Comportamiento:
//   - 403 Forbidden → firma suspendida, inactiva o eliminada.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay company_id en el contexto, responde 401.
func RequireActiveCompany(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		active, err := checker.IsActive(c.UserContext(), companyID)
		if err != nil {
			c.Locals(localError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la firma, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "COMPANY_INACTIVE",
				Message: "la firma no está activa",
			})
		}

		return c.Next()
	}
}
