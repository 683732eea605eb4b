package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/application/duedates"
	"github.com/jhoicas/compliance-api/pkg/validation"
)

// ComplianceHandler expone el catálogo de reglas y el cálculo de vencimientos (protegido, solo lectura).
type ComplianceHandler struct {
	uc       *duedates.UseCase
	validate *validation.Validator
}

// NewComplianceHandler construye el handler.
func NewComplianceHandler(uc *duedates.UseCase, v *validation.Validator) *ComplianceHandler {
	return &ComplianceHandler{uc: uc, validate: v}
}

// RegistrationTypes GET /api/compliance/registration-types
func (h *ComplianceHandler) RegistrationTypes(c *fiber.Ctx) error {
	return c.JSON(h.uc.RegistrationTypes())
}

// Rules godoc
// @Summary      Listar reglas del catálogo
// @Tags         compliance
// @Produce      json
// @Security     BearerAuth
// @Param        registration_type  query  string  false  "Filtra por tipo de registro (GSTIN, TAN, ...)"
// @Success      200  {array}   dto.RuleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/compliance/rules [get]
func (h *ComplianceHandler) Rules(c *fiber.Ctx) error {
	out, err := h.uc.Rules(c.Query("registration_type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rule GET /api/compliance/rules/:code
func (h *ComplianceHandler) Rule(c *fiber.Ctx) error {
	out, err := h.uc.Rule(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DueDate godoc
// @Summary      Calcular vencimiento de una regla
// @Tags         compliance
// @Produce      json
// @Security     BearerAuth
// @Param        code    path   string  true   "Código de regla"
// @Param        period  query  string  false  "Mes de cierre del periodo (YYYY-MM), reglas de calendario"
// @Param        expiry  query  string  false  "Fecha de expiración (YYYY-MM-DD), reglas EXPIRY_BASED"
// @Success      200  {object}  dto.DueDateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/compliance/rules/{code}/due-date [get]
func (h *ComplianceHandler) DueDate(c *fiber.Ctx) error {
	var q dto.DueDateQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	if err := h.validate.Struct(q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.DueDate(c.Params("code"), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calendar GET /api/compliance/calendar?registration_type=GSTIN,TAN&from=2024-04-01&to=2024-06-30
func (h *ComplianceHandler) Calendar(c *fiber.Ctx) error {
	var q dto.CalendarQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	if err := h.validate.Struct(q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Calendar(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
