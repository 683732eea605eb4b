package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/application/onboarding"
	"github.com/jhoicas/compliance-api/pkg/validation"
)

// CustomerHandler maneja clientes y sus registros estatutarios (protegido).
type CustomerHandler struct {
	uc       *onboarding.CustomerUseCase
	validate *validation.Validator
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *onboarding.CustomerUseCase, v *validation.Validator) *CustomerHandler {
	return &CustomerHandler{uc: uc, validate: v}
}

// Create godoc
// @Summary      Alta de cliente con registros iniciales
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCustomerRequest  true  "Cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/customers?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidQuery(c)
	}
	if err := h.validate.Struct(page); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), companyID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.UserContext(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddRegistration POST /api/customers/:id/registrations
func (h *CustomerHandler) AddRegistration(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	var in dto.CreateRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddRegistration(c.UserContext(), companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRegistrations GET /api/customers/:id/registrations
func (h *CustomerHandler) ListRegistrations(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.ListRegistrations(c.UserContext(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar clientes y registros desde CSV
// @Tags         customers
// @Accept       text/csv
// @Produce      json
// @Security     BearerAuth
// @Param        charset  query  string  false  "utf-8 (defecto), windows-1252, iso-8859-1"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers/import [post]
func (h *CustomerHandler) Import(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	sum, err := h.uc.Import(c.UserContext(), companyID, bytes.NewReader(c.Body()), c.Query("charset"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ImportResponse{
		Customers:     sum.Customers,
		Registrations: sum.Registrations,
		Failures:      make([]dto.ImportFailureResponse, 0, len(sum.Failures)),
	}
	for _, f := range sum.Failures {
		out.Failures = append(out.Failures, dto.ImportFailureResponse{Customer: f.Customer, Line: f.Line, Error: f.Err.Error()})
	}
	return c.JSON(out)
}
