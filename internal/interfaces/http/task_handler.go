package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/application/tasks"
	"github.com/jhoicas/compliance-api/pkg/validation"
)

// TaskHandler maneja la generación y el seguimiento de tareas de cumplimiento (protegido).
type TaskHandler struct {
	uc       *tasks.UseCase
	validate *validation.Validator
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc *tasks.UseCase, v *validation.Validator) *TaskHandler {
	return &TaskHandler{uc: uc, validate: v}
}

// Generate godoc
// @Summary      Generar tareas de un cliente
// @Description  Crea las tareas con vencimiento en [from, to]. Sin cuerpo usa la ventana por defecto. Idempotente.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true   "ID del cliente"
// @Param        body  body  dto.GenerateTasksRequest   false  "Ventana"
// @Success      200   {object}  dto.GenerateTasksResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/tasks/generate [post]
func (h *TaskHandler) Generate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	var in dto.GenerateTasksRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Generate(c.UserContext(), companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CalendarPDF godoc
// @Summary      Calendario de obligaciones en PDF
// @Tags         tasks
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/calendar.pdf [get]
func (h *TaskHandler) CalendarPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	pdfBytes, filename, err := h.uc.CalendarPDF(c.UserContext(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// List GET /api/tasks?customer_id=&status=PENDING,IN_PROGRESS&limit=20&offset=0
func (h *TaskHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var q dto.TaskListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidQuery(c)
	}
	if err := h.validate.Struct(q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), companyID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Aging GET /api/tasks/aging
func (h *TaskHandler) Aging(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Aging(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una tarea
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la tarea"
// @Param        body  body  dto.UpdateTaskStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
