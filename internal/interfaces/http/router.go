package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compliance-api/internal/application/auth"
	"github.com/jhoicas/compliance-api/internal/application/duedates"
	"github.com/jhoicas/compliance-api/internal/application/onboarding"
	"github.com/jhoicas/compliance-api/internal/application/tasks"
	"github.com/jhoicas/compliance-api/internal/application/usecase"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/pkg/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CompanyUC  *usecase.CompanyUseCase
	CustomerUC *onboarding.CustomerUseCase
	DueDatesUC *duedates.UseCase
	TasksUC    *tasks.UseCase
	Validator  *validation.Validator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	v := deps.Validator
	if v == nil {
		v = validation.New()
	}
	api := app.Group("/api")

	// Auth (público, salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, v)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Companies (público: alta de firma previa al primer usuario)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, v)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token y firma activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveCompany(deps.CompanyUC))
	writer := RequireRole(entity.RoleAdmin, entity.RoleAdvisor)

	// Catálogo y vencimientos (cualquier rol)
	compliance := protected.Group("/compliance")
	complianceHandler := NewComplianceHandler(deps.DueDatesUC, v)
	compliance.Get("/registration-types", complianceHandler.RegistrationTypes)
	compliance.Get("/rules", complianceHandler.Rules)
	compliance.Get("/rules/:code", complianceHandler.Rule)
	compliance.Get("/rules/:code/due-date", complianceHandler.DueDate)
	compliance.Get("/calendar", complianceHandler.Calendar)

	// Customers + registros (escritura: admin, advisor)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, v)
	taskHandler := NewTaskHandler(deps.TasksUC, v)
	customers.Post("/", writer, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Post("/import", writer, customerHandler.Import)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", writer, customerHandler.Update)
	customers.Post("/:id/registrations", writer, customerHandler.AddRegistration)
	customers.Get("/:id/registrations", customerHandler.ListRegistrations)
	customers.Post("/:id/tasks/generate", writer, taskHandler.Generate)
	customers.Get("/:id/calendar.pdf", taskHandler.CalendarPDF)

	// Tasks
	taskGroup := protected.Group("/tasks")
	taskGroup.Get("/", taskHandler.List)
	taskGroup.Get("/aging", taskHandler.Aging)
	taskGroup.Patch("/:id/status", writer, taskHandler.UpdateStatus)
}
