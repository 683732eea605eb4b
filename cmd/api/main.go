package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/compliance-api/internal/application/auth"
	"github.com/jhoicas/compliance-api/internal/application/duedates"
	"github.com/jhoicas/compliance-api/internal/application/onboarding"
	"github.com/jhoicas/compliance-api/internal/application/tasks"
	"github.com/jhoicas/compliance-api/internal/application/usecase"
	"github.com/jhoicas/compliance-api/internal/domain/duedate"
	infrapdf "github.com/jhoicas/compliance-api/internal/infrastructure/pdf"
	"github.com/jhoicas/compliance-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/compliance-api/internal/interfaces/http"
	"github.com/jhoicas/compliance-api/pkg/compliance"
	"github.com/jhoicas/compliance-api/pkg/config"
	"github.com/jhoicas/compliance-api/pkg/logger"
	"github.com/jhoicas/compliance-api/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", cfg.Compliance.Timezone).
		Msg("iniciando aplicación")

	// Catálogo de reglas: un archivo inválido aborta el arranque.
	catalogue, err := compliance.Load(cfg.Compliance.RulesFile)
	if err != nil {
		log.Fatal().Err(err).Str("rules_file", cfg.Compliance.RulesFile).Msg("catálogo de reglas")
	}
	log.Info().Int("rules", catalogue.Len()).Msg("catálogo de reglas cargado")
	resolver := duedate.NewResolver(catalogue)
	loc := cfg.Compliance.Location()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	registrationRepo := postgres.NewRegistrationRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	customerUC := onboarding.NewCustomerUseCase(customerRepo, registrationRepo, userRepo, txRunner, loc)
	dueDatesUC := duedates.NewUseCase(resolver, duedates.Options{
		Location:    loc,
		DueSoonDays: cfg.Compliance.DueSoonDays,
	})

	// PDF: calendario de obligaciones por cliente
	pdfGenerator := infrapdf.NewCalendarPDFGenerator()
	tasksUC := tasks.NewUseCase(
		resolver, taskRepo, customerRepo, registrationRepo, companyRepo,
		pdfGenerator, log.Component("tasks"),
		tasks.Options{
			Location:     loc,
			DueSoonDays:  cfg.Compliance.DueSoonDays,
			HorizonDays:  cfg.Compliance.HorizonDays,
			LookbackDays: cfg.Compliance.LookbackDays,
		},
	)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Compliance API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "rules": catalogue.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CompanyUC:  companyUC,
		CustomerUC: customerUC,
		DueDatesUC: dueDatesUC,
		TasksUC:    tasksUC,
		Validator:  validation.New(),
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
