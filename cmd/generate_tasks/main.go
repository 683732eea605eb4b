// generate_tasks crea las tareas de cumplimiento de todas las firmas activas para la ventana
// [hoy - lookback, hoy + horizon]. Pensado para ejecutarse a diario (cron / job programado).
//
// Uso: go run ./cmd/generate_tasks [-company <uuid>] [-from YYYY-MM-DD] [-to YYYY-MM-DD]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/application/tasks"
	"github.com/jhoicas/compliance-api/internal/domain/duedate"
	"github.com/jhoicas/compliance-api/internal/infrastructure/postgres"
	"github.com/jhoicas/compliance-api/pkg/compliance"
	"github.com/jhoicas/compliance-api/pkg/config"
	"github.com/jhoicas/compliance-api/pkg/logger"
)

// errPartial alguna firma falló; el resto se procesó.
var errPartial = errors.New("generación incompleta")

func main() {
	companyFlag := flag.String("company", "", "genera solo para esta firma (debe estar activa)")
	fromFlag := flag.String("from", "", "inicio de la ventana (YYYY-MM-DD)")
	toFlag := flag.String("to", "", "fin de la ventana (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, App: cfg.App.Name}).Component("generate_tasks")

	if err := run(cfg, log, *companyFlag, *fromFlag, *toFlag); err != nil {
		log.Error().Err(err).Msg("generate_tasks")
		os.Exit(1)
	}
}

// run contiene todo el trabajo con recursos diferidos, para que se liberen antes de os.Exit.
func run(cfg *config.Config, log *logger.Logger, companyID, fromArg, toArg string) error {
	catalogue, err := compliance.Load(cfg.Compliance.RulesFile)
	if err != nil {
		return fmt.Errorf("catálogo de reglas: %w", err)
	}
	loc := cfg.Compliance.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	uc := tasks.NewUseCase(
		duedate.NewResolver(catalogue),
		postgres.NewTaskRepository(pool),
		postgres.NewCustomerRepository(pool),
		postgres.NewRegistrationRepository(pool),
		postgres.NewCompanyRepository(pool),
		nil, log,
		tasks.Options{
			Location:     loc,
			DueSoonDays:  cfg.Compliance.DueSoonDays,
			HorizonDays:  cfg.Compliance.HorizonDays,
			LookbackDays: cfg.Compliance.LookbackDays,
		},
	)

	from, to := uc.DefaultWindow()
	if fromArg != "" {
		if from, err = dto.ParseDate(fromArg, loc); err != nil {
			return fmt.Errorf("from debe ser YYYY-MM-DD: %q", fromArg)
		}
	}
	if toArg != "" {
		if to, err = dto.ParseDate(toArg, loc); err != nil {
			return fmt.Errorf("to debe ser YYYY-MM-DD: %q", toArg)
		}
	}

	companyIDs, err := uc.CompanyTargets(ctx, companyID)
	if err != nil {
		return fmt.Errorf("firmas a procesar: %w", err)
	}

	var created, skipped, failed int
	for _, id := range companyIDs {
		res, err := uc.GenerateForCompany(ctx, id, from, to)
		if err != nil {
			failed++
			log.Error().Err(err).Str("company_id", id).Msg("generación fallida")
			if ctx.Err() != nil {
				break
			}
			continue
		}
		created += res.Created
		skipped += res.Skipped
		log.Info().Str("company_id", id).Int("created", res.Created).Int("skipped", res.Skipped).Msg("firma procesada")
	}

	log.Info().
		Str("from", dto.FormatDate(from)).Str("to", dto.FormatDate(to)).
		Int("companies", len(companyIDs)).Int("created", created).Int("skipped", skipped).Int("failed", failed).
		Msg("generación terminada")
	if failed > 0 {
		return fmt.Errorf("%w: %d de %d firmas", errPartial, failed, len(companyIDs))
	}
	return nil
}
