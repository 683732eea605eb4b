// import_registrations da de alta clientes y sus registros estatutarios a partir de un CSV
// exportado de la hoja de cálculo de la firma.
//
// Uso: go run ./cmd/import_registrations -company <uuid> [-charset windows-1252] clientes.csv
//
// Cabecera esperada: customer,registration_type,number y opcionalmente entity_type,email,phone,state,issued_on,expires_on.
// Las filas de un mismo cliente se agrupan; cada cliente se crea en su propia transacción.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/compliance-api/internal/application/onboarding"
	"github.com/jhoicas/compliance-api/internal/infrastructure/postgres"
	"github.com/jhoicas/compliance-api/pkg/config"
	"github.com/jhoicas/compliance-api/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "UUID de la firma destino (requerido)")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, windows-1252, iso-8859-1")
	flag.Parse()

	if _, err := uuid.Parse(*companyID); err != nil || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_registrations -company <uuid> [-charset windows-1252] archivo.csv")
		os.Exit(2)
	}
	csvPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, App: cfg.App.Name}).Component("import")

	if err := run(cfg, log, *companyID, csvPath, *charset); err != nil {
		log.Error().Err(err).Str("file", csvPath).Msg("import_registrations")
		os.Exit(1)
	}
}

// run hace la importación con recursos diferidos, para que se liberen antes de os.Exit.
func run(cfg *config.Config, log *logger.Logger, companyID, csvPath, charset string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	company, err := postgres.NewCompanyRepository(pool).GetByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("buscar firma: %w", err)
	}
	if company == nil {
		return fmt.Errorf("la firma %s no existe", companyID)
	}

	uc := onboarding.NewCustomerUseCase(
		postgres.NewCustomerRepository(pool),
		postgres.NewRegistrationRepository(pool),
		postgres.NewUserRepository(pool),
		postgres.NewTxRunner(pool),
		cfg.Compliance.Location(),
	)
	sum, err := uc.Import(ctx, company.ID, f, charset)
	if err != nil {
		return fmt.Errorf("leer CSV: %w", err)
	}
	for _, fail := range sum.Failures {
		log.Warn().Err(fail.Err).Str("customer", fail.Customer).Int("line", fail.Line).Msg("cliente omitido")
	}
	log.Info().
		Str("company", company.Name).
		Int("customers", sum.Customers).
		Int("registrations", sum.Registrations).
		Int("failed", len(sum.Failures)).
		Msg("importación terminada")
	return nil
}
