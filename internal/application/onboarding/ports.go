package onboarding

import (
	"context"

	"github.com/jhoicas/compliance-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El alta de un cliente con sus registros es atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		registrationRepo repository.RegistrationRepository,
	) error) error
}
