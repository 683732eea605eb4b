package repository

import (
	"context"

	"github.com/jhoicas/compliance-api/internal/domain/entity"
)

// RegistrationRepository define el puerto de persistencia para registros estatutarios.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *entity.Registration) error
	ListByCustomer(ctx context.Context, companyID, customerID string) ([]*entity.Registration, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Registration, error)
}
