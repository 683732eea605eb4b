package repository

import (
	"context"

	"github.com/jhoicas/compliance-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Todas las consultas se acotan a la company del token.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, int, error)
	Update(ctx context.Context, customer *entity.Customer) error
}
