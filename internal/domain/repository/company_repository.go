package repository

import (
	"context"

	"github.com/jhoicas/compliance-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByPAN(ctx context.Context, pan string) (*entity.Company, error)
	ListIDs(ctx context.Context) ([]string, error)
}
