package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
	"github.com/jhoicas/compliance-api/pkg/compliance"
)

var _ repository.RegistrationRepository = (*RegistrationRepo)(nil)

// RegistrationRepo implementación de RegistrationRepository sobre PostgreSQL.
type RegistrationRepo struct {
	q Querier
}

// NewRegistrationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRegistrationRepository(q Querier) *RegistrationRepo {
	return &RegistrationRepo{q: q}
}

const registrationColumns = `id, company_id, customer_id, type, number, state, issued_on, expires_on, created_at, updated_at`

// Create persiste un registro. Un mismo (customer, type, number) no se repite.
func (r *RegistrationRepo) Create(ctx context.Context, reg *entity.Registration) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO registrations (`+registrationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		reg.ID, reg.CompanyID, reg.CustomerID, string(reg.Type), reg.Number, reg.State,
		reg.IssuedOn, reg.ExpiresOn, reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// ListByCustomer registros de un cliente de la firma.
func (r *RegistrationRepo) ListByCustomer(ctx context.Context, companyID, customerID string) ([]*entity.Registration, error) {
	return r.list(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE company_id = $1 AND customer_id = $2 ORDER BY type, number`,
		companyID, customerID)
}

// ListByCompany todos los registros de la firma (generación de tareas).
func (r *RegistrationRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Registration, error) {
	return r.list(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE company_id = $1 ORDER BY customer_id, type, number`,
		companyID)
}

func (r *RegistrationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Registration, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Registration
	for rows.Next() {
		var reg entity.Registration
		var typ string
		if err := rows.Scan(
			&reg.ID, &reg.CompanyID, &reg.CustomerID, &typ, &reg.Number, &reg.State,
			&reg.IssuedOn, &reg.ExpiresOn, &reg.CreatedAt, &reg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.Type = compliance.RegistrationType(typ)
		list = append(list, &reg)
	}
	return list, rows.Err()
}
