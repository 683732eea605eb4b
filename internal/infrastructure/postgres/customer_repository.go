package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, company_id, name, entity_type, email, phone, status, COALESCE(advisor_id::text, ''), created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, company_id, name, entity_type, email, phone, status, advisor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, $9, $10)`,
		c.ID, c.CompanyID, c.Name, c.EntityType, c.Email, c.Phone, c.Status, c.AdvisorID,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente de la firma. nil, nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByCompany lista clientes de la firma con paginación y total.
func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Update actualiza datos de contacto, estado y asesor.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE customers
		SET name = $3, entity_type = $4, email = $5, phone = $6, status = $7,
		    advisor_id = NULLIF($8, '')::uuid, updated_at = $9
		WHERE company_id = $1 AND id = $2`,
		c.CompanyID, c.ID, c.Name, c.EntityType, c.Email, c.Phone, c.Status, c.AdvisorID, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgxScanner) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.EntityType, &c.Email, &c.Phone, &c.Status, &c.AdvisorID,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
