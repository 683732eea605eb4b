package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, company_id, customer_id, registration_id, rule_code, period_label,
	period_start, period_end, due_date, grace_until, reminder_from, status, completed_at,
	late_fee, notes, created_at, updated_at`

// CreateIfAbsent inserta la tarea; si ya existe (registration_id, rule_code, period_label) no hace nada.
func (r *TaskRepo) CreateIfAbsent(ctx context.Context, t *entity.ComplianceTask) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO compliance_tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (registration_id, rule_code, period_label) DO NOTHING`,
		t.ID, t.CompanyID, t.CustomerID, t.RegistrationID, t.RuleCode, t.PeriodLabel,
		t.PeriodStart, t.PeriodEnd, t.DueDate, t.GraceUntil, t.ReminderFrom, t.Status, t.CompletedAt,
		t.LateFee, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("insert compliance task: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID obtiene una tarea de la firma. nil, nil si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, companyID, id string) (*entity.ComplianceTask, error) {
	t, err := scanTask(r.q.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM compliance_tasks WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compliance task: %w", err)
	}
	return t, nil
}

// List tareas filtradas, ordenadas por vencimiento, con total para paginación.
func (r *TaskRepo) List(ctx context.Context, f repository.TaskFilter) ([]*entity.ComplianceTask, int, error) {
	where, args := taskWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM compliance_tasks WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count compliance tasks: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM compliance_tasks WHERE %s ORDER BY due_date, rule_code LIMIT $%d OFFSET $%d`,
		taskColumns, where, len(args)-1, len(args))
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListOpen tareas PENDING o IN_PROGRESS de la firma (reporte de antigüedad).
func (r *TaskRepo) ListOpen(ctx context.Context, companyID string) ([]*entity.ComplianceTask, error) {
	return r.query(ctx,
		`SELECT `+taskColumns+` FROM compliance_tasks
		 WHERE company_id = $1 AND status IN ('PENDING', 'IN_PROGRESS')
		 ORDER BY due_date, rule_code`, companyID)
}

// UpdateStatus persiste estado, fecha de cumplimiento, multa y notas.
func (r *TaskRepo) UpdateStatus(ctx context.Context, t *entity.ComplianceTask) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE compliance_tasks
		SET status = $3, completed_at = $4, late_fee = $5, notes = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`,
		t.CompanyID, t.ID, t.Status, t.CompletedAt, t.LateFee, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update compliance task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) query(ctx context.Context, query string, args ...any) ([]*entity.ComplianceTask, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compliance tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComplianceTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compliance task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// taskWhere arma la cláusula WHERE con placeholders posicionales.
func taskWhere(f repository.TaskFilter) (string, []any) {
	conds := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		args = append(args, f.Statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func scanTask(row pgxScanner) (*entity.ComplianceTask, error) {
	var t entity.ComplianceTask
	if err := row.Scan(
		&t.ID, &t.CompanyID, &t.CustomerID, &t.RegistrationID, &t.RuleCode, &t.PeriodLabel,
		&t.PeriodStart, &t.PeriodEnd, &t.DueDate, &t.GraceUntil, &t.ReminderFrom, &t.Status, &t.CompletedAt,
		&t.LateFee, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
