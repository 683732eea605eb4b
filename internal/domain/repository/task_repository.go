package repository

import (
	"context"

	"github.com/jhoicas/compliance-api/internal/domain/entity"
)

// TaskFilter criterios de listado de tareas.
type TaskFilter struct {
	CompanyID  string
	CustomerID string   // opcional
	Statuses   []string // vacío = todos
	Limit      int
	Offset     int
}

// TaskRepository define el puerto de persistencia para tareas de cumplimiento.
type TaskRepository interface {
	// CreateIfAbsent inserta la tarea salvo que ya exista (registration, rule, period).
	// Devuelve true si se insertó.
	CreateIfAbsent(ctx context.Context, task *entity.ComplianceTask) (bool, error)
	GetByID(ctx context.Context, companyID, id string) (*entity.ComplianceTask, error)
	List(ctx context.Context, filter TaskFilter) ([]*entity.ComplianceTask, int, error)
	ListOpen(ctx context.Context, companyID string) ([]*entity.ComplianceTask, error)
	UpdateStatus(ctx context.Context, task *entity.ComplianceTask) error
}
