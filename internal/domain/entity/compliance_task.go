package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una tarea de cumplimiento.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
	TaskWaived     = "WAIVED"
)

// taskTransitions transiciones permitidas; los estados finales no tienen salida.
var taskTransitions = map[string]map[string]bool{
	TaskPending:    {TaskInProgress: true, TaskCompleted: true, TaskWaived: true},
	TaskInProgress: {TaskPending: true, TaskCompleted: true, TaskWaived: true},
}

// CanTransition indica si una tarea puede pasar de from a to.
func CanTransition(from, to string) bool {
	return taskTransitions[from][to]
}

// ComplianceTask instancia de una obligación generada desde una regla del catálogo.
// Única por (RegistrationID, RuleCode, PeriodLabel).
type ComplianceTask struct {
	ID             string
	CompanyID      string
	CustomerID     string
	RegistrationID string
	RuleCode       string
	PeriodLabel    string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	DueDate        time.Time
	GraceUntil     time.Time
	ReminderFrom   *time.Time // solo EXPIRY_BASED
	Status         string
	CompletedAt    *time.Time
	LateFee        decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOpen indica si la tarea sigue pendiente de cumplimiento.
func (t *ComplianceTask) IsOpen() bool {
	return t.Status == TaskPending || t.Status == TaskInProgress
}
