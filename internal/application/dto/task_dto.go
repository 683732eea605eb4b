package dto

import "time"

// GenerateTasksRequest ventana de generación. Vacío = [hoy - lookback, hoy + horizonte].
type GenerateTasksRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

// GenerateTasksResponse resumen de la generación.
type GenerateTasksResponse struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"` // ya existían
}

// TaskListQuery filtros de listado de tareas.
type TaskListQuery struct {
	CustomerID string `query:"customer_id" validate:"omitempty,uuid"`
	Status     string `query:"status"` // lista separada por comas
	Limit      int    `query:"limit" validate:"min=0,max=100"`
	Offset     int    `query:"offset" validate:"min=0"`
}

// UpdateTaskStatusRequest cambio de estado de una tarea.
type UpdateTaskStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED WAIVED"`
	CompletedOn string `json:"completed_on" validate:"omitempty,datetime=2006-01-02"` // por defecto hoy
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

// TaskResponse salida de una tarea con su estado calculado.
type TaskResponse struct {
	ID             string     `json:"id"`
	CustomerID     string     `json:"customer_id"`
	RegistrationID string     `json:"registration_id"`
	RuleCode       string     `json:"rule_code"`
	RuleName       string     `json:"rule_name,omitempty"`
	PeriodLabel    string     `json:"period_label"`
	PeriodStart    string     `json:"period_start"`
	PeriodEnd      string     `json:"period_end"`
	DueDate        string     `json:"due_date"`
	GraceUntil     string     `json:"grace_until"`
	ReminderFrom   string     `json:"reminder_from,omitempty"`
	Status         string     `json:"status"`
	Aging          string     `json:"aging,omitempty"` // solo tareas abiertas
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	LateFee        string     `json:"late_fee"`
	Notes          string     `json:"notes,omitempty"`
}

// TaskListResponse lista paginada de tareas.
type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AgingResponse conteo de tareas abiertas por tramo de antigüedad.
type AgingResponse struct {
	AsOf      string         `json:"as_of"`
	Buckets   map[string]int `json:"buckets"`
	Attention int            `json:"attention"`
	Total     int            `json:"total"`
}
