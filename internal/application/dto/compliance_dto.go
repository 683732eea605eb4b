package dto

// RegistrationTypeResponse tipo de registro del enum con su etiqueta.
type RegistrationTypeResponse struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// AnchorOverrideResponse excepción de vencimiento para un mes ancla.
type AnchorOverrideResponse struct {
	AnchorMonth    int `json:"anchor_month"`
	DueDay         int `json:"due_day"`
	DueMonthOffset int `json:"due_month_offset"`
}

// RuleResponse descriptor de una regla del catálogo.
type RuleResponse struct {
	Code                          string                   `json:"code"`
	Name                          string                   `json:"name"`
	RegistrationType              string                   `json:"registration_type"`
	Frequency                     string                   `json:"frequency"`
	DueDay                        int                      `json:"due_day,omitempty"`
	DueMonthOffset                int                      `json:"due_month_offset"`
	GraceDays                     int                      `json:"grace_days"`
	AnchorMonths                  []int                    `json:"anchor_months,omitempty"`
	AnchorOverrides               []AnchorOverrideResponse `json:"anchor_overrides,omitempty"`
	ExcludedMonths                []int                    `json:"excluded_months,omitempty"`
	PeriodLabelType               string                   `json:"period_label_type"`
	RenewalWindowDaysBeforeExpiry int                      `json:"renewal_window_days_before_expiry,omitempty"`
	PostExpiryGraceDays           int                      `json:"post_expiry_grace_days,omitempty"`
	AutoTaskGenerationEnabled     bool                     `json:"auto_task_generation_enabled"`
	LateFeePerDay                 string                   `json:"late_fee_per_day"`
	MaxLateFee                    string                   `json:"max_late_fee"`
}

// DueDateQuery parámetros de resolución: period (YYYY-MM) para reglas de calendario, expiry (YYYY-MM-DD) para renovaciones.
type DueDateQuery struct {
	Period string `query:"period" validate:"omitempty,datetime=2006-01"`
	Expiry string `query:"expiry" validate:"omitempty,datetime=2006-01-02"`
}

// DueDateResponse resultado de resolver una regla para un periodo.
type DueDateResponse struct {
	RuleCode     string `json:"rule_code"`
	PeriodLabel  string `json:"period_label"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	DueDate      string `json:"due_date"`
	GraceUntil   string `json:"grace_until"`
	ReminderFrom string `json:"reminder_from,omitempty"`
	Status       string `json:"status"`
}

// CalendarQuery filtros del calendario de vencimientos.
type CalendarQuery struct {
	RegistrationTypes string `query:"registration_type"` // lista separada por comas; vacío = todos
	From              string `query:"from" validate:"required,datetime=2006-01-02"`
	To                string `query:"to" validate:"required,datetime=2006-01-02"`
}

// CalendarResponse vencimientos ordenados por fecha.
type CalendarResponse struct {
	From  string            `json:"from"`
	To    string            `json:"to"`
	Items []DueDateResponse `json:"items"`
}
