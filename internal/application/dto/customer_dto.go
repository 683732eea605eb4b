package dto

import "time"

// CreateCustomerRequest alta de cliente; las registrations opcionales se crean en la misma transacción.
type CreateCustomerRequest struct {
	Name          string                      `json:"name" validate:"required,notblank,max=200"`
	EntityType    string                      `json:"entity_type" validate:"omitempty,max=50"`
	Email         string                      `json:"email" validate:"omitempty,email"`
	Phone         string                      `json:"phone" validate:"omitempty,max=30"`
	AdvisorID     string                      `json:"advisor_id" validate:"omitempty,uuid"`
	Registrations []CreateRegistrationRequest `json:"registrations" validate:"omitempty,dive"`
}

// UpdateCustomerRequest campos opcionales de actualización.
type UpdateCustomerRequest struct {
	Name       *string `json:"name" validate:"omitempty,notblank,max=200"`
	EntityType *string `json:"entity_type" validate:"omitempty,max=50"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	Status     *string `json:"status" validate:"omitempty,oneof=ONBOARDING ACTIVE INACTIVE"`
	AdvisorID  *string `json:"advisor_id" validate:"omitempty,uuid"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"company_id"`
	Name       string    `json:"name"`
	EntityType string    `json:"entity_type"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	AdvisorID  string    `json:"advisor_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Registrations []RegistrationResponse `json:"registrations,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateRegistrationRequest alta de registro estatutario. Fechas en formato YYYY-MM-DD.
type CreateRegistrationRequest struct {
	Type      string `json:"type" validate:"required,regtype"`
	Number    string `json:"number" validate:"required,notblank,max=50"`
	State     string `json:"state" validate:"omitempty,max=60"`
	IssuedOn  string `json:"issued_on" validate:"omitempty,datetime=2006-01-02"`
	ExpiresOn string `json:"expires_on" validate:"omitempty,datetime=2006-01-02"`
}

// RegistrationResponse salida de un registro.
type RegistrationResponse struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Type       string  `json:"type"`
	TypeLabel  string  `json:"type_label"`
	Number     string  `json:"number"`
	State      string  `json:"state,omitempty"`
	IssuedOn   *string `json:"issued_on,omitempty"`
	ExpiresOn  *string `json:"expires_on,omitempty"`
}

// ImportFailureResponse cliente rechazado en una importación CSV.
type ImportFailureResponse struct {
	Customer string `json:"customer"`
	Line     int    `json:"line"`
	Error    string `json:"error"`
}

// ImportResponse resultado de POST /api/customers/import.
type ImportResponse struct {
	Customers     int                     `json:"customers"`
	Registrations int                     `json:"registrations"`
	Failures      []ImportFailureResponse `json:"failures"`
}
