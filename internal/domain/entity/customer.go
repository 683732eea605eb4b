package entity

import "time"

// Estados de onboarding del cliente.
const (
	CustomerOnboarding = "ONBOARDING"
	CustomerActive     = "ACTIVE"
	CustomerInactive   = "INACTIVE"
)

// ValidCustomerStatuses estados aceptados en actualización.
var ValidCustomerStatuses = map[string]bool{
	CustomerOnboarding: true, CustomerActive: true, CustomerInactive: true,
}

// Customer representa un cliente de la firma asesora.
type Customer struct {
	ID         string
	CompanyID  string
	Name       string
	EntityType string // proprietorship, partnership, llp, private_limited, trust, ...
	Email      string
	Phone      string
	Status     string // ONBOARDING, ACTIVE, INACTIVE
	AdvisorID  string // usuario asignado; vacío = sin asignar
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
