package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleAdvisor = "advisor"
	RoleViewer  = "viewer"
)

// ValidRoles roles aceptados en registro.
var ValidRoles = map[string]bool{RoleAdmin: true, RoleAdvisor: true, RoleViewer: true}

// User representa un usuario interno de la firma (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, advisor, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
