package entity

import "time"

// Company representa la firma asesora (tenant del sistema).
type Company struct {
	ID        string
	Name      string
	PAN       string // PAN de la firma; único
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
