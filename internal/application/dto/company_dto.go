package dto

import "time"

// CreateCompanyRequest entrada para crear una firma asesora.
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	PAN     string `json:"pan" validate:"required,pan"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse salida de una firma.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PAN       string    `json:"pan"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
