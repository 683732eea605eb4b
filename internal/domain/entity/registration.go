package entity

import (
	"time"

	"github.com/jhoicas/compliance-api/pkg/compliance"
)

// Registration es un registro estatutario de un cliente (GSTIN, PAN, licencia FSSAI, ...).
// Las reglas EXPIRY_BASED de su tipo se resuelven contra ExpiresOn.
type Registration struct {
	ID         string
	CompanyID  string
	CustomerID string
	Type       compliance.RegistrationType
	Number     string
	State      string     // estado/UT emisor, texto libre
	IssuedOn   *time.Time // opcional
	ExpiresOn  *time.Time // nil = sin vencimiento registrado
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
