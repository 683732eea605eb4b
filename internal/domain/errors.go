package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Resolución de vencimientos.
	ErrUnknownRuleCode      = errors.New("código de regla desconocido")
	ErrInvalidAnchor        = errors.New("mes ancla no válido para la regla")
	ErrUnsupportedFrequency = errors.New("periodicidad no soportada")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
)
