package tasks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/compliance-api/internal/domain/entity"
)

// CalendarEntry una línea del calendario PDF de un cliente.
type CalendarEntry struct {
	RuleCode     string
	RuleName     string
	Registration string // "GSTIN 29ABCDE1234F1Z5"
	PeriodLabel  string
	DueDate      time.Time
	GraceUntil   time.Time
	Status       string // estado de la tarea
	Aging        string // tramo de antigüedad
	LateFee      decimal.Decimal
}

// CalendarPDFGenerator puerto de salida para la representación PDF del calendario.
type CalendarPDFGenerator interface {
	GenerateCalendarPDF(
		ctx context.Context,
		company *entity.Company,
		customer *entity.Customer,
		asOf time.Time,
		entries []CalendarEntry,
	) ([]byte, error)
}
