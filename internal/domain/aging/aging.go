// Package aging clasifica tareas abiertas en tramos de antigüedad respecto a su vencimiento.
package aging

import (
	"time"

	"github.com/jhoicas/compliance-api/internal/domain/duedate"
)

// Bucket tramo de antigüedad.
type Bucket string

const (
	NotDue        Bucket = "NOT_DUE"
	DueSoon       Bucket = "DUE_SOON"
	InGrace       Bucket = "IN_GRACE"
	Overdue1To15  Bucket = "OVERDUE_1_15"
	Overdue16To30 Bucket = "OVERDUE_16_30"
	Overdue31To60 Bucket = "OVERDUE_31_60"
	Overdue60Plus Bucket = "OVERDUE_60_PLUS"
)

// Buckets en orden de severidad creciente.
var Buckets = []Bucket{NotDue, DueSoon, InGrace, Overdue1To15, Overdue16To30, Overdue31To60, Overdue60Plus}

// Classify ubica una tarea abierta. Los días de atraso se cuentan desde graceUntil.
func Classify(dueDate, graceUntil, today time.Time, dueSoonDays int) Bucket {
	late := duedate.DaysBetween(graceUntil, today)
	switch {
	case late > 60:
		return Overdue60Plus
	case late > 30:
		return Overdue31To60
	case late > 15:
		return Overdue16To30
	case late > 0:
		return Overdue1To15
	}
	toDue := duedate.DaysBetween(today, dueDate)
	switch {
	case toDue < 0:
		return InGrace
	case toDue <= dueSoonDays:
		return DueSoon
	}
	return NotDue
}

// NeedsAttention indica si el tramo requiere seguimiento (DUE_SOON o peor).
func NeedsAttention(b Bucket) bool {
	return b != NotDue && b != ""
}

// Summary cuenta tareas por tramo.
type Summary map[Bucket]int

// NewSummary inicializa todos los tramos en cero.
func NewSummary() Summary {
	s := make(Summary, len(Buckets))
	for _, b := range Buckets {
		s[b] = 0
	}
	return s
}

// Attention total de tareas que requieren seguimiento.
func (s Summary) Attention() int {
	var n int
	for b, c := range s {
		if NeedsAttention(b) {
			n += c
		}
	}
	return n
}
