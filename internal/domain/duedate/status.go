package duedate

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/jhoicas/compliance-api/pkg/compliance"
)

// Status estado de una instancia respecto a una fecha de referencia.
type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusDueSoon  Status = "DUE_SOON"
	StatusInGrace  Status = "IN_GRACE"
	StatusOverdue  Status = "OVERDUE"
)

// StatusAt clasifica res respecto a today. Para EXPIRY_BASED la ventana de renovación
// (ReminderFrom) sustituye a dueSoonDays.
func StatusAt(res Result, today time.Time, dueSoonDays int) Status {
	switch {
	case DaysBetween(res.GraceUntil, today) > 0:
		return StatusOverdue
	case DaysBetween(res.DueDate, today) > 0:
		return StatusInGrace
	}
	if !res.ReminderFrom.IsZero() {
		if DaysBetween(res.ReminderFrom, today) >= 0 {
			return StatusDueSoon
		}
		return StatusUpcoming
	}
	if DaysBetween(today, res.DueDate) <= dueSoonDays {
		return StatusDueSoon
	}
	return StatusUpcoming
}

// LateFee multa acumulada si la obligación se cumple en settledOn:
// min(MaxLateFee, LateFeePerDay × días posteriores a GraceUntil). Cero dentro de la gracia.
func LateFee(rule catalog.Rule, res Result, settledOn time.Time) decimal.Decimal {
	days := DaysBetween(res.GraceUntil, settledOn)
	if days <= 0 || rule.LateFeePerDay.IsZero() {
		return decimal.Zero
	}
	fee := rule.LateFeePerDay.Mul(decimal.NewFromInt(int64(days)))
	if rule.MaxLateFee.IsPositive() && fee.GreaterThan(rule.MaxLateFee) {
		return rule.MaxLateFee
	}
	return fee
}
