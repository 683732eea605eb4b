package duedate

import (
	"fmt"
	"time"

	catalog "github.com/jhoicas/compliance-api/pkg/compliance"
)

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func monthEnd(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, -1)
}

// dayInMonth fija el día del mes de t, limitándolo al último día del mes (31 → 30, 29 o 28).
func dayInMonth(t time.Time, day int) time.Time {
	last := monthEnd(t).Day()
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	y, m, _ := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween días de calendario de a hasta b (negativo si b es anterior). Ignora horas y DST.
// Cuenta sobre segundos Unix: time.Duration se satura a los ~292 años.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / secondsPerDay)
}

// fiscalYearStart año en que comienza el año fiscal indio (abril–marzo) que contiene t.
func fiscalYearStart(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// fiscalMonthIndex posición del mes en el año fiscal (abril = 0, marzo = 11).
func fiscalMonthIndex(m time.Month) int {
	return (int(m) - int(time.April) + 12) % 12
}

func fyTag(start int) string {
	return fmt.Sprintf("FY%d-%02d", start, (start+1)%100)
}

// periodLabel etiqueta el periodo cuyo mes de cierre (o fecha de vencimiento) es t.
func periodLabel(kind catalog.PeriodLabelType, t time.Time) string {
	switch kind {
	case catalog.LabelMonth:
		return t.Format("Jan 2006")
	case catalog.LabelQuarter:
		return fmt.Sprintf("Q%d %s", fiscalMonthIndex(t.Month())/3+1, fyTag(fiscalYearStart(t)))
	case catalog.LabelHalfYear:
		return fmt.Sprintf("H%d %s", fiscalMonthIndex(t.Month())/6+1, fyTag(fiscalYearStart(t)))
	case catalog.LabelFinancialYear:
		start := fiscalYearStart(t)
		return fmt.Sprintf("FY %d-%02d", start, (start+1)%100)
	case catalog.LabelCalendarYear:
		return fmt.Sprintf("CY %d", t.Year())
	case catalog.LabelExpiry:
		return "Expiry " + t.Format("2006-01-02")
	}
	return t.Format("2006-01")
}
