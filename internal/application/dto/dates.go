package dto

import "time"

// Formatos de fecha del API.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// FormatDate fecha civil YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatOptionalDate "" para la fecha cero.
func FormatOptionalDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate interpreta YYYY-MM-DD como medianoche en loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// ParseMonth interpreta YYYY-MM como el día 1 del mes en loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, s, loc)
}
