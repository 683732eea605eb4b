package compliance

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency es la periodicidad de una obligación. Enum cerrado: cualquier valor
// fuera de la lista se rechaza al cargar el catálogo.
type Frequency string

const (
	FrequencyMonthly     Frequency = "MONTHLY"
	FrequencyQuarterly   Frequency = "QUARTERLY"
	FrequencyHalfYearly  Frequency = "HALF_YEARLY"
	FrequencyYearly      Frequency = "YEARLY"
	FrequencyExpiryBased Frequency = "EXPIRY_BASED"
)

// Frequencies lista todas las periodicidades soportadas.
var Frequencies = []Frequency{
	FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly, FrequencyExpiryBased,
}

// Valid indica si la periodicidad pertenece al enum.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly, FrequencyExpiryBased:
		return true
	}
	return false
}

// PeriodMonths número de meses cubiertos por un periodo (0 para EXPIRY_BASED).
func (f Frequency) PeriodMonths() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyHalfYearly:
		return 6
	case FrequencyYearly:
		return 12
	}
	return 0
}

// PeriodLabelType define cómo se etiqueta el periodo calculado.
type PeriodLabelType string

const (
	LabelMonth         PeriodLabelType = "MONTH"
	LabelQuarter       PeriodLabelType = "QUARTER"
	LabelHalfYear      PeriodLabelType = "HALF_YEAR"
	LabelFinancialYear PeriodLabelType = "FINANCIAL_YEAR"
	LabelCalendarYear  PeriodLabelType = "CALENDAR_YEAR"
	LabelExpiry        PeriodLabelType = "EXPIRY"
)

func (l PeriodLabelType) valid() bool {
	switch l {
	case LabelMonth, LabelQuarter, LabelHalfYear, LabelFinancialYear, LabelCalendarYear, LabelExpiry:
		return true
	}
	return false
}

// AnchorOverride reemplaza DueDay/DueMonthOffset para un mes ancla concreto.
type AnchorOverride struct {
	DueDay         int
	DueMonthOffset int
}

// Rule describe una obligación recurrente. Es configuración estática: no se modifica en runtime.
//
// Para periodicidades de calendario el mes ancla es el mes que cierra el periodo
// (ej. junio para Q1 del año fiscal indio); el vencimiento cae DueMonthOffset meses después.
type Rule struct {
	Code                          string
	Name                          string
	RegistrationType              RegistrationType
	Frequency                     Frequency
	DueDay                        int
	DueMonthOffset                int
	GraceDays                     int
	AnchorMonths                  []time.Month
	AnchorOverrides               map[time.Month]AnchorOverride
	ExcludedMonths                []time.Month // solo MONTHLY: periodos que resuelve otra regla
	PeriodLabelType               PeriodLabelType
	RenewalWindowDaysBeforeExpiry int
	PostExpiryGraceDays           int
	AutoTaskGenerationEnabled     bool
	LateFeePerDay                 decimal.Decimal // rupias por día; cero = sin multa
	MaxLateFee                    decimal.Decimal // tope; cero = sin tope
}

// IsCalendar indica si la regla se resuelve contra meses de calendario.
func (r Rule) IsCalendar() bool {
	return r.Frequency != FrequencyExpiryBased
}

// Anchors devuelve los meses que cierran un periodo de la regla. Sin AnchorMonths se usan los
// cierres de la periodicidad: trimestres fiscales, semestres fiscales, marzo (diciembre si la
// etiqueta es CALENDAR_YEAR). MONTHLY y EXPIRY_BASED no tienen meses ancla.
func (r Rule) Anchors() []time.Month {
	if len(r.AnchorMonths) > 0 {
		return append([]time.Month(nil), r.AnchorMonths...)
	}
	switch r.Frequency {
	case FrequencyQuarterly:
		return append([]time.Month(nil), quarterEnds...)
	case FrequencyHalfYearly:
		return append([]time.Month(nil), halfYearEnds...)
	case FrequencyYearly:
		if r.PeriodLabelType == LabelCalendarYear {
			return append([]time.Month(nil), cyEnd...)
		}
		return append([]time.Month(nil), fyEnd...)
	}
	return nil
}

// AcceptsAnchor indica si el mes puede anclar un periodo de la regla.
// MONTHLY acepta cualquier mes; el resto solo sus Anchors.
func (r Rule) AcceptsAnchor(m time.Month) bool {
	switch r.Frequency {
	case FrequencyExpiryBased:
		return false
	case FrequencyMonthly:
		for _, x := range r.ExcludedMonths {
			if x == m {
				return false
			}
		}
		return true
	}
	for _, a := range r.Anchors() {
		if a == m {
			return true
		}
	}
	return false
}

// EffectiveLabelType devuelve PeriodLabelType o el valor por defecto de la periodicidad.
func (r Rule) EffectiveLabelType() PeriodLabelType {
	if r.PeriodLabelType != "" {
		return r.PeriodLabelType
	}
	switch r.Frequency {
	case FrequencyMonthly:
		return LabelMonth
	case FrequencyQuarterly:
		return LabelQuarter
	case FrequencyHalfYearly:
		return LabelHalfYear
	case FrequencyYearly:
		return LabelFinancialYear
	case FrequencyExpiryBased:
		return LabelExpiry
	}
	return ""
}

// clone copia los campos de referencia para que el llamador no altere el catálogo.
func (r Rule) clone() Rule {
	if r.AnchorMonths != nil {
		r.AnchorMonths = append([]time.Month(nil), r.AnchorMonths...)
	}
	if r.ExcludedMonths != nil {
		r.ExcludedMonths = append([]time.Month(nil), r.ExcludedMonths...)
	}
	if r.AnchorOverrides != nil {
		ov := make(map[time.Month]AnchorOverride, len(r.AnchorOverrides))
		for k, v := range r.AnchorOverrides {
			ov[k] = v
		}
		r.AnchorOverrides = ov
	}
	return r
}

// ErrInvalidRule agrupa los errores de configuración de una regla.
var ErrInvalidRule = errors.New("regla de cumplimiento inválida")

// Validate comprueba los invariantes de la regla. Devuelve todos los fallos juntos.
func (r Rule) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if r.Code == "" {
		add("code es obligatorio")
	}
	if r.Name == "" {
		add("name es obligatorio")
	}
	if !r.RegistrationType.Valid() {
		add("registration type desconocido: %q", r.RegistrationType)
	}
	if !r.Frequency.Valid() {
		add("frequency desconocida: %q", r.Frequency)
	}
	if r.PeriodLabelType != "" && !r.PeriodLabelType.valid() {
		add("period label type desconocido: %q", r.PeriodLabelType)
	}
	if r.GraceDays < 0 {
		add("grace days no puede ser negativo")
	}
	if r.LateFeePerDay.IsNegative() || r.MaxLateFee.IsNegative() {
		add("late fee no puede ser negativo")
	}

	switch r.Frequency {
	case FrequencyExpiryBased:
		if r.DueDay != 0 || r.DueMonthOffset != 0 || len(r.AnchorMonths) > 0 || len(r.AnchorOverrides) > 0 {
			add("EXPIRY_BASED no admite campos de calendario")
		}
		if r.RenewalWindowDaysBeforeExpiry < 0 || r.PostExpiryGraceDays < 0 {
			add("ventanas de renovación no pueden ser negativas")
		}
	case FrequencyMonthly:
		if len(r.AnchorMonths) > 0 || len(r.AnchorOverrides) > 0 {
			add("MONTHLY no admite meses ancla")
		}
		validateExcluded(r.ExcludedMonths, add)
		validateCalendar(r, add)
	case FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly:
		validateCalendar(r, add)
	}
	if r.Frequency != FrequencyMonthly && len(r.ExcludedMonths) > 0 {
		add("excluded months solo aplica a MONTHLY")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w %s: %w", ErrInvalidRule, r.Code, errors.Join(errs...))
	}
	return nil
}

func validateExcluded(months []time.Month, add func(string, ...any)) {
	seen := make(map[time.Month]bool, len(months))
	for _, m := range months {
		if m < time.January || m > time.December {
			add("mes excluido fuera de rango: %d", m)
		}
		if seen[m] {
			add("mes excluido duplicado: %d", m)
		}
		seen[m] = true
	}
	if len(seen) >= 12 {
		add("MONTHLY no puede excluir todos los meses")
	}
}

func validateCalendar(r Rule, add func(string, ...any)) {
	if r.DueDay < 1 || r.DueDay > 31 {
		add("due day fuera de rango: %d", r.DueDay)
	}
	if r.DueMonthOffset < 0 {
		add("due month offset no puede ser negativo")
	}
	if r.RenewalWindowDaysBeforeExpiry != 0 || r.PostExpiryGraceDays != 0 {
		add("ventanas de renovación solo aplican a EXPIRY_BASED")
	}
	seen := make(map[time.Month]bool, len(r.AnchorMonths))
	for _, m := range r.AnchorMonths {
		if m < time.January || m > time.December {
			add("mes ancla fuera de rango: %d", m)
		}
		if seen[m] {
			add("mes ancla duplicado: %d", m)
		}
		seen[m] = true
	}
	anchors := make(map[time.Month]bool, 4)
	for _, m := range r.Anchors() {
		anchors[m] = true
	}
	for m, ov := range r.AnchorOverrides {
		if r.Frequency != FrequencyMonthly && !anchors[m] {
			add("override para mes %d que no es ancla", m)
		}
		if ov.DueDay < 1 || ov.DueDay > 31 {
			add("override %d: due day fuera de rango: %d", m, ov.DueDay)
		}
		if ov.DueMonthOffset < 0 {
			add("override %d: due month offset no puede ser negativo", m)
		}
	}
}
