// Package duedate resuelve fechas de vencimiento de obligaciones de cumplimiento a partir
// del catálogo de reglas. Todo el cálculo es puro: sin I/O ni estado mutable.
package duedate

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/compliance-api/internal/domain"
	catalog "github.com/jhoicas/compliance-api/pkg/compliance"
)

// lookbackMonths cubre el mayor DueMonthOffset posible más un año completo.
const lookbackMonths = 24

// Result es una instancia concreta de obligación.
type Result struct {
	RuleCode     string
	PeriodLabel  string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	DueDate      time.Time
	GraceUntil   time.Time
	ReminderFrom time.Time // solo EXPIRY_BASED; cero en el resto
}

// ComputeDueDate calcula el vencimiento de rule para el ancla dada.
//
// Periodicidades de calendario: periodAnchor se interpreta como mes (día y hora se ignoran).
// EXPIRY_BASED: periodAnchor es la fecha de vencimiento registrada del activo.
func ComputeDueDate(rule catalog.Rule, periodAnchor time.Time) (Result, error) {
	switch rule.Frequency {
	case catalog.FrequencyMonthly:
		if !rule.AcceptsAnchor(periodAnchor.Month()) {
			return Result{}, fmt.Errorf("%w: %s excluye %s", domain.ErrInvalidAnchor, rule.Code, periodAnchor.Month())
		}
		return monthly(rule, periodAnchor), nil
	case catalog.FrequencyQuarterly, catalog.FrequencyHalfYearly, catalog.FrequencyYearly:
		return anchored(rule, periodAnchor)
	case catalog.FrequencyExpiryBased:
		return expiry(rule, periodAnchor), nil
	default:
		return Result{}, fmt.Errorf("%w: %q (regla %s)", domain.ErrUnsupportedFrequency, rule.Frequency, rule.Code)
	}
}

func monthly(rule catalog.Rule, anchor time.Time) Result {
	start := monthStart(anchor)
	due := dayInMonth(start.AddDate(0, rule.DueMonthOffset, 0), rule.DueDay)
	return Result{
		RuleCode:    rule.Code,
		PeriodLabel: periodLabel(rule.EffectiveLabelType(), start),
		PeriodStart: start,
		PeriodEnd:   monthEnd(start),
		DueDate:     due,
		GraceUntil:  due.AddDate(0, 0, rule.GraceDays),
	}
}

func anchored(rule catalog.Rule, anchor time.Time) (Result, error) {
	closing := monthStart(anchor)
	if !rule.AcceptsAnchor(closing.Month()) {
		return Result{}, fmt.Errorf("%w: %s no acepta %s", domain.ErrInvalidAnchor, rule.Code, closing.Month())
	}
	day, offset := rule.DueDay, rule.DueMonthOffset
	if ov, ok := rule.AnchorOverrides[closing.Month()]; ok {
		day, offset = ov.DueDay, ov.DueMonthOffset
	}
	due := dayInMonth(closing.AddDate(0, offset, 0), day)
	return Result{
		RuleCode:    rule.Code,
		PeriodLabel: periodLabel(rule.EffectiveLabelType(), closing),
		PeriodStart: closing.AddDate(0, 1-rule.Frequency.PeriodMonths(), 0),
		PeriodEnd:   monthEnd(closing),
		DueDate:     due,
		GraceUntil:  due.AddDate(0, 0, rule.GraceDays),
	}, nil
}

func expiry(rule catalog.Rule, expiresOn time.Time) Result {
	due := dayStart(expiresOn)
	return Result{
		RuleCode:     rule.Code,
		PeriodLabel:  periodLabel(rule.EffectiveLabelType(), due),
		PeriodStart:  due.AddDate(0, 0, -rule.RenewalWindowDaysBeforeExpiry),
		PeriodEnd:    due,
		DueDate:      due,
		GraceUntil:   due.AddDate(0, 0, rule.PostExpiryGraceDays),
		ReminderFrom: due.AddDate(0, 0, -rule.RenewalWindowDaysBeforeExpiry),
	}
}

// Occurrences devuelve las instancias de una regla de calendario cuyo vencimiento cae en
// [from, to] (ambos inclusive, a nivel de día). Las reglas EXPIRY_BASED no tienen
// ocurrencias de calendario: dependen de la fecha de vencimiento del registro.
func Occurrences(rule catalog.Rule, from, to time.Time) []Result {
	if !rule.IsCalendar() {
		return nil
	}
	fromDay, toDay := dayStart(from), dayStart(to)
	if toDay.Before(fromDay) {
		return nil
	}
	var out []Result
	last := monthStart(toDay)
	for m := monthStart(fromDay).AddDate(0, -lookbackMonths, 0); !m.After(last); m = m.AddDate(0, 1, 0) {
		if !rule.AcceptsAnchor(m.Month()) {
			continue
		}
		res, err := ComputeDueDate(rule, m)
		if err != nil {
			continue
		}
		if res.DueDate.Before(fromDay) || res.DueDate.After(toDay) {
			continue
		}
		out = append(out, res)
	}
	return out
}

// Resolver es el punto de entrada por código de regla sobre un catálogo inmutable.
type Resolver struct {
	catalogue *catalog.Catalogue
}

// NewResolver construye el resolver.
func NewResolver(c *catalog.Catalogue) *Resolver {
	return &Resolver{catalogue: c}
}

// Catalogue devuelve el catálogo subyacente.
func (r *Resolver) Catalogue() *catalog.Catalogue { return r.catalogue }

// Rule busca una regla; ErrUnknownRuleCode si no existe.
func (r *Resolver) Rule(code string) (catalog.Rule, error) {
	rule, ok := r.catalogue.Get(code)
	if !ok {
		return catalog.Rule{}, fmt.Errorf("%w: %s", domain.ErrUnknownRuleCode, code)
	}
	return rule, nil
}

// Resolve calcula el vencimiento para (ruleCode, periodAnchor).
func (r *Resolver) Resolve(ruleCode string, periodAnchor time.Time) (Result, error) {
	rule, err := r.Rule(ruleCode)
	if err != nil {
		return Result{}, err
	}
	return ComputeDueDate(rule, periodAnchor)
}

// Calendar devuelve todas las ocurrencias de reglas de calendario de los tipos indicados
// (todos si types está vacío) con vencimiento en [from, to], ordenadas por fecha y código.
func (r *Resolver) Calendar(types []catalog.RegistrationType, from, to time.Time) []Result {
	want := make(map[catalog.RegistrationType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []Result
	for _, rule := range r.catalogue.Rules() {
		if len(want) > 0 && !want[rule.RegistrationType] {
			continue
		}
		out = append(out, Occurrences(rule, from, to)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].RuleCode < out[j].RuleCode
	})
	return out
}
