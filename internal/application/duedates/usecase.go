// Package duedates expone el catálogo de reglas y el resolver de vencimientos a la capa HTTP.
package duedates

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/duedate"
	"github.com/jhoicas/compliance-api/pkg/compliance"
)

// maxCalendarDays limita el rango de un calendario para acotar la respuesta.
const maxCalendarDays = 366 * 2

// Options parámetros del motor.
type Options struct {
	Location    *time.Location
	DueSoonDays int
	Now         func() time.Time // nil = time.Now
}

// UseCase consultas sobre reglas y vencimientos. No tiene estado mutable.
type UseCase struct {
	resolver *duedate.Resolver
	opts     Options
}

// NewUseCase construye el caso de uso sobre el resolver.
func NewUseCase(resolver *duedate.Resolver, opts Options) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &UseCase{resolver: resolver, opts: opts}
}

// Today fecha actual en la zona configurada.
func (uc *UseCase) Today() time.Time {
	return uc.opts.Now().In(uc.opts.Location)
}

// RegistrationTypes el enum completo en orden estable.
func (uc *UseCase) RegistrationTypes() []dto.RegistrationTypeResponse {
	out := make([]dto.RegistrationTypeResponse, 0, len(compliance.RegistrationTypes))
	for _, t := range compliance.RegistrationTypes {
		out = append(out, dto.RegistrationTypeResponse{Code: string(t), Label: t.Label()})
	}
	return out
}

// Rules lista reglas, opcionalmente filtradas por tipo de registro.
func (uc *UseCase) Rules(registrationType string) ([]dto.RuleResponse, error) {
	var rules []compliance.Rule
	if registrationType == "" {
		rules = uc.resolver.Catalogue().Rules()
	} else {
		t := compliance.RegistrationType(registrationType)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: registration_type %q", domain.ErrInvalidInput, registrationType)
		}
		rules = uc.resolver.Catalogue().ByRegistrationType(t)
	}
	out := make([]dto.RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, ToRuleResponse(r))
	}
	return out, nil
}

// Rule obtiene una regla por código.
func (uc *UseCase) Rule(code string) (*dto.RuleResponse, error) {
	rule, err := uc.resolver.Rule(code)
	if err != nil {
		return nil, err
	}
	out := ToRuleResponse(rule)
	return &out, nil
}

// DueDate resuelve una regla. Las reglas de calendario requieren period=YYYY-MM;
// las EXPIRY_BASED requieren expiry=YYYY-MM-DD.
func (uc *UseCase) DueDate(code string, q dto.DueDateQuery) (*dto.DueDateResponse, error) {
	rule, err := uc.resolver.Rule(code)
	if err != nil {
		return nil, err
	}
	var anchor time.Time
	if rule.IsCalendar() {
		if q.Period == "" {
			return nil, fmt.Errorf("%w: period (YYYY-MM) es requerido para %s", domain.ErrInvalidInput, code)
		}
		if anchor, err = dto.ParseMonth(q.Period, uc.opts.Location); err != nil {
			return nil, fmt.Errorf("%w: period debe ser YYYY-MM", domain.ErrInvalidInput)
		}
	} else {
		if q.Expiry == "" {
			return nil, fmt.Errorf("%w: expiry (YYYY-MM-DD) es requerido para %s", domain.ErrInvalidInput, code)
		}
		if anchor, err = dto.ParseDate(q.Expiry, uc.opts.Location); err != nil {
			return nil, fmt.Errorf("%w: expiry debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	res, err := duedate.ComputeDueDate(rule, anchor)
	if err != nil {
		return nil, err
	}
	out := uc.toDueDateResponse(res)
	return &out, nil
}

// Calendar vencimientos de los tipos indicados (lista separada por comas; vacío = todos) en [from, to].
func (uc *UseCase) Calendar(q dto.CalendarQuery) (*dto.CalendarResponse, error) {
	from, err := dto.ParseDate(q.From, uc.opts.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: from debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	to, err := dto.ParseDate(q.To, uc.opts.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: to debe ser YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to anterior a from", domain.ErrInvalidInput)
	}
	if duedate.DaysBetween(from, to) > maxCalendarDays {
		return nil, fmt.Errorf("%w: rango máximo %d días", domain.ErrInvalidInput, maxCalendarDays)
	}
	types, err := ParseRegistrationTypes(q.RegistrationTypes)
	if err != nil {
		return nil, err
	}
	results := uc.resolver.Calendar(types, from, to)
	items := make([]dto.DueDateResponse, 0, len(results))
	for _, res := range results {
		items = append(items, uc.toDueDateResponse(res))
	}
	return &dto.CalendarResponse{From: q.From, To: q.To, Items: items}, nil
}

// ParseRegistrationTypes "GSTIN,TAN" -> tipos validados, sin duplicados.
func ParseRegistrationTypes(csv string) ([]compliance.RegistrationType, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	seen := map[compliance.RegistrationType]bool{}
	var out []compliance.RegistrationType
	for _, part := range strings.Split(csv, ",") {
		t := compliance.RegistrationType(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if !t.Valid() {
			return nil, fmt.Errorf("%w: registration_type %q", domain.ErrInvalidInput, t)
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

func (uc *UseCase) toDueDateResponse(res duedate.Result) dto.DueDateResponse {
	return dto.DueDateResponse{
		RuleCode:     res.RuleCode,
		PeriodLabel:  res.PeriodLabel,
		PeriodStart:  dto.FormatDate(res.PeriodStart),
		PeriodEnd:    dto.FormatDate(res.PeriodEnd),
		DueDate:      dto.FormatDate(res.DueDate),
		GraceUntil:   dto.FormatDate(res.GraceUntil),
		ReminderFrom: dto.FormatOptionalDate(res.ReminderFrom),
		Status:       string(duedate.StatusAt(res, uc.Today(), uc.opts.DueSoonDays)),
	}
}

// ToRuleResponse proyecta una regla del catálogo.
func ToRuleResponse(r compliance.Rule) dto.RuleResponse {
	out := dto.RuleResponse{
		Code:                          r.Code,
		Name:                          r.Name,
		RegistrationType:              string(r.RegistrationType),
		Frequency:                     string(r.Frequency),
		DueDay:                        r.DueDay,
		DueMonthOffset:                r.DueMonthOffset,
		GraceDays:                     r.GraceDays,
		PeriodLabelType:               string(r.EffectiveLabelType()),
		RenewalWindowDaysBeforeExpiry: r.RenewalWindowDaysBeforeExpiry,
		PostExpiryGraceDays:           r.PostExpiryGraceDays,
		AutoTaskGenerationEnabled:     r.AutoTaskGenerationEnabled,
		LateFeePerDay:                 r.LateFeePerDay.StringFixed(2),
		MaxLateFee:                    r.MaxLateFee.StringFixed(2),
	}
	for _, m := range r.Anchors() {
		out.AnchorMonths = append(out.AnchorMonths, int(m))
	}
	for _, m := range r.ExcludedMonths {
		out.ExcludedMonths = append(out.ExcludedMonths, int(m))
	}
	for m, ov := range r.AnchorOverrides {
		out.AnchorOverrides = append(out.AnchorOverrides, dto.AnchorOverrideResponse{
			AnchorMonth: int(m), DueDay: ov.DueDay, DueMonthOffset: ov.DueMonthOffset,
		})
	}
	sort.Slice(out.AnchorOverrides, func(i, j int) bool {
		return out.AnchorOverrides[i].AnchorMonth < out.AnchorOverrides[j].AnchorMonth
	})
	return out
}
