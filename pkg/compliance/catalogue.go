package compliance

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateRuleCode se devuelve si dos reglas comparten código.
var ErrDuplicateRuleCode = errors.New("código de regla duplicado")

// Catalogue es la tabla de reglas validada e inmutable. Segura para uso concurrente:
// después de construirse no se modifica y los getters devuelven copias.
type Catalogue struct {
	byCode map[string]Rule
	order  []string
}

// NewCatalogue valida las reglas y construye el catálogo. Cualquier error de
// configuración se acumula y se devuelve junto (el arranque debe abortar).
func NewCatalogue(rules []Rule) (*Catalogue, error) {
	c := &Catalogue{byCode: make(map[string]Rule, len(rules))}
	var errs []error
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := c.byCode[r.Code]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateRuleCode, r.Code))
			continue
		}
		c.byCode[r.Code] = r.clone()
		c.order = append(c.order, r.Code)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Default construye el catálogo con la tabla incorporada.
func Default() (*Catalogue, error) {
	return NewCatalogue(builtinRules)
}

// BuiltinRules devuelve una copia de la tabla incorporada.
func BuiltinRules() []Rule {
	out := make([]Rule, 0, len(builtinRules))
	for _, r := range builtinRules {
		out = append(out, r.clone())
	}
	return out
}

// Load construye el catálogo incorporado y, si path no está vacío, le aplica las reglas
// del archivo YAML: un código existente reemplaza a la regla incorporada, uno nuevo se añade.
func Load(path string) (*Catalogue, error) {
	rules := BuiltinRules()
	if path == "" {
		return NewCatalogue(rules)
	}
	extra, err := ReadRulesFile(path)
	if err != nil {
		return nil, err
	}
	return NewCatalogue(Merge(rules, extra))
}

// Merge combina base y overrides por código conservando el orden de base.
func Merge(base, overrides []Rule) []Rule {
	idx := make(map[string]int, len(base))
	out := make([]Rule, len(base))
	copy(out, base)
	for i, r := range out {
		idx[r.Code] = i
	}
	for _, r := range overrides {
		if i, ok := idx[r.Code]; ok {
			out[i] = r
			continue
		}
		idx[r.Code] = len(out)
		out = append(out, r)
	}
	return out
}

// Get devuelve la regla por código.
func (c *Catalogue) Get(code string) (Rule, bool) {
	r, ok := c.byCode[code]
	if !ok {
		return Rule{}, false
	}
	return r.clone(), true
}

// Len número de reglas.
func (c *Catalogue) Len() int { return len(c.order) }

// Rules devuelve todas las reglas en el orden de carga.
func (c *Catalogue) Rules() []Rule {
	out := make([]Rule, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.byCode[code].clone())
	}
	return out
}

// ByRegistrationType devuelve las reglas de un tipo de registro.
func (c *Catalogue) ByRegistrationType(t RegistrationType) []Rule {
	var out []Rule
	for _, code := range c.order {
		if r := c.byCode[code]; r.RegistrationType == t {
			out = append(out, r.clone())
		}
	}
	return out
}

// ── YAML ─────────────────────────────────────────────────────────────────────

type rulesFile struct {
	Rules []ruleDocument `yaml:"rules"`
}

type overrideDocument struct {
	DueDay         int `yaml:"due_day"`
	DueMonthOffset int `yaml:"due_month_offset"`
}

type ruleDocument struct {
	Code                          string                   `yaml:"code"`
	Name                          string                   `yaml:"name"`
	RegistrationType              string                   `yaml:"registration_type"`
	Frequency                     string                   `yaml:"frequency"`
	DueDay                        int                      `yaml:"due_day"`
	DueMonthOffset                int                      `yaml:"due_month_offset"`
	GraceDays                     int                      `yaml:"grace_days"`
	AnchorMonths                  []int                    `yaml:"anchor_months"`
	AnchorOverrides               map[int]overrideDocument `yaml:"anchor_overrides"`
	ExcludedMonths                []int                    `yaml:"excluded_months"`
	PeriodLabelType               string                   `yaml:"period_label_type"`
	RenewalWindowDaysBeforeExpiry int                      `yaml:"renewal_window_days_before_expiry"`
	PostExpiryGraceDays           int                      `yaml:"post_expiry_grace_days"`
	AutoTaskGenerationEnabled     bool                     `yaml:"auto_task_generation_enabled"`
	LateFeePerDay                 string                   `yaml:"late_fee_per_day"`
	MaxLateFee                    string                   `yaml:"max_late_fee"`
}

// ReadRulesFile lee reglas desde un archivo YAML con la forma:
//
//	rules:
//	  - code: GSTR_3B_MONTHLY
//	    registration_type: GSTIN
//	    frequency: MONTHLY
//	    due_day: 20
//	    due_month_offset: 1
func ReadRulesFile(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer archivo de reglas: %w", err)
	}
	return ParseRules(raw)
}

// ParseRules decodifica el YAML de reglas. No valida invariantes: eso lo hace NewCatalogue.
func ParseRules(raw []byte) ([]Rule, error) {
	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decodificar reglas YAML: %w", err)
	}
	out := make([]Rule, 0, len(f.Rules))
	for _, d := range f.Rules {
		r, err := d.toRule()
		if err != nil {
			return nil, fmt.Errorf("regla %s: %w", d.Code, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func (d ruleDocument) toRule() (Rule, error) {
	r := Rule{
		Code:                          d.Code,
		Name:                          d.Name,
		RegistrationType:              RegistrationType(d.RegistrationType),
		Frequency:                     Frequency(d.Frequency),
		DueDay:                        d.DueDay,
		DueMonthOffset:                d.DueMonthOffset,
		GraceDays:                     d.GraceDays,
		PeriodLabelType:               PeriodLabelType(d.PeriodLabelType),
		RenewalWindowDaysBeforeExpiry: d.RenewalWindowDaysBeforeExpiry,
		PostExpiryGraceDays:           d.PostExpiryGraceDays,
		AutoTaskGenerationEnabled:     d.AutoTaskGenerationEnabled,
	}
	for _, m := range d.AnchorMonths {
		r.AnchorMonths = append(r.AnchorMonths, time.Month(m))
	}
	sort.Slice(r.AnchorMonths, func(i, j int) bool { return r.AnchorMonths[i] < r.AnchorMonths[j] })
	for _, m := range d.ExcludedMonths {
		r.ExcludedMonths = append(r.ExcludedMonths, time.Month(m))
	}
	if len(d.AnchorOverrides) > 0 {
		r.AnchorOverrides = make(map[time.Month]AnchorOverride, len(d.AnchorOverrides))
		for m, ov := range d.AnchorOverrides {
			r.AnchorOverrides[time.Month(m)] = AnchorOverride{DueDay: ov.DueDay, DueMonthOffset: ov.DueMonthOffset}
		}
	}
	var err error
	if r.LateFeePerDay, err = parseAmount(d.LateFeePerDay); err != nil {
		return Rule{}, fmt.Errorf("late_fee_per_day: %w", err)
	}
	if r.MaxLateFee, err = parseAmount(d.MaxLateFee); err != nil {
		return Rule{}, fmt.Errorf("max_late_fee: %w", err)
	}
	return r, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
