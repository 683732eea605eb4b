package compliance_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compliance-api/pkg/compliance"
)

func TestDefault_TablaIncorporadaValida(t *testing.T) {
	c, err := compliance.Default()
	require.NoError(t, err)
	assert.Equal(t, len(compliance.BuiltinRules()), c.Len(), "ninguna regla se pierde al cargar")
}

func TestDefault_CodigosUnicos(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range compliance.BuiltinRules() {
		assert.False(t, seen[r.Code], "código repetido: %s", r.Code)
		seen[r.Code] = true
	}
}

// Cada tipo de registro del enum tiene al menos una regla.
func TestDefault_CubreTodosLosTiposDeRegistro(t *testing.T) {
	c, err := compliance.Default()
	require.NoError(t, err)

	require.Len(t, compliance.RegistrationTypes, 23)
	for _, rt := range compliance.RegistrationTypes {
		assert.True(t, rt.Valid())
		assert.NotEmpty(t, rt.Label(), rt)
		assert.NotEmpty(t, c.ByRegistrationType(rt), "sin reglas para %s", rt)
	}
}

func TestDefault_BloqueGSTINCompleto(t *testing.T) {
	c, err := compliance.Default()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(c.ByRegistrationType(compliance.RegGSTIN)), 8)
}

func TestNewCatalogue_DuplicadoFalla(t *testing.T) {
	r := compliance.Rule{
		Code: "A", Name: "a", RegistrationType: compliance.RegPAN,
		Frequency: compliance.FrequencyMonthly, DueDay: 1,
	}
	_, err := compliance.NewCatalogue([]compliance.Rule{r, r})
	assert.ErrorIs(t, err, compliance.ErrDuplicateRuleCode)
}

func TestRuleValidate_Errores(t *testing.T) {
	cases := map[string]compliance.Rule{
		"tipo desconocido": {Code: "X", Name: "x", RegistrationType: "VAT", Frequency: compliance.FrequencyMonthly, DueDay: 1},
		"frecuencia desconocida": {Code: "X", Name: "x", RegistrationType: compliance.RegPAN, Frequency: "WEEKLY", DueDay: 1},
		"dia fuera de rango": {Code: "X", Name: "x", RegistrationType: compliance.RegPAN, Frequency: compliance.FrequencyMonthly, DueDay: 32},
		"mensual con anclas": {
			Code: "X", Name: "x", RegistrationType: compliance.RegPAN, Frequency: compliance.FrequencyMonthly, DueDay: 1,
			AnchorMonths: []time.Month{time.March},
		},
		"override fuera de anclas": {
			Code: "X", Name: "x", RegistrationType: compliance.RegPAN, Frequency: compliance.FrequencyQuarterly, DueDay: 1,
			AnchorMonths:    []time.Month{time.March, time.June},
			AnchorOverrides: map[time.Month]compliance.AnchorOverride{time.May: {DueDay: 1}},
		},
		"expiry con día": {Code: "X", Name: "x", RegistrationType: compliance.RegFSSAI, Frequency: compliance.FrequencyExpiryBased, DueDay: 5},
		"exclusión en trimestral": {
			Code: "X", Name: "x", RegistrationType: compliance.RegPAN, Frequency: compliance.FrequencyQuarterly, DueDay: 1,
			ExcludedMonths: []time.Month{time.March},
		},
		"exclusión duplicada": {
			Code: "X", Name: "x", RegistrationType: compliance.RegPAN, Frequency: compliance.FrequencyMonthly, DueDay: 1,
			ExcludedMonths: []time.Month{time.March, time.March},
		},
		"multa negativa": {
			Code: "X", Name: "x", RegistrationType: compliance.RegPAN, Frequency: compliance.FrequencyMonthly, DueDay: 1,
			LateFeePerDay: decimal.NewFromInt(-1),
		},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, r.Validate(), compliance.ErrInvalidRule)
		})
	}
}

func TestNewCatalogue_AcumulaErrores(t *testing.T) {
	bad := []compliance.Rule{
		{Code: "A", Name: "a", RegistrationType: "NOPE", Frequency: compliance.FrequencyMonthly, DueDay: 1},
		{Code: "B", Name: "b", RegistrationType: compliance.RegPAN, Frequency: "NOPE", DueDay: 1},
	}
	_, err := compliance.NewCatalogue(bad)
	require.Error(t, err)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 2)
}

func TestCatalogue_GetDevuelveCopia(t *testing.T) {
	c, err := compliance.Default()
	require.NoError(t, err)

	r, ok := c.Get("TDS_RETURN_24Q_26Q")
	require.True(t, ok)
	r.AnchorMonths[0] = time.February
	r.AnchorOverrides[time.March] = compliance.AnchorOverride{DueDay: 1}

	again, _ := c.Get("TDS_RETURN_24Q_26Q")
	assert.Equal(t, time.March, again.AnchorMonths[0])
	assert.Equal(t, 31, again.AnchorOverrides[time.March].DueDay)
}

const rulesYAML = `
rules:
  - code: GSTR_3B_MONTHLY
    name: GSTR-3B (extended)
    registration_type: GSTIN
    frequency: MONTHLY
    due_day: 24
    due_month_offset: 1
    grace_days: 2
    late_fee_per_day: "25"
    max_late_fee: "5000"
  - code: KA_PT_ANNUAL_RETURN
    name: Karnataka PT annual return
    registration_type: PROFESSIONAL_TAX
    frequency: YEARLY
    due_day: 30
    due_month_offset: 1
    anchor_months: [3]
    anchor_overrides:
      3: {due_day: 15, due_month_offset: 1}
  - code: KA_PT_QUARTERLY_RETURN
    name: Karnataka PT quarterly return
    registration_type: PROFESSIONAL_TAX
    frequency: QUARTERLY
    due_day: 20
    due_month_offset: 1
  - code: KA_PT_MONTHLY_DEPOSIT
    name: Karnataka PT deposit
    registration_type: PROFESSIONAL_TAX
    frequency: MONTHLY
    due_day: 20
    excluded_months: [3]
`

func TestLoad_ArchivoYAMLReemplazaYAgrega(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rulesYAML), 0o600))

	c, err := compliance.Load(path)
	require.NoError(t, err)
	assert.Equal(t, len(compliance.BuiltinRules())+3, c.Len())

	gst, ok := c.Get("GSTR_3B_MONTHLY")
	require.True(t, ok)
	assert.Equal(t, 24, gst.DueDay)
	assert.Equal(t, 2, gst.GraceDays)
	assert.True(t, decimal.NewFromInt(25).Equal(gst.LateFeePerDay))

	pt, ok := c.Get("KA_PT_ANNUAL_RETURN")
	require.True(t, ok)
	assert.Equal(t, []time.Month{time.March}, pt.AnchorMonths)
	assert.Equal(t, 15, pt.AnchorOverrides[time.March].DueDay)

	quarterly, ok := c.Get("KA_PT_QUARTERLY_RETURN")
	require.True(t, ok)
	assert.Empty(t, quarterly.AnchorMonths)
	assert.Equal(t, []time.Month{time.March, time.June, time.September, time.December}, quarterly.Anchors())
	assert.False(t, quarterly.AcceptsAnchor(time.May))

	deposit, ok := c.Get("KA_PT_MONTHLY_DEPOSIT")
	require.True(t, ok)
	assert.Equal(t, []time.Month{time.March}, deposit.ExcludedMonths)
	assert.False(t, deposit.AcceptsAnchor(time.March))
	assert.True(t, deposit.AcceptsAnchor(time.April))
}

func TestLoad_ArchivoInvalidoFallaRapido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - code: BAD\n    name: bad\n    registration_type: VAT\n    frequency: MONTHLY\n    due_day: 3\n"), 0o600))

	_, err := compliance.Load(path)
	assert.ErrorIs(t, err, compliance.ErrInvalidRule)
}

func TestLoad_SinArchivo(t *testing.T) {
	c, err := compliance.Load("")
	require.NoError(t, err)
	assert.Equal(t, len(compliance.BuiltinRules()), c.Len())

	_, err = compliance.Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}
