package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/application/duedates"
	"github.com/jhoicas/compliance-api/internal/domain/duedate"
	apphttp "github.com/jhoicas/compliance-api/internal/interfaces/http"
	"github.com/jhoicas/compliance-api/pkg/compliance"
	"github.com/jhoicas/compliance-api/pkg/logger"
	"github.com/jhoicas/compliance-api/pkg/validation"
)

func buildComplianceApp(t *testing.T) *fiber.App {
	t.Helper()
	cat, err := compliance.Default()
	require.NoError(t, err)
	uc := duedates.NewUseCase(duedate.NewResolver(cat), duedates.Options{
		Location:    time.UTC,
		DueSoonDays: 7,
		Now:         func() time.Time { return time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC) },
	})
	h := apphttp.NewComplianceHandler(uc, validation.New())

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Get("/rules", h.Rules)
	app.Get("/rules/:code", h.Rule)
	app.Get("/rules/:code/due-date", h.DueDate)
	app.Get("/calendar", h.Calendar)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&buf)
	return resp.StatusCode, buf
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestComplianceHandler_DueDate(t *testing.T) {
	app := buildComplianceApp(t)

	status, body := get(t, app, "/rules/GSTR_3B_MONTHLY/due-date?period=2024-01")
	require.Equal(t, http.StatusOK, status)
	var out dto.DueDateResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "2024-02-20", out.DueDate)
	assert.Equal(t, "Jan 2024", out.PeriodLabel)
}

func TestComplianceHandler_Errores(t *testing.T) {
	app := buildComplianceApp(t)

	cases := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"regla desconocida", "/rules/NOPE/due-date?period=2024-01", http.StatusNotFound, "UNKNOWN_RULE"},
		{"descriptor desconocido", "/rules/NOPE", http.StatusNotFound, "UNKNOWN_RULE"},
		{"mes ancla inválido", "/rules/TDS_RETURN_24Q_26Q/due-date?period=2024-02", http.StatusUnprocessableEntity, "INVALID_ANCHOR"},
		{"periodo mal formado", "/rules/GSTR_3B_MONTHLY/due-date?period=2024-13", http.StatusBadRequest, "VALIDATION"},
		{"falta periodo", "/rules/GSTR_3B_MONTHLY/due-date", http.StatusBadRequest, "VALIDATION"},
		{"tipo desconocido", "/rules?registration_type=VAT", http.StatusBadRequest, "VALIDATION"},
		{"calendario sin rango", "/calendar", http.StatusBadRequest, "VALIDATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, app, tc.target)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, decodeError(t, body).Code)
		})
	}
}

func TestComplianceHandler_ErroresPorCampo(t *testing.T) {
	app := buildComplianceApp(t)

	_, body := get(t, app, "/rules/GSTR_3B_MONTHLY/due-date?period=2024-13")
	assert.Contains(t, decodeError(t, body).Fields, "period")

	_, body = get(t, app, "/calendar?from=2024-01-01")
	fields := decodeError(t, body).Fields
	assert.Contains(t, fields, "to")
	assert.NotContains(t, fields, "from")
}

func TestComplianceHandler_Calendar(t *testing.T) {
	app := buildComplianceApp(t)

	status, body := get(t, app, "/calendar?registration_type=GSTIN&from=2024-02-01&to=2024-02-29")
	require.Equal(t, http.StatusOK, status)
	var out dto.CalendarResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Items)
	for i := 1; i < len(out.Items); i++ {
		assert.LessOrEqual(t, out.Items[i-1].DueDate, out.Items[i].DueDate, "ordenado por vencimiento")
	}
}

// ── RequireActiveCompany ──────────────────────────────────────────────────────

type fakeChecker struct {
	active bool
	err    error
}

func (f fakeChecker) IsActive(context.Context, string) (bool, error) { return f.active, f.err }

func TestRequireActiveCompany(t *testing.T) {
	build := func(checker fakeChecker) *fiber.App {
		app := fiber.New()
		app.Get("/protected",
			apphttp.AuthMiddleware(testJWTSecret),
			apphttp.RequireActiveCompany(checker),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
		)
		return app
	}

	resp := doRequest(t, build(fakeChecker{active: true}), tokenForRole(t, "viewer"))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, build(fakeChecker{active: false}), tokenForRole(t, "viewer"))
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, build(fakeChecker{err: errors.New("db caída")}), tokenForRole(t, "viewer"))
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
