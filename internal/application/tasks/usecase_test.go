package tasks_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/application/tasks"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/aging"
	"github.com/jhoicas/compliance-api/internal/domain/duedate"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/pkg/compliance"
)

const (
	companyID  = "c-1"
	customerID = "cu-1"
)

type fixture struct {
	uc   *tasks.UseCase
	repo *memTasks
	regs *memRegistrations
	cust *memCustomers
	pdf  *fakePDF

	companies *memCompanies
}

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func newFixture(t *testing.T, today time.Time) *fixture {
	t.Helper()
	cat, err := compliance.Default()
	require.NoError(t, err)

	f := &fixture{
		repo: newMemTasks(),
		regs: &memRegistrations{},
		cust: &memCustomers{list: []*entity.Customer{
			{ID: customerID, CompanyID: companyID, Name: "Sharma Traders Pvt Ltd", Status: entity.CustomerActive},
		}},
		pdf: &fakePDF{},
	}
	f.companies = &memCompanies{list: []*entity.Company{
		{ID: companyID, Name: "Iyer & Co", PAN: "AAAFI1234K", Status: "active"},
		{ID: "c-susp", Name: "Menon Associates", PAN: "AAAFM5678L", Status: "suspended"},
	}}
	f.uc = tasks.NewUseCase(duedate.NewResolver(cat), f.repo, f.cust, f.regs, f.companies, f.pdf, nil, tasks.Options{
		Location:     time.UTC,
		DueSoonDays:  7,
		HorizonDays:  60,
		LookbackDays: 10,
		Now:          func() time.Time { return today.Add(15 * time.Hour) },
	})
	return f
}

func (f *fixture) addReg(id string, typ compliance.RegistrationType, expires *time.Time) {
	f.regs.list = append(f.regs.list, &entity.Registration{
		ID: id, CompanyID: companyID, CustomerID: customerID, Type: typ, Number: id, ExpiresOn: expires,
	})
}

// ── Generación ────────────────────────────────────────────────────────────────

func TestGenerate_GSTINVentana(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	f.addReg("r-gst", compliance.RegGSTIN, nil)

	out, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-05-01", To: "2024-06-30",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Created, "GSTR-1 y GSTR-3B de abril y mayo")
	assert.Equal(t, 0, out.Skipped)

	gst3b := f.repo.byCode("GSTR_3B_MONTHLY")
	require.Len(t, gst3b, 2)
	assert.Equal(t, "Apr 2024", gst3b[0].PeriodLabel)
	assert.Equal(t, date(2024, time.May, 20), gst3b[0].DueDate)
	assert.Equal(t, entity.TaskPending, gst3b[0].Status)
	assert.Empty(t, f.repo.byCode("GSTR_7_MONTHLY"), "reglas sin generación automática se omiten")
}

func TestGenerate_TANUnSoloDepositoDeMarzo(t *testing.T) {
	f := newFixture(t, date(2024, time.April, 1))
	f.addReg("r-tan", compliance.RegTAN, nil)

	_, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-03-01", To: "2024-05-31",
	})
	require.NoError(t, err)

	monthly := f.repo.byCode("TDS_PAYMENT_MONTHLY")
	require.Len(t, monthly, 2, "febrero y abril; marzo no")
	for _, task := range monthly {
		assert.NotEqual(t, date(2024, time.April, 7), task.DueDate)
	}
	march := f.repo.byCode("TDS_PAYMENT_MARCH")
	require.Len(t, march, 1)
	assert.Equal(t, date(2024, time.April, 30), march[0].DueDate)
}

func TestGenerate_Idempotente(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	f.addReg("r-gst", compliance.RegGSTIN, nil)
	in := dto.GenerateTasksRequest{From: "2024-05-01", To: "2024-06-30"}

	_, err := f.uc.Generate(context.Background(), companyID, customerID, in)
	require.NoError(t, err)
	again, err := f.uc.Generate(context.Background(), companyID, customerID, in)
	require.NoError(t, err)

	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 4, again.Skipped)
	assert.Len(t, f.repo.byID, 4)
}

func TestGenerate_RenovacionPorVencimiento(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	f.addReg("r-fssai", compliance.RegFSSAI, datePtr(2024, time.September, 30))
	f.addReg("r-fssai-sin-fecha", compliance.RegFSSAI, nil)

	_, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-05-01", To: "2024-06-30",
	})
	require.NoError(t, err)

	renewals := f.repo.byCode("FSSAI_LICENSE_RENEWAL")
	require.Len(t, renewals, 1, "el registro sin vencimiento no genera renovación")
	r := renewals[0]
	assert.Equal(t, "r-fssai", r.RegistrationID)
	assert.Equal(t, date(2024, time.September, 30), r.DueDate)
	require.NotNil(t, r.ReminderFrom)
	assert.Equal(t, date(2024, time.June, 2), *r.ReminderFrom)
	assert.Equal(t, "Expiry 2024-09-30", r.PeriodLabel)

	// D-1 del FY 2023-24 vence el 31 de mayo para ambos registros.
	assert.Len(t, f.repo.byCode("FSSAI_ANNUAL_RETURN_D1"), 2)
}

func TestGenerate_RenovacionFueraDeVentana(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	f.addReg("r-fssai", compliance.RegFSSAI, datePtr(2025, time.March, 31))

	_, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-05-01", To: "2024-06-30",
	})
	require.NoError(t, err)
	assert.Empty(t, f.repo.byCode("FSSAI_LICENSE_RENEWAL"), "el aviso empieza el 2024-12-01")
}

func TestGenerate_VentanaPorDefecto(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 15))
	f.addReg("r-gst", compliance.RegGSTIN, nil)

	out, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-05", out.From)
	assert.Equal(t, "2024-07-14", out.To)
	// 11 y 20 de mayo, junio y julio (julio 20 queda fuera).
	assert.Equal(t, 5, out.Created)
}

func TestGenerate_Errores(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	ctx := context.Background()

	_, err := f.uc.Generate(ctx, companyID, "no-existe", dto.GenerateTasksRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Generate(ctx, companyID, customerID, dto.GenerateTasksRequest{From: "2024-06-01", To: "2024-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Generate(ctx, companyID, customerID, dto.GenerateTasksRequest{From: "2024-01-01", To: "2027-01-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Generate(ctx, companyID, customerID, dto.GenerateTasksRequest{From: "01/05/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.cust.list[0].Status = entity.CustomerInactive
	_, err = f.uc.Generate(ctx, companyID, customerID, dto.GenerateTasksRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGenerateForCompany_OmiteInactivos(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	f.addReg("r-gst", compliance.RegGSTIN, nil)
	f.cust.list = append(f.cust.list, &entity.Customer{ID: "cu-2", CompanyID: companyID, Status: entity.CustomerInactive})
	f.regs.list = append(f.regs.list, &entity.Registration{ID: "r-2", CompanyID: companyID, CustomerID: "cu-2", Type: compliance.RegGSTIN})

	res, err := f.uc.GenerateForCompany(context.Background(), companyID, date(2024, time.May, 1), date(2024, time.June, 30))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	for _, task := range f.repo.byID {
		assert.Equal(t, customerID, task.CustomerID)
	}
}

func TestCompanyTargets(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	ctx := context.Background()

	all, err := f.uc.CompanyTargets(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{companyID}, all, "solo firmas activas")

	one, err := f.uc.CompanyTargets(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, []string{companyID}, one)

	_, err = f.uc.CompanyTargets(ctx, "c-susp")
	assert.ErrorIs(t, err, domain.ErrForbidden, "una firma suspendida no se genera aunque se pida explícitamente")

	_, err = f.uc.CompanyTargets(ctx, "c-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateForCompany_VentanaInvalida(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 1))
	_, err := f.uc.GenerateForCompany(context.Background(), companyID, date(2024, time.June, 1), date(2024, time.May, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.GenerateForCompany(context.Background(), companyID, date(2024, time.January, 1), date(2026, time.June, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Estados ───────────────────────────────────────────────────────────────────

func seedTask(t *testing.T, f *fixture) *entity.ComplianceTask {
	t.Helper()
	f.addReg("r-gst", compliance.RegGSTIN, nil)
	_, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-05-20", To: "2024-05-20",
	})
	require.NoError(t, err)
	list := f.repo.byCode("GSTR_3B_MONTHLY")
	require.Len(t, list, 1)
	return list[0]
}

func TestUpdateStatus_CompletadoConMulta(t *testing.T) {
	f := newFixture(t, date(2024, time.June, 1))
	task := seedTask(t, f)

	out, err := f.uc.UpdateStatus(context.Background(), companyID, task.ID, dto.UpdateTaskStatusRequest{
		Status: entity.TaskCompleted, CompletedOn: "2024-05-25", Notes: "ARN AA2905240001",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompleted, out.Status)
	assert.Equal(t, "250.00", out.LateFee, "5 días × ₹50")
	assert.Empty(t, out.Aging)
	require.NotNil(t, out.CompletedAt)

	stored := f.repo.byID[task.ID]
	assert.True(t, decimal.NewFromInt(250).Equal(stored.LateFee))
	assert.Equal(t, "ARN AA2905240001", stored.Notes)
}

func TestUpdateStatus_CompletadoHoyPorDefecto(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 18))
	task := seedTask(t, f)

	out, err := f.uc.UpdateStatus(context.Background(), companyID, task.ID, dto.UpdateTaskStatusRequest{Status: entity.TaskCompleted})
	require.NoError(t, err)
	assert.Equal(t, "0.00", out.LateFee)
	assert.Equal(t, date(2024, time.May, 18), *out.CompletedAt)
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 18))
	task := seedTask(t, f)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, companyID, task.ID, dto.UpdateTaskStatusRequest{Status: entity.TaskInProgress})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, companyID, task.ID, dto.UpdateTaskStatusRequest{Status: entity.TaskWaived})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, companyID, task.ID, dto.UpdateTaskStatusRequest{Status: entity.TaskPending})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "los estados finales no se reabren")

	_, err = f.uc.UpdateStatus(ctx, companyID, "no-existe", dto.UpdateTaskStatusRequest{Status: entity.TaskCompleted})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.UpdateStatus(ctx, "otra-firma", task.ID, dto.UpdateTaskStatusRequest{Status: entity.TaskCompleted})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_FechaFutura(t *testing.T) {
	f := newFixture(t, date(2024, time.May, 18))
	task := seedTask(t, f)
	_, err := f.uc.UpdateStatus(context.Background(), companyID, task.ID, dto.UpdateTaskStatusRequest{
		Status: entity.TaskCompleted, CompletedOn: "2024-05-19",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Listado y antigüedad ──────────────────────────────────────────────────────

func TestList_FiltrosYAntiguedad(t *testing.T) {
	f := newFixture(t, date(2024, time.June, 15))
	f.addReg("r-gst", compliance.RegGSTIN, nil)
	_, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-05-01", To: "2024-06-30",
	})
	require.NoError(t, err)

	out, err := f.uc.List(context.Background(), companyID, dto.TaskListQuery{Status: "pending", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Page.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "GSTR_1_MONTHLY", out.Items[0].RuleCode)
	assert.Equal(t, "GSTR-1 (monthly outward supplies)", out.Items[0].RuleName)
	assert.Equal(t, string(aging.Overdue31To60), out.Items[0].Aging, "vencida el 11 de mayo")

	_, err = f.uc.List(context.Background(), companyID, dto.TaskListQuery{Status: "DONE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAging_Resumen(t *testing.T) {
	f := newFixture(t, date(2024, time.June, 15))
	f.addReg("r-gst", compliance.RegGSTIN, nil)
	_, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-05-01", To: "2024-06-30",
	})
	require.NoError(t, err)

	out, err := f.uc.Aging(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", out.AsOf)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 1, out.Buckets[string(aging.Overdue31To60)], "GSTR-1 de abril")
	assert.Equal(t, 1, out.Buckets[string(aging.Overdue16To30)], "GSTR-3B de abril")
	assert.Equal(t, 1, out.Buckets[string(aging.Overdue1To15)], "GSTR-1 de mayo")
	assert.Equal(t, 1, out.Buckets[string(aging.DueSoon)], "GSTR-3B de mayo")
	assert.Equal(t, 4, out.Attention)
}

// ── PDF ───────────────────────────────────────────────────────────────────────

func TestCalendarPDF(t *testing.T) {
	f := newFixture(t, date(2024, time.June, 15))
	f.addReg("r-gst", compliance.RegGSTIN, nil)
	_, err := f.uc.Generate(context.Background(), companyID, customerID, dto.GenerateTasksRequest{
		From: "2024-05-01", To: "2024-06-30",
	})
	require.NoError(t, err)

	pdf, filename, err := f.uc.CalendarPDF(context.Background(), companyID, customerID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "calendar-sharma-traders-pvt-ltd-20240615.pdf", filename)
	require.Len(t, f.pdf.entries, 4)
	assert.Equal(t, "GSTIN r-gst", f.pdf.entries[0].Registration)
	assert.True(t, f.pdf.entries[0].LateFee.IsPositive(), "GSTR-1 de abril acumula multa")

	_, _, err = f.uc.CalendarPDF(context.Background(), companyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
