// Package tasks genera y gestiona las tareas de cumplimiento de los clientes.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/aging"
	"github.com/jhoicas/compliance-api/internal/domain/duedate"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
	"github.com/jhoicas/compliance-api/pkg/compliance"
	"github.com/jhoicas/compliance-api/pkg/logger"
)

const (
	// maxWindowDays ventana máxima de una generación.
	maxWindowDays = 366 * 2
	// customerPage tamaño de página al recorrer clientes en la generación batch.
	customerPage = 200
)

// Options parámetros del motor de tareas.
type Options struct {
	Location     *time.Location
	DueSoonDays  int
	HorizonDays  int
	LookbackDays int
	Now          func() time.Time // nil = time.Now
}

// GenerateResult conteo de una generación.
type GenerateResult struct {
	From    time.Time
	To      time.Time
	Created int
	Skipped int
}

// UseCase casos de uso de tareas.
type UseCase struct {
	resolver      *duedate.Resolver
	tasks         repository.TaskRepository
	customers     repository.CustomerRepository
	registrations repository.RegistrationRepository
	companies     repository.CompanyRepository
	pdf           CalendarPDFGenerator
	log           *logger.Logger
	opts          Options
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	resolver *duedate.Resolver,
	tasks repository.TaskRepository,
	customers repository.CustomerRepository,
	registrations repository.RegistrationRepository,
	companies repository.CompanyRepository,
	pdf CalendarPDFGenerator,
	log *logger.Logger,
	opts Options,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		resolver:      resolver,
		tasks:         tasks,
		customers:     customers,
		registrations: registrations,
		companies:     companies,
		pdf:           pdf,
		log:           log.Component("tasks"),
		opts:          opts,
	}
}

func (uc *UseCase) today() time.Time {
	now := uc.opts.Now().In(uc.opts.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.opts.Location)
}

// DefaultWindow [hoy - lookback, hoy + horizonte].
func (uc *UseCase) DefaultWindow() (time.Time, time.Time) {
	today := uc.today()
	return today.AddDate(0, 0, -uc.opts.LookbackDays), today.AddDate(0, 0, uc.opts.HorizonDays)
}

// Generate crea las tareas de un cliente con vencimiento en la ventana pedida.
// Las tareas existentes se conservan: repetir la generación no duplica ni modifica nada.
func (uc *UseCase) Generate(ctx context.Context, companyID, customerID string, in dto.GenerateTasksRequest) (*dto.GenerateTasksResponse, error) {
	from, to, err := uc.window(in)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.Status == entity.CustomerInactive {
		return nil, fmt.Errorf("%w: cliente inactivo", domain.ErrConflict)
	}
	regs, err := uc.registrations.ListByCustomer(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	res, err := uc.generate(ctx, regs, from, to)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).Str("customer_id", customerID).
		Int("created", res.Created).Int("skipped", res.Skipped).
		Msg("tareas generadas")
	return &dto.GenerateTasksResponse{
		From:    dto.FormatDate(from),
		To:      dto.FormatDate(to),
		Created: res.Created,
		Skipped: res.Skipped,
	}, nil
}

// GenerateForCompany genera tareas para todos los clientes no inactivos de la firma en [from, to].
func (uc *UseCase) GenerateForCompany(ctx context.Context, companyID string, from, to time.Time) (GenerateResult, error) {
	if err := checkWindow(from, to); err != nil {
		return GenerateResult{}, err
	}
	inactive := map[string]bool{}
	for offset := 0; ; offset += customerPage {
		list, total, err := uc.customers.ListByCompany(ctx, companyID, customerPage, offset)
		if err != nil {
			return GenerateResult{}, err
		}
		for _, c := range list {
			if c.Status == entity.CustomerInactive {
				inactive[c.ID] = true
			}
		}
		if len(list) == 0 || offset+len(list) >= total {
			break
		}
	}
	regs, err := uc.registrations.ListByCompany(ctx, companyID)
	if err != nil {
		return GenerateResult{}, err
	}
	active := make([]*entity.Registration, 0, len(regs))
	for _, r := range regs {
		if !inactive[r.CustomerID] {
			active = append(active, r)
		}
	}
	return uc.generate(ctx, active, from, to)
}

// CompanyTargets firmas sobre las que corre la generación batch: la indicada, que debe existir
// y estar activa, o todas las activas si companyID es vacío.
func (uc *UseCase) CompanyTargets(ctx context.Context, companyID string) ([]string, error) {
	if companyID == "" {
		return uc.companies.ListIDs(ctx)
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.Status != "active" {
		return nil, fmt.Errorf("%w: firma %s en estado %s", domain.ErrForbidden, company.ID, company.Status)
	}
	return []string{company.ID}, nil
}

func (uc *UseCase) generate(ctx context.Context, regs []*entity.Registration, from, to time.Time) (GenerateResult, error) {
	out := GenerateResult{From: from, To: to}
	now := time.Now()
	for _, reg := range regs {
		for _, rule := range uc.resolver.Catalogue().ByRegistrationType(reg.Type) {
			if !rule.AutoTaskGenerationEnabled {
				continue
			}
			for _, res := range instances(rule, reg, from, to) {
				task := newTask(reg, res, now)
				created, err := uc.tasks.CreateIfAbsent(ctx, task)
				if err != nil {
					return out, fmt.Errorf("tasks: crear %s/%s: %w", rule.Code, res.PeriodLabel, err)
				}
				if created {
					out.Created++
				} else {
					out.Skipped++
				}
			}
		}
	}
	return out, nil
}

// instances ocurrencias de rule para reg en la ventana. Para renovaciones la instancia entra
// si su ventana [ReminderFrom, DueDate] se cruza con [from, to].
func instances(rule compliance.Rule, reg *entity.Registration, from, to time.Time) []duedate.Result {
	if rule.IsCalendar() {
		return duedate.Occurrences(rule, from, to)
	}
	if reg.ExpiresOn == nil {
		return nil
	}
	res, err := duedate.ComputeDueDate(rule, *reg.ExpiresOn)
	if err != nil {
		return nil
	}
	if duedate.DaysBetween(res.ReminderFrom, to) < 0 || duedate.DaysBetween(from, res.DueDate) < 0 {
		return nil
	}
	return []duedate.Result{res}
}

func newTask(reg *entity.Registration, res duedate.Result, now time.Time) *entity.ComplianceTask {
	t := &entity.ComplianceTask{
		ID:             uuid.New().String(),
		CompanyID:      reg.CompanyID,
		CustomerID:     reg.CustomerID,
		RegistrationID: reg.ID,
		RuleCode:       res.RuleCode,
		PeriodLabel:    res.PeriodLabel,
		PeriodStart:    res.PeriodStart,
		PeriodEnd:      res.PeriodEnd,
		DueDate:        res.DueDate,
		GraceUntil:     res.GraceUntil,
		Status:         entity.TaskPending,
		LateFee:        decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if !res.ReminderFrom.IsZero() {
		r := res.ReminderFrom
		t.ReminderFrom = &r
	}
	return t
}

func (uc *UseCase) window(in dto.GenerateTasksRequest) (time.Time, time.Time, error) {
	from, to := uc.DefaultWindow()
	var err error
	if in.From != "" {
		if from, err = dto.ParseDate(in.From, uc.opts.Location); err != nil {
			return from, to, fmt.Errorf("%w: from debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if in.To != "" {
		if to, err = dto.ParseDate(in.To, uc.opts.Location); err != nil {
			return from, to, fmt.Errorf("%w: to debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	return from, to, checkWindow(from, to)
}

func checkWindow(from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("%w: to anterior a from", domain.ErrInvalidInput)
	}
	if duedate.DaysBetween(from, to) > maxWindowDays {
		return fmt.Errorf("%w: ventana máxima %d días", domain.ErrInvalidInput, maxWindowDays)
	}
	return nil
}

// List tareas de la firma con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, companyID string, q dto.TaskListQuery) (*dto.TaskListResponse, error) {
	statuses, err := parseStatuses(q.Status)
	if err != nil {
		return nil, err
	}
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	list, total, err := uc.tasks.List(ctx, repository.TaskFilter{
		CompanyID:  companyID,
		CustomerID: q.CustomerID,
		Statuses:   statuses,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	today := uc.today()
	items := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		items = append(items, uc.toTaskResponse(t, today))
	}
	return &dto.TaskListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdateStatus aplica una transición de estado. COMPLETED registra la fecha de cumplimiento
// y la multa acumulada a esa fecha; WAIVED deja la multa en cero.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, taskID string, in dto.UpdateTaskStatusRequest) (*dto.TaskResponse, error) {
	task, err := uc.tasks.GetByID(ctx, companyID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(task.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, task.Status, in.Status)
	}

	today := uc.today()
	switch in.Status {
	case entity.TaskCompleted:
		completedOn := today
		if in.CompletedOn != "" {
			if completedOn, err = dto.ParseDate(in.CompletedOn, uc.opts.Location); err != nil {
				return nil, fmt.Errorf("%w: completed_on debe ser YYYY-MM-DD", domain.ErrInvalidInput)
			}
			if completedOn.After(today) {
				return nil, fmt.Errorf("%w: completed_on en el futuro", domain.ErrInvalidInput)
			}
		}
		task.CompletedAt = &completedOn
		task.LateFee = uc.lateFee(task, completedOn)
	case entity.TaskWaived:
		task.CompletedAt = nil
		task.LateFee = decimal.Zero
	default:
		task.CompletedAt = nil
	}
	task.Status = in.Status
	if in.Notes != "" {
		task.Notes = in.Notes
	}
	task.UpdatedAt = time.Now()

	if err := uc.tasks.UpdateStatus(ctx, task); err != nil {
		return nil, err
	}
	uc.log.Info().Str("task_id", task.ID).Str("status", task.Status).Str("late_fee", task.LateFee.StringFixed(2)).Msg("estado de tarea actualizado")
	out := uc.toTaskResponse(task, today)
	return &out, nil
}

// lateFee multa de la tarea si se cumple en settledOn. Regla retirada del catálogo = sin multa.
func (uc *UseCase) lateFee(task *entity.ComplianceTask, settledOn time.Time) decimal.Decimal {
	rule, err := uc.resolver.Rule(task.RuleCode)
	if err != nil {
		if !errors.Is(err, domain.ErrUnknownRuleCode) {
			uc.log.Warn().Err(err).Str("rule_code", task.RuleCode).Msg("regla no resuelta")
		}
		return decimal.Zero
	}
	return duedate.LateFee(rule, duedate.Result{DueDate: task.DueDate, GraceUntil: task.GraceUntil}, settledOn)
}

// Aging clasifica las tareas abiertas de la firma por tramo de antigüedad.
func (uc *UseCase) Aging(ctx context.Context, companyID string) (*dto.AgingResponse, error) {
	open, err := uc.tasks.ListOpen(ctx, companyID)
	if err != nil {
		return nil, err
	}
	today := uc.today()
	summary := aging.NewSummary()
	for _, t := range open {
		summary[aging.Classify(t.DueDate, t.GraceUntil, today, uc.opts.DueSoonDays)]++
	}
	buckets := make(map[string]int, len(summary))
	for b, n := range summary {
		buckets[string(b)] = n
	}
	return &dto.AgingResponse{
		AsOf:      dto.FormatDate(today),
		Buckets:   buckets,
		Attention: summary.Attention(),
		Total:     len(open),
	}, nil
}

func (uc *UseCase) toTaskResponse(t *entity.ComplianceTask, today time.Time) dto.TaskResponse {
	out := dto.TaskResponse{
		ID:             t.ID,
		CustomerID:     t.CustomerID,
		RegistrationID: t.RegistrationID,
		RuleCode:       t.RuleCode,
		PeriodLabel:    t.PeriodLabel,
		PeriodStart:    dto.FormatDate(t.PeriodStart),
		PeriodEnd:      dto.FormatDate(t.PeriodEnd),
		DueDate:        dto.FormatDate(t.DueDate),
		GraceUntil:     dto.FormatDate(t.GraceUntil),
		Status:         t.Status,
		CompletedAt:    t.CompletedAt,
		LateFee:        t.LateFee.StringFixed(2),
		Notes:          t.Notes,
	}
	if rule, ok := uc.resolver.Catalogue().Get(t.RuleCode); ok {
		out.RuleName = rule.Name
	}
	if t.ReminderFrom != nil {
		out.ReminderFrom = dto.FormatDate(*t.ReminderFrom)
	}
	if t.IsOpen() {
		out.Aging = string(aging.Classify(t.DueDate, t.GraceUntil, today, uc.opts.DueSoonDays))
	}
	return out
}

var taskStatuses = map[string]bool{
	entity.TaskPending: true, entity.TaskInProgress: true, entity.TaskCompleted: true, entity.TaskWaived: true,
}

func parseStatuses(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	var out []string
	for _, s := range strings.Split(csv, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !taskStatuses[s] {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, s)
		}
		out = append(out, s)
	}
	return out, nil
}
