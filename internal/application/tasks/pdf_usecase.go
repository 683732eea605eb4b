package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/aging"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
)

// pdfTaskLimit tope de tareas abiertas incluidas en el calendario PDF.
const pdfTaskLimit = 500

// CalendarPDF genera el calendario de obligaciones abiertas de un cliente.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el cliente no existe en la firma.
func (uc *UseCase) CalendarPDF(ctx context.Context, companyID, customerID string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}

	// ── 1. Cargar firma y cliente ─────────────────────────────────────────────
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener firma: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customers.GetByID(ctx, companyID, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Registros para rotular cada tarea ──────────────────────────────────
	regs, err := uc.registrations.ListByCustomer(ctx, companyID, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: registros: %w", err)
	}
	regLabel := make(map[string]string, len(regs))
	for _, r := range regs {
		regLabel[r.ID] = string(r.Type) + " " + r.Number
	}

	// ── 3. Tareas abiertas ────────────────────────────────────────────────────
	open, _, err := uc.tasks.List(ctx, repository.TaskFilter{
		CompanyID:  companyID,
		CustomerID: customerID,
		Statuses:   []string{entity.TaskPending, entity.TaskInProgress},
		Limit:      pdfTaskLimit,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: tareas: %w", err)
	}

	today := uc.today()
	entries := make([]CalendarEntry, 0, len(open))
	for _, t := range open {
		e := CalendarEntry{
			RuleCode:     t.RuleCode,
			RuleName:     t.RuleCode,
			Registration: regLabel[t.RegistrationID],
			PeriodLabel:  t.PeriodLabel,
			DueDate:      t.DueDate,
			GraceUntil:   t.GraceUntil,
			Status:       t.Status,
			Aging:        string(aging.Classify(t.DueDate, t.GraceUntil, today, uc.opts.DueSoonDays)),
			LateFee:      uc.lateFee(t, today),
		}
		if rule, ok := uc.resolver.Catalogue().Get(t.RuleCode); ok {
			e.RuleName = rule.Name
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].DueDate.Equal(entries[j].DueDate) {
			return entries[i].DueDate.Before(entries[j].DueDate)
		}
		return entries[i].RuleCode < entries[j].RuleCode
	})

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err := uc.pdf.GenerateCalendarPDF(ctx, company, customer, today, entries)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("calendar-%s-%s.pdf", slug(customer.Name), today.Format("20060102"))
	return pdfBytes, filename, nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
