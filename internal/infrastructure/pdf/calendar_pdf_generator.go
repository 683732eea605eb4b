// Package pdf genera el calendario de obligaciones de un cliente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Firma + PAN          │  Cliente + fecha de corte    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: abiertas / vencidas / multa acumulada             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Vence | Obligación | Periodo | Registro | Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/compliance-api/internal/application/tasks"
	"github.com/jhoicas/compliance-api/internal/domain/aging"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
	colorWarn    = &props.Color{Red: 190, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Asegura que CalendarPDFGenerator implementa tasks.CalendarPDFGenerator.
var _ tasks.CalendarPDFGenerator = (*CalendarPDFGenerator)(nil)

// CalendarPDFGenerator implementa tasks.CalendarPDFGenerator usando Maroto v2.
type CalendarPDFGenerator struct {
	printer *message.Printer
}

// NewCalendarPDFGenerator construye el generador. Los importes se formatean en en-IN.
func NewCalendarPDFGenerator() *CalendarPDFGenerator {
	return &CalendarPDFGenerator{printer: message.NewPrinter(language.MustParse("en-IN"))}
}

// GenerateCalendarPDF genera el PDF y devuelve sus bytes.
func (g *CalendarPDFGenerator) GenerateCalendarPDF(
	_ context.Context,
	company *entity.Company,
	customer *entity.Customer,
	asOf time.Time,
	entries []tasks.CalendarEntry,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Compliance calendar - "+customer.Name, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, customer, asOf))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(entries))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(entries) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No open obligations.", props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorGray}),
		)))
	}
	for _, r := range g.tableRows(entries) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: firma + PAN (izq) y cliente + fecha de corte (der).
func headerRow(company *entity.Company, customer *entity.Customer, asOf time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("PAN: "+company.PAN, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPLIANCE CALENDAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("As of "+asOf.Format("02 Jan 2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales de tareas abiertas, vencidas y multa acumulada.
func (g *CalendarPDFGenerator) summaryRow(entries []tasks.CalendarEntry) core.Row {
	overdue := 0
	fees := decimal.Zero
	for _, e := range entries {
		if isOverdue(e.Aging) {
			overdue++
		}
		fees = fees.Add(e.LateFee)
	}
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("OPEN OBLIGATIONS", fmt.Sprint(len(entries)), colorPrimary),
		cell("OVERDUE", fmt.Sprint(overdue), colorDanger),
		cell("ACCRUED LATE FEES", g.FormatINR(fees), colorDanger),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Due", 2, align.Left),
		h("Obligation", 4, align.Left),
		h("Period", 2, align.Left),
		h("Registration", 2, align.Left),
		h("Status", 1, align.Left),
		h("Late fee", 1, align.Right),
	)
}

// tableRows: una fila por obligación.
func (g *CalendarPDFGenerator) tableRows(entries []tasks.CalendarEntry) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		statusColor := colorGray
		switch {
		case isOverdue(e.Aging):
			statusColor = colorDanger
		case e.Aging == string(aging.DueSoon) || e.Aging == string(aging.InGrace):
			statusColor = colorWarn
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(e.DueDate.Format("02 Jan 2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(e.RuleName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(e.PeriodLabel, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(e.Registration, props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
			col.New(1).Add(text.New(shortAging(e.Aging), props.Text{Size: 7, Top: 1, Left: 1, Color: statusColor})),
			col.New(1).Add(text.New(g.FormatINR(e.LateFee), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Due dates are computed from the statutory calendar including standard extensions. "+
				"Late fees are indicative and accrue after the grace period.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatINR importe en rupias con agrupación en-IN. Ej: 125000 → "₹1,25,000.00".
func (g *CalendarPDFGenerator) FormatINR(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("₹%.2f", f)
}

func isOverdue(bucket string) bool {
	switch aging.Bucket(bucket) {
	case aging.Overdue1To15, aging.Overdue16To30, aging.Overdue31To60, aging.Overdue60Plus:
		return true
	}
	return false
}

func shortAging(bucket string) string {
	switch aging.Bucket(bucket) {
	case aging.NotDue:
		return "Upcoming"
	case aging.DueSoon:
		return "Due soon"
	case aging.InGrace:
		return "In grace"
	case aging.Overdue1To15:
		return "1-15d late"
	case aging.Overdue16To30:
		return "16-30d late"
	case aging.Overdue31To60:
		return "31-60d late"
	case aging.Overdue60Plus:
		return "60d+ late"
	}
	return bucket
}
