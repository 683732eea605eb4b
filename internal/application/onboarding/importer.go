package onboarding

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/domain"
)

// Columnas reconocidas en la cabecera del CSV de importación.
const (
	colCustomer   = "customer"
	colEntityType = "entity_type"
	colEmail      = "email"
	colPhone      = "phone"
	colType       = "registration_type"
	colTypeAlias  = "type" // formato antiguo de la hoja de la firma
	colNumber     = "number"
	colState      = "state"
	colIssuedOn   = "issued_on"
	colExpiresOn  = "expires_on"
)

// ImportFailure un cliente que no se pudo importar.
type ImportFailure struct {
	Customer string
	Line     int
	Err      error
}

// ImportSummary resultado de una importación.
type ImportSummary struct {
	Customers     int
	Registrations int
	Failures      []ImportFailure
}

// charsetDecoder resuelve la codificación de entrada. Las hojas exportadas desde Excel
// en Windows suelen venir en Windows-1252.
func charsetDecoder(charset string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	}
	return nil, fmt.Errorf("%w: codificación no soportada %q", domain.ErrInvalidInput, charset)
}

// ReadImportCSV lee un CSV con cabecera (customer,registration_type,number y opcionales) y agrupa
// las filas por cliente, respetando el orden de aparición.
func ReadImportCSV(r io.Reader, charset string) ([]dto.CreateCustomerRequest, []int, error) {
	dec, err := charsetDecoder(charset)
	if err != nil {
		return nil, nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cabecera: %v", domain.ErrInvalidInput, err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	if _, ok := idx[colType]; !ok {
		if i, alias := idx[colTypeAlias]; alias {
			idx[colType] = i
		}
	}
	for _, required := range []string{colCustomer, colType, colNumber} {
		if _, ok := idx[required]; !ok {
			return nil, nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, required)
		}
	}

	var (
		out   []dto.CreateCustomerRequest
		lines []int
		pos   = map[string]int{}
	)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("%w: línea %d: %v", domain.ErrInvalidInput, line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		name := get(colCustomer)
		if name == "" {
			return nil, nil, fmt.Errorf("%w: línea %d: customer vacío", domain.ErrInvalidInput, line)
		}
		key := strings.ToLower(name)
		i, seen := pos[key]
		if !seen {
			i = len(out)
			pos[key] = i
			out = append(out, dto.CreateCustomerRequest{
				Name:       name,
				EntityType: get(colEntityType),
				Email:      get(colEmail),
				Phone:      get(colPhone),
			})
			lines = append(lines, line)
		}
		if get(colType) == "" && get(colNumber) == "" {
			continue
		}
		out[i].Registrations = append(out[i].Registrations, dto.CreateRegistrationRequest{
			Type:      strings.ToUpper(get(colType)),
			Number:    get(colNumber),
			State:     get(colState),
			IssuedOn:  get(colIssuedOn),
			ExpiresOn: get(colExpiresOn),
		})
	}
	return out, lines, nil
}

// Import da de alta cada cliente con sus registros en su propia transacción.
// Un cliente inválido no detiene el resto; queda en Failures.
func (uc *CustomerUseCase) Import(ctx context.Context, companyID string, r io.Reader, charset string) (*ImportSummary, error) {
	reqs, lines, err := ReadImportCSV(r, charset)
	if err != nil {
		return nil, err
	}
	summary := &ImportSummary{}
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		created, err := uc.Create(ctx, companyID, req)
		if err != nil {
			summary.Failures = append(summary.Failures, ImportFailure{Customer: req.Name, Line: lines[i], Err: err})
			continue
		}
		summary.Customers++
		summary.Registrations += len(created.Registrations)
	}
	return summary, nil
}
