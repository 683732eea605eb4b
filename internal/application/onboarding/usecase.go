// Package onboarding gestiona clientes de la firma y sus registros estatutarios.
package onboarding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
	"github.com/jhoicas/compliance-api/pkg/compliance"
)

// CustomerUseCase casos de uso de clientes y registros.
type CustomerUseCase struct {
	customers     repository.CustomerRepository
	registrations repository.RegistrationRepository
	users         repository.UserRepository
	tx            TxRunner
	loc           *time.Location
}

// NewCustomerUseCase construye el caso de uso. loc es la zona en que se interpretan las fechas.
func NewCustomerUseCase(
	customers repository.CustomerRepository,
	registrations repository.RegistrationRepository,
	users repository.UserRepository,
	tx TxRunner,
	loc *time.Location,
) *CustomerUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &CustomerUseCase{customers: customers, registrations: registrations, users: users, tx: tx, loc: loc}
}

// Create da de alta un cliente en ONBOARDING junto con sus registros iniciales, en una sola transacción.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if err := uc.checkAdvisor(ctx, companyID, in.AdvisorID); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       name,
		EntityType: in.EntityType,
		Email:      in.Email,
		Phone:      in.Phone,
		Status:     entity.CustomerOnboarding,
		AdvisorID:  in.AdvisorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	regs := make([]*entity.Registration, 0, len(in.Registrations))
	for _, r := range in.Registrations {
		reg, err := uc.newRegistration(companyID, customer.ID, r, now)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	err := uc.tx.Run(ctx, func(customerRepo repository.CustomerRepository, registrationRepo repository.RegistrationRepository) error {
		if err := customerRepo.Create(ctx, customer); err != nil {
			return err
		}
		for _, reg := range regs {
			if err := registrationRepo.Create(ctx, reg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toCustomerResponse(customer)
	out.Registrations = toRegistrationResponses(regs)
	return out, nil
}

// Get devuelve el cliente con sus registros. ErrNotFound si no pertenece a la firma.
func (uc *CustomerUseCase) Get(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.mustCustomer(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	regs, err := uc.registrations.ListByCustomer(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	out := toCustomerResponse(customer)
	out.Registrations = toRegistrationResponses(regs)
	return out, nil
}

// List lista clientes de la firma.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.customers.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update aplica los campos presentes en in.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.mustCustomer(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		customer.Name = name
	}
	if in.EntityType != nil {
		customer.EntityType = *in.EntityType
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Status != nil {
		if !entity.ValidCustomerStatuses[*in.Status] {
			return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidInput, *in.Status)
		}
		customer.Status = *in.Status
	}
	if in.AdvisorID != nil {
		if err := uc.checkAdvisor(ctx, companyID, *in.AdvisorID); err != nil {
			return nil, err
		}
		customer.AdvisorID = *in.AdvisorID
	}
	customer.UpdatedAt = time.Now()
	if err := uc.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// AddRegistration agrega un registro estatutario a un cliente existente.
func (uc *CustomerUseCase) AddRegistration(ctx context.Context, companyID, customerID string, in dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	if _, err := uc.mustCustomer(ctx, companyID, customerID); err != nil {
		return nil, err
	}
	reg, err := uc.newRegistration(companyID, customerID, in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.registrations.Create(ctx, reg); err != nil {
		return nil, err
	}
	out := toRegistrationResponse(reg)
	return &out, nil
}

// ListRegistrations registros de un cliente.
func (uc *CustomerUseCase) ListRegistrations(ctx context.Context, companyID, customerID string) ([]dto.RegistrationResponse, error) {
	if _, err := uc.mustCustomer(ctx, companyID, customerID); err != nil {
		return nil, err
	}
	regs, err := uc.registrations.ListByCustomer(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	return toRegistrationResponses(regs), nil
}

func (uc *CustomerUseCase) mustCustomer(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	customer, err := uc.customers.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// checkAdvisor exige que el asesor asignado sea admin o advisor de la misma firma.
func (uc *CustomerUseCase) checkAdvisor(ctx context.Context, companyID, advisorID string) error {
	if advisorID == "" {
		return nil
	}
	user, err := uc.users.GetByID(ctx, advisorID)
	if err != nil {
		return err
	}
	if user == nil || user.CompanyID != companyID {
		return fmt.Errorf("%w: advisor_id no pertenece a la firma", domain.ErrInvalidInput)
	}
	if user.Role != entity.RoleAdmin && user.Role != entity.RoleAdvisor {
		return fmt.Errorf("%w: el usuario %s no es asesor", domain.ErrInvalidInput, advisorID)
	}
	return nil
}

func (uc *CustomerUseCase) newRegistration(companyID, customerID string, in dto.CreateRegistrationRequest, now time.Time) (*entity.Registration, error) {
	typ := compliance.RegistrationType(strings.TrimSpace(in.Type))
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: tipo de registro %q", domain.ErrInvalidInput, in.Type)
	}
	number := compliance.NormalizeNumber(in.Number)
	if err := compliance.ValidateNumber(typ, number); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	issued, err := uc.optionalDate("issued_on", in.IssuedOn)
	if err != nil {
		return nil, err
	}
	expires, err := uc.optionalDate("expires_on", in.ExpiresOn)
	if err != nil {
		return nil, err
	}
	if issued != nil && expires != nil && expires.Before(*issued) {
		return nil, fmt.Errorf("%w: expires_on anterior a issued_on", domain.ErrInvalidInput)
	}
	return &entity.Registration{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: customerID,
		Type:       typ,
		Number:     number,
		State:      strings.TrimSpace(in.State),
		IssuedOn:   issued,
		ExpiresOn:  expires,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (uc *CustomerUseCase) optionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(s, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return &t, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:         c.ID,
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		EntityType: c.EntityType,
		Email:      c.Email,
		Phone:      c.Phone,
		Status:     c.Status,
		AdvisorID:  c.AdvisorID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toRegistrationResponses(regs []*entity.Registration) []dto.RegistrationResponse {
	out := make([]dto.RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		out = append(out, toRegistrationResponse(r))
	}
	return out
}

func toRegistrationResponse(r *entity.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Type:       string(r.Type),
		TypeLabel:  r.Type.Label(),
		Number:     r.Number,
		State:      r.State,
		IssuedOn:   datePtr(r.IssuedOn),
		ExpiresOn:  datePtr(r.ExpiresOn),
	}
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dto.FormatDate(*t)
	return &s
}
