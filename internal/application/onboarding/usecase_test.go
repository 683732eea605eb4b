package onboarding_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/application/onboarding"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type memCustomers struct{ byID map[string]*entity.Customer }

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	c, ok := m.byID[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomers) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, int, error) {
	var out []*entity.Customer
	for _, c := range m.byID {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (m *memCustomers) Update(_ context.Context, c *entity.Customer) error {
	if _, ok := m.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

type memRegistrations struct {
	list []*entity.Registration
	fail error
}

func (m *memRegistrations) Create(_ context.Context, r *entity.Registration) error {
	if m.fail != nil {
		return m.fail
	}
	for _, x := range m.list {
		if x.CustomerID == r.CustomerID && x.Type == r.Type && x.Number == r.Number {
			return domain.ErrDuplicate
		}
	}
	m.list = append(m.list, r)
	return nil
}

func (m *memRegistrations) ListByCustomer(_ context.Context, companyID, customerID string) ([]*entity.Registration, error) {
	var out []*entity.Registration
	for _, r := range m.list {
		if r.CompanyID == companyID && r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRegistrations) ListByCompany(_ context.Context, companyID string) ([]*entity.Registration, error) {
	return m.list, nil
}

type memUsers struct{ byID map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error { return nil }
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}
func (m *memUsers) GetByEmail(_ context.Context, _ string) (*entity.User, error) { return nil, nil }
func (m *memUsers) GetByEmailAndCompany(_ context.Context, _, _ string) (*entity.User, error) {
	return nil, nil
}

// fakeTx aplica los cambios solo si fn no falla, como una transacción.
type fakeTx struct {
	customers *memCustomers
	regs      *memRegistrations
}

func (f *fakeTx) Run(ctx context.Context, fn func(repository.CustomerRepository, repository.RegistrationRepository) error) error {
	stagedC := &memCustomers{byID: map[string]*entity.Customer{}}
	stagedR := &memRegistrations{list: append([]*entity.Registration(nil), f.regs.list...), fail: f.regs.fail}
	if err := fn(stagedC, stagedR); err != nil {
		return err
	}
	for id, c := range stagedC.byID {
		f.customers.byID[id] = c
	}
	f.regs.list = stagedR.list
	return nil
}

const companyID = "c-1"

func newUseCase() (*onboarding.CustomerUseCase, *memCustomers, *memRegistrations) {
	customers := &memCustomers{byID: map[string]*entity.Customer{}}
	regs := &memRegistrations{}
	users := &memUsers{byID: map[string]*entity.User{
		"u-adv":    {ID: "u-adv", CompanyID: companyID, Role: entity.RoleAdvisor},
		"u-viewer": {ID: "u-viewer", CompanyID: companyID, Role: entity.RoleViewer},
		"u-other":  {ID: "u-other", CompanyID: "c-2", Role: entity.RoleAdvisor},
	}}
	uc := onboarding.NewCustomerUseCase(customers, regs, users, &fakeTx{customers: customers, regs: regs}, time.UTC)
	return uc, customers, regs
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreate_ConRegistros(t *testing.T) {
	uc, customers, regs := newUseCase()

	out, err := uc.Create(context.Background(), companyID, dto.CreateCustomerRequest{
		Name:       "  Sharma Traders  ",
		EntityType: "private_limited",
		AdvisorID:  "u-adv",
		Registrations: []dto.CreateRegistrationRequest{
			{Type: "GSTIN", Number: "29abcde1234f1zw", State: "Karnataka"},
			{Type: "FSSAI", Number: "11223344556677", IssuedOn: "2020-10-01", ExpiresOn: "2025-09-30"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sharma Traders", out.Name)
	assert.Equal(t, entity.CustomerOnboarding, out.Status)
	require.Len(t, out.Registrations, 2)
	assert.Equal(t, "29ABCDE1234F1ZW", out.Registrations[0].Number)
	assert.Equal(t, "GST Registration (GSTIN)", out.Registrations[0].TypeLabel)
	require.NotNil(t, out.Registrations[1].ExpiresOn)
	assert.Equal(t, "2025-09-30", *out.Registrations[1].ExpiresOn)

	assert.Len(t, customers.byID, 1)
	assert.Len(t, regs.list, 2)
}

func TestCreate_Rollback(t *testing.T) {
	uc, customers, regs := newUseCase()
	regs.fail = errors.New("db caída")

	_, err := uc.Create(context.Background(), companyID, dto.CreateCustomerRequest{
		Name:          "Sharma Traders",
		Registrations: []dto.CreateRegistrationRequest{{Type: "GSTIN", Number: "29ABCDE1234F1ZW"}},
	})
	require.Error(t, err)
	assert.Empty(t, customers.byID, "el cliente no queda sin sus registros")
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	cases := map[string]dto.CreateCustomerRequest{
		"sin nombre":         {Name: "  "},
		"tipo desconocido":   {Name: "x", Registrations: []dto.CreateRegistrationRequest{{Type: "VAT", Number: "1"}}},
		"fecha inválida":     {Name: "x", Registrations: []dto.CreateRegistrationRequest{{Type: "FSSAI", Number: "11223344556677", ExpiresOn: "30-09-2025"}}},
		"expira antes":       {Name: "x", Registrations: []dto.CreateRegistrationRequest{{Type: "FSSAI", Number: "11223344556677", IssuedOn: "2025-01-01", ExpiresOn: "2024-01-01"}}},
		"GSTIN sin control":  {Name: "x", Registrations: []dto.CreateRegistrationRequest{{Type: "GSTIN", Number: "29ABCDE1234F1Z5"}}},
		"PAN mal formado":    {Name: "x", Registrations: []dto.CreateRegistrationRequest{{Type: "PAN", Number: "ABC123"}}},
		"asesor de otra":     {Name: "x", AdvisorID: "u-other"},
		"asesor sin rol":     {Name: "x", AdvisorID: "u-viewer"},
		"asesor inexistente": {Name: "x", AdvisorID: "u-nope"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, companyID, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAddRegistration(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	c, err := uc.Create(ctx, companyID, dto.CreateCustomerRequest{Name: "Sharma Traders"})
	require.NoError(t, err)

	reg, err := uc.AddRegistration(ctx, companyID, c.ID, dto.CreateRegistrationRequest{Type: "TAN", Number: "BLRS12345A"})
	require.NoError(t, err)
	assert.Equal(t, "TAN", reg.Type)

	_, err = uc.AddRegistration(ctx, companyID, c.ID, dto.CreateRegistrationRequest{Type: "TAN", Number: "blrs12345a"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AddRegistration(ctx, "c-2", c.ID, dto.CreateRegistrationRequest{Type: "TAN", Number: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra firma no ve al cliente")

	list, err := uc.ListRegistrations(ctx, companyID, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdate(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	c, err := uc.Create(ctx, companyID, dto.CreateCustomerRequest{Name: "Sharma Traders"})
	require.NoError(t, err)

	active := entity.CustomerActive
	adv := "u-adv"
	out, err := uc.Update(ctx, companyID, c.ID, dto.UpdateCustomerRequest{Status: &active, AdvisorID: &adv})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerActive, out.Status)
	assert.Equal(t, "u-adv", out.AdvisorID)
	assert.Equal(t, "Sharma Traders", out.Name)

	bad := "ARCHIVED"
	_, err = uc.Update(ctx, companyID, c.ID, dto.UpdateCustomerRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, companyID, "nope", dto.UpdateCustomerRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(ctx, companyID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerActive, got.Status)
}
