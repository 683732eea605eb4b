package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/compliance-api/internal/application/auth"
	"github.com/jhoicas/compliance-api/internal/application/dto"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/pkg/jwt"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type memUsers struct{ byID map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) { return m.byID[id], nil }
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error) {
	u, _ := m.GetByEmail(ctx, email)
	if u == nil || u.CompanyID != companyID {
		return nil, nil
	}
	return u, nil
}

type memCompanies struct{ byID map[string]*entity.Company }

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}
func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return m.byID[id], nil
}
func (m *memCompanies) GetByPAN(context.Context, string) (*entity.Company, error) { return nil, nil }
func (m *memCompanies) ListIDs(context.Context) ([]string, error) { return nil, nil }

const (
	secret    = "test-secret"
	companyID = "00000000-0000-0000-0000-00000000000a"
)

func newUseCase() (*auth.AuthUseCase, *memUsers) {
	users := &memUsers{byID: map[string]*entity.User{}}
	companies := &memCompanies{byID: map[string]*entity.Company{companyID: {ID: companyID, Status: "active"}}}
	uc := auth.NewAuthUseCase(users, companies, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}).
		WithBcryptCost(bcrypt.MinCost)
	return uc, users
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Asha@Firm.IN ", Password: "s3cret-pass", CompanyID: companyID, Role: entity.RoleAdvisor})
	require.NoError(t, err)
	assert.Equal(t, "asha@firm.in", u.Email)
	assert.Equal(t, entity.RoleAdvisor, u.Role)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "asha@firm.in", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, companyID, claims.CompanyID)
	assert.Equal(t, entity.RoleAdvisor, claims.Role)
}

func TestRegister_RolPorDefectoViewer(t *testing.T) {
	uc, _ := newUseCase()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "v@firm.in", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, u.Role)
}

func TestRegister_Errores(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@firm.in", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@FIRM.IN", Password: "12345678", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@firm.in", Password: "12345678", CompanyID: "otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "c@firm.in", Password: "12345678", CompanyID: companyID, Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Errores(t *testing.T) {
	uc, users := newUseCase()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@firm.in", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@firm.in", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@firm.in", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "mismo error que password incorrecto")

	users.byID[u.ID].Status = "inactive"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@firm.in", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
