package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/daily-report-api/internal/application/auth"
	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/infrastructure/memory"
)

type issuerStub struct {
	err    error
	issued []int64
}

func (s *issuerStub) Issue(userID int64, _ string, _ entity.Role) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	s.issued = append(s.issued, userID)
	return "tok", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func seed(t *testing.T, active bool) (*memory.Store, *entity.SalesPerson) {
	t.Helper()
	store := memory.NewStore()
	hash, err := auth.HashPassword("clave-segura")
	require.NoError(t, err)
	sp := &entity.SalesPerson{
		EmployeeCode: "E1", Name: "Ana", Email: "ana@example.com",
		PasswordHash: hash, Role: entity.RoleMember, IsActive: active,
	}
	require.NoError(t, store.SalesPersons().Create(context.Background(), sp))
	return store, sp
}

func TestLogin_OK(t *testing.T) {
	store, sp := seed(t, true)
	issuer := &issuerStub{}
	uc := auth.NewAuthUseCase(store.SalesPersons(), issuer)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  Ana@Example.com ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "tok", out.Token)
	assert.Equal(t, sp.ID, out.User.ID)
	assert.Equal(t, []int64{sp.ID}, issuer.issued)
}

func TestLogin_ErroresDeCredencialesIguales(t *testing.T) {
	store, _ := seed(t, true)
	uc := auth.NewAuthUseCase(store.SalesPersons(), &issuerStub{})

	_, errPass := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "mala"})
	_, errUser := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "clave-segura"})
	assert.ErrorIs(t, errPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errPass.Error(), errUser.Error())
}

func TestLogin_CuentaDesactivada_SoloConClaveCorrecta(t *testing.T) {
	store, _ := seed(t, false)
	uc := auth.NewAuthUseCase(store.SalesPersons(), &issuerStub{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "no revela el estado de la cuenta sin la clave")
}

func TestLogin_FalloAlEmitirToken(t *testing.T) {
	store, _ := seed(t, true)
	uc := auth.NewAuthUseCase(store.SalesPersons(), &issuerStub{err: errors.New("sin clave")})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "clave-segura"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe_LeeElRegistroActual(t *testing.T) {
	store, sp := seed(t, true)
	uc := auth.NewAuthUseCase(store.SalesPersons(), &issuerStub{})
	ctx := context.Background()

	// el token dice member; el registro manda
	sp.Role = entity.RoleManager
	require.NoError(t, store.SalesPersons().Update(ctx, sp))

	me, err := uc.Me(ctx, entity.AuthUser{ID: sp.ID, Email: sp.Email, Role: entity.RoleMember})
	require.NoError(t, err)
	assert.Equal(t, "manager", me.Role)

	require.NoError(t, store.SalesPersons().Deactivate(ctx, sp.ID, time.Now()))
	_, err = uc.Me(ctx, entity.AuthUser{ID: sp.ID})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	_, err = uc.Me(ctx, entity.AuthUser{ID: 999})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", auth.NormalizeEmail(" ANA@Example.COM\t"))
}
