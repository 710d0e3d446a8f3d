package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/infrastructure/memory"
)

func TestDummyHash_MismoCosteQueHashPassword(t *testing.T) {
	require.NotEmpty(t, dummyHash)
	cost, err := bcrypt.Cost(dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestLogin_EmailDesconocidoTambienComparaHash(t *testing.T) {
	var compared [][]byte
	original := compareHash
	compareHash = func(hash, password []byte) error {
		compared = append(compared, hash)
		return original(hash, password)
	}
	t.Cleanup(func() { compareHash = original })

	store := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	sp := &entity.SalesPerson{EmployeeCode: "E1", Email: "ana@example.com", PasswordHash: string(hash), Role: entity.RoleMember, IsActive: true}
	require.NoError(t, store.SalesPersons().Create(context.Background(), sp))
	uc := NewAuthUseCase(store.SalesPersons(), nil)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	require.Len(t, compared, 1, "un email desconocido también pasa por bcrypt")
	assert.Equal(t, dummyHash, compared[0])

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	require.Len(t, compared, 2)
	assert.Equal(t, []byte(sp.PasswordHash), compared[1])
}
