package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

// TokenIssuer emite tokens de sesión. Lo implementa *jwt.Service.
type TokenIssuer interface {
	Issue(userID int64, email string, role entity.Role) (string, time.Time, error)
}

// AuthUseCase casos de uso de autenticación: login y perfil propio.
type AuthUseCase struct {
	users  repository.SalesPersonRepository
	tokens TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.SalesPersonRepository, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens}
}

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// compareHash punto de comparación bcrypt; los tests internos lo sustituyen.
var compareHash = bcrypt.CompareHashAndPassword

// dummyHash hash con el mismo coste que HashPassword. Se compara contra él cuando el email no
// existe, de modo que la respuesta tarda lo mismo que con una contraseña incorrecta.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("daily-report-dummy-password"), bcrypt.DefaultCost)

// NormalizeEmail los emails se guardan y comparan en minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifica email/password, genera el token y retorna token + usuario.
// Email desconocido y contraseña incorrecta producen el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("login: buscar usuario: %w", err)
	}
	if user == nil {
		_ = compareHash(dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := compareHash([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	token, expiresAt, err := uc.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: emitir token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *toUserResponse(user),
	}, nil
}

// Me devuelve el perfil del usuario autenticado leyendo el registro actual, no el token.
func (uc *AuthUseCase) Me(ctx context.Context, authUser entity.AuthUser) (*dto.SalesPersonResponse, error) {
	user, err := uc.users.GetByID(ctx, authUser.ID)
	if err != nil {
		return nil, fmt.Errorf("me: obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.SalesPerson) *dto.SalesPersonResponse {
	if u == nil {
		return nil
	}
	return &dto.SalesPersonResponse{
		ID:           u.ID,
		EmployeeCode: u.EmployeeCode,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		ManagerID:    u.ManagerID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
