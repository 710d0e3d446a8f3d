// Package jwt emite y verifica los tokens de sesión (HS256).
//
// El token es autocontenido: verificarlo no requiere consultar ningún almacén. No existe
// revocación en el servidor; un token sigue siendo válido hasta su expiración aunque el
// usuario cierre sesión (el logout solo borra la cookie del cliente).
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

const (
	// DefaultTTL duración de un token si la configuración no indica otra.
	DefaultTTL = 24 * time.Hour
	// CookieName cookie HttpOnly que transporta el token.
	CookieName = "auth_token"
	// LegacyCookieName nombre usado por clientes antiguos; solo se lee.
	LegacyCookieName = "token"

	bearerPrefix = "Bearer "
)

// ErrMissingSecret error de configuración: sin secreto no se puede arrancar.
var ErrMissingSecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más la identidad del vendedor.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Config parámetros del servicio de tokens.
type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Payload datos verificados de un token.
type Payload struct {
	UserID    int64
	Email     string
	Role      entity.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Result resultado de Verify. Si Valid es false, Error describe el motivo.
type Result struct {
	Valid   bool
	Payload *Payload
	Error   string
}

// Service emite y verifica tokens con un secreto del servidor.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewService construye el servicio. Devuelve ErrMissingSecret si no hay secreto.
func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// WithClock devuelve una copia del servicio que usa now como reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

// TTL duración de los tokens emitidos.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue genera un token firmado para la tripleta (userID, email, role).
func (s *Service) Issue(userID int64, email string, role entity.Role) (string, time.Time, error) {
	if userID <= 0 || email == "" {
		return "", time.Time{}, fmt.Errorf("jwt: userID y email son requeridos")
	}
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("jwt: rol inválido %q", role)
	}
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   string(role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify valida firma, algoritmo, expiración y claims requeridos. Nunca devuelve error:
// cualquier fallo se expresa como Result{Valid: false}.
func (s *Service) Verify(tokenString string) Result {
	if strings.TrimSpace(tokenString) == "" {
		return invalid("token vacío")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return invalid("token expirado")
		case errors.Is(err, jwt.ErrTokenMalformed):
			return invalid("token mal formado")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return invalid("firma del token inválida")
		default:
			return invalid("token inválido")
		}
	}
	if !token.Valid {
		return invalid("token inválido")
	}
	if claims.UserID <= 0 || claims.Email == "" || claims.Role == "" {
		return invalid("faltan claims requeridos en el token")
	}
	role, ok := entity.ParseRole(claims.Role)
	if !ok {
		return invalid("rol desconocido en el token")
	}
	p := &Payload{UserID: claims.UserID, Email: claims.Email, Role: role}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return Result{Valid: true, Payload: p}
}

// ExtractFromHeader devuelve el token de un header "Bearer <token>". El esquema es
// sensible a mayúsculas; cualquier otro formato devuelve "".
func ExtractFromHeader(headerValue string) string {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(headerValue[len(bearerPrefix):])
}

func invalid(msg string) Result {
	return Result{Valid: false, Error: msg}
}
