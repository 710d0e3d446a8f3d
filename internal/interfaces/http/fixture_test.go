package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/daily-report-api/internal/application/auth"
	"github.com/jhoicas/daily-report-api/internal/application/usecase"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/policy"
	"github.com/jhoicas/daily-report-api/internal/infrastructure/memory"
	"github.com/jhoicas/daily-report-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/daily-report-api/internal/interfaces/http"
	"github.com/jhoicas/daily-report-api/pkg/config"
	"github.com/jhoicas/daily-report-api/pkg/jwt"
	"github.com/jhoicas/daily-report-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "daily-report-test"
	testPassword  = "secreto123"
)

// fixture usuarios sembrados:
//
//	admin
//	boss      manager
//	member    member, jefe = boss
//	outsider  member, sin jefe
//	other     manager sin subordinados
//	disabled  member desactivado, jefe = boss
type fixture struct {
	t        *testing.T
	app      *fiber.App
	store    *memory.Store
	tokens   *jwt.Service
	admin    *entity.SalesPerson
	boss     *entity.SalesPerson
	member   *entity.SalesPerson
	outsider *entity.SalesPerson
	other    *entity.SalesPerson
	disabled *entity.SalesPerson
	customer *entity.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithPDF(t, pdf.NewReportPDFGenerator())
}

// newFixtureWithPDF permite sustituir (o quitar, con nil) el generador de PDF.
func newFixtureWithPDF(t *testing.T, pdfGen usecase.ReportPDFGenerator) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	tokens, err := jwt.NewService(jwt.Config{Secret: testJWTSecret, TTL: time.Hour, Issuer: testIssuer})
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := store.SalesPersons()
	mk := func(code, name string, role entity.Role, manager *entity.SalesPerson, active bool) *entity.SalesPerson {
		sp := &entity.SalesPerson{
			EmployeeCode: code,
			Name:         name,
			Email:        code + "@example.com",
			PasswordHash: string(hash),
			Role:         role,
			IsActive:     active,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if manager != nil {
			sp.ManagerID = &manager.ID
		}
		require.NoError(t, users.Create(ctx, sp))
		return sp
	}

	f := &fixture{t: t, store: store, tokens: tokens}
	f.admin = mk("admin", "Admin", entity.RoleAdmin, nil, true)
	f.boss = mk("boss", "Jefa", entity.RoleManager, nil, true)
	f.member = mk("member", "Vendedor", entity.RoleMember, f.boss, true)
	f.outsider = mk("outsider", "Externo", entity.RoleMember, nil, true)
	f.other = mk("other", "Otro jefe", entity.RoleManager, nil, true)
	f.disabled = mk("disabled", "Baja", entity.RoleMember, f.boss, false)

	f.customer = &entity.Customer{CustomerCode: "C001", Name: "Acme", CompanyName: "Acme S.A."}
	require.NoError(t, store.Customers().Create(ctx, f.customer))

	p := policy.NewAccessPolicy(users)
	app := apphttp.NewApp("test", logger.Nop())
	apphttp.RegisterOps(app, "test")
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(users, tokens),
		ReportUC:      usecase.NewReportUseCase(store, store.Reports(), store.Comments(), store.Customers(), p, pdfGen),
		CommentUC:     usecase.NewCommentUseCase(store.Reports(), store.Comments(), p),
		SalesPersonUC: usecase.NewSalesPersonUseCase(users, p),
		CustomerUC:    usecase.NewCustomerUseCase(store.Customers(), p),
		Tokens:        tokens,
		Accounts:      users,
		Cookie:        config.CookieConfig{},
	})
	f.app = app
	return f
}

func (f *fixture) token(sp *entity.SalesPerson) string {
	f.t.Helper()
	tok, _, err := f.tokens.Issue(sp.ID, sp.Email, sp.Role)
	require.NoError(f.t, err)
	return tok
}

// envelope sobre de respuesta de la API.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type result struct {
	status  int
	body    envelope
	raw     []byte
	headers http.Header
	cookies []*http.Cookie
}

func (r result) data(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body.Data, out), "data: %s", string(r.raw))
}

// do lanza la petición. as == nil → sin token.
func (f *fixture) do(method, path string, as *entity.SalesPerson, body interface{}) result {
	f.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(f.t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+f.token(as))
	}
	return f.send(req)
}

func (f *fixture) send(req *http.Request) result {
	f.t.Helper()
	resp, err := f.app.Test(req, -1)
	require.NoError(f.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(f.t, err)
	res := result{status: resp.StatusCode, raw: raw, headers: resp.Header, cookies: resp.Cookies()}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(f.t, json.Unmarshal(raw, &res.body), "body: %s", string(raw))
	}
	return res
}
