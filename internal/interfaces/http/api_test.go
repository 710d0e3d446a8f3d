package http_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/pkg/jwt"
)

func (f *fixture) createReport(as *entity.SalesPerson, date, status string) dto.ReportResponse {
	f.t.Helper()
	res := f.do(http.MethodPost, "/api/reports", as, map[string]interface{}{
		"report_date": date,
		"problem":     "precio",
		"plan":        "volver el lunes",
		"status":      status,
		"visit_records": []map[string]interface{}{
			{"customer_id": f.customer.ID, "visit_time": "10:30", "content": "presentación"},
		},
	})
	require.Equal(f.t, http.StatusCreated, res.status, string(res.raw))
	var out dto.ReportResponse
	res.data(f.t, &out)
	return out
}

func reportPath(id int64, suffix string) string {
	return fmt.Sprintf("/api/reports/%d%s", id, suffix)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_OK_DevuelveTokenYCookie(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: "MEMBER@example.com", Password: testPassword})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	var out dto.LoginResponse
	res.data(t, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, f.member.ID, out.User.ID)

	var session *http.Cookie
	for _, c := range res.cookies {
		if c.Name == jwt.CookieName {
			session = c
		}
	}
	require.NotNil(t, session, "debe fijar la cookie de sesión")
	assert.True(t, session.HttpOnly)
	assert.Equal(t, out.Token, session.Value)
}

func TestLogin_CredencialesIncorrectas_MismoError(t *testing.T) {
	f := newFixture(t)
	wrongPass := f.do(http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: "member@example.com", Password: "otra-clave"})
	unknown := f.do(http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: "nadie@example.com", Password: testPassword})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.status)
	assert.Equal(t, "UNAUTHORIZED", wrongPass.body.Error.Code)
	assert.Equal(t, wrongPass.body.Error, unknown.body.Error, "no se distingue email inexistente de clave incorrecta")
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: "disabled@example.com", Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "ACCOUNT_DISABLED", res.body.Error.Code)
}

func TestLogin_JSONMalformado_Retorna422(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodPost, "/api/auth/login", nil, "{no es json")
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Equal(t, "VALIDATION_ERROR", res.body.Error.Code)
}

func TestMe_ConCookie(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: f.token(f.boss)})
	res := f.send(req)

	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	var me dto.SalesPersonResponse
	res.data(t, &me)
	assert.Equal(t, "boss", me.EmployeeCode)
	assert.Equal(t, "manager", me.Role)
}

func TestLogout_BorraCookie(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodPost, "/api/auth/logout", nil, nil)
	require.Equal(t, http.StatusOK, res.status)

	found := false
	for _, c := range res.cookies {
		if c.Name == jwt.CookieName {
			found = true
			assert.Empty(t, c.Value)
		}
	}
	assert.True(t, found)
}

func TestCuentaDesactivada_TokenValido_AccountDisabledEnTodasLasRutas(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/auth/me", "/api/reports", "/api/customers"} {
		res := f.do(http.MethodGet, path, f.disabled, nil)
		assert.Equal(t, http.StatusUnauthorized, res.status, path)
		assert.Equal(t, "ACCOUNT_DISABLED", res.body.Error.Code, path)
	}
}

func TestDesactivarCortaAccesoConTokenYaEmitido(t *testing.T) {
	f := newFixture(t)
	tokenBefore := f.token(f.outsider)

	res := f.do(http.MethodDelete, fmt.Sprintf("/api/sales-persons/%d", f.outsider.ID), f.admin, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+tokenBefore)
	after := f.send(req)
	assert.Equal(t, "ACCOUNT_DISABLED", after.body.Error.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes
// ──────────────────────────────────────────────────────────────────────────────

func TestReport_CrearYDuplicadoPorFecha(t *testing.T) {
	f := newFixture(t)
	rep := f.createReport(f.member, "2024-04-01", "draft")
	assert.Equal(t, f.member.ID, rep.SalesPersonID)
	assert.Equal(t, "2024-04-01", rep.ReportDate)
	require.Len(t, rep.VisitRecords, 1)
	assert.Equal(t, "Acme", rep.VisitRecords[0].CustomerName)

	dup := f.do(http.MethodPost, "/api/reports", f.member, map[string]interface{}{
		"report_date": "2024-04-01", "status": "draft",
	})
	assert.Equal(t, http.StatusConflict, dup.status)
	assert.Equal(t, "CONFLICT", dup.body.Error.Code)
}

func TestReport_ValidacionConDetalle(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodPost, "/api/reports", f.member, map[string]interface{}{
		"report_date": "01/04/2024",
		"status":      "reviewed",
		"visit_records": []map[string]interface{}{
			{"customer_id": f.customer.ID, "visit_time": "25:99", "content": ""},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Equal(t, "VALIDATION_ERROR", res.body.Error.Code)
	assert.Contains(t, res.body.Error.Details, "report_date")
	assert.Contains(t, res.body.Error.Details, "status")
	assert.Contains(t, res.body.Error.Details, "visit_records[0].visit_time")
	assert.Contains(t, res.body.Error.Details, "visit_records[0].content")
}

func TestReport_ClienteInexistente_Retorna422(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodPost, "/api/reports", f.member, map[string]interface{}{
		"report_date":   "2024-04-02",
		"status":        "draft",
		"visit_records": []map[string]interface{}{{"customer_id": 9999, "content": "x"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Contains(t, res.body.Error.Details, "visit_records[0].customer_id")
}

func TestReport_Visibilidad(t *testing.T) {
	f := newFixture(t)
	rep := f.createReport(f.member, "2024-04-03", "submitted")

	cases := []struct {
		name   string
		as     *entity.SalesPerson
		status int
	}{
		{"dueño", f.member, http.StatusOK},
		{"jefe directo", f.boss, http.StatusOK},
		{"admin", f.admin, http.StatusOK},
		{"otro jefe", f.other, http.StatusForbidden},
		{"otro member", f.outsider, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := f.do(http.MethodGet, reportPath(rep.ID, ""), tc.as, nil)
			assert.Equal(t, tc.status, res.status, string(res.raw))
		})
	}

	missing := f.do(http.MethodGet, reportPath(9999, ""), f.admin, nil)
	assert.Equal(t, http.StatusNotFound, missing.status)
	assert.Equal(t, "NOT_FOUND", missing.body.Error.Code)
}

func TestReport_ListadoSegunRol(t *testing.T) {
	f := newFixture(t)
	f.createReport(f.member, "2024-04-01", "submitted")
	f.createReport(f.boss, "2024-04-02", "draft")
	f.createReport(f.outsider, "2024-04-03", "draft")

	total := func(as *entity.SalesPerson, query string) int {
		res := f.do(http.MethodGet, "/api/reports"+query, as, nil)
		require.Equal(t, http.StatusOK, res.status, string(res.raw))
		var out dto.ReportListResponse
		res.data(t, &out)
		assert.Len(t, out.Items, out.Page.Total)
		return out.Page.Total
	}

	assert.Equal(t, 3, total(f.admin, ""))
	assert.Equal(t, 2, total(f.boss, ""), "propios y del subordinado")
	assert.Equal(t, 1, total(f.member, ""))
	assert.Equal(t, 0, total(f.other, ""))
	assert.Equal(t, 1, total(f.admin, "?status=submitted"))
	assert.Equal(t, 2, total(f.admin, "?date_from=2024-04-02&date_to=2024-04-03"))
	assert.Equal(t, 0, total(f.boss, fmt.Sprintf("?sales_person_id=%d", f.outsider.ID)), "el filtro no amplía la visibilidad")

	bad := f.do(http.MethodGet, "/api/reports?date_from=ayer", f.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, bad.status)
}

func TestReport_SoloElDuenoEdita_AdminIncluido(t *testing.T) {
	f := newFixture(t)
	rep := f.createReport(f.member, "2024-04-04", "draft")
	update := map[string]interface{}{"problem": "nuevo", "plan": "otro", "status": "submitted"}

	for _, as := range []*entity.SalesPerson{f.admin, f.boss, f.outsider} {
		res := f.do(http.MethodPut, reportPath(rep.ID, ""), as, update)
		assert.Equal(t, http.StatusForbidden, res.status, as.EmployeeCode)
		assert.Equal(t, "FORBIDDEN", res.body.Error.Code)
	}

	res := f.do(http.MethodPut, reportPath(rep.ID, ""), f.member, update)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	var out dto.ReportResponse
	res.data(t, &out)
	assert.Equal(t, "submitted", out.Status)
	assert.Equal(t, "nuevo", out.Problem)
	assert.Empty(t, out.VisitRecords, "las visitas se reemplazan por las enviadas")
}

func TestReport_CicloDeRevision(t *testing.T) {
	f := newFixture(t)
	draft := f.createReport(f.member, "2024-04-05", "draft")

	res := f.do(http.MethodPost, reportPath(draft.ID, "/review"), f.boss, nil)
	assert.Equal(t, http.StatusConflict, res.status, "un borrador no se revisa")

	res = f.do(http.MethodPut, reportPath(draft.ID, ""), f.member, map[string]interface{}{"status": "submitted"})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))

	res = f.do(http.MethodPost, reportPath(draft.ID, "/review"), f.member, nil)
	assert.Equal(t, http.StatusForbidden, res.status, "un member no revisa ni su propio informe")

	res = f.do(http.MethodPost, reportPath(draft.ID, "/review"), f.other, nil)
	assert.Equal(t, http.StatusForbidden, res.status)

	res = f.do(http.MethodPost, reportPath(draft.ID, "/review"), f.boss, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	var out dto.ReportResponse
	res.data(t, &out)
	assert.Equal(t, "reviewed", out.Status)

	res = f.do(http.MethodPut, reportPath(draft.ID, ""), f.member, map[string]interface{}{"status": "submitted"})
	assert.Equal(t, http.StatusConflict, res.status, "un informe revisado no se edita")
}

func TestReport_SoloSeBorranBorradores(t *testing.T) {
	f := newFixture(t)
	submitted := f.createReport(f.member, "2024-04-06", "submitted")
	draft := f.createReport(f.member, "2024-04-07", "draft")

	res := f.do(http.MethodDelete, reportPath(submitted.ID, ""), f.member, nil)
	assert.Equal(t, http.StatusConflict, res.status)

	res = f.do(http.MethodDelete, reportPath(draft.ID, ""), f.admin, nil)
	assert.Equal(t, http.StatusForbidden, res.status)

	res = f.do(http.MethodDelete, reportPath(draft.ID, ""), f.member, nil)
	assert.Equal(t, http.StatusOK, res.status)

	res = f.do(http.MethodGet, reportPath(draft.ID, ""), f.member, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestReport_ExportPDF(t *testing.T) {
	f := newFixture(t)
	rep := f.createReport(f.member, "2024-04-08", "submitted")

	res := f.do(http.MethodGet, reportPath(rep.ID, "/pdf"), f.boss, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "application/pdf", res.headers.Get("Content-Type"))
	assert.Contains(t, res.headers.Get("Content-Disposition"), fmt.Sprintf("informe_%d_2024-04-08.pdf", f.member.ID))
	assert.True(t, strings.HasPrefix(string(res.raw), "%PDF"))

	res = f.do(http.MethodGet, reportPath(rep.ID, "/pdf"), f.outsider, nil)
	assert.Equal(t, http.StatusForbidden, res.status)
}

func TestReport_ExportPDF_SinGenerador_503(t *testing.T) {
	f := newFixtureWithPDF(t, nil)
	rep := f.createReport(f.member, "2024-04-13", "submitted")

	res := f.do(http.MethodGet, reportPath(rep.ID, "/pdf"), f.member, nil)
	assert.Equal(t, http.StatusServiceUnavailable, res.status)
	assert.Equal(t, "SERVICE_UNAVAILABLE", res.body.Error.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comentarios
// ──────────────────────────────────────────────────────────────────────────────

func TestComment_MemberNoComentaNiSuPropioInforme(t *testing.T) {
	f := newFixture(t)
	rep := f.createReport(f.member, "2024-04-09", "submitted")

	res := f.do(http.MethodPost, reportPath(rep.ID, "/comments"), f.member, dto.CreateCommentRequest{Content: "auto"})
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "FORBIDDEN", res.body.Error.Code)
}

func TestComment_JefeDirectoYAdminComentan(t *testing.T) {
	f := newFixture(t)
	rep := f.createReport(f.member, "2024-04-10", "submitted")

	res := f.do(http.MethodPost, reportPath(rep.ID, "/comments"), f.boss, dto.CreateCommentRequest{Content: "bien"})
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	var c dto.CommentResponse
	res.data(t, &c)
	assert.Equal(t, "Jefa", c.SalesPersonName)

	res = f.do(http.MethodPost, reportPath(rep.ID, "/comments"), f.admin, dto.CreateCommentRequest{Content: "ok"})
	assert.Equal(t, http.StatusCreated, res.status)

	res = f.do(http.MethodPost, reportPath(rep.ID, "/comments"), f.other, dto.CreateCommentRequest{Content: "no"})
	assert.Equal(t, http.StatusForbidden, res.status, "un jefe que no es el directo no comenta")

	res = f.do(http.MethodGet, reportPath(rep.ID, "/comments"), f.member, nil)
	require.Equal(t, http.StatusOK, res.status)
	var list []dto.CommentResponse
	res.data(t, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "bien", list[0].Content)

	res = f.do(http.MethodGet, reportPath(rep.ID, ""), f.member, nil)
	var detail dto.ReportResponse
	res.data(t, &detail)
	assert.Len(t, detail.Comments, 2)
}

func TestComment_SoloElAutorBorra(t *testing.T) {
	f := newFixture(t)
	rep := f.createReport(f.member, "2024-04-11", "submitted")
	res := f.do(http.MethodPost, reportPath(rep.ID, "/comments"), f.boss, dto.CreateCommentRequest{Content: "revisar precios"})
	require.Equal(t, http.StatusCreated, res.status)
	var c dto.CommentResponse
	res.data(t, &c)
	path := fmt.Sprintf("/api/comments/%d", c.ID)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, path, f.admin, nil).status, "admin tampoco")
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, path, f.member, nil).status)
	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, path, f.boss, nil).status)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, path, f.boss, nil).status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos maestros
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesPersons_SoloAdmin(t *testing.T) {
	f := newFixture(t)
	for _, as := range []*entity.SalesPerson{f.boss, f.member} {
		res := f.do(http.MethodGet, "/api/sales-persons", as, nil)
		assert.Equal(t, http.StatusForbidden, res.status)
	}

	res := f.do(http.MethodGet, "/api/sales-persons?is_active=false", f.admin, nil)
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	var out dto.SalesPersonListResponse
	res.data(t, &out)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "disabled", out.Items[0].EmployeeCode)
}

func TestSalesPersons_AltaEdicionYBaja(t *testing.T) {
	f := newFixture(t)
	in := dto.CreateSalesPersonRequest{
		EmployeeCode: "E100", Name: "Nueva", Email: "Nueva@Example.com",
		Password: "password-larga", Role: "member", ManagerID: &f.boss.ID,
	}
	res := f.do(http.MethodPost, "/api/sales-persons", f.admin, in)
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	var sp dto.SalesPersonResponse
	res.data(t, &sp)
	assert.Equal(t, "nueva@example.com", sp.Email)
	assert.True(t, sp.IsActive)

	in.EmployeeCode = "E101"
	dup := f.do(http.MethodPost, "/api/sales-persons", f.admin, in)
	assert.Equal(t, http.StatusConflict, dup.status, "email duplicado")

	missing := int64(9999)
	in.EmployeeCode, in.Email, in.ManagerID = "E102", "otra@example.com", &missing
	res = f.do(http.MethodPost, "/api/sales-persons", f.admin, in)
	assert.Equal(t, http.StatusUnprocessableEntity, res.status, "el jefe debe existir")

	self := sp.ID
	res = f.do(http.MethodPut, fmt.Sprintf("/api/sales-persons/%d", sp.ID), f.admin, dto.UpdateSalesPersonRequest{
		Name: "Nueva", Email: "nueva@example.com", Role: "member", ManagerID: &self,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.status, "nadie es su propio jefe")
	assert.Contains(t, res.body.Error.Details, "manager_id")

	res = f.do(http.MethodPut, fmt.Sprintf("/api/sales-persons/%d", sp.ID), f.admin, dto.UpdateSalesPersonRequest{
		Name: "Nueva Jefa", Email: "nueva@example.com", Role: "manager",
	})
	require.Equal(t, http.StatusOK, res.status, string(res.raw))
	res.data(t, &sp)
	assert.Equal(t, "manager", sp.Role)
	assert.Equal(t, "E100", sp.EmployeeCode)
	assert.Nil(t, sp.ManagerID)

	res = f.do(http.MethodDelete, fmt.Sprintf("/api/sales-persons/%d", f.admin.ID), f.admin, nil)
	assert.Equal(t, http.StatusConflict, res.status, "el admin no se desactiva a sí mismo")
}

func TestCustomers_LecturaParaTodosEscrituraAdmin(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodGet, "/api/customers?q=acme", f.member, nil)
	require.Equal(t, http.StatusOK, res.status)
	var list dto.CustomerListResponse
	res.data(t, &list)
	assert.Equal(t, 1, list.Page.Total)

	in := dto.CreateCustomerRequest{CustomerCode: "C002", Name: "Globex"}
	res = f.do(http.MethodPost, "/api/customers", f.member, in)
	assert.Equal(t, http.StatusForbidden, res.status)

	res = f.do(http.MethodPost, "/api/customers", f.admin, in)
	require.Equal(t, http.StatusCreated, res.status, string(res.raw))
	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/api/customers", f.admin, in).status)

	res = f.do(http.MethodPost, "/api/customers", f.admin, dto.CreateCustomerRequest{CustomerCode: "C003", Email: "no-es-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Contains(t, res.body.Error.Details, "name")
	assert.Contains(t, res.body.Error.Details, "email")
}

func TestCustomers_ReferenciadoNoSeBorra(t *testing.T) {
	f := newFixture(t)
	f.createReport(f.member, "2024-04-12", "draft")

	res := f.do(http.MethodDelete, fmt.Sprintf("/api/customers/%d", f.customer.ID), f.admin, nil)
	assert.Equal(t, http.StatusConflict, res.status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operación
// ──────────────────────────────────────────────────────────────────────────────

func TestOps_HealthYMetrics(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, res.status)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metrics := f.send(req)
	assert.Equal(t, http.StatusOK, metrics.status)
	assert.Contains(t, string(metrics.raw), "dailyreport_http_requests_total")
}

func TestRutaInexistenteBajoAPI_404SinToken(t *testing.T) {
	f := newFixture(t)
	res := f.do(http.MethodGet, "/api/no-existe", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "NOT_FOUND", res.body.Error.Code)

	res = f.do(http.MethodGet, "/api/reports", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status, "las rutas existentes siguen protegidas")
}
