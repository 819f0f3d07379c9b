package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropDatabas3/alquiler/internal/audit"
	"github.com/dropDatabas3/alquiler/internal/authz"
	"github.com/dropDatabas3/alquiler/internal/domain/repository"
	"github.com/dropDatabas3/alquiler/internal/http/controllers"
	"github.com/dropDatabas3/alquiler/internal/http/router"
	"github.com/dropDatabas3/alquiler/internal/http/services"
	"github.com/dropDatabas3/alquiler/internal/idp"
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
	"github.com/dropDatabas3/alquiler/internal/rate"
	"github.com/dropDatabas3/alquiler/internal/security/password"
	"github.com/dropDatabas3/alquiler/internal/store/adapters/memory"
)

type harness struct {
	h       http.Handler
	iss     *jwtx.Issuer
	conn    *memory.Connection
	adminID string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	password.Cost = bcrypt.MinCost
	conn := memory.New()
	iss, err := jwtx.NewIssuer("alquiler-test", []byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)

	hash, err := password.Hash("Admin123!")
	require.NoError(t, err)
	admin, err := conn.Users().Create(context.Background(), repository.User{
		FullName:     "Admin",
		Email:        "admin@example.com",
		IsActive:     true,
		IsAdmin:      true,
		PasswordHash: hash,
	})
	require.NoError(t, err)

	svc := services.New(services.Deps{
		Store:    conn,
		Issuer:   iss,
		Provider: idp.NewLocal(conn.Users()),
		Audit:    audit.NewTrail(nil),
	})
	h := router.New(router.Deps{
		Controllers: controllers.New(svc, repository.MaxLimit),
		Resolver:    authz.NewResolver(iss),
		Limiter: rate.NewBuckets(nil, "test:", map[string]rate.Rule{
			"login": {Limit: 2, Window: time.Minute},
		}),
	})
	return harness{h: h, iss: iss, conn: conn, adminID: admin.ID}
}

func (hs harness) token(t *testing.T, s jwtx.Subject) string {
	t.Helper()
	tok, _, err := hs.iss.IssueAccess(s)
	require.NoError(t, err)
	return tok
}

func (hs harness) adminToken(t *testing.T) string {
	return hs.token(t, jwtx.Subject{ID: hs.adminID, Email: "admin@example.com", Active: true, Admin: true})
}

func (hs harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter_LoginThenMe(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(t, http.MethodPost, "/login", "", map[string]string{"email": "admin@example.com", "password": "Admin123!"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tok, _ := decode(t, rec)["access_token"].(string)
	require.NotEmpty(t, tok)

	rec = hs.do(t, http.MethodGet, "/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "admin@example.com", me["email"])
	assert.Equal(t, true, me["is_admin"])
}

func TestRouter_LoginWrongPassword(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(t, http.MethodPost, "/login", "", map[string]string{"email": "admin@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, rec)["code"])
}

func TestRouter_LoginRateLimited(t *testing.T) {
	hs := newHarness(t)
	body := map[string]string{"email": "admin@example.com", "password": "nope"}
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusUnauthorized, hs.do(t, http.MethodPost, "/login", "", body).Code)
	}
	rec := hs.do(t, http.MethodPost, "/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRouter_AuthFailures(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(t, http.MethodGet, "/contracts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_MISSING", decode(t, rec)["code"])

	rec = hs.do(t, http.MethodGet, "/contracts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	inactive := hs.token(t, jwtx.Subject{ID: "65a0000000000000000000aa", Active: false})
	rec = hs.do(t, http.MethodGet, "/contracts", inactive, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "ACCOUNT_INACTIVE", decode(t, rec)["code"])

	user := hs.token(t, jwtx.Subject{ID: "65a0000000000000000000bb", Active: true})
	rec = hs.do(t, http.MethodPost, "/apartments", user, map[string]string{"number": "a1", "level": "1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = hs.do(t, http.MethodGet, "/reports/payments/stats", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ApartmentLifecycle(t *testing.T) {
	hs := newHarness(t)
	admin := hs.adminToken(t)

	rec := hs.do(t, http.MethodPost, "/apartments", admin, map[string]string{"number": "A1", "level": "1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id, _ := decode(t, rec)["id"].(string)
	require.NotEmpty(t, id)

	rec = hs.do(t, http.MethodPost, "/apartments", admin, map[string]string{"number": "a1", "level": "2"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = hs.do(t, http.MethodGet, "/apartments?active=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list, _ := decode(t, rec)["apartments"].([]any)
	assert.Len(t, list, 1)

	rec = hs.do(t, http.MethodDelete, "/apartments/"+id, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted", decode(t, rec)["action"])

	rec = hs.do(t, http.MethodGet, "/apartments/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ContractDeleteWithPaymentsDeactivates(t *testing.T) {
	hs := newHarness(t)
	admin := hs.adminToken(t)

	rec := hs.do(t, http.MethodPost, "/apartments", admin, map[string]string{"number": "b2", "level": "3"})
	require.Equal(t, http.StatusCreated, rec.Code)
	aptID := decode(t, rec)["id"].(string)

	rec = hs.do(t, http.MethodPost, "/contracts", admin, map[string]string{
		"owner_user_id": hs.adminID,
		"apartment_id":  aptID,
		"start_date":    "2025-01-01",
		"end_date":      "2025-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ctrID := decode(t, rec)["id"].(string)

	rec = hs.do(t, http.MethodPost, "/contracts/"+ctrID+"/payments", admin, map[string]any{
		"cost":              150.5,
		"payment_method_id": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = hs.do(t, http.MethodGet, "/contracts/"+ctrID+"/payments/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = hs.do(t, http.MethodDelete, "/contracts/"+ctrID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decode(t, rec)
	assert.Equal(t, "deactivated", d["action"])
	assert.EqualValues(t, 1, d["dependent_count"])
}

func TestRouter_StatsWorkbook(t *testing.T) {
	hs := newHarness(t)
	rec := hs.do(t, http.MethodGet, "/reports/payments/stats.xlsx", hs.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payment_stats.xlsx")
	// Un xlsx es un zip.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	hs := newHarness(t)

	rec := hs.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ROUTE_NOT_FOUND", decode(t, rec)["code"])

	rec = hs.do(t, http.MethodPatch, "/healthz", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_HealthAndVersion(t *testing.T) {
	hs := newHarness(t)
	assert.Equal(t, http.StatusOK, hs.do(t, http.MethodGet, "/", "", nil).Code)
	assert.Equal(t, http.StatusOK, hs.do(t, http.MethodGet, "/healthz", "", nil).Code)
	rec := hs.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decode(t, rec)["status"])
}

func TestRouter_ExpiredTokenRejectedOnReads(t *testing.T) {
	hs := newHarness(t)
	expired := &jwtx.Issuer{Iss: hs.iss.Iss, Secret: hs.iss.Secret, AccessTTL: -time.Minute}
	tok, _, err := expired.IssueAccess(jwtx.Subject{ID: hs.adminID, Active: true, Admin: true})
	require.NoError(t, err)

	for _, path := range []string{"/me", "/contracts", "/payments", "/maintenance_types", "/reports/payments/stats"} {
		rec := hs.do(t, http.MethodGet, path, tok, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "TOKEN_EXPIRED", decode(t, rec)["code"], path)
	}
}
