package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shutter-safari/api/internal/config"
	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/mocks"
	"github.com/shutter-safari/api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

type testApp struct {
	users    *mocks.MockUserStore
	classes  *mocks.MockClassStore
	carts    *mocks.MockCartStore
	payments *mocks.MockPaymentStore
	tokens   auth.TokenService
	handler  http.Handler
}

func testConfig(strict bool) *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 0, LogLevel: "error", ShutdownTimeoutSeconds: 1},
		Database: config.DatabaseConfig{URI: "mongodb://localhost:27017", Name: "test", TimeoutSeconds: 1},
		Auth: config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
			StrictRoles:          strict,
		},
		Payment: config.PaymentConfig{StripeSecretKey: "sk_test_x", Currency: "usd"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

func newTestApp(t *testing.T, strict bool, users ...*domain.User) *testApp {
	t.Helper()
	return newTestAppWithPinger(t, strict, nil, users...)
}

func newTestAppWithPinger(t *testing.T, strict bool, db pinger, users ...*domain.User) *testApp {
	t.Helper()

	cfg := testConfig(strict)
	tokens, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	ta := &testApp{
		users:    mocks.NewMockUserStore(users...),
		classes:  mocks.NewMockClassStore(),
		carts:    mocks.NewMockCartStore(),
		payments: mocks.NewMockPaymentStore(),
		tokens:   tokens,
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(cfg, log, dependencies{
		userStore:    ta.users,
		classStore:   ta.classes,
		cartStore:    ta.carts,
		paymentStore: ta.payments,
		transactor:   &mocks.MockTransactor{},
		tokenService: tokens,
		processor:    &mocks.MockPaymentProcessor{ClientSecret: "pi_1_secret_2"},
		pinger:       db,
	})
	require.NoError(t, err)
	ta.handler = app.setupRouter()
	return ta
}

func (ta *testApp) token(t *testing.T, email string) string {
	t.Helper()
	token, err := ta.tokens.GenerateToken(context.Background(), auth.IdentityClaims{Email: email})
	require.NoError(t, err)
	return token
}

func (ta *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)

	rec := ta.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Shutter Safari is sitting", rec.Body.String())

	rec = ta.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	rec = ta.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/health",service="shutter-safari",status="200"} 1`)
}

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	return p.err
}

func TestHealthPingsDatabase(t *testing.T) {
	t.Parallel()

	ta := newTestAppWithPinger(t, false, &fakePinger{})
	rec := ta.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	ta = newTestAppWithPinger(t, false, &fakePinger{err: errors.New("server selection timeout")})
	rec = ta.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database unavailable", rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "selection")
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/carts", nil)
	req.Header.Set("Origin", "https://shutter.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIssuedTokenAuthenticates(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false, &domain.User{Email: "ana@example.com", Role: domain.RoleAdmin})

	rec := ta.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": "ana@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	var issued map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issued))

	rec = ta.do(t, http.MethodGet, "/users/admin/ana@example.com", issued["token"], nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin": true}`, rec.Body.String())

	rec = ta.do(t, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ta.do(t, http.MethodGet, "/users", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleCheckForOtherIdentity(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false, &domain.User{Email: "ana@example.com", Role: domain.RoleAdmin})

	rec := ta.do(t, http.MethodGet, "/users/admin/ana@example.com", ta.token(t, "eve@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin": false}`, rec.Body.String())
	assert.Zero(t, ta.users.GetByEmailCalls)
}

func TestCreateUserIsIdempotent(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)
	body := map[string]string{"name": "Ana", "email": "ana@example.com"}

	rec := ta.do(t, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "user already exists"}`, rec.Body.String())
	assert.Len(t, ta.users.Users(), 1)
}

func TestApprovedClassesOnly(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)

	for i, status := range []domain.ClassStatus{
		domain.ClassStatusApproved, domain.ClassStatusApproved, domain.ClassStatusApproved,
		domain.ClassStatusPending, domain.ClassStatusDenied,
	} {
		rec := ta.do(t, http.MethodPost, "/classes", "", map[string]interface{}{
			"name":     "class",
			"insEmail": "e@example.com",
			"status":   status,
			"ratings":  float64(i),
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := ta.do(t, http.MethodGet, "/classes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var classes []domain.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &classes))
	require.Len(t, classes, 3)
	for _, c := range classes {
		assert.Equal(t, domain.ClassStatusApproved, c.Status)
		assert.Equal(t, 3, c.SameEmailCount)
	}
}

func TestCartAccess(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)
	anaToken := ta.token(t, "ana@example.com")
	item := map[string]interface{}{"email": "ana@example.com", "classId": "c1", "price": 10}

	rec := ta.do(t, http.MethodPost, "/carts", anaToken, item)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ta.do(t, http.MethodPost, "/carts", anaToken, item)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, ta.carts.Items(), 1)

	rec = ta.do(t, http.MethodGet, "/carts?email=ana@example.com", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "c1")

	rec = ta.do(t, http.MethodGet, "/carts?email=ana@example.com", ta.token(t, "eve@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "c1")
	assert.Zero(t, ta.carts.ListByEmailCalls)

	rec = ta.do(t, http.MethodGet, "/carts?email=ana@example.com", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"classId":"c1"`)
}

func TestCheckout(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)
	token := ta.token(t, "ana@example.com")

	rec := ta.do(t, http.MethodPost, "/carts", token,
		map[string]interface{}{"email": "ana@example.com", "classId": "c1", "price": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	cartID := ta.carts.Items()[0].ID.Hex()

	rec = ta.do(t, http.MethodPost, "/create-payment-intent", token, map[string]float64{"price": 10})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret": "pi_1_secret_2"}`, rec.Body.String())

	rec = ta.do(t, http.MethodPost, "/payments", "", map[string]interface{}{"cartItems": cartID})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ta.do(t, http.MethodPost, "/payments", token, map[string]interface{}{
		"email":     "ana@example.com",
		"price":     10,
		"cartItems": cartID,
		"date":      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ta.carts.Items())
	assert.Len(t, ta.payments.Payments(), 1)
}

func TestPaymentsNewestFirst(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)
	token := ta.token(t, "ana@example.com")

	for _, day := range []int{3, 1, 2} {
		rec := ta.do(t, http.MethodPost, "/payments", token, map[string]interface{}{
			"email":     "ana@example.com",
			"cartItems": "0123456789abcdef01234567",
			"date":      time.Date(2026, 5, day, 0, 0, 0, 0, time.UTC),
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := ta.do(t, http.MethodGet, "/payments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var payments []domain.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payments))
	require.Len(t, payments, 3)
	for i, want := range []int{3, 2, 1} {
		assert.Equal(t, want, payments[i].Date.Day())
	}
}

func TestStrictRoles(t *testing.T) {
	t.Parallel()

	users := []*domain.User{
		{Email: "admin@example.com", Role: domain.RoleAdmin},
		{Email: "ins@example.com", Role: domain.RoleInstructor},
		{Email: "stu@example.com", Role: domain.RoleUser},
	}
	ta := newTestApp(t, true, users...)
	class := map[string]interface{}{"name": "Dawn", "insEmail": "ins@example.com", "status": "pending"}

	rec := ta.do(t, http.MethodPost, "/classes", "", class)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ta.do(t, http.MethodPost, "/classes", ta.token(t, "stu@example.com"), class)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ta.do(t, http.MethodPost, "/classes", ta.token(t, "ins@example.com"), class)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, http.MethodGet, "/all-users", ta.token(t, "ins@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ta.do(t, http.MethodGet, "/all-users", ta.token(t, "admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), `"email"`))

	rec = ta.do(t, http.MethodGet, "/all-users", ta.token(t, "nobody@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStrictRolesRejectSelfPromotion(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, true, &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin})

	rec := ta.do(t, http.MethodPost, "/users", "", map[string]string{
		"name":  "Mallory",
		"email": "mallory@example.com",
		"role":  "admin",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	mallory := ta.token(t, "mallory@example.com")
	rec = ta.do(t, http.MethodGet, "/all-users", mallory, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ta.do(t, http.MethodGet, "/users/admin/mallory@example.com", mallory, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"admin": false}`, rec.Body.String())

	var malloryID string
	for _, u := range ta.users.Users() {
		if u.Email == "mallory@example.com" {
			assert.Equal(t, domain.RoleUser, u.Role)
			malloryID = u.ID.Hex()
		}
	}
	require.NotEmpty(t, malloryID)

	promote := map[string]string{"email": "mallory@example.com", "role": "admin"}
	rec = ta.do(t, http.MethodPut, "/user/"+malloryID, "", promote)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = ta.do(t, http.MethodPut, "/user/"+malloryID, mallory, promote)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ta.do(t, http.MethodDelete, "/user/"+malloryID, mallory, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ta.do(t, http.MethodGet, "/all-users", mallory, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ta.do(t, http.MethodPut, "/user/"+malloryID, ta.token(t, "admin@example.com"),
		map[string]string{"email": "mallory@example.com", "role": "instructor"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDocumentsStoredAsSent(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false)
	token := ta.token(t, "ana@example.com")

	rec := ta.do(t, http.MethodPost, "/classes", "", map[string]interface{}{
		"title":    "Sunrise Landscapes",
		"insEmail": "e@x.com",
		"status":   "pending",
		"seats":    12,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, http.MethodGet, "/my-classes/e@x.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var classes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &classes))
	require.Len(t, classes, 1)
	assert.Equal(t, "Sunrise Landscapes", classes[0]["title"])
	assert.Equal(t, float64(12), classes[0]["seats"])
	assert.NotContains(t, classes[0], "ratings")

	rec = ta.do(t, http.MethodPost, "/carts", token, map[string]interface{}{
		"email":   "ana@example.com",
		"classId": "c9",
		"level":   "beginner",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cartID := ta.carts.Items()[0].ID.Hex()

	rec = ta.do(t, http.MethodGet, "/carts?email=ana@example.com", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level":"beginner"`)

	rec = ta.do(t, http.MethodPost, "/payments", token, map[string]interface{}{
		"email":     "ana@example.com",
		"price":     10,
		"amount":    1000,
		"cartItems": cartID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, http.MethodGet, "/payments", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var payments []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, float64(1000), payments[0]["amount"])
}

func TestOpenRolesByDefault(t *testing.T) {
	t.Parallel()
	ta := newTestApp(t, false, &domain.User{Email: "stu@example.com", Role: domain.RoleUser})

	rec := ta.do(t, http.MethodPost, "/classes", "", map[string]string{"name": "Dawn", "insEmail": "x@example.com"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, http.MethodGet, "/all-users", ta.token(t, "stu@example.com"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ta.do(t, http.MethodGet, "/all-users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
