package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shutter-safari/api/internal/api"
	"github.com/shutter-safari/api/internal/api/shared"
	"github.com/shutter-safari/api/internal/domain"
	"github.com/shutter-safari/api/internal/mocks"
	"github.com/shutter-safari/api/internal/service"
	"github.com/shutter-safari/api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type harness struct {
	users     *mocks.MockUserStore
	classes   *mocks.MockClassStore
	carts     *mocks.MockCartStore
	payments  *mocks.MockPaymentStore
	processor *mocks.MockPaymentProcessor
	tokens    *mocks.MockTokenService
	router    chi.Router
}

// withCaller stands in for the auth middleware: the X-Test-Email header
// becomes the caller's token claims.
func withCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email := r.Header.Get("X-Test-Email"); email != "" {
			ctx := context.WithValue(r.Context(), shared.ClaimsContextKey, &auth.Claims{Email: email})
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &harness{
		users:     mocks.NewMockUserStore(),
		classes:   mocks.NewMockClassStore(),
		carts:     mocks.NewMockCartStore(),
		payments:  mocks.NewMockPaymentStore(),
		processor: &mocks.MockPaymentProcessor{ClientSecret: "pi_123_secret_abc"},
		tokens:    mocks.NewMockTokenService("ana@example.com"),
	}

	paymentService, err := service.NewPaymentService(
		h.payments, h.carts, &mocks.MockTransactor{}, h.processor, "usd", log)
	require.NoError(t, err)

	authHandler := api.NewAuthHandler(h.tokens, log)
	userHandler := api.NewUserHandler(service.NewUserService(h.users, log), log)
	classHandler := api.NewClassHandler(service.NewClassService(h.classes, log), log)
	cartHandler := api.NewCartHandler(service.NewCartService(h.carts, log), log)
	paymentHandler := api.NewPaymentHandler(paymentService, log)

	r := chi.NewRouter()
	r.Use(withCaller)
	r.Post("/jwt", authHandler.IssueToken)
	r.Get("/users", userHandler.ListUsers)
	r.Post("/users", userHandler.CreateUser)
	r.Get("/users/{role}/{email}", userHandler.CheckRole)
	r.Put("/user/{id}", userHandler.UpsertUser)
	r.Delete("/user/{id}", userHandler.DeleteUser)
	r.Put("/update-user-role/{id}", userHandler.UpdateUserRole)
	r.Get("/classes", classHandler.ListApproved)
	r.Post("/classes", classHandler.CreateClass)
	r.Get("/popular", classHandler.ListPopular)
	r.Get("/my-classes/{email}", classHandler.ListByInstructor)
	r.Get("/carts", cartHandler.ListCart)
	r.Post("/carts", cartHandler.AddToCart)
	r.Delete("/carts/{id}", cartHandler.RemoveFromCart)
	r.Post("/create-payment-intent", paymentHandler.CreatePaymentIntent)
	r.Post("/payments", paymentHandler.RecordPayment)
	r.Get("/payments", paymentHandler.ListPayments)
	h.router = r

	return h
}

func (h *harness) do(t *testing.T, method, path, caller string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if caller != "" {
		req.Header.Set("X-Test-Email", caller)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	t.Run("carries extra claims", func(t *testing.T) {
		h := newHarness(t)
		var got auth.IdentityClaims
		h.tokens.GenerateTokenFn = func(_ context.Context, identity auth.IdentityClaims) (string, error) {
			got = identity
			return "signed", nil
		}

		rec := h.do(t, http.MethodPost, "/jwt", "", map[string]interface{}{
			"email": "ana@example.com",
			"name":  "Ana",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "signed", decode[api.TokenResponse](t, rec).Token)
		assert.Equal(t, "ana@example.com", got.Email)
		assert.Equal(t, map[string]interface{}{"name": "Ana"}, got.Extra)
	})

	t.Run("rejects missing email", func(t *testing.T) {
		h := newHarness(t)
		rec := h.do(t, http.MethodPost, "/jwt", "", map[string]string{"name": "Ana"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		h := newHarness(t)
		rec := h.do(t, http.MethodPost, "/jwt", "", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	body := map[string]string{"name": "Ana", "email": "ana@example.com", "photoUrl": "http://x/a.png"}

	rec := h.do(t, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[map[string]string](t, rec)
	assert.NotEmpty(t, created["insertedId"])

	rec = h.do(t, http.MethodPost, "/users", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user already exists", decode[shared.MessageResponse](t, rec).Message)

	users := h.users.Users()
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleUser, users[0].Role)

	rec = h.do(t, http.MethodPost, "/users", "", map[string]string{"email": "bo@example.com", "role": "owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckRole(t *testing.T) {
	t.Parallel()

	h := rebuildWithUsers(t, mocks.NewMockUserStore(&domain.User{Email: "ana@example.com", Role: domain.RoleAdmin}))

	tests := []struct {
		name   string
		path   string
		caller string
		want   map[string]bool
		status int
	}{
		{"admin holds admin", "/users/admin/ana@example.com", "ana@example.com", map[string]bool{"admin": true}, 200},
		{"admin is not instructor", "/users/instructor/ana@example.com", "ana@example.com",
			map[string]bool{"instructor": false}, 200},
		{"other identity gets false", "/users/admin/ana@example.com", "eve@example.com",
			map[string]bool{"admin": false}, 200},
		{"unknown role", "/users/owner/ana@example.com", "ana@example.com", nil, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(t, http.MethodGet, tt.path, tt.caller, nil)
			require.Equal(t, tt.status, rec.Code)
			if tt.want != nil {
				assert.Equal(t, tt.want, decode[map[string]bool](t, rec))
			}
		})
	}
}

// rebuildWithUsers mounts the user routes over a seeded user store.
func rebuildWithUsers(t *testing.T, users *mocks.MockUserStore) *harness {
	t.Helper()
	h := newHarness(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	userHandler := api.NewUserHandler(service.NewUserService(users, log), log)

	r := chi.NewRouter()
	r.Use(withCaller)
	r.Get("/users/{role}/{email}", userHandler.CheckRole)
	r.Put("/update-user-role/{id}", userHandler.UpdateUserRole)
	r.Delete("/user/{id}", userHandler.DeleteUser)
	h.users = users
	h.router = r
	return h
}

func TestUserMutations(t *testing.T) {
	t.Parallel()

	ana := &domain.User{Name: "Ana", Email: "ana@example.com", Role: domain.RoleUser}
	h := newHarness(t)

	t.Run("upsert creates then updates", func(t *testing.T) {
		id := primitive.NewObjectID()
		rec := h.do(t, http.MethodPut, "/user/"+id.Hex(), "", map[string]string{"name": "Bo", "email": "bo@example.com"})
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[map[string]interface{}](t, rec)
		assert.EqualValues(t, 1, res["upsertedCount"])
		assert.Equal(t, id.Hex(), res["upsertedId"])

		rec = h.do(t, http.MethodPut, "/user/"+id.Hex(), "", map[string]string{"name": "Bob", "email": "bo@example.com"})
		require.Equal(t, http.StatusOK, rec.Code)
		res = decode[map[string]interface{}](t, rec)
		assert.EqualValues(t, 1, res["matchedCount"])
		assert.EqualValues(t, 1, res["modifiedCount"])
		assert.Nil(t, res["upsertedId"])
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := h.do(t, http.MethodPut, "/user/not-hex", "", map[string]string{"email": "bo@example.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = h.do(t, http.MethodDelete, "/user/not-hex", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update role", func(t *testing.T) {
		users := mocks.NewMockUserStore(ana)
		rh := rebuildWithUsers(t, users)

		rec := rh.do(t, http.MethodPut, "/update-user-role/"+ana.ID.Hex(), "", map[string]string{"roleId": "instructor"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.RoleInstructor, decode[domain.User](t, rec).Role)

		rec = rh.do(t, http.MethodPut, "/update-user-role/"+primitive.NewObjectID().Hex(), "",
			map[string]string{"roleId": "admin"})
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decode[shared.ErrorResponse](t, rec).Error)

		rec = rh.do(t, http.MethodPut, "/update-user-role/"+ana.ID.Hex(), "", map[string]string{"roleId": "owner"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		users := mocks.NewMockUserStore(&domain.User{Email: "cy@example.com", Role: domain.RoleUser})
		rh := rebuildWithUsers(t, users)
		id := users.Users()[0].ID

		rec := rh.do(t, http.MethodDelete, "/user/"+id.Hex(), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]int{"deletedCount": 1}, decode[map[string]int](t, rec))
		assert.Empty(t, users.Users())
	})
}

func TestClassListings(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	for _, c := range []*domain.Class{
		{Name: "Dawn", InsEmail: "e@x.com", Status: domain.ClassStatusApproved, Ratings: 4},
		{Name: "Dusk", InsEmail: "e@x.com", Status: domain.ClassStatusApproved, Ratings: 5},
		{Name: "Macro", InsEmail: "e@x.com", Status: domain.ClassStatusPending, Ratings: 3},
		{Name: "Birds", InsEmail: "f@x.com", Status: domain.ClassStatusDenied, Ratings: 2},
	} {
		rec := h.do(t, http.MethodPost, "/classes", "", c)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := h.do(t, http.MethodGet, "/classes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	approved := decode[[]domain.Class](t, rec)
	require.Len(t, approved, 2)
	for _, c := range approved {
		assert.Equal(t, domain.ClassStatusApproved, c.Status)
		assert.Equal(t, 2, c.SameEmailCount)
	}

	rec = h.do(t, http.MethodGet, "/popular", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	popular := decode[[]domain.Class](t, rec)
	require.Len(t, popular, 4)
	assert.Equal(t, "Dusk", popular[0].Name)
	assert.Equal(t, 3, popular[0].SameEmailCount)
	assert.Equal(t, 1, popular[3].SameEmailCount)

	rec = h.do(t, http.MethodGet, "/my-classes/e@x.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Class](t, rec), 3)
}

func TestCarts(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	item := map[string]interface{}{"email": "ana@example.com", "classId": "c1", "name": "Dawn", "price": 20}

	rec := h.do(t, http.MethodPost, "/carts", "ana@example.com", item)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodPost, "/carts", "ana@example.com", item)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "classId already exists", decode[shared.ErrorResponse](t, rec).Error)
	require.Len(t, h.carts.Items(), 1)

	rec = h.do(t, http.MethodGet, "/carts?email=ana@example.com", "ana@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.CartItem](t, rec), 1)

	rec = h.do(t, http.MethodGet, "/carts?email=ana@example.com", "eve@example.com", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden access", decode[shared.ErrorResponse](t, rec).Error)

	rec = h.do(t, http.MethodGet, "/carts", "ana@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = h.do(t, http.MethodPost, "/carts", "ana@example.com", map[string]string{"email": "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := h.carts.Items()[0].ID
	rec = h.do(t, http.MethodDelete, "/carts/"+id.Hex(), "ana@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"deletedCount": 1}, decode[map[string]int](t, rec))
	assert.Empty(t, h.carts.Items())
}

func TestCreatePaymentIntent(t *testing.T) {
	t.Parallel()

	t.Run("returns client secret", func(t *testing.T) {
		h := newHarness(t)
		rec := h.do(t, http.MethodPost, "/create-payment-intent", "ana@example.com", map[string]float64{"price": 19.99})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pi_123_secret_abc", decode[api.PaymentIntentResponse](t, rec).ClientSecret)

		calls := h.processor.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, int64(1999), calls[0].Amount)
		assert.Equal(t, "usd", calls[0].Currency)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		h := newHarness(t)
		rec := h.do(t, http.MethodPost, "/create-payment-intent", "ana@example.com", map[string]float64{"price": 0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, h.processor.Calls())
	})

	t.Run("rejects price below one cent", func(t *testing.T) {
		h := newHarness(t)
		rec := h.do(t, http.MethodPost, "/create-payment-intent", "ana@example.com", map[string]float64{"price": 0.001})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, h.processor.Calls())
	})

	t.Run("processor failure is 500", func(t *testing.T) {
		h := newHarness(t)
		h.processor.Err = errors.New("card_declined")
		rec := h.do(t, http.MethodPost, "/create-payment-intent", "ana@example.com", map[string]float64{"price": 5})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Payment processing failed", decode[shared.ErrorResponse](t, rec).Error)
	})
}

func TestPayments(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/carts", "ana@example.com",
		map[string]interface{}{"email": "ana@example.com", "classId": "c1", "price": 20})
	require.Equal(t, http.StatusOK, rec.Code)
	cartID := h.carts.Items()[0].ID

	rec = h.do(t, http.MethodPost, "/payments", "ana@example.com", map[string]interface{}{
		"email":         "ana@example.com",
		"transactionId": "pi_1",
		"price":         20,
		"cartItems":     cartID.Hex(),
		"date":          time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[map[string]map[string]interface{}](t, rec)
	assert.NotEmpty(t, res["insertResult"]["insertedId"])
	assert.EqualValues(t, 1, res["deleteResult"]["deletedCount"])
	assert.Empty(t, h.carts.Items())
	require.Len(t, h.payments.Payments(), 1)

	rec = h.do(t, http.MethodPost, "/payments", "ana@example.com",
		map[string]interface{}{"email": "ana@example.com", "cartItems": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, h.payments.Payments(), 1)

	rec = h.do(t, http.MethodPost, "/payments", "ana@example.com", map[string]interface{}{
		"email":     "ana@example.com",
		"cartItems": primitive.NewObjectID().Hex(),
		"date":      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/payments", "ana@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payments := decode[[]domain.Payment](t, rec)
	require.Len(t, payments, 2)
	assert.True(t, payments[0].Date.After(payments[1].Date))
}
