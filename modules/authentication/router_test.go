package authentication_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/meetup/handler"
	"github.com/dmitrymomot/meetup/modules/authentication"
	"github.com/dmitrymomot/meetup/pkg/cookie"
	"github.com/dmitrymomot/meetup/pkg/session"
	"github.com/dmitrymomot/meetup/svc/auth"
	"github.com/dmitrymomot/meetup/svc/user"
)

type testEnv struct {
	handler http.Handler
	store   *session.MemoryStore
	users   *user.Service
	cookies []*http.Cookie
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	cookies, err := cookie.New([]string{strings.Repeat("k", 32)})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })

	users := user.NewService(user.NewMemoryRepository(), user.WithBcryptCost(bcrypt.MinCost))
	errorHandler := handler.NewErrorHandler(slog.New(slog.DiscardHandler))
	fail := handler.Fail(errorHandler)

	mgr := session.New(store, cookies, session.WithCookieName("sid"))
	router := authentication.NewRouter(users, errorHandler)

	h := mgr.Middleware(fail)(auth.Deserializer(users, fail)(auth.BindView(router.Handle())))
	return &testEnv{handler: h, store: store, users: users}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range e.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name != "sid" {
			continue
		}
		e.cookies = nil
		if c.MaxAge >= 0 {
			e.cookies = []*http.Cookie{{Name: c.Name, Value: c.Value}}
		}
	}
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) auth.View {
	t.Helper()
	var v auth.View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body.Type)
	return body.Error.Message
}

func TestSignUpLoginSignOut(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeView(t, rec).Authenticated)
	assert.Empty(t, env.cookies, "anonymous request must not create a session")

	rec = env.do(t, http.MethodPost, "/sign-up", `{"email":"ann@example.com","password":"password123","name":"Ann"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	view := decodeView(t, rec)
	assert.True(t, view.Authenticated)
	assert.Equal(t, "ann@example.com", view.User.Email)
	require.Len(t, env.cookies, 1)
	assert.Equal(t, 1, env.store.Len())

	rec = env.do(t, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeView(t, rec)
	assert.True(t, me.Authenticated)
	assert.Equal(t, view.User.ID, me.User.ID)

	rec = env.do(t, http.MethodPost, "/sign-out", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.cookies)
	assert.Equal(t, 0, env.store.Len())

	rec = env.do(t, http.MethodPost, "/login", `{"email":"ann@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeView(t, rec).Authenticated)
	assert.Len(t, env.cookies, 1)
}

func TestLogin_RotatesSessionID(t *testing.T) {
	env := setup(t)
	_, err := env.users.Register(context.Background(), "bo@example.com", "password123", "")
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/login", `{"email":"bo@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	first := env.cookies[0].Value

	rec = env.do(t, http.MethodPost, "/login", `{"email":"bo@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, first, env.cookies[0].Value)
	assert.Equal(t, 1, env.store.Len(), "old session record is deleted")
}

func TestLogin_Errors(t *testing.T) {
	env := setup(t)
	_, err := env.users.Register(context.Background(), "cy@example.com", "password123", "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		body    string
		ctype   string
		status  int
		message string
	}{
		{"wrong password", `{"email":"cy@example.com","password":"nope-nope"}`, "application/json", http.StatusUnauthorized, "Invalid email or password"},
		{"unknown email", `{"email":"zz@example.com","password":"password123"}`, "application/json", http.StatusUnauthorized, "Invalid email or password"},
		{"missing fields", `{}`, "application/json", http.StatusBadRequest, "validation failed: email: is required, password: is required"},
		{"unknown field", `{"email":"cy@example.com","password":"x","admin":true}`, "application/json", http.StatusBadRequest, ""},
		{"not json", `email=cy@example.com`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.ctype)
			rec := httptest.NewRecorder()
			env.handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			msg := errorMessage(t, rec)
			if tt.message != "" {
				assert.Equal(t, tt.message, msg)
			}
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestSignUp_Errors(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/sign-up", `{"email":"bad","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation failed: email: must be a valid email address, password: must be at least 8 characters", errorMessage(t, rec))

	rec = env.do(t, http.MethodPost, "/sign-up", `{"email":"dee@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/sign-up", `{"email":"eve@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already signed in", errorMessage(t, rec))

	env.cookies = nil
	rec = env.do(t, http.MethodPost, "/sign-up", `{"email":"dee@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", errorMessage(t, rec))
}
