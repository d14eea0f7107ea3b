package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/meetup/pkg/logger"
	"github.com/dmitrymomot/meetup/pkg/session"
	"github.com/dmitrymomot/meetup/svc/auth"
)

var alice = &auth.Principal{ID: "u1", Email: "alice@example.com", Name: "Alice"}

func resolver(calls *int) auth.Resolver {
	return auth.ResolverFunc(func(ctx context.Context, id string) (*auth.Principal, error) {
		*calls++
		switch id {
		case "u1":
			return alice, nil
		case "broken":
			return nil, errors.New("users collection unavailable")
		case "nil":
			return nil, nil
		default:
			return nil, auth.ErrPrincipalNotFound
		}
	})
}

func newSession(t *testing.T, userID string) *session.Session {
	t.Helper()
	sess, err := session.NewSession(time.Now())
	require.NoError(t, err)
	if userID != "" {
		sess.Set(auth.SessionKey, userID)
	}
	return sess
}

type result struct {
	called    bool
	principal *auth.Principal
	view      auth.View
	failure   error
}

func run(t *testing.T, sess *session.Session, calls *int) (*httptest.ResponseRecorder, *result) {
	t.Helper()
	res := &result{}

	onError := func(w http.ResponseWriter, r *http.Request, err error) {
		res.failure = err
		w.WriteHeader(http.StatusInternalServerError)
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res.called = true
		res.principal = auth.PrincipalFromContext(r.Context())
		res.view = auth.ViewFromContext(r.Context())
	})

	h := auth.Deserializer(resolver(calls), onError, auth.WithLogger(logger.Discard()))(auth.BindView(final))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if sess != nil {
		r = r.WithContext(session.WithSession(r.Context(), sess))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w, res
}

func TestDeserializer(t *testing.T) {
	t.Run("no session", func(t *testing.T) {
		var calls int
		_, res := run(t, nil, &calls)
		assert.True(t, res.called)
		assert.Nil(t, res.principal)
		assert.Zero(t, calls)
	})

	t.Run("anonymous session", func(t *testing.T) {
		var calls int
		sess := newSession(t, "")
		_, res := run(t, sess, &calls)

		assert.True(t, res.called)
		assert.Nil(t, res.principal)
		assert.Equal(t, auth.View{}, res.view)
		assert.Zero(t, calls)
		assert.False(t, sess.IsModified(), "anonymous requests do not touch the session")
	})

	t.Run("authenticated", func(t *testing.T) {
		var calls int
		_, res := run(t, newSession(t, "u1"), &calls)

		require.NotNil(t, res.principal)
		assert.Equal(t, "alice@example.com", res.principal.Email)
		assert.True(t, res.view.Authenticated)
		assert.Equal(t, *alice, *res.view.User)
		assert.Equal(t, 1, calls)
	})

	t.Run("same identity resolves to same principal", func(t *testing.T) {
		var calls int
		_, first := run(t, newSession(t, "u1"), &calls)
		_, second := run(t, newSession(t, "u1"), &calls)
		assert.Equal(t, *first.principal, *second.principal)
	})

	for _, id := range []string{"deleted", "nil"} {
		t.Run("stale identity "+id, func(t *testing.T) {
			var calls int
			sess := newSession(t, id)
			_, res := run(t, sess, &calls)

			assert.True(t, res.called)
			assert.NoError(t, res.failure)
			assert.Nil(t, res.principal)
			assert.False(t, res.view.Authenticated)
			_, ok := sess.Get(auth.SessionKey)
			assert.False(t, ok, "stale identity is removed from the session")
		})
	}

	t.Run("resolver failure", func(t *testing.T) {
		var calls int
		sess := newSession(t, "broken")
		w, res := run(t, sess, &calls)

		assert.False(t, res.called)
		assert.EqualError(t, res.failure, "users collection unavailable")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		v, _ := sess.GetString(auth.SessionKey)
		assert.Equal(t, "broken", v, "identity is kept on transient failures")
	})
}

func TestDeserializer_PanicsWithoutResolver(t *testing.T) {
	assert.Panics(t, func() { auth.Deserializer(nil, nil) })
}

func TestViewFromContext_ReturnsCopy(t *testing.T) {
	var calls int
	_, res := run(t, newSession(t, "u1"), &calls)

	res.view.User.Name = "Mallory"
	assert.Equal(t, "Alice", alice.Name)

	assert.Equal(t, auth.View{}, auth.ViewFromContext(context.Background()))
}

func TestLoginLogout(t *testing.T) {
	sess := newSession(t, "")
	oldID := sess.ID

	require.NoError(t, auth.Login(sess, "u1"))
	assert.NotEqual(t, oldID, sess.ID)
	v, _ := sess.GetString(auth.SessionKey)
	assert.Equal(t, "u1", v)

	require.NoError(t, auth.Logout(sess))
	assert.True(t, sess.IsDestroyed())

	assert.ErrorIs(t, auth.Login(nil, "u1"), auth.ErrNoSession)
	assert.ErrorIs(t, auth.Logout(nil), auth.ErrNoSession)
}
