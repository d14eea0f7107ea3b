package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/meetup/pkg/cookie"
	"github.com/dmitrymomot/meetup/pkg/session"
)

const testSecret = "test-secret-key-that-is-long-enough"

var errOutage = errors.New("connection refused")

func newCookies(t *testing.T) *cookie.Manager {
	t.Helper()
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	return cookies
}

func setupManager(t *testing.T, store session.Store, opts ...session.Option) *session.Manager {
	t.Helper()
	opts = append([]session.Option{
		session.WithCookieName("test-sid"),
		session.WithRetry(1, time.Millisecond),
	}, opts...)
	return session.New(store, newCookies(t), opts...)
}

// withCookies builds a request replaying the cookies set on w.
func withCookies(method, target string, w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func httptestRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// clock is a manually advanced time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Now()}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// flakyStore wraps a store and fails a configurable number of calls.
type flakyStore struct {
	session.Store
	failures atomic.Int32
	gets     atomic.Int32
	saves    atomic.Int32
	deletes  atomic.Int32
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: session.NewMemoryStore(0)}
}

func (s *flakyStore) fail(n int32) {
	s.failures.Store(n)
}

func (s *flakyStore) shouldFail() bool {
	for {
		n := s.failures.Load()
		if n == 0 {
			return false
		}
		if n < 0 {
			return true
		}
		if s.failures.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

func (s *flakyStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.gets.Add(1)
	if s.shouldFail() {
		return nil, errOutage
	}
	return s.Store.Get(ctx, id)
}

func (s *flakyStore) Save(ctx context.Context, sess *session.Session) error {
	s.saves.Add(1)
	if s.shouldFail() {
		return errOutage
	}
	return s.Store.Save(ctx, sess)
}

func (s *flakyStore) Delete(ctx context.Context, id string) error {
	s.deletes.Add(1)
	if s.shouldFail() {
		return errOutage
	}
	return s.Store.Delete(ctx, id)
}
