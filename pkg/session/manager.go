package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/meetup/pkg/cookie"
	"github.com/dmitrymomot/meetup/pkg/logger"
)

// Manager binds a session record to each request through a signed cookie
// holding nothing but the session id.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	config  Config
	now     func() time.Time
	log     *slog.Logger
}

// New creates a session manager. It panics when store or cookies is nil:
// a manager that cannot persist or sign is a startup misconfiguration.
func New(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	if store == nil {
		panic(ErrNoStore)
	}
	if cookies == nil {
		panic(ErrNoCookieManager)
	}

	m := &Manager{
		config:  DefaultConfig(),
		cookies: cookies,
		now:     time.Now,
		log:     slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.store = withRetry(store, m.config.RetryAttempts, m.config.RetryDelay)

	return m
}

// NewFromConfig creates a new Manager from the provided Config.
func NewFromConfig(cfg Config, store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	return New(store, cookies, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Config returns a copy of the manager configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Load returns the session referenced by the request cookie. A missing,
// forged or expired reference yields a fresh uninitialized session; only
// store failures are returned as errors.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	id, err := m.cookies.GetSigned(r, m.config.CookieName)
	if err != nil {
		if !errors.Is(err, cookie.ErrCookieNotFound) {
			m.log.DebugContext(ctx, "ignoring unverifiable session cookie",
				logger.Component("session"),
				logger.Error(err),
			)
		}
		return NewSession(m.now())
	}

	sess, err := m.store.Get(ctx, id)
	switch {
	case err == nil:
		if sess.IsExpired(m.now()) {
			return NewSession(m.now())
		}
		return sess, nil
	case errors.Is(err, ErrSessionNotFound):
		return NewSession(m.now())
	default:
		return nil, err
	}
}

// Save commits the session at the end of a request: it persists the record
// and writes the cookie according to the resave / save-uninitialized policy.
// It must be called before the response headers are sent.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return ErrInvalidSession
	}

	if sess.destroyed {
		// A regenerated id was never stored; the record to drop is the old one.
		persisted := sess.previousID
		if persisted == "" && !sess.isNew {
			persisted = sess.ID
		}
		if persisted != "" {
			if err := m.store.Delete(ctx, persisted); err != nil {
				return err
			}
		}
		sess.previousID = ""
		m.cookies.Delete(w, m.config.CookieName, m.cookieOptions()...)
		return nil
	}

	if sess.previousID != "" {
		if err := m.store.Delete(ctx, sess.previousID); err != nil {
			return err
		}
		sess.previousID = ""
	}

	if !sess.IsInitialized() && !m.config.SaveUninitialized {
		return nil
	}

	sendCookie := sess.isNew || sess.modified
	if sess.isNew || sess.modified || m.config.Resave {
		sess.ExpiresAt = m.now().Add(m.config.StoreTTL)
		if err := m.store.Save(ctx, sess); err != nil {
			return err
		}
	}

	sess.isNew = false
	sess.modified = false

	if !sendCookie {
		return nil
	}
	return m.cookies.SetSigned(w, m.config.CookieName, sess.ID, m.cookieOptions(cookie.WithMaxAge(m.config.CookieMaxAge))...)
}

func (m *Manager) cookieOptions(extra ...cookie.Option) []cookie.Option {
	return append([]cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(m.config.SecureCookies),
	}, extra...)
}
