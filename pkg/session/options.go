package session

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithCookieMaxAge sets the browser side lifetime of the session cookie
func WithCookieMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		m.config.CookieMaxAge = d
	}
}

// WithStoreTTL sets how long records live in the store after each save
func WithStoreTTL(d time.Duration) Option {
	return func(m *Manager) {
		m.config.StoreTTL = d
	}
}

// WithSecureCookies toggles the Secure cookie attribute
func WithSecureCookies(secure bool) Option {
	return func(m *Manager) {
		m.config.SecureCookies = secure
	}
}

// WithRetry sets the store retry policy
func WithRetry(attempts int, delay time.Duration) Option {
	return func(m *Manager) {
		m.config.RetryAttempts = attempts
		m.config.RetryDelay = delay
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger used for non fatal store errors
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
