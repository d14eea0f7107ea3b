package session

import "time"

// Config holds session configuration. It is assembled once at startup and
// never mutated afterwards.
type Config struct {
	// CookieName is the name of the session cookie (default: "sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// CookieMaxAge is the lifetime of the cookie in the browser (default: 100 days)
	CookieMaxAge time.Duration `env:"SESSION_COOKIE_MAX_AGE" envDefault:"2400h"`

	// StoreTTL is how long a record lives in the store after its last save
	StoreTTL time.Duration `env:"SESSION_STORE_TTL" envDefault:"24h"`

	// Resave persists the session on every request, even when unmodified,
	// so the store TTL counts from the last access.
	Resave bool `env:"SESSION_RESAVE" envDefault:"true"`

	// SaveUninitialized persists sessions nothing was written to.
	SaveUninitialized bool `env:"SESSION_SAVE_UNINITIALIZED" envDefault:"false"`

	// SecureCookies sets the Secure flag; enabled in production
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// RetryAttempts is how many times a failed store call is retried
	RetryAttempts int `env:"SESSION_STORE_RETRY_ATTEMPTS" envDefault:"1"`

	// RetryDelay is the pause before each retry
	RetryDelay time.Duration `env:"SESSION_STORE_RETRY_DELAY" envDefault:"50ms"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:        "sid",
		CookieMaxAge:      100 * 24 * time.Hour,
		StoreTTL:          24 * time.Hour,
		Resave:            true,
		SaveUninitialized: false,
		SecureCookies:     false,
		RetryAttempts:     1,
		RetryDelay:        50 * time.Millisecond,
	}
}
