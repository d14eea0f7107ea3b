package app

import (
	"github.com/dmitrymomot/meetup/pkg/cookie"
	"github.com/dmitrymomot/meetup/pkg/environment"
	"github.com/dmitrymomot/meetup/pkg/httpserver"
	"github.com/dmitrymomot/meetup/pkg/session"
)

// Store kinds accepted by SESSION_STORE.
const (
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config is the process configuration. It is loaded once at startup and
// passed by value; nothing mutates it afterwards.
type Config struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Service      string `env:"APP_NAME" envDefault:"meetup"`
	SessionStore string `env:"SESSION_STORE" envDefault:"mongo"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"client/build"`
	StaticIndex  string `env:"STATIC_INDEX" envDefault:"index.html"`

	// TrustedIPHeaders name the proxy headers that carry the client address.
	TrustedIPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:"," envDefault:"X-Forwarded-For,X-Real-IP"`

	HTTP    httpserver.Config
	Cookie  cookie.Config
	Session session.Config
}

// Environment parses Env.
func (c Config) Environment() environment.Environment {
	return environment.Parse(c.Env)
}

// SessionConfig returns the session settings with Secure cookies forced on
// in production.
func (c Config) SessionConfig() session.Config {
	s := c.Session
	if c.Environment().IsProduction() {
		s.SecureCookies = true
	}
	return s
}
