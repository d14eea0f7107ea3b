package cookie

import (
	"net/http"
	"strings"
	"time"
)

// Config holds the signing secrets and default attributes of the manager.
// SESSION_SECRET is required: the process must not start without it.
type Config struct {
	Secrets  string `env:"SESSION_SECRET,required"`
	Path     string `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string `env:"COOKIE_DOMAIN" envDefault:""`
	HttpOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
}

// Options are the attributes applied to an outgoing cookie.
type Options struct {
	Path     string
	Domain   string
	MaxAge   time.Duration
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// Option overrides a single attribute of Options.
type Option func(*Options)

func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

// WithMaxAge sets the cookie lifetime. It is written as Max-Age (whole seconds)
// together with a matching Expires attribute for older clients.
func WithMaxAge(d time.Duration) Option {
	return func(o *Options) { o.MaxAge = d }
}

func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) { o.HttpOnly = httpOnly }
}

func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) { o.SameSite = sameSite }
}

// apply copies base and applies opts to the copy; base is never modified.
func (base Options) apply(opts []Option) Options {
	result := base
	for _, opt := range opts {
		opt(&result)
	}
	return result
}

// parseSecrets splits the comma separated secrets string.
// The first secret signs, all of them verify.
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// NewFromConfig creates a new Manager from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	configOpts := make([]Option, 0, 3+len(opts))

	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	configOpts = append(configOpts, WithHTTPOnly(cfg.HttpOnly))
	configOpts = append(configOpts, opts...)

	return New(cfg.parseSecrets(), configOpts...)
}
