package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a Load call.
type Option func(*options)

type options struct {
	files   []string
	prefix  string
	environ map[string]string
}

// WithEnvFiles loads the given dotenv files before parsing. Variables
// already set in the process environment win over file values. Missing
// files are skipped.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithPrefix requires every variable name to start with prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnviron parses vars instead of the process environment. Dotenv files
// are not consulted.
func WithEnviron(vars map[string]string) Option {
	return func(o *options) {
		o.environ = vars
	}
}

var dotenvOnce sync.Once

// Load parses environment variables into a new T using its env struct tags.
// The .env file in the working directory is read once per process.
//
//	type Config struct {
//		Addr   string `env:"HTTP_ADDR" envDefault:":8080"`
//		Secret string `env:"SESSION_SECRET,required"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg T

	if o.environ == nil {
		dotenvOnce.Do(func() {
			// The default .env is optional.
			_ = godotenv.Load()
		})
		for _, path := range o.files {
			if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return cfg, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", path, err))
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      o.prefix,
		Environment: o.environ,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}

	return cfg, nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
