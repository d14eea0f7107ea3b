package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/meetup/handler"
	"github.com/dmitrymomot/meetup/pkg/clientip"
	"github.com/dmitrymomot/meetup/pkg/environment"
	"github.com/dmitrymomot/meetup/pkg/logger"
	"github.com/dmitrymomot/meetup/pkg/requestid"
	"github.com/dmitrymomot/meetup/pkg/session"
	"github.com/dmitrymomot/meetup/pkg/static"
	"github.com/dmitrymomot/meetup/svc/auth"
)

// Option configures New.
type Option func(*options)

type options struct {
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// WithLogger sets the logger for request logs and the error handler.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithErrorHandler replaces the JSON error handler.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

// New builds the request pipeline:
//
//	request id -> client ip -> request log -> environment -> panic recovery
//	-> static assets -> session -> principal -> view -> dispatch
//
// Dispatch mounts every route in the table before the SPA fallback, which
// answers any remaining GET or HEAD. Everything else is a 404 through the
// error handler.
func New(cfg Config, sessions *session.Manager, resolver auth.Resolver, routes Routes, opts ...Option) http.Handler {
	o := &options{log: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.errorHandler == nil {
		o.errorHandler = handler.NewErrorHandler(o.log)
	}
	fail := handler.Fail(o.errorHandler)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(cfg.TrustedIPHeaders...),
		logger.Middleware(o.log),
		environment.Middleware(cfg.Environment()),
		handler.Recover(o.errorHandler),
		static.Assets(cfg.StaticDir),
		sessions.Middleware(func(w http.ResponseWriter, r *http.Request, err error) {
			fail(w, r, handler.ErrSessionStoreUnavailable.WithCause(err))
		}),
		auth.Deserializer(resolver, func(w http.ResponseWriter, r *http.Request, err error) {
			fail(w, r, handler.ErrInternalServerError.WithCause(err))
		}, auth.WithLogger(o.log)),
		auth.BindView,
	)

	// Mounted routers inherit these, so they must be set before Mount.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		fail(w, r, handler.ErrNotFound)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	for _, route := range routes.Table() {
		if route.Prefix == "/" {
			r.Handle("/", route.Router.Handle())
			continue
		}
		r.Mount(route.Prefix, route.Router.Handle())
	}

	spa := static.SPA(cfg.StaticDir, cfg.StaticIndex)
	r.Method(http.MethodGet, "/*", spa)
	r.Method(http.MethodHead, "/*", spa)

	return r
}
