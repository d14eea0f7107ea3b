package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/meetup/pkg/logger"
	"github.com/dmitrymomot/meetup/pkg/session"
)

// ErrorFunc renders a pipeline failure.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// Option configures the deserializer.
type Option func(*deserializer)

// WithLogger sets the logger used for stale identity notices.
func WithLogger(log *slog.Logger) Option {
	return func(d *deserializer) {
		if log != nil {
			d.log = log
		}
	}
}

type deserializer struct {
	resolver Resolver
	onError  ErrorFunc
	log      *slog.Logger
}

// Deserializer attaches the principal referenced by the session to the
// request context. Requests without a session or without a stored identity
// continue anonymously. An identity the resolver reports as
// ErrPrincipalNotFound is removed from the session and the request
// continues anonymously. Any other resolver error is handed to onError and
// the pipeline stops.
//
// It must run after the session middleware.
func Deserializer(resolver Resolver, onError ErrorFunc, opts ...Option) func(http.Handler) http.Handler {
	if resolver == nil {
		panic("auth: nil resolver")
	}
	d := &deserializer{
		resolver: resolver,
		onError:  onError,
		log:      slog.Default(),
	}
	if d.onError == nil {
		d.onError = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d.middleware
}

func (d *deserializer) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := sess.GetString(SessionKey)
		if !ok || id == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, err := d.resolver.Resolve(r.Context(), id)
		if err == nil && p == nil {
			err = ErrPrincipalNotFound
		}
		switch {
		case err == nil:
			r = r.WithContext(WithPrincipal(r.Context(), p))
		case errors.Is(err, ErrPrincipalNotFound):
			d.log.DebugContext(r.Context(), "dropping stale session identity",
				logger.Component("auth"),
				logger.UserID(id),
			)
			sess.Delete(SessionKey)
		default:
			d.onError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
