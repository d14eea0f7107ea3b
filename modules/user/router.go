package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/meetup/binder"
	"github.com/dmitrymomot/meetup/handler"
	"github.com/dmitrymomot/meetup/svc/auth"
	"github.com/dmitrymomot/meetup/svc/user"
)

// Users looks up user accounts.
type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

// Router serves /api/user. Every route requires an authenticated principal.
type Router struct {
	users        Users
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewRouter(users Users, errorHandler handler.ErrorHandler[handler.Context]) *Router {
	return &Router{users: users, errorHandler: errorHandler}
}

func (rt *Router) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/me", handler.Wrap(rt.me,
		handler.WithErrorHandler[handler.Context, struct{}](rt.errorHandler),
		handler.WithDecorators[handler.Context, struct{}](requireAuth[struct{}]),
	))
	r.Get("/{id}", handler.Wrap(rt.get,
		handler.WithBinders[handler.Context, GetRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, GetRequest](rt.errorHandler),
		handler.WithDecorators[handler.Context, GetRequest](requireAuth[GetRequest]),
	))

	return r
}

type GetRequest struct {
	ID string `path:"id"`
}

// Profile is the public projection of a user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (rt *Router) me(ctx handler.Context, _ struct{}) handler.Response {
	return rt.profile(ctx, auth.PrincipalFromContext(ctx).ID)
}

func (rt *Router) get(ctx handler.Context, req GetRequest) handler.Response {
	return rt.profile(ctx, req.ID)
}

func (rt *Router) profile(ctx context.Context, id string) handler.Response {
	u, err := rt.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return handler.Error(handler.ErrNotFound.WithCause(err))
		}
		return handler.Error(err)
	}
	return handler.JSON(Profile{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt})
}

func requireAuth[R any](next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
	return func(ctx handler.Context, req R) handler.Response {
		if auth.PrincipalFromContext(ctx) == nil {
			return handler.Error(handler.ErrUnauthorized)
		}
		return next(ctx, req)
	}
}
