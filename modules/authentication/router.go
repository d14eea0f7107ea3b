package authentication

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/meetup/binder"
	"github.com/dmitrymomot/meetup/handler"
	"github.com/dmitrymomot/meetup/pkg/session"
	"github.com/dmitrymomot/meetup/svc/auth"
	"github.com/dmitrymomot/meetup/svc/user"
)

// Users is the part of the user service the router needs.
type Users interface {
	Register(ctx context.Context, email, password, name string) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
}

var (
	ErrInvalidCredentials = handler.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	ErrEmailTaken         = handler.NewHTTPError(http.StatusConflict, "Email already registered")
	ErrAlreadySignedIn    = handler.NewHTTPError(http.StatusConflict, "Already signed in")
)

// Router serves sign-up, login and sign-out under /api/authentication.
type Router struct {
	users        Users
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewRouter(users Users, errorHandler handler.ErrorHandler[handler.Context]) *Router {
	return &Router{users: users, errorHandler: errorHandler}
}

func (rt *Router) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", handler.Wrap(rt.login,
		handler.WithBinders[handler.Context, LoginRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, LoginRequest](rt.errorHandler),
	))
	r.Post("/sign-up", handler.Wrap(rt.signUp,
		handler.WithBinders[handler.Context, SignUpRequest](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, SignUpRequest](rt.errorHandler),
	))
	r.Post("/sign-out", handler.Wrap(rt.signOut,
		handler.WithErrorHandler[handler.Context, struct{}](rt.errorHandler),
	))
	r.Get("/me", handler.Wrap(rt.me,
		handler.WithErrorHandler[handler.Context, struct{}](rt.errorHandler),
	))

	return r
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (rt *Router) login(ctx handler.Context, req LoginRequest) handler.Response {
	verr := handler.NewValidationError()
	if req.Email == "" {
		verr.Add("email", "is required")
	}
	if req.Password == "" {
		verr.Add("password", "is required")
	}
	if err := verr.Err(); err != nil {
		return handler.Error(err)
	}

	u, err := rt.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(mapUserError(err))
	}
	if err := auth.Login(sessionFrom(ctx), u.ID); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(auth.View{User: u.Principal(), Authenticated: true})
}

func (rt *Router) signUp(ctx handler.Context, req SignUpRequest) handler.Response {
	if auth.PrincipalFromContext(ctx) != nil {
		return handler.Error(ErrAlreadySignedIn)
	}

	u, err := rt.users.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return handler.Error(mapUserError(err))
	}
	if err := auth.Login(sessionFrom(ctx), u.ID); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(auth.View{User: u.Principal(), Authenticated: true},
		handler.WithJSONStatus(http.StatusCreated))
}

func (rt *Router) signOut(ctx handler.Context, _ struct{}) handler.Response {
	if err := auth.Logout(sessionFrom(ctx)); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

// me reports the current view; anonymous callers get authenticated=false.
func (rt *Router) me(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(auth.ViewFromContext(ctx))
}

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := session.FromContext(ctx)
	return sess
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return ErrInvalidCredentials.WithCause(err)
	case errors.Is(err, user.ErrEmailTaken):
		return ErrEmailTaken.WithCause(err)
	}

	var verr *user.ValidationError
	if errors.As(err, &verr) {
		out := handler.NewValidationError()
		for field, msgs := range verr.Fields {
			for _, msg := range msgs {
				out.Add(field, msg)
			}
		}
		return out
	}
	return err
}
