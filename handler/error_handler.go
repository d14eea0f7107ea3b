package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/meetup/binder"
	"github.com/dmitrymomot/meetup/pkg/logger"
	"github.com/dmitrymomot/meetup/pkg/requestid"
)

// ErrorBody is the JSON document written for every failed request.
type ErrorBody struct {
	Type  string      `json:"type"`
	Error ErrorDetail `json:"error"`
}

// ErrorDetail holds the client facing message.
type ErrorDetail struct {
	Message string `json:"message"`
}

// NewErrorBody builds the error document for err.
func NewErrorBody(err error) ErrorBody {
	return ErrorBody{Type: "error", Error: ErrorDetail{Message: Message(err)}}
}

// NewErrorHandler returns the error handler shared by every route and
// middleware. It writes
//
//	{"type":"error","error":{"message":"..."}}
//
// with the status from StatusCode, and logs client errors at warn and
// server errors at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status := StatusCode(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Status(status),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Component("error_handler"),
		)

		if err := writeJSON(ctx.ResponseWriter(), status, NewErrorBody(err)); err != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to write error response",
				logger.Error(err),
				logger.Component("error_handler"),
			)
		}
	}
}

// Fail adapts an ErrorHandler to the plain func(w, r, err) shape used by
// middlewares.
func Fail(h ErrorHandler[Context]) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		h(NewContext(w, r), err)
	}
}

// Recover turns panics in next into 500 responses through h.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recover(h ErrorHandler[Context]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h(NewContext(w, r), ErrInternalServerError.WithCause(fmt.Errorf("panic: %v\n%s", rec, debug.Stack())))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func bindStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return http.StatusUnsupportedMediaType, true
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidPath):
		return http.StatusBadRequest, true
	}
	return 0, false
}
