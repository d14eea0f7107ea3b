package handler

import (
	"errors"
	"net/http"
)

// HTTPError is an error carrying the response status and the client facing
// message. A zero Code means no status was declared and maps to 500.
type HTTPError struct {
	Code    int    // HTTP status code
	Message string // exposed to the client as error.message
	Err     error  // optional cause, logged but never exposed
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e HTTPError) Unwrap() error {
	return e.Err
}

// Is matches another HTTPError with the same status and message regardless
// of the cause.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// WithCause returns a copy of e wrapping err.
func (e HTTPError) WithCause(err error) HTTPError {
	e.Err = err
	return e
}

// Status returns the declared status, or 500 when none was declared.
func (e HTTPError) Status() int {
	if e.Code == 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// NewHTTPError creates an HTTP error. An empty message falls back to the
// status text.
func NewHTTPError(code int, message string) HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest           = NewHTTPError(http.StatusBadRequest, "")
	ErrUnauthorized         = NewHTTPError(http.StatusUnauthorized, "")
	ErrForbidden            = NewHTTPError(http.StatusForbidden, "")
	ErrNotFound             = NewHTTPError(http.StatusNotFound, "")
	ErrConflict             = NewHTTPError(http.StatusConflict, "")
	ErrUnsupportedMediaType = NewHTTPError(http.StatusUnsupportedMediaType, "")
	ErrInternalServerError  = NewHTTPError(http.StatusInternalServerError, "")

	// ErrSessionStoreUnavailable reports that the session store could not be
	// read or written after retrying.
	ErrSessionStoreUnavailable = NewHTTPError(http.StatusInternalServerError, "Session store unavailable")
)

// StatusCode resolves the response status for err.
func StatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status()
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	if code, ok := bindStatus(err); ok {
		return code
	}

	return http.StatusInternalServerError
}

// Message resolves the client facing message for err.
func Message(err error) string {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Message != "" {
			return httpErr.Message
		}
		return http.StatusText(httpErr.Status())
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return http.StatusText(http.StatusInternalServerError)
}
