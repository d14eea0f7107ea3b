// Package handler turns typed handler functions into http.HandlerFunc
// values and owns the uniform error response of the application.
//
// A HandlerFunc receives a Context and a request struct filled by the
// configured binders, and returns a Response:
//
//	func signIn(ctx handler.Context, req LoginRequest) handler.Response {
//		p, err := users.Authenticate(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(p)
//	}
//
//	r.Post("/login", handler.Wrap(signIn,
//		handler.WithBinders[handler.Context, LoginRequest](binder.BindJSON()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](onError),
//	))
//
// # Errors
//
// Every error ends up in an ErrorHandler. NewErrorHandler writes
//
//	{"type":"error","error":{"message":"Not Found"}}
//
// The status comes from the error: HTTPError carries its own (a zero Code
// means 500), ValidationError and malformed JSON bodies map to 400, and
// anything else is 500. Fail adapts the handler for middlewares that
// report failures as func(w, r, err); Recover converts panics.
package handler
