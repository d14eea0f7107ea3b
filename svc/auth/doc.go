// Package auth establishes the authenticated principal of a request from
// its session.
//
// The session stores only the user id under SessionKey. Deserializer
// resolves it into a Principal through a Resolver on every request, and
// BindView exposes the result as an immutable View:
//
//	r.Use(sessions.Middleware(fail))
//	r.Use(auth.Deserializer(users, fail))
//	r.Use(auth.BindView)
//
// Login and Logout are used by the authentication routes.
package auth
