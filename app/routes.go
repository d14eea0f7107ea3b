package app

import "net/http"

// Router is a feature router mounted under a path prefix.
type Router interface {
	Handle() http.Handler
}

// RouterFunc adapts a plain handler to Router.
type RouterFunc func() http.Handler

func (f RouterFunc) Handle() http.Handler {
	return f()
}

// Route binds a prefix to a router.
type Route struct {
	Prefix string
	Router Router
}

// Routes names the feature routers of the application. A nil router is
// not mounted.
type Routes struct {
	Index          Router
	Authentication Router
	Event          Router
	Attendance     Router
	User           Router
}

// Table returns the dispatch table in binding order. "/" is an exact
// match; every other prefix owns its whole subtree.
func (r Routes) Table() []Route {
	table := []Route{
		{Prefix: "/", Router: r.Index},
		{Prefix: "/api/authentication", Router: r.Authentication},
		{Prefix: "/api/event", Router: r.Event},
		{Prefix: "/api/attendance", Router: r.Attendance},
		{Prefix: "/api/user", Router: r.User},
	}

	out := table[:0]
	for _, route := range table {
		if route.Router != nil {
			out = append(out, route)
		}
	}
	return out
}
