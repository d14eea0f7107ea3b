package auth

import (
	"context"
	"net/http"
)

// View is the per-request projection of the authenticated principal
// exposed to response rendering.
type View struct {
	User          *Principal `json:"user"`
	Authenticated bool       `json:"authenticated"`
}

type viewContextKey struct{}

// BindView stores the View for the current principal in the request
// context. It must run after Deserializer.
func BindView(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := View{}
		if p := PrincipalFromContext(r.Context()); p != nil {
			u := *p
			v = View{User: &u, Authenticated: true}
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), viewContextKey{}, v)))
	})
}

// ViewFromContext returns a copy of the request View. Mutating it does not
// affect the stored one.
func ViewFromContext(ctx context.Context) View {
	v, _ := ctx.Value(viewContextKey{}).(View)
	if v.User != nil {
		u := *v.User
		v.User = &u
	}
	return v
}
