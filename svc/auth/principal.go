package auth

import (
	"context"
	"errors"
)

// SessionKey is the session entry holding the authenticated user id.
const SessionKey = "userId"

// ErrPrincipalNotFound marks an identity that no longer resolves, such as
// a deleted account. The deserializer treats it as anonymous.
var ErrPrincipalNotFound = errors.New("principal not found")

// Principal is the authenticated user attached to a request. It is rebuilt
// on every request and never stored in the session.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Resolver turns the stored identity into a Principal.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*Principal, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, id string) (*Principal, error)

func (f ResolverFunc) Resolve(ctx context.Context, id string) (*Principal, error) {
	return f(ctx, id)
}
