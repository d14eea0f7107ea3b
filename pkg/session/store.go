package session

import (
	"context"
)

// Store persists session records keyed by id. Implementations enforce their
// own time-to-live and must be safe for concurrent use; concurrent saves of
// the same id are last-write-wins.
type Store interface {
	// Get returns the live record for id or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Save creates or replaces the record; it expires at session.ExpiresAt.
	Save(ctx context.Context, session *Session) error

	// Delete removes the record. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
