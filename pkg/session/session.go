package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"maps"
	"time"
)

// Session is the server side record referenced by the session cookie.
// Only exported fields are persisted; lifecycle flags live for one request.
type Session struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`

	isNew      bool
	modified   bool
	destroyed  bool
	previousID string
}

// NewSession creates an unsaved, uninitialized session with a fresh id.
func NewSession(now time.Time) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		Data:      make(map[string]any),
		CreatedAt: now,
		isNew:     true,
	}, nil
}

// IsNew reports whether the session has never been persisted.
func (s *Session) IsNew() bool {
	return s != nil && s.isNew
}

// IsModified reports whether the session data changed during this request.
func (s *Session) IsModified() bool {
	return s != nil && s.modified
}

// IsInitialized reports whether the session deserves a store record:
// either it already has one, or data was written to it.
func (s *Session) IsInitialized() bool {
	return s != nil && (!s.isNew || s.modified)
}

// IsDestroyed reports whether Destroy was called on the session.
func (s *Session) IsDestroyed() bool {
	return s != nil && s.destroyed
}

// IsExpired reports whether the record expired at the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Set stores a value in session data and marks the session modified.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
	s.modified = true
}

// Delete removes a value from session data
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	if _, ok := s.Data[key]; !ok {
		return
	}
	delete(s.Data, key)
	s.modified = true
}

// Clear removes all data from the session
func (s *Session) Clear() {
	if s == nil || len(s.Data) == 0 {
		return
	}
	s.Data = make(map[string]any)
	s.modified = true
}

// Destroy marks the session for removal. The store record is deleted and
// the cookie cleared when the manager commits the session.
func (s *Session) Destroy() {
	if s == nil {
		return
	}
	s.destroyed = true
	s.Data = make(map[string]any)
}

// Regenerate replaces the session id while keeping its data, so an id
// known before login cannot be used after it. The old record is deleted
// on commit.
func (s *Session) Regenerate() error {
	if s == nil {
		return ErrInvalidSession
	}
	id, err := generateID()
	if err != nil {
		return err
	}
	if !s.isNew && s.previousID == "" {
		s.previousID = s.ID
	}
	s.ID = id
	s.modified = true
	return nil
}

// clone returns a deep copy of the persisted fields.
func (s *Session) clone() *Session {
	c := &Session{
		ID:        s.ID,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		Data:      make(map[string]any, len(s.Data)),
	}
	maps.Copy(c.Data, s.Data)
	return c
}

// generateID creates a cryptographically secure session id
func generateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
