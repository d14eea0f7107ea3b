package auth

import (
	"errors"

	"github.com/dmitrymomot/meetup/pkg/session"
)

// ErrNoSession is returned when login or logout runs outside the session
// middleware.
var ErrNoSession = errors.New("auth: no session")

// Login rotates the session id and stores the user identity. Rotation
// keeps a session id known before authentication from being reused after.
func Login(sess *session.Session, userID string) error {
	if sess == nil {
		return ErrNoSession
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(SessionKey, userID)
	return nil
}

// Logout destroys the session; the manager deletes the record and clears
// the cookie on commit.
func Logout(sess *session.Session) error {
	if sess == nil {
		return ErrNoSession
	}
	sess.Destroy()
	return nil
}
