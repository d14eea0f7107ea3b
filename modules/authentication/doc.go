// Package authentication is the /api/authentication feature router:
// JSON sign-up, login, sign-out and a /me view of the current principal.
//
// Login and sign-up rotate the session id before storing the user id
// under auth.SessionKey; sign-out destroys the session.
package authentication
