// Package cookie writes and reads HTTP cookies with shared default attributes
// and optional HMAC-SHA256 signatures.
//
// A Manager is created once at startup from one or more secrets (each at
// least 32 bytes). The first secret signs new cookies; all of them are tried
// when verifying, so secrets can be rotated without logging everybody out.
//
//	man, err := cookie.New([]string{os.Getenv("SESSION_SECRET")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_ = man.SetSigned(w, "sid", sessionID, cookie.WithMaxAge(24*time.Hour))
//	id, err := man.GetSigned(r, "sid")
//
// Signed values have the form "s:<value>.<signature>". The value itself is
// not encrypted, so only opaque identifiers should be stored this way.
//
// Sentinel errors (ErrCookieNotFound, ErrInvalidSignature, ErrInvalidFormat,
// ErrNoSecret, ErrSecretTooShort) can be matched with errors.Is.
package cookie
