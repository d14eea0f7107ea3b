// Package session implements server side sessions referenced by a signed
// cookie.
//
// A Manager owns the per-request binding between the cookie and a record in
// a Store. The cookie carries only the session id (signed with the cookie
// package); all data lives in the store, which enforces its own TTL.
//
// Lifecycle of a request handled by Manager.Middleware:
//
//  1. Load reads the cookie. Missing, forged, unknown or expired ids produce
//     a fresh session that is not stored yet ("uninitialized").
//  2. Handlers read and write the session from the request context
//     (FromContext). Writing data initializes it.
//  3. Right before the response headers are written the session is
//     committed: initialized sessions are saved (always, when Resave is set,
//     so the store TTL counts from the last access) and the cookie is sent
//     when the session is new or changed. Uninitialized sessions leave no
//     trace unless SaveUninitialized is set.
//
// Store back ends: MemoryStore (tests, development), MongoStore (TTL index on
// "expires") and RedisStore (key expiry). Every call goes through a retry
// wrapper configured by Config.RetryAttempts; when retries are exhausted the
// error matches ErrStoreUnavailable.
//
// Usage:
//
//	cookies, _ := cookie.New([]string{secret})
//	store := session.NewMongoStore(db)
//	manager := session.New(store, cookies,
//		session.WithSecureCookies(isProduction),
//	)
//
//	r := chi.NewRouter()
//	r.Use(manager.Middleware(renderError))
//	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
//		sess := session.MustFromContext(r.Context())
//		_ = sess.Regenerate()
//		sess.Set("userId", id)
//	})
//
// Concurrent requests carrying the same session id are not serialized:
// the last save wins.
package session
