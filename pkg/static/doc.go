// Package static serves the compiled client application.
//
// Assets runs ahead of the session middleware and answers requests for
// existing files under the asset root, so static files never create
// sessions. SPA is the catch-all that returns the fallback document for
// every other GET, leaving routing to the client.
//
//	r.Use(static.Assets("client/build"))
//	...
//	r.Get("/*", static.SPA("client/build", "index.html").ServeHTTP)
//
// Files are resolved through os.Root, so symlinks and ".." cannot escape
// the asset root.
package static
