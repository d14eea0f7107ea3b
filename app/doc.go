// Package app composes the HTTP entry point: middleware order, the
// dispatch table of feature routers, the SPA fallback and the 404 stage.
//
// Every feature prefix is bound before the catch-all, so /api/user and
// other late entries stay reachable.
package app
