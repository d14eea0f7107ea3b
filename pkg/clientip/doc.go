// Package clientip resolves the address of the client behind a request and
// carries it in the context for request logs.
//
// Forwarding headers are only trustworthy when a proxy in front of the
// server overwrites them. With no trusted headers RemoteAddr is used.
package clientip
