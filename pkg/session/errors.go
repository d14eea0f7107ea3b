package session

import "errors"

var (
	// ErrInvalidSession indicates a nil session or one without an id was passed to a store
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionNotFound indicates the store holds no live record for the id
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrStoreUnavailable indicates the backing store could not be reached
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrIDGeneration indicates the random source failed while creating a session id
	ErrIDGeneration = errors.New("session.id_generation_failed")

	// ErrNoStore indicates the manager was built without a store
	ErrNoStore = errors.New("session.no_store")

	// ErrNoCookieManager indicates the manager was built without a cookie manager
	ErrNoCookieManager = errors.New("session.no_cookie_manager")
)
