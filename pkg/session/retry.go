package session

import (
	"context"
	"errors"
	"time"
)

// retryStore retries failed store calls a fixed number of times. Misses
// (ErrSessionNotFound) and invalid input are final and never retried.
// Exhausted calls are reported as ErrStoreUnavailable.
type retryStore struct {
	next     Store
	attempts int
	delay    time.Duration
}

func withRetry(next Store, attempts int, delay time.Duration) Store {
	if attempts < 0 {
		attempts = 0
	}
	return &retryStore{next: next, attempts: attempts, delay: delay}
}

func (s *retryStore) Get(ctx context.Context, id string) (*Session, error) {
	var sess *Session
	err := s.do(ctx, func() error {
		var err error
		sess, err = s.next.Get(ctx, id)
		return err
	})
	return sess, err
}

func (s *retryStore) Save(ctx context.Context, session *Session) error {
	return s.do(ctx, func() error { return s.next.Save(ctx, session) })
}

func (s *retryStore) Delete(ctx context.Context, id string) error {
	return s.do(ctx, func() error { return s.next.Delete(ctx, id) })
}

func (s *retryStore) do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || isFinal(err) {
			return err
		}
		if attempt >= s.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return errors.Join(ErrStoreUnavailable, ctx.Err(), err)
		case <-time.After(s.delay):
		}
	}
	return errors.Join(ErrStoreUnavailable, err)
}

func isFinal(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrInvalidSession)
}
