package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/meetup/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		sess, err := session.NewSession(time.Now())
		require.NoError(t, err)
		sess.Set("userId", "1")
		sess.ExpiresAt = time.Now().Add(time.Hour)

		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
		assert.False(t, got.IsNew(), "records read from a store are not new")
		v, _ := got.GetString("userId")
		assert.Equal(t, "1", v)
	})

	t.Run("data isolation", func(t *testing.T) {
		sess, err := session.NewSession(time.Now())
		require.NoError(t, err)
		sess.Set("key", "value")
		sess.ExpiresAt = time.Now().Add(time.Hour)
		require.NoError(t, store.Save(ctx, sess))

		sess.Set("key", "modified")

		got, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		v, _ := got.GetString("key")
		assert.Equal(t, "value", v)

		got.Set("key", "changed by reader")
		again, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		v, _ = again.GetString("key")
		assert.Equal(t, "value", v)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		sess, err := session.NewSession(time.Now())
		require.NoError(t, err)
		sess.ExpiresAt = time.Now().Add(-time.Second)
		require.NoError(t, store.Save(ctx, sess))

		_, err = store.Get(ctx, sess.ID)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Save(ctx, &session.Session{}), session.ErrInvalidSession)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		sess, err := session.NewSession(time.Now())
		require.NoError(t, err)
		sess.ExpiresAt = time.Now().Add(time.Hour)
		require.NoError(t, store.Save(ctx, sess))

		require.NoError(t, store.Delete(ctx, sess.ID))
		require.NoError(t, store.Delete(ctx, sess.ID))

		_, err = store.Get(ctx, sess.ID)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	store := session.NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	live, err := session.NewSession(time.Now())
	require.NoError(t, err)
	live.ExpiresAt = time.Now().Add(time.Hour)
	dead, err := session.NewSession(time.Now())
	require.NoError(t, err)
	dead.ExpiresAt = time.Now().Add(-time.Hour)

	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, dead))
	require.Equal(t, 2, store.Len())

	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	store := session.NewMemoryStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	dead, err := session.NewSession(time.Now())
	require.NoError(t, err)
	dead.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.Save(ctx, dead))

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_CloseWhileCleanupRuns(t *testing.T) {
	for range 500 {
		store := session.NewMemoryStore(time.Millisecond)
		assert.NoError(t, store.Close())
		assert.NoError(t, store.Close(), "second close is a no-op")
	}

	store := session.NewMemoryStore(0)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
