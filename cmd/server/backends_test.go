package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/meetup/pkg/logger"
	"github.com/dmitrymomot/meetup/pkg/redis"
)

func TestBackendsCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	b := &backends{checks: map[string]func(context.Context) error{
		"redis": redis.Healthcheck(client),
	}}
	ctx := context.Background()

	require.NoError(t, b.check(ctx, logger.Discard()))

	mr.Close()
	err := b.check(ctx, logger.Discard())
	assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}

func TestBackendsCheck_MemoryHasNoChecks(t *testing.T) {
	b := &backends{}
	assert.NoError(t, b.check(context.Background(), logger.Discard()))
}
