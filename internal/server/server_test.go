package server

import (
	"context"
	"testing"

	"github.com/deppfellow/accountowner/internal/testing/testdb"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelease(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("closes redis and the database", func(t *testing.T) {
		db := testdb.NewDatabase(t)
		rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
		s := &Server{Logger: &logger, DB: db, Redis: rdb}

		require.NoError(t, s.release())

		assert.Error(t, db.Ping(ctx))
		assert.ErrorIs(t, rdb.Ping(ctx).Err(), redis.ErrClosed)
	})

	t.Run("skips what was never set up", func(t *testing.T) {
		db := testdb.NewDatabase(t)
		s := &Server{Logger: &logger, DB: db}

		require.NoError(t, s.release())
		assert.Error(t, db.Ping(ctx))

		assert.NoError(t, (&Server{Logger: &logger}).release())
	})
}

func TestShutdownWithoutHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	db := testdb.NewDatabase(t)
	s := &Server{Logger: &logger, DB: db}

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Error(t, db.Ping(context.Background()))
}
