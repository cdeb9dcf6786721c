package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSessionRevocationRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	repo := NewSessionRevocationRepository(rdb)

	t.Run("revoke then check", func(t *testing.T) {
		revoked, err := repo.IsRevoked(ctx, "token-1")
		assert.NoError(t, err)
		assert.False(t, revoked)

		assert.NoError(t, repo.Revoke(ctx, "token-1", time.Minute))

		revoked, err = repo.IsRevoked(ctx, "token-1")
		assert.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		assert.NoError(t, repo.Revoke(ctx, "token-2", 0))

		revoked, err := repo.IsRevoked(ctx, "token-2")
		assert.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revocation expires", func(t *testing.T) {
		assert.NoError(t, repo.Revoke(ctx, "token-3", time.Second))
		time.Sleep(1500 * time.Millisecond)

		revoked, err := repo.IsRevoked(ctx, "token-3")
		assert.NoError(t, err)
		assert.False(t, revoked)
	})
}
