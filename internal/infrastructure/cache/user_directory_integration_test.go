//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/cache"
)

func TestCachedUserDirectory_CacheaUsuarios(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := cache.NewRedis(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	next := &countingDirectory{user: &entity.User{ID: "u1", CompanyID: "c1", Name: "Ana", Status: entity.UserStatusActive}}
	dir := cache.NewCachedUserDirectory(rdb, next, time.Minute)

	for i := 0; i < 3; i++ {
		u, err := dir.ResolveUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "c1", u.CompanyID)
	}
	assert.Equal(t, int32(1), next.calls.Load(), "las lecturas siguientes salen del caché")

	require.NoError(t, dir.Invalidate(ctx, "u1"))
	_, err = dir.ResolveUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load())

	next.user = nil
	missing, err := dir.ResolveUser(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
