package cache_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
	"github.com/jhoicas/fieldservice-api/internal/infrastructure/cache"
)

type countingDirectory struct {
	calls atomic.Int32
	user  *entity.User
}

func (d *countingDirectory) ResolveUser(context.Context, string) (*entity.User, error) {
	d.calls.Add(1)
	return d.user, nil
}

// Redis inalcanzable: el directorio sigue resolviendo contra el origen.
func TestCachedUserDirectory_RedisCaidoDegradaAlOrigen(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	next := &countingDirectory{user: &entity.User{ID: "u1", CompanyID: "c1", Name: "Ana", Status: entity.UserStatusActive}}
	dir := cache.NewCachedUserDirectory(rdb, next, time.Minute)

	u, err := dir.ResolveUser(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, int32(1), next.calls.Load())
}
