package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fieldservice-api/internal/application/ports"
	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

var _ ports.UserDirectory = (*CachedUserDirectory)(nil)

const userKeyPrefix = "fieldservice:user:"

// CachedUserDirectory cachea en Redis las resoluciones de usuario de otro directorio.
// Solo se cachean usuarios encontrados; un fallo de Redis degrada a consultar next.
type CachedUserDirectory struct {
	rdb  *redis.Client
	next ports.UserDirectory
	ttl  time.Duration
}

// NewCachedUserDirectory envuelve next con un caché de duración ttl.
func NewCachedUserDirectory(rdb *redis.Client, next ports.UserDirectory, ttl time.Duration) *CachedUserDirectory {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedUserDirectory{rdb: rdb, next: next, ttl: ttl}
}

// ResolveUser busca primero en caché y luego en next.
func (d *CachedUserDirectory) ResolveUser(ctx context.Context, userID string) (*entity.User, error) {
	key := userKeyPrefix + userID
	raw, err := d.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var u entity.User
		if jsonErr := json.Unmarshal(raw, &u); jsonErr == nil {
			return &u, nil
		}
		log.Warn().Str("key", key).Msg("entrada de caché corrupta, se ignora")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("user_id", userID).Msg("caché de usuarios no disponible")
	}

	user, err := d.next.ResolveUser(ctx, userID)
	if err != nil || user == nil {
		return user, err
	}
	if b, err := json.Marshal(user); err == nil {
		if err := d.rdb.Set(ctx, key, b, d.ttl).Err(); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo cachear el usuario")
		}
	}
	return user, nil
}

// Invalidate elimina un usuario del caché (p. ej. tras desactivarlo).
func (d *CachedUserDirectory) Invalidate(ctx context.Context, userID string) error {
	return d.rdb.Del(ctx, userKeyPrefix+userID).Err()
}
