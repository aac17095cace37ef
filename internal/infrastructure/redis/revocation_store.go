// Package redis implementa la lista de refresh tokens revocados sobre Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/pkg/config"
)

var _ ports.TokenRevocationStore = (*RevocationStore)(nil)

const keyPrefix = "bizos:revoked:"

// Client subconjunto de *redis.Client que usa el adaptador.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RevocationStore guarda cada jti revocado con TTL igual a la vida restante del token.
type RevocationStore struct {
	client Client
	now    func() time.Time
}

// NewClient abre la conexión y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRevocationStore construye el adaptador.
func NewRevocationStore(client Client) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke marca tokenID hasta until con SETNX: solo la primera llamada gana.
// Un token ya vencido no necesita entrada.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) (bool, error) {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return true, nil
	}
	ok, err := s.client.SetNX(ctx, keyPrefix+tokenID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: revocar: %w", err)
	}
	return ok, nil
}

// IsRevoked informa si existe la entrada del jti.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis: consultar: %w", err)
	}
	return n > 0, nil
}
