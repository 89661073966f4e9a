// Package cache implementa el cache Redis del acceptance token de la pasarela.
// Es opcional: sin Redis configurado, el cliente Wompi consulta /merchants en
// cada checkout. Un fallo de Redis degrada a cache miss, nunca rompe el pago.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/checkout-api/internal/infrastructure/wompi"
	"github.com/jhoicas/checkout-api/pkg/config"
	"github.com/jhoicas/checkout-api/pkg/logger"
)

const acceptanceTokenKey = "wompi:acceptance_token"

// Verificar en tiempo de compilación que RedisTokenCache implementa wompi.TokenCache.
var _ wompi.TokenCache = (*RedisTokenCache)(nil)

// RedisTokenCache guarda el acceptance token con TTL.
type RedisTokenCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisTokenCache conecta a Redis y verifica la conexión con un Ping.
func NewRedisTokenCache(cfg config.RedisConfig, log *logger.Logger) (*RedisTokenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisTokenCache{client: client, ttl: ttl, log: log.Component("cache")}, nil
}

// GetAcceptanceToken devuelve el token cacheado si existe.
func (c *RedisTokenCache) GetAcceptanceToken(ctx context.Context) (string, bool) {
	token, err := c.client.Get(ctx, acceptanceTokenKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("leer acceptance token del cache")
		}
		return "", false
	}
	return token, token != ""
}

// SetAcceptanceToken guarda el token con el TTL configurado.
func (c *RedisTokenCache) SetAcceptanceToken(ctx context.Context, token string) {
	if err := c.client.Set(ctx, acceptanceTokenKey, token, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("guardar acceptance token en cache")
	}
}

// Close cierra la conexión a Redis.
func (c *RedisTokenCache) Close() error {
	return c.client.Close()
}
