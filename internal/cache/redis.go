package cache

import (
	"context"
	"crypto/tls"
	"time"

	"dhara-backend/internal/config"
	"dhara-backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects using cfg. It returns nil when Redis is disabled or
// unreachable; callers run without slot locking in that case.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}
	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		TLSConfig:   tlsConf,
		DialTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	logger.ExternalServiceCall("redis", "ping", "addr", cfg.Addr)
	err := client.Ping(ctx).Err()
	logger.ExternalServiceResult("redis", "ping", err, "addr", cfg.Addr)
	if err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
