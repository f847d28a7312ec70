package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/quicklist/marketplace/pkg/config"
)

func NewClient(l *zap.SugaredLogger, cfg *cfgpkg.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// Cache is best effort; callers fall back to the database.
		l.Warnw("redis ping failed, cache disabled until it recovers", "addr", cfg.Redis.Addr, "err", err)
	} else {
		l.Infow("connected to redis", "addr", cfg.Redis.Addr)
	}
	return rdb
}

func registerClose(lc fx.Lifecycle, l *zap.SugaredLogger, rdb *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Infow("closing redis client")
			return rdb.Close()
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Invoke(registerClose),
)
