package bootstrap

import (
	"context"
	"log/slog"

	"facility-booking/internal/domain/alert"
	"facility-booking/internal/infra/eventbus"
	"facility-booking/internal/infra/lease"
	"facility-booking/internal/infra/notifier"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/tracing"
	"facility-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// InfraModule provides the optional integrations. Each one degrades to a
// local fallback when its settings are empty.
var InfraModule = fx.Module("infra",
	fx.Provide(
		NewRedisClient,
		NewLease,
		NewEventPublisher,
		NewTracer,
		NewChannelSenders,
	),
)

// NewRedisClient returns nil when REDIS_ADDR is unset.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("redis is not reachable yet", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}

func NewLease(rdb *redis.Client) shared.Lease {
	if rdb == nil {
		return lease.LocalLease{}
	}
	return lease.NewRedisLease(rdb)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) shared.EventPublisher {
	if cfg.AMQP.URL == "" {
		return eventbus.LogPublisher{}
	}
	p := eventbus.NewAMQPPublisher(cfg.AMQP)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}

func NewTracer(cfg config.Config) (*tracing.Tracer, error) {
	return tracing.NewTracer(cfg.Tracing)
}

func NewChannelSenders(cfg config.Config, rdb *redis.Client) (map[alert.Channel]shared.Sender, error) {
	return notifier.NewSenders(context.Background(), cfg, rdb)
}
