package state

import (
	"context"
	"fmt"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

// NewStore выбирает драйвер по конфигу.
func NewStore(ctx context.Context, lc fx.Lifecycle, cfg *config.Config) (service.Store, error) {
	var (
		st  service.Store
		err error
	)
	switch cfg.State.Driver {
	case "postgres":
		manager, cerr := postgres.Connect(ctx, cfg.DB)
		if cerr != nil {
			return nil, fmt.Errorf("state: %w", cerr)
		}
		st, err = service.NewPg(ctx, manager)
	case "redis":
		st, err = service.NewRedis(service.RedisConfig{
			Addr:     cfg.State.RedisAddr,
			Password: cfg.State.RedisPass,
			DB:       cfg.State.RedisDB,
			Prefix:   cfg.State.KeyPrefix,
		})
	default:
		st = service.NewFile(cfg.State.FilePath)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("[STATE] driver=%s", cfg.State.Driver)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return st.Close()
		},
	})
	return st, nil
}

func Module() fx.Option {
	return fx.Module("state",
		fx.Provide(NewStore),
	)
}
