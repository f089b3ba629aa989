package access

import (
	"context"
	"signal_bot/internal/modules/access/service"
	"signal_bot/internal/modules/config"
	stateservice "signal_bot/internal/modules/state/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("access",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config, st stateservice.Store) (*service.Controller, error) {
				c := service.NewController(cfg.Telegram.MainAdminID, cfg.FreeTierCapacity, st)
				if err := c.Restore(ctx); err != nil {
					return nil, err
				}
				return c, nil
			},
		),
	)
}
