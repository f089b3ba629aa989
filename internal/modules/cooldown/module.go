package cooldown

import (
	"context"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/cooldown/service"
	stateservice "signal_bot/internal/modules/state/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("cooldown",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config, st stateservice.Store) (*service.Tracker, error) {
				tr := service.NewTracker(cfg.CooldownWindow, st)
				if err := tr.Restore(ctx); err != nil {
					return nil, err
				}
				return tr, nil
			},
		),
	)
}
