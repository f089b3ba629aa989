package history

import (
	"context"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/history/service"
	stateservice "signal_bot/internal/modules/state/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("history",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config, st stateservice.Store) (*service.History, error) {
				h := service.NewHistory(cfg.HistorySize, st)
				if err := h.Restore(ctx); err != nil {
					return nil, err
				}
				return h, nil
			},
		),
	)
}
