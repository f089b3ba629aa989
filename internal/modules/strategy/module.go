package strategy

import (
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/strategy/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(cfg *config.Config) *service.Detector {
				return service.NewDetector(
					models.Interval(cfg.Market.ShortInterval),
					models.Interval(cfg.Market.LongInterval),
				)
			},
		),
	)
}
