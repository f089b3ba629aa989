package runner

import (
	"context"

	"signal_bot/internal/metrics"
	accessservice "signal_bot/internal/modules/access/service"
	"signal_bot/internal/modules/config"
	cooldownservice "signal_bot/internal/modules/cooldown/service"
	healthservice "signal_bot/internal/modules/health/service"
	historyservice "signal_bot/internal/modules/history/service"
	marketservice "signal_bot/internal/modules/marketdata/service"
	profileservice "signal_bot/internal/modules/profile/service"
	stateservice "signal_bot/internal/modules/state/service"
	strategyservice "signal_bot/internal/modules/strategy/service"

	"go.uber.org/fx"
)

func NewDispatcherFromConfig(
	cfg *config.Config,
	analyzer *Analyzer,
	notifier Notifier,
	access *accessservice.Controller,
	cooldown *cooldownservice.Tracker,
	history *historyservice.History,
	profiles *profileservice.Store,
	store stateservice.Store,
	restart *RestartSignal,
	m *metrics.Metrics,
	health *healthservice.State,
) *Dispatcher {
	deps := Deps{
		Analyzer: analyzer,
		Notifier: notifier,
		Access:   access,
		Cooldown: cooldown,
		History:  history,
		Store:    store,
		Restart:  restart,
		Metrics:  m,
		Health:   health,
	}
	if profiles != nil {
		deps.Profiles = profiles
	}
	return NewDispatcher(OptionsFromConfig(cfg), deps)
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			NewRestartSignal,
			func(cfg *config.Config, chain *marketservice.Chain, det *strategyservice.Detector) *Analyzer {
				return NewAnalyzer(chain, det, cfg.Market.CandleLimit)
			},
			NewDispatcherFromConfig,
		),
		fx.Invoke(func(lc fx.Lifecycle, d *Dispatcher, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					d.Start(ctx)
					return nil
				},
				OnStop: func(_ context.Context) error {
					d.Stop()
					return nil
				},
			})
		}),
	)
}
