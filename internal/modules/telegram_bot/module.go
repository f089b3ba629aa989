package telegram

import (
	"context"

	"signal_bot/internal/metrics"
	accessservice "signal_bot/internal/modules/access/service"
	healthservice "signal_bot/internal/modules/health/service"
	historyservice "signal_bot/internal/modules/history/service"
	profileservice "signal_bot/internal/modules/profile/service"
	"signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/internal/runner"

	"go.uber.org/fx"
)

func NewDeps(
	access *accessservice.Controller,
	history *historyservice.History,
	profiles *profileservice.Store,
	analyzer *runner.Analyzer,
	restart *runner.RestartSignal,
	m *metrics.Metrics,
	health *healthservice.State,
) service.Deps {
	deps := service.Deps{
		Access:   access,
		History:  history,
		Analyzer: analyzer,
		Restart:  restart,
		Metrics:  m,
		Health:   health,
	}
	// nil *Store в интерфейсе не равен nil
	if profiles != nil {
		deps.Profiles = profiles
	}
	return deps
}

func Module() fx.Option {
	return fx.Module("telegram",
		// 1. Зависимости хендлеров
		fx.Provide(
			NewDeps,
		),

		// 2. Сервис Telegram как *service.Telegram
		fx.Provide(
			service.NewTelegram, // func(*config.Config, service.Deps) (*service.Telegram, error)
		),

		// 3. Адаптер: *service.Telegram -> runner.Notifier
		fx.Provide(
			func(t *service.Telegram) runner.Notifier {
				return t
			},
		),
		// Long-poll живёт до остановки приложения, а не до конца OnStart
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, ctx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						t.Start(ctx)
						return nil
					},
					OnStop: func(_ context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
