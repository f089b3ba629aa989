package main

import (
	"context"
	"log"
	"os"

	"signal_bot/internal/modules/access"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/cooldown"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/history"
	"signal_bot/internal/modules/marketdata"
	"signal_bot/internal/modules/profile"
	"signal_bot/internal/modules/state"
	"signal_bot/internal/modules/strategy"
	telegram "signal_bot/internal/modules/telegram_bot"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// initObservability переинициализирует логгер по конфигу и поднимает трейсер
func initObservability(lc fx.Lifecycle, cfg *config.Config) error {
	if err := logger.Init(cfg.Service.Name, cfg.Service.LogLevel); err != nil {
		return err
	}
	tracing.SetServiceName(cfg.Service.Name)
	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Enabled: cfg.Tracing.Enabled,
		Host:    cfg.Tracing.Host,
		Port:    cfg.Tracing.Port,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			logger.Sync()
			return nil
		},
	})
	return nil
}

func main() {
	// до чтения конфига пишем с уровнем из окружения
	if err := logger.Init("signal_bot", os.Getenv("LOG_LEVEL")); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.InfoLogger}
		}),
		fx.Provide(
			func() context.Context {
				return ctx
			},
		),
		config.Module(),
		fx.Invoke(initObservability),
		health.Module(),
		state.Module(),
		access.Module(),
		cooldown.Module(),
		history.Module(),
		profile.Module(),
		marketdata.Module(),
		strategy.Module(),
		runner.Module(),
		telegram.Module(),
	)
	if err := app.Err(); err != nil {
		logger.Fatal("fx: %v", err)
	}
	app.Run()
}
