package marketdata

import (
	"strings"
	"time"

	"signal_bot/internal/metrics"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/marketdata/service"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

// NewChain собирает провайдеров в порядке из конфига, синтетика всегда последняя.
func NewChain(cfg *config.Config, m *metrics.Metrics) *service.Chain {
	gen := service.NewSynthetic(uint64(time.Now().UnixNano()))

	var remote []service.Source
	for _, name := range cfg.Market.Providers {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "binance":
			remote = append(remote, service.NewBinanceSource())
		case "coinpaprika":
			remote = append(remote, service.NewPaprikaSource(cfg.Market.RequestTimeout, gen))
		case "coingecko":
			remote = append(remote, service.NewGeckoSource(cfg.Market.RequestTimeout))
		case "okx":
			remote = append(remote, service.NewOKXSource(cfg.Market.RequestTimeout))
		case "mexc":
			remote = append(remote, service.NewMexcSource(cfg.Market.RequestTimeout))
		case "synthetic":
		default:
			logger.Warn("[MARKET] unknown provider %q skipped", name)
		}
	}
	logger.Info("[MARKET] providers=%v + synthetic", cfg.Market.Providers)
	return service.NewChain(remote, gen, cfg.Market.MinRequestDelay, m)
}

func Module() fx.Option {
	return fx.Module("marketdata",
		fx.Provide(NewChain),
	)
}
