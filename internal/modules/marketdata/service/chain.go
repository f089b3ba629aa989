package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"golang.org/x/time/rate"
)

// Chain опрашивает провайдеров по порядку, при неудаче спускается к следующему.
// Запросы к внешним API идут не чаще одного в minDelay, синтетика без лимита.
type Chain struct {
	remote    []Source
	fallback  Source
	limiter   *rate.Limiter
	minCandle int
	metrics   *metrics.Metrics
}

func NewChain(remote []Source, fallback Source, minDelay time.Duration, m *metrics.Metrics) *Chain {
	lim := rate.NewLimiter(rate.Inf, 1)
	if minDelay > 0 {
		lim = rate.NewLimiter(rate.Every(minDelay), 1)
	}
	return &Chain{
		remote:    remote,
		fallback:  fallback,
		limiter:   lim,
		minCandle: 2,
		metrics:   m,
	}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Fetch(ctx context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error) {
	var errs []error
	for _, src := range c.remote {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		cs, err := src.Fetch(ctx, symbol, interval, limit)
		if err == nil && len(cs) < c.minCandle {
			err = fmt.Errorf("%s: %d candles: %w", src.Name(), len(cs), ErrDataUnavailable)
		}
		c.metrics.Fetch(src.Name(), err == nil)
		if err == nil {
			return cs, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("[MARKET] %s %s via %s: %v", symbol, interval, src.Name(), err)
		errs = append(errs, err)
	}

	if c.fallback == nil {
		return nil, errors.Join(append(errs, ErrDataUnavailable)...)
	}
	cs, err := c.fallback.Fetch(ctx, symbol, interval, limit)
	c.metrics.Fetch(c.fallback.Name(), err == nil)
	if err != nil {
		return nil, errors.Join(append(errs, err, ErrDataUnavailable)...)
	}
	if len(c.remote) > 0 {
		logger.Info("[MARKET] %s %s: synthetic fallback", symbol, interval)
	}
	return cs, nil
}
