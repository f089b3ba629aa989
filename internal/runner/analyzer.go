package runner

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
)

// CandleSource цепочка провайдеров свечей
type CandleSource interface {
	Fetch(ctx context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error)
}

type SignalDetector interface {
	Evaluate(symbol string, short, long []models.Candle) models.Verdict
	Intervals() (short, long models.Interval)
}

// Analyzer тянет оба таймфрейма и прогоняет детектор. Используется циклом и админской /test.
type Analyzer struct {
	src   CandleSource
	det   SignalDetector
	limit int
}

func NewAnalyzer(src CandleSource, det SignalDetector, limit int) *Analyzer {
	if limit <= 0 {
		limit = 250
	}
	return &Analyzer{src: src, det: det, limit: limit}
}

func (a *Analyzer) Analyze(ctx context.Context, symbol string) (models.Verdict, error) {
	shortInterval, longInterval := a.det.Intervals()

	short, err := a.src.Fetch(ctx, symbol, shortInterval, a.limit)
	if err != nil {
		return models.Verdict{Symbol: symbol, Reason: err.Error()},
			fmt.Errorf("runner.Analyze: %s %s: %w", symbol, shortInterval, err)
	}
	long, err := a.src.Fetch(ctx, symbol, longInterval, a.limit)
	if err != nil {
		return models.Verdict{Symbol: symbol, Reason: err.Error()},
			fmt.Errorf("runner.Analyze: %s %s: %w", symbol, longInterval, err)
	}
	return a.det.Evaluate(symbol, short, long), nil
}
