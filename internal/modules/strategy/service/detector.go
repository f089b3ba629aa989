package service

import (
	"fmt"
	"runtime/debug"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Detector проверяет пробой EMA20 на двух таймфреймах. Состояния между вызовами нет.
type Detector struct {
	shortInterval models.Interval
	longInterval  models.Interval
}

func NewDetector(shortInterval, longInterval models.Interval) *Detector {
	if shortInterval == "" {
		shortInterval = models.Interval4h
	}
	if longInterval == "" {
		longInterval = models.Interval1d
	}
	return &Detector{shortInterval: shortInterval, longInterval: longInterval}
}

func (d *Detector) Intervals() (short, long models.Interval) {
	return d.shortInterval, d.longInterval
}

// Evaluate сигнал срабатывает, если все шесть критериев выполнены хотя бы на одном таймфрейме.
// Паника внутри расчёта превращается в несработавший вердикт.
func (d *Detector) Evaluate(symbol string, short, long []models.Candle) (v models.Verdict) {
	v = models.Verdict{Symbol: symbol}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[DETECT] %s panic: %v\n%s", symbol, r, debug.Stack())
			v = models.Verdict{Symbol: symbol, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()

	if len(short) < MinShortCandles || len(long) < MinLongCandles {
		v.Reason = fmt.Sprintf("insufficient data: short=%d long=%d", len(short), len(long))
		return v
	}

	v.Price = short[len(short)-1].Close
	v.Short = checkTimeframe(d.shortInterval, short)
	v.Long = checkTimeframe(d.longInterval, long)

	switch shortOK, longOK := v.Short.Fired(), v.Long.Fired(); {
	case shortOK && longOK:
		v.Fired, v.Grade = true, models.GradeBothTimeframes
	case shortOK || longOK:
		v.Fired, v.Grade = true, models.GradeSingleTimeframe
	}

	v.Extras = computeExtras(short, long)
	v.Strength = computeStrength(short)
	v.Levels = computeLevels(short, v.Extras)

	logger.Debug("[DETECT] %s fired=%v grade=%q score=%d", symbol, v.Fired, v.Grade, v.Strength.Score)
	return v
}
