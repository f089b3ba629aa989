package service

import (
	"signal_bot/internal/models"

	"github.com/shopspring/decimal"
)

const (
	baseStopPct  = 2.5
	supportDepth = 10
)

var (
	hundred       = decimal.NewFromInt(100)
	supportBuffer = decimal.NewFromFloat(0.995)
	takeProfitPct = [3]float64{4, 8, 15}
)

// computeLevels стоп и цели по риску: чем больше extras, тем шире цели и ближе стоп.
// Стоп не ниже локального минимума за 10 свечей с буфером 0.5%.
func computeLevels(short []models.Candle, extras models.Extras) models.Levels {
	if len(short) == 0 {
		return models.Levels{}
	}
	entry := decimal.NewFromFloat(short[len(short)-1].Close)
	risk := decimal.NewFromFloat(1 + 0.2*float64(extras.Count()))

	tail := short
	if len(tail) > supportDepth {
		tail = tail[len(tail)-supportDepth:]
	}
	lows := make([]float64, len(tail))
	for i, c := range tail {
		lows[i] = c.Low
	}
	support := decimal.NewFromFloat(minOf(lows)).Mul(supportBuffer)

	stopPct := decimal.NewFromFloat(baseStopPct).Div(risk)
	stop := entry.Mul(decimal.NewFromInt(1).Sub(stopPct.Div(hundred)))
	stop = decimal.Max(stop, support)

	tp := func(pct float64) decimal.Decimal {
		p := decimal.NewFromFloat(pct).Mul(risk).Div(hundred)
		return entry.Mul(decimal.NewFromInt(1).Add(p))
	}

	lv := models.Levels{
		Entry:    entry,
		StopLoss: stop,
		TP1:      tp(takeProfitPct[0]),
		TP2:      tp(takeProfitPct[1]),
		TP3:      tp(takeProfitPct[2]),
	}
	if entry.GreaterThan(stop) {
		rr := lv.TP1.Sub(entry).Div(entry.Sub(stop))
		lv.RiskReward = rr.InexactFloat64()
	}
	return lv
}

// DisplayLevels фиксированные уровни для текста сигнала: -2.5%, +6%, +12%
func DisplayLevels(price float64) (entry, stop, tp1, tp2 decimal.Decimal) {
	entry = decimal.NewFromFloat(price)
	stop = entry.Mul(decimal.RequireFromString("0.975"))
	tp1 = entry.Mul(decimal.RequireFromString("1.06"))
	tp2 = entry.Mul(decimal.RequireFromString("1.12"))
	return entry, stop, tp1, tp2
}
