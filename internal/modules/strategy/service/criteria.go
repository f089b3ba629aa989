package service

import (
	"math"

	"signal_bot/internal/models"
)

const (
	emaPeriod        = 20
	emaSlopeSteps    = 3
	lookback         = 20
	volumeSurgeMin   = 1.5
	volumeSurgeMax   = 2.0
	momentumMinRatio = 0.7
	rsiPeriod        = 14
	smaLongPeriod    = 200

	// MinShortCandles меньше нельзя: 20 свечей истории + текущая
	MinShortCandles = lookback + 1
	MinLongCandles  = 2
)

// checkTimeframe шесть критериев пробоя для последней свечи ряда.
func checkTimeframe(interval models.Interval, cs []models.Candle) models.TimeframeChecks {
	out := models.TimeframeChecks{Interval: interval}
	if len(cs) == 0 {
		return out
	}
	closes := models.Closes(cs)
	ema := emaSeries(closes, emaPeriod)
	cur := cs[len(cs)-1]

	out.AboveEMA = cur.Close > ema[len(ema)-1]
	out.EMARising = isRising(ema, emaSlopeSteps)

	resistance, ok := resistanceLevel(cs)
	if ok {
		out.ResistanceBreakout = cur.High > resistance && cur.Close > resistance
		// дублирует close-проверку из пробоя, шаг держим отдельным
		out.CloseAboveResistance = cur.Close > resistance
	}
	out.VolumeSurge = volumeSurge(cs)
	out.MomentumCandle = momentumCandle(cur)
	return out
}

// isRising последние steps+1 значений строго возрастают
func isRising(series []float64, steps int) bool {
	if len(series) < steps+1 {
		return false
	}
	tail := series[len(series)-steps-1:]
	for i := 1; i < len(tail); i++ {
		if tail[i] <= tail[i-1] {
			return false
		}
	}
	return true
}

// resistanceLevel максимум high за lookback свечей до текущей
func resistanceLevel(cs []models.Candle) (float64, bool) {
	if len(cs) < lookback+1 {
		return 0, false
	}
	prev := cs[len(cs)-lookback-1 : len(cs)-1]
	highs := make([]float64, len(prev))
	for i, c := range prev {
		highs[i] = c.High
	}
	return maxOf(highs), true
}

// volumeSurge объём текущей свечи в [1.5, 2.0] от среднего за 20 предыдущих
func volumeSurge(cs []models.Candle) bool {
	ratio, ok := priorVolumeRatio(cs)
	if !ok {
		return false
	}
	return ratio >= volumeSurgeMin && ratio <= volumeSurgeMax
}

func priorVolumeRatio(cs []models.Candle) (float64, bool) {
	if len(cs) < lookback+1 {
		return 0, false
	}
	avg := mean(models.Volumes(cs[len(cs)-lookback-1 : len(cs)-1]))
	if avg <= 0 {
		return 0, false
	}
	return cs[len(cs)-1].Volume / avg, true
}

func momentumCandle(c models.Candle) bool {
	rng := c.Range()
	if rng <= 0 {
		return false
	}
	return c.Body()/rng >= momentumMinRatio
}

// computeExtras необязательные признаки: RSI и объём по короткому ряду, SMA200 по длинному.
func computeExtras(short, long []models.Candle) models.Extras {
	var ex models.Extras
	closes := models.Closes(short)

	if len(short) >= rsiPeriod {
		if rsi := rsiRolling(closes, rsiPeriod); !math.IsNaN(rsi) {
			ex.RSI = rsi
			ex.RSIBullish = rsi > 50
		}
	}

	if len(short) >= lookback {
		avg := mean(models.Volumes(short[:len(short)-1]))
		ex.VolumeDouble = short[len(short)-1].Volume > avg*2
	}

	if len(long) >= smaLongPeriod {
		if sma, ok := smaLast(models.Closes(long), smaLongPeriod); ok && sma > 0 {
			price := long[len(long)-1].Close
			ex.AboveSMA200 = price > sma
			ex.SMA200DistPct = (price - sma) / sma * 100
		}
	}

	if len(short) > 0 {
		ex.Bullish = short[len(short)-1].Bullish()
	}
	return ex
}
