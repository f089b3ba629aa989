package service

import (
	"math"

	"github.com/markcheno/go-talib"
)

// rsiRolling RSI по скользящему среднему приростов/потерь за period дельт.
// NaN если данных мало или цена стояла на месте все period шагов.
func rsiRolling(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return math.NaN()
	}
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	gain /= float64(period)
	loss /= float64(period)

	if loss == 0 {
		if gain == 0 {
			return math.NaN()
		}
		return 100
	}
	rs := gain / loss
	return 100 - (100 / (1 + rs))
}

// smaLast последнее значение SMA; ok=false если точек меньше period
func smaLast(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	sma := talib.Sma(closes, period)
	return sma[len(sma)-1], true
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := math.Inf(1)
	for _, x := range xs {
		if x < m {
			m = x
		}
	}
	return m
}
