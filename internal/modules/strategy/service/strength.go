package service

import (
	"math"

	"signal_bot/internal/models"
)

// computeStrength балл 0-100 для текста сигнала, на срабатывание не влияет.
func computeStrength(cs []models.Candle) models.Strength {
	var st models.Strength
	if len(cs) == 0 {
		return st
	}
	closes := models.Closes(cs)
	cur := cs[len(cs)-1]

	ema := emaWeighted(closes, emaPeriod)
	if ema > 0 {
		st.EMADistancePct = (cur.Close - ema) / ema * 100
	}
	switch d := st.EMADistancePct; {
	case d > 2:
		st.Score += 30
	case d > 1:
		st.Score += 25
	case d > 0.5:
		st.Score += 20
	case d > 0:
		st.Score += 15
	}

	// среднее за 20 свечей включая текущую
	st.VolumeRatio = 1
	if len(cs) >= lookback {
		if avg := mean(models.Volumes(cs[len(cs)-lookback:])); avg > 0 {
			st.VolumeRatio = cur.Volume / avg
		}
	}
	switch r := st.VolumeRatio; {
	case r > 2:
		st.Score += 25
	case r > 1.5:
		st.Score += 20
	case r > 1.2:
		st.Score += 15
	case r > 1:
		st.Score += 10
	}

	rsi := rsiRolling(closes, rsiPeriod)
	if !math.IsNaN(rsi) {
		switch {
		case rsi >= 50 && rsi <= 70:
			st.Score += 20
		case rsi >= 45 && rsi <= 75:
			st.Score += 15
		case rsi >= 40 && rsi <= 80:
			st.Score += 10
		case rsi < 80:
			st.Score += 5
		}
	}

	st.Score += trendScore(closes)

	if len(cs) >= 2 {
		if cur.Volume > cs[len(cs)-2].Volume {
			st.Score += 10
		} else {
			st.Score += 5
		}
	}

	st.Recommendation = recommend(st.Score, st.EMADistancePct > 0, st.VolumeRatio >= volumeSurgeMin)
	return st
}

// trendScore доля ростов среди последних 4 дельт * 15, с отбрасыванием дробной части
func trendScore(closes []float64) int {
	if len(closes) < 2 {
		return 0
	}
	tail := closes
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	up := 0
	for i := 1; i < len(tail); i++ {
		if tail[i] > tail[i-1] {
			up++
		}
	}
	return int(float64(up) / 4 * 15)
}

func recommend(score int, aboveEMA, highVolume bool) models.Recommendation {
	switch {
	case score >= 85 && aboveEMA && highVolume:
		return models.RecommendationStrongBuy
	case score >= 70 && (aboveEMA || highVolume):
		return models.RecommendationBuy
	case score >= 55 && (aboveEMA || highVolume):
		return models.RecommendationConsider
	case score >= 55 || aboveEMA || highVolume:
		return models.RecommendationWeakBuy
	default:
		return models.RecommendationHold
	}
}
