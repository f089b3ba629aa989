package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"signal_bot/internal/models"
)

var basePrices = map[string]float64{
	"BTCUSDT": 95000, "ETHUSDT": 3300, "XRPUSDT": 2.5, "SOLUSDT": 195, "BNBUSDT": 670,
	"ADAUSDT": 0.87, "DOGEUSDT": 0.35, "DOTUSDT": 8.2, "LTCUSDT": 125, "UNIUSDT": 15.2,
	"SUIUSDT": 4.2, "LDOUSDT": 1.9, "EIGENUSDT": 3.6, "THETAUSDT": 2.3, "WLDUSDT": 2.4,
	"SEIUSDT": 0.45, "SANDUSDT": 0.6, "ARBUSDT": 0.8, "OPUSDT": 1.9, "XLMUSDT": 0.42,
	"ATOMUSDT": 6.8,
}

const defaultBasePrice = 50.0

// Synthetic последний источник в цепочке: случайное блуждание с лёгким бычьим смещением.
type Synthetic struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewSynthetic(seed uint64) *Synthetic {
	return &Synthetic{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

func (s *Synthetic) WithClock(now func() time.Time) *Synthetic {
	s.now = now
	return s
}

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Fetch(_ context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error) {
	base, ok := basePrices[symbol]
	if !ok {
		base = defaultBasePrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	step := interval.Duration()
	start := s.alignedStart(step, limit)
	out := make([]models.Candle, 0, limit)
	price := base
	for i := 0; i < limit; i++ {
		vol := s.uniform(0.005, 0.03)
		change := s.uniform(-vol, vol) + s.uniform(-0.01, 0.02)

		open := price
		closePx := price * (1 + change)
		out = append(out, models.Candle{
			OpenTime: start.Add(time.Duration(i) * step),
			Open:     open,
			High:     max(open, closePx) * s.uniform(1.001, 1.02),
			Low:      min(open, closePx) * s.uniform(0.98, 0.999),
			Close:    closePx,
			Volume:   s.uniform(50000, 200000),
		})
		price = closePx
	}
	return out, nil
}

// Anchored ряд, линейно идущий от from к to с шумом. Объём от суточного.
func (s *Synthetic) Anchored(interval models.Interval, limit int, from, to, volume24h float64) []models.Candle {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := interval.Duration()
	start := s.alignedStart(step, limit)
	baseVol := 100000.0
	if volume24h > 0 {
		baseVol = volume24h * step.Hours() / 24
	}

	out := make([]models.Candle, 0, limit)
	for i := 0; i < limit; i++ {
		progress := 0.0
		if limit > 1 {
			progress = float64(i) / float64(limit-1)
		}
		mid := from + (to-from)*progress
		noise := s.uniform(0.005, 0.025)
		closePx := mid * (1 + s.uniform(-noise, noise))

		open := closePx * (1 + s.uniform(-0.01, 0.01))
		if i > 0 {
			open = out[i-1].Close
		}
		out = append(out, models.Candle{
			OpenTime: start.Add(time.Duration(i) * step),
			Open:     open,
			High:     max(open, closePx) * (1 + s.uniform(0, 0.015)),
			Low:      min(open, closePx) * (1 - s.uniform(0, 0.015)),
			Close:    closePx,
			Volume:   baseVol * s.uniform(0.5, 2.0),
		})
	}
	return out
}

// alignedStart последняя свеча открыта в текущем окне интервала
func (s *Synthetic) alignedStart(step time.Duration, limit int) time.Time {
	last := s.now().UTC().Truncate(step)
	return last.Add(-time.Duration(limit-1) * step)
}

func (s *Synthetic) uniform(lo, hi float64) float64 {
	return lo + s.rnd.Float64()*(hi-lo)
}
