package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"signal_bot/internal/models"
)

const geckoBaseURL = "https://api.coingecko.com/api/v3"

// GeckoSource строит свечи из market_chart: точки цены группируются в бакеты интервала.
type GeckoSource struct {
	httpGetter
}

func NewGeckoSource(timeout time.Duration) *GeckoSource {
	return &GeckoSource{httpGetter: newHTTPGetter(geckoBaseURL, timeout)}
}

func (g *GeckoSource) Name() string { return "coingecko" }

type geckoChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

func (g *GeckoSource) Fetch(ctx context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error) {
	id, ok := geckoIDs[symbol]
	if !ok {
		return nil, fmt.Errorf("coingecko: unknown symbol %s: %w", symbol, ErrDataUnavailable)
	}

	// до 90 дней отдаются почасовые точки, дальше дневные
	days := int(math.Ceil(float64(limit) * interval.Duration().Hours() / 24))
	if days < 2 {
		days = 2
	}
	var chart geckoChart
	path := fmt.Sprintf("/coins/%s/market_chart?vs_currency=usd&days=%d", id, days)
	if err := g.getJSON(ctx, path, &chart); err != nil {
		return nil, fmt.Errorf("coingecko %s: %w", symbol, err)
	}

	cs := bucketize(chart, interval)
	if len(cs) > limit {
		cs = cs[len(cs)-limit:]
	}
	return cs, nil
}

// bucketize OHLC из точек цены внутри окна интервала. total_volumes у CoinGecko это
// скользящий суточный объём, поэтому берём последний в бакете и масштабируем на длину интервала.
func bucketize(chart geckoChart, interval models.Interval) []models.Candle {
	step := interval.Duration()
	scale := step.Hours() / 24

	vols := make(map[int64]float64, len(chart.TotalVolumes))
	for _, v := range chart.TotalVolumes {
		vols[bucketStart(v[0], step)] = v[1]
	}

	var (
		out []models.Candle
		cur *models.Candle
	)
	for _, p := range chart.Prices {
		start := bucketStart(p[0], step)
		price := p[1]
		if cur == nil || cur.OpenTime.UnixMilli() != start {
			if cur != nil {
				out = append(out, *cur)
			}
			open := price
			if len(out) > 0 {
				open = out[len(out)-1].Close
			}
			cur = &models.Candle{
				OpenTime: time.UnixMilli(start).UTC(),
				Open:     open,
				High:     math.Max(open, price),
				Low:      math.Min(open, price),
				Close:    price,
			}
		}
		cur.High = math.Max(cur.High, price)
		cur.Low = math.Min(cur.Low, price)
		cur.Close = price
		cur.Volume = vols[start] * scale
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

func bucketStart(tsMillis float64, step time.Duration) int64 {
	ms := int64(tsMillis)
	stepMs := step.Milliseconds()
	return ms - ms%stepMs
}
