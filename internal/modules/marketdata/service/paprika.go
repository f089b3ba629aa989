package service

import (
	"context"
	"fmt"
	"time"

	"signal_bot/internal/models"
)

const paprikaBaseURL = "https://api.coinpaprika.com/v1"

// PaprikaSource бесплатный тариф CoinPaprika отдаёт только текущий тикер, поэтому
// история восстанавливается генератором, привязанным к цене 24ч назад и текущей.
type PaprikaSource struct {
	httpGetter
	gen *Synthetic
}

func NewPaprikaSource(timeout time.Duration, gen *Synthetic) *PaprikaSource {
	return &PaprikaSource{httpGetter: newHTTPGetter(paprikaBaseURL, timeout), gen: gen}
}

func (p *PaprikaSource) Name() string { return "coinpaprika" }

type paprikaTicker struct {
	Quotes struct {
		USD struct {
			Price            float64 `json:"price"`
			Volume24h        float64 `json:"volume_24h"`
			PercentChange24h float64 `json:"percent_change_24h"`
		} `json:"USD"`
	} `json:"quotes"`
}

func (p *PaprikaSource) Fetch(ctx context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error) {
	id, ok := paprikaIDs[symbol]
	if !ok {
		return nil, fmt.Errorf("coinpaprika: unknown symbol %s: %w", symbol, ErrDataUnavailable)
	}

	var t paprikaTicker
	if err := p.getJSON(ctx, "/tickers/"+id, &t); err != nil {
		return nil, fmt.Errorf("coinpaprika %s: %w", symbol, err)
	}
	q := t.Quotes.USD
	if q.Price <= 0 {
		return nil, fmt.Errorf("coinpaprika %s: zero price: %w", symbol, ErrDataUnavailable)
	}

	from := q.Price / (1 + q.PercentChange24h/100)
	return p.gen.Anchored(interval, limit, from, q.Price, q.Volume24h), nil
}
