package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"signal_bot/internal/models"
)

const (
	mexcBaseURL  = "https://api.mexc.com"
	mexcMaxLimit = 1000
)

// MexcSource спотовые клайны MEXC /api/v3/klines
type MexcSource struct {
	httpGetter
}

func NewMexcSource(timeout time.Duration) *MexcSource {
	return &MexcSource{httpGetter: newHTTPGetter(mexcBaseURL, timeout)}
}

func (m *MexcSource) Name() string { return "mexc" }

func (m *MexcSource) Fetch(ctx context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error) {
	q := url.Values{}
	q.Set("symbol", strings.ToUpper(symbol))
	q.Set("interval", mexcInterval(interval))
	q.Set("limit", strconv.Itoa(min(limit, mexcMaxLimit)))

	// строка: [openTime, open, high, low, close, volume, closeTime, quoteVolume]
	var rows [][]any
	if err := m.getJSON(ctx, "/api/v3/klines?"+q.Encode(), &rows); err != nil {
		return nil, fmt.Errorf("mexc %s: %w", symbol, err)
	}

	out := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		c, err := parseMexcRow(row)
		if err != nil {
			return nil, fmt.Errorf("mexc kline %s: %w", symbol, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// mexcInterval час у MEXC пишется как 60m, неделя как 1W
func mexcInterval(i models.Interval) string {
	switch i {
	case "1h":
		return "60m"
	case "1w":
		return "1W"
	default:
		return string(i)
	}
}

func parseMexcRow(row []any) (models.Candle, error) {
	if len(row) < 6 {
		return models.Candle{}, fmt.Errorf("short row: %d fields", len(row))
	}
	ts, err := anyFloat(row[0])
	if err != nil {
		return models.Candle{}, fmt.Errorf("openTime: %w", err)
	}
	c := models.Candle{OpenTime: time.UnixMilli(int64(ts)).UTC()}
	for i, dst := range []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume} {
		if *dst, err = anyFloat(row[i+1]); err != nil {
			return models.Candle{}, fmt.Errorf("field %d: %w", i+1, err)
		}
	}
	return c, nil
}

// anyFloat числа приходят то строкой, то числом
func anyFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}
