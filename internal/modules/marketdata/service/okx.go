package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"signal_bot/internal/models"
)

const (
	okxBaseURL  = "https://www.okx.com"
	okxMaxLimit = 300
)

// OKXSource публичные спотовые свечи /api/v5/market/candles, ключи не нужны.
type OKXSource struct {
	httpGetter
}

func NewOKXSource(timeout time.Duration) *OKXSource {
	return &OKXSource{httpGetter: newHTTPGetter(okxBaseURL, timeout)}
}

func (o *OKXSource) Name() string { return "okx" }

type okxCandles struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

func (o *OKXSource) Fetch(ctx context.Context, symbol string, interval models.Interval, limit int) ([]models.Candle, error) {
	instID, ok := okxInstID(symbol)
	if !ok {
		return nil, fmt.Errorf("okx: unsupported symbol %s: %w", symbol, ErrDataUnavailable)
	}

	q := url.Values{}
	q.Set("instId", instID)
	q.Set("bar", okxBar(interval))
	q.Set("limit", strconv.Itoa(min(limit, okxMaxLimit)))

	var payload okxCandles
	if err := o.getJSON(ctx, "/api/v5/market/candles?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("okx %s: %w", symbol, err)
	}
	if payload.Code != "0" {
		return nil, fmt.Errorf("okx error %s: %s", payload.Code, payload.Msg)
	}

	out := make([]models.Candle, 0, len(payload.Data))
	for _, row := range payload.Data {
		c, err := parseOKXRow(row)
		if err != nil {
			return nil, fmt.Errorf("okx candle %s: %w", symbol, err)
		}
		out = append(out, c)
	}
	// OKX отдаёт новые первыми
	sort.Slice(out, func(i, j int) bool { return out[i].OpenTime.Before(out[j].OpenTime) })
	return out, nil
}

// okxInstID BTCUSDT -> BTC-USDT
func okxInstID(symbol string) (string, bool) {
	base, ok := strings.CutSuffix(strings.ToUpper(symbol), "USDT")
	if !ok || base == "" {
		return "", false
	}
	return base + "-USDT", true
}

// okxBar часы и дни у OKX в верхнем регистре: 4H, 1D, 1W
func okxBar(i models.Interval) string {
	s := string(i)
	if strings.HasSuffix(s, "m") {
		return s
	}
	return strings.ToUpper(s)
}

// parseOKXRow [ts, o, h, l, c, vol, ...]
func parseOKXRow(row []string) (models.Candle, error) {
	if len(row) < 6 {
		return models.Candle{}, fmt.Errorf("short row: %d fields", len(row))
	}
	ts, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.Candle{}, fmt.Errorf("ts parse: %w", err)
	}
	c := models.Candle{OpenTime: time.UnixMilli(ts).UTC()}
	for i, dst := range []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume} {
		if *dst, err = strconv.ParseFloat(row[i+1], 64); err != nil {
			return models.Candle{}, fmt.Errorf("field %d parse: %w", i+1, err)
		}
	}
	return c, nil
}
