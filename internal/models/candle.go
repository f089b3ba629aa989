package models

import "time"

// Candle одна OHLCV-свеча. Последовательность для пары (symbol, interval) идёт по возрастанию OpenTime.
type Candle struct {
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// Interval таймфрейм свечей
type Interval string

const (
	Interval4h Interval = "4h"
	Interval1d Interval = "1d"
)

func (i Interval) Duration() time.Duration {
	switch i {
	case Interval1d:
		return 24 * time.Hour
	case Interval4h:
		return 4 * time.Hour
	default:
		d, err := time.ParseDuration(string(i))
		if err != nil {
			return time.Hour
		}
		return d
	}
}

// Range high-low
func (c Candle) Range() float64 { return c.High - c.Low }

// Body |close-open|
func (c Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

func (c Candle) Bullish() bool { return c.Close > c.Open }

// Closes вытаскивает цены закрытия
func Closes(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Close
	}
	return out
}

func Volumes(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Volume
	}
	return out
}
