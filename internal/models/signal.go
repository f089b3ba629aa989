package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade сила сигнала по числу сработавших таймфреймов
type Grade string

const (
	GradeNone            Grade = ""
	GradeSingleTimeframe Grade = "single"
	GradeBothTimeframes  Grade = "both"
)

// Recommendation метка для текста сообщения
type Recommendation string

const (
	RecommendationStrongBuy Recommendation = "STRONG BUY"
	RecommendationBuy       Recommendation = "BUY"
	RecommendationConsider  Recommendation = "CONSIDER"
	RecommendationWeakBuy   Recommendation = "WEAK BUY"
	RecommendationHold      Recommendation = "HOLD"
)

// TimeframeChecks шесть критериев пробоя на одном таймфрейме.
type TimeframeChecks struct {
	Interval             Interval `json:"interval"`
	AboveEMA             bool     `json:"above_ema"`
	EMARising            bool     `json:"ema_rising"`
	ResistanceBreakout   bool     `json:"resistance_breakout"`
	VolumeSurge          bool     `json:"volume_surge"`
	CloseAboveResistance bool     `json:"close_above_resistance"`
	MomentumCandle       bool     `json:"momentum_candle"`
}

// Fired все шесть критериев выполнены
func (t TimeframeChecks) Fired() bool {
	return t.AboveEMA && t.EMARising && t.ResistanceBreakout &&
		t.VolumeSurge && t.CloseAboveResistance && t.MomentumCandle
}

// Extras необязательные метрики, на срабатывание не влияют.
type Extras struct {
	RSIBullish    bool    `json:"rsi_bullish"`
	RSI           float64 `json:"rsi"`
	VolumeDouble  bool    `json:"volume_2x"`
	AboveSMA200   bool    `json:"above_200sma"`
	SMA200DistPct float64 `json:"sma200_distance"`
	Bullish       bool    `json:"bullish_candle"`
}

// Count сколько необязательных условий выполнено (0-4)
func (e Extras) Count() int {
	n := 0
	for _, ok := range []bool{e.RSIBullish, e.VolumeDouble, e.AboveSMA200, e.Bullish} {
		if ok {
			n++
		}
	}
	return n
}

type Strength struct {
	Score          int            `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
	EMADistancePct float64        `json:"ema_distance_pct"`
	VolumeRatio    float64        `json:"volume_ratio"`
}

// Levels уровни входа/выхода, масштабированные по числу extras.
type Levels struct {
	Entry      decimal.Decimal `json:"entry"`
	StopLoss   decimal.Decimal `json:"stop_loss"`
	TP1        decimal.Decimal `json:"tp1"`
	TP2        decimal.Decimal `json:"tp2"`
	TP3        decimal.Decimal `json:"tp3"`
	RiskReward float64         `json:"risk_reward"`
}

// Verdict результат детектора по символу за цикл. Не хранится.
type Verdict struct {
	Symbol   string          `json:"symbol"`
	Fired    bool            `json:"fired"`
	Grade    Grade           `json:"grade"`
	Short    TimeframeChecks `json:"short"`
	Long     TimeframeChecks `json:"long"`
	Extras   Extras          `json:"extras"`
	Strength Strength        `json:"strength"`
	Levels   Levels          `json:"levels"`
	Price    float64         `json:"price"`
	Reason   string          `json:"reason,omitempty"`
}

// HistoryEntry запись в кольце последних сигналов
type HistoryEntry struct {
	Symbol  string    `json:"symbol"`
	Message string    `json:"message"`
	FiredAt time.Time `json:"fired_at"`
}

// DateShort формат для /status
func (h HistoryEntry) DateShort() string {
	return h.FiredAt.Format("01/02 15:04")
}
