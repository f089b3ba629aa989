package service

import "math"

type emaState struct {
	period int
	alpha  float64
	value  float64
	warmup int
}

func newEMA(period int) emaState {
	if period <= 1 {
		period = 1
	}
	return emaState{
		period: period,
		alpha:  2.0 / (float64(period) + 1),
	}
}

// Update первая цена служит затравкой, дальше рекуррентно
func (e *emaState) Update(price float64) {
	if e.warmup == 0 {
		e.value = price
		e.warmup = 1
		return
	}
	e.value = e.alpha*price + (1-e.alpha)*e.value
	if e.warmup < e.period {
		e.warmup++
	}
}

func (e *emaState) Value() float64 { return e.value }

// emaSeries EMA по каждой точке, len(out) == len(prices)
func emaSeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	st := newEMA(period)
	for i, p := range prices {
		st.Update(p)
		out[i] = st.Value()
	}
	return out
}

// emaWeighted последнее значение EMA с нормировкой весов по всей истории.
// На коротких рядах даёт меньший сдвиг к первой цене, чем рекуррентная форма.
func emaWeighted(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return math.NaN()
	}
	decay := 1 - 2.0/(float64(period)+1)
	var num, den, w float64 = 0, 0, 1
	for i := len(prices) - 1; i >= 0; i-- {
		num += w * prices[i]
		den += w
		w *= decay
	}
	return num / den
}
