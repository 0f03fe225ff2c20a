package indicator

type emaState struct {
	alpha  float64
	value  float64
	seeded bool
}

func newEMA(span int) emaState {
	if span <= 1 {
		span = 1
	}
	return emaState{alpha: 2.0 / (float64(span) + 1)}
}

// Update: первое значение — затравка, дальше обычная рекурсия без поправки смещения.
// Форма value += alpha*(price-value) не даёт дрейфа на плоской цене.
func (e *emaState) Update(price float64) float64 {
	if !e.seeded {
		e.value = price
		e.seeded = true
		return e.value
	}
	e.value += e.alpha * (price - e.value)
	return e.value
}

func (e *emaState) Value() float64 { return e.value }

// EMA по всему ряду начиная с индекса 0.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	st := newEMA(span)
	for i, v := range values {
		out[i] = st.Update(v)
	}
	return out
}
