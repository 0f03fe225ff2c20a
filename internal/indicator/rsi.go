package indicator

import "fmt"

const (
	rsiMax     = 100.0
	rsiNeutral = 50.0
)

// RSI по простым скользящим средним приростов и потерь за window шагов.
// Первая дельта есть только на индексе 1, поэтому RSI определён с индекса window.
func RSI(values []float64, window int) Series {
	out := newSeries(fmt.Sprintf("RSI_%d", window), len(values))
	if window <= 0 || len(values) <= window {
		return out
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			gains[i] = d
		} else if d < 0 {
			losses[i] = -d
		}
	}

	for i := window; i < len(values); i++ {
		g := mean(gains[i-window+1 : i+1])
		l := mean(losses[i-window+1 : i+1])
		out.Values[i] = rsiFromMeans(g, l)
	}
	out.From = window
	return out
}

// rsiFromMeans: без потерь RS бесконечен, отдаём 100; на плоской цене 0/0 -> 50.
func rsiFromMeans(gain, loss float64) float64 {
	switch {
	case loss == 0 && gain == 0:
		return rsiNeutral
	case loss == 0:
		return rsiMax
	}
	rs := gain / loss
	return rsiMax - rsiMax/(1+rs)
}
