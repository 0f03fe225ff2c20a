package indicator

import "fmt"

// SMA — простое скользящее среднее. Определено начиная с индекса window-1.
// Окно пересчитывается целиком: на плоской цене среднее получается ровно
// равным цене, без хвостов от накопленной суммы.
func SMA(values []float64, window int) Series {
	out := newSeries(fmt.Sprintf("MA_%d", window), len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		out.Values[i] = mean(values[i-window+1 : i+1])
	}
	out.From = window - 1
	return out
}
