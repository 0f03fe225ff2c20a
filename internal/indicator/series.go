// Package indicator считает производные ряды по ценам закрытия: MA, RSI,
// MACD и его сигнальную линию. Все ряды выровнены по индексам со свечами.
package indicator

import "math"

// Series — числовой ряд той же длины, что и входные свечи.
// До From значения не определены (NaN или прогрев EMA) и наружу не отдаются.
type Series struct {
	Name   string
	Values []float64
	From   int
}

func newSeries(name string, n int) Series {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.NaN()
	}
	return Series{Name: name, Values: vals, From: n}
}

func (s Series) Len() int { return len(s.Values) }

// At возвращает значение и признак того, что оно определено.
func (s Series) At(i int) (float64, bool) {
	if i < s.From || i < 0 || i >= len(s.Values) {
		return 0, false
	}
	v := s.Values[i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Back(0) — последняя точка, Back(1) — предпоследняя.
func (s Series) Back(k int) (float64, bool) {
	return s.At(len(s.Values) - 1 - k)
}

// Defined — сколько точек определено.
func (s Series) Defined() int {
	n := 0
	for i := range s.Values {
		if _, ok := s.At(i); ok {
			n++
		}
	}
	return n
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
