package models

import "time"

// Candle — одна закрытая свеча OHLCV. Последовательности свечей упорядочены
// по Timestamp строго по возрастанию и после загрузки не меняются.
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Closes вытаскивает цены закрытия в том же порядке.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
