package indicator

import "signal_bot/internal/models"

// Windows — окна индикаторов.
type Windows struct {
	MA         int `mapstructure:"ma_window"`
	RSI        int `mapstructure:"rsi_window"`
	MACDShort  int `mapstructure:"macd_short"`
	MACDLong   int `mapstructure:"macd_long"`
	MACDSignal int `mapstructure:"macd_signal"`
}

func DefaultWindows() Windows {
	return Windows{MA: 20, RSI: 14, MACDShort: 12, MACDLong: 26, MACDSignal: 9}
}

// Set — все ряды по одной последовательности свечей.
type Set struct {
	Close  []float64
	MA     Series
	RSI    Series
	MACD   Series
	Signal Series
}

func Compute(candles []models.Candle, w Windows) Set {
	closes := models.Closes(candles)
	macd, sig := MACD(closes, w.MACDShort, w.MACDLong, w.MACDSignal)
	return Set{
		Close:  closes,
		MA:     SMA(closes, w.MA),
		RSI:    RSI(closes, w.RSI),
		MACD:   macd,
		Signal: sig,
	}
}
