package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
)

func candlesFrom(closes ...float64) []models.Candle {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Candle, len(closes))
	for i, c := range closes {
		out[i] = models.Candle{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      c, High: c, Low: c, Close: c,
			Volume: 10,
		}
	}
	return out
}

func flat(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func TestMinCandles_Defaults(t *testing.T) {
	assert.Equal(t, 36, DefaultConfig().MinCandles())
}

func TestEvaluate_ExactMinimum(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		need   int
	}{
		{name: "defaults, macd longest", mutate: func(c *Config) {}, need: 36},
		{name: "rsi longest", mutate: func(c *Config) { c.Windows.RSI = 40 }, need: 41},
		{name: "ma longest", mutate: func(c *Config) { c.Windows.MA = 50 }, need: 51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.Equal(t, tt.need, cfg.MinCandles())

			res, err := Evaluate(candlesFrom(flat(tt.need, 100)...), cfg)
			require.NoError(t, err)
			assert.Equal(t, 100.0, res.LastClose)
			assert.True(t, res.Decision.Hold())

			_, err = Evaluate(candlesFrom(flat(tt.need-1, 100)...), cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInsufficientData))

			var ide *InsufficientDataError
			require.ErrorAs(t, err, &ide)
			assert.Equal(t, tt.need, ide.Required)
			assert.Equal(t, tt.need-1, ide.Got)
			assert.Equal(t, 1, ide.Shortfall())
		})
	}
}

func TestEvaluate_FlatPriceHolds(t *testing.T) {
	res, err := Evaluate(candlesFrom(flat(40, 100)...), DefaultConfig())
	require.NoError(t, err)

	last := res.Last()
	assert.Equal(t, 100.0, last.MA)
	assert.Equal(t, 50.0, last.RSI)
	assert.Equal(t, 0.0, last.MACD)
	assert.True(t, res.Decision.Hold())
	assert.Equal(t, "Hold", res.Decision.String("; "))
}

func TestEvaluate_Idempotent(t *testing.T) {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 100 + float64(i%7)*1.5 - float64(i%3)
	}
	candles := candlesFrom(closes...)

	a, err := Evaluate(candles, DefaultConfig())
	require.NoError(t, err)
	b, err := Evaluate(candles, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a.Decision, b.Decision)
	assert.Equal(t, a.Last(), b.Last())
}

func TestEvaluate_SellAlert(t *testing.T) {
	// долгий рост, потом обвал последней свечи на 5%
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	closes = append(closes, closes[len(closes)-1]*0.95)

	res, err := Evaluate(candlesFrom(closes...), DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, res.Decision.Kinds(), models.SignalVolatility)
}

func TestEvaluate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero ma", func(c *Config) { c.Windows.MA = 0 }},
		{"negative rsi", func(c *Config) { c.Windows.RSI = -1 }},
		{"short >= long", func(c *Config) { c.Windows.MACDShort = 26 }},
		{"rsi thresholds swapped", func(c *Config) { c.Thresholds.RSIOversold = 80 }},
		{"zero volatility", func(c *Config) { c.Thresholds.VolatilityPct = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Evaluate(candlesFrom(flat(60, 100)...), cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestEvaluate_ShouldAlertOnSell(t *testing.T) {
	// рост, затем разворот вниз: MACD пересекает сигнальную линию сверху вниз
	var closes []float64
	for i := 0; i < 50; i++ {
		closes = append(closes, 100+float64(i))
	}
	var res Result
	var err error
	for drop := 1; drop < 30; drop++ {
		closes = append(closes, closes[len(closes)-1]-0.5)
		res, err = Evaluate(candlesFrom(closes...), DefaultConfig())
		require.NoError(t, err)
		if res.Decision.ShouldAlert() {
			break
		}
	}
	require.True(t, res.Decision.ShouldAlert())
	assert.Contains(t, res.Decision.Kinds(), models.SignalSellMACDCross)
}
