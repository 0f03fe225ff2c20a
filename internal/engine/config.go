package engine

import (
	"github.com/pkg/errors"

	"signal_bot/internal/indicator"
	"signal_bot/internal/signal"
)

// Config — окна индикаторов и пороги правил. Передаётся явно в каждый вызов.
type Config struct {
	Windows    indicator.Windows `mapstructure:",squash"`
	Thresholds signal.Thresholds `mapstructure:",squash"`
}

func DefaultConfig() Config {
	return Config{
		Windows:    indicator.DefaultWindows(),
		Thresholds: signal.DefaultThresholds(),
	}
}

func (c Config) Validate() error {
	w := c.Windows
	for _, f := range []struct {
		name string
		v    int
	}{
		{"ma_window", w.MA},
		{"rsi_window", w.RSI},
		{"macd_short", w.MACDShort},
		{"macd_long", w.MACDLong},
		{"macd_signal", w.MACDSignal},
	} {
		if f.v <= 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s must be > 0, got %d", f.name, f.v)
		}
	}
	if w.MACDShort >= w.MACDLong {
		return errors.Wrapf(ErrInvalidConfig, "macd_short (%d) must be < macd_long (%d)", w.MACDShort, w.MACDLong)
	}

	th := c.Thresholds
	if th.RSIOversold < 0 || th.RSIOverbought > 100 || th.RSIOversold >= th.RSIOverbought {
		return errors.Wrapf(ErrInvalidConfig, "rsi thresholds must satisfy 0 <= oversold < overbought <= 100, got %.2f/%.2f",
			th.RSIOversold, th.RSIOverbought)
	}
	if th.VolatilityPct <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "volatility_pct must be > 0, got %.2f", th.VolatilityPct)
	}
	return nil
}

// MinCandles = max(w_ma, w_rsi, long+signal) + 1. MA и RSI правила читают
// только на N-1 (RSI определён с w_rsi), MACD и Signal ещё и на N-2
// (Signal определён с long+signal-1).
func (c Config) MinCandles() int {
	w := c.Windows
	return max(w.MA, w.RSI, w.MACDLong+w.MACDSignal) + 1
}
