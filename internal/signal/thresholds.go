package signal

// Thresholds — пороги правил.
type Thresholds struct {
	RSIOversold   float64 `mapstructure:"rsi_oversold"`
	RSIOverbought float64 `mapstructure:"rsi_overbought"`
	VolatilityPct float64 `mapstructure:"volatility_pct"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{RSIOversold: 30, RSIOverbought: 70, VolatilityPct: 2}
}
