// Package engine — чистая функция: свечи + конфиг -> индикаторы + решение.
// Состояния между вызовами нет, вызывать можно параллельно для разных символов.
package engine

import (
	"time"

	"signal_bot/internal/indicator"
	"signal_bot/internal/models"
	"signal_bot/internal/signal"
)

type Result struct {
	// Symbol и Timeframe заполняет вызывающий, Evaluate их не трогает.
	Symbol     string
	Timeframe  models.Timeframe
	LastClose  float64
	LastTime   time.Time
	Indicators indicator.Set
	Decision   models.Decision
}

// Last — последние значения рядов для карточки.
type Last struct {
	MA, RSI, MACD, Signal float64
}

func (r Result) Last() Last {
	var l Last
	l.MA, _ = r.Indicators.MA.Back(0)
	l.RSI, _ = r.Indicators.RSI.Back(0)
	l.MACD, _ = r.Indicators.MACD.Back(0)
	l.Signal, _ = r.Indicators.Signal.Back(0)
	return l
}

func Evaluate(candles []models.Candle, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if need := cfg.MinCandles(); len(candles) < need {
		return Result{}, &InsufficientDataError{Required: need, Got: len(candles)}
	}

	set := indicator.Compute(candles, cfg.Windows)
	decision, err := signal.Decide(set, cfg.Thresholds)
	if err != nil {
		// при N >= MinCandles сюда не попадаем, но молча Hold не отдаём
		return Result{}, err
	}

	last := candles[len(candles)-1]
	return Result{
		LastClose:  last.Close,
		LastTime:   last.Timestamp,
		Indicators: set,
		Decision:   decision,
	}, nil
}
