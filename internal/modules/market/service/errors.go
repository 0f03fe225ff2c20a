package service

import (
	"errors"
	"fmt"
)

var ErrInvalidLimit = errors.New("candle limit must be > 0")

// RetrievalError — любая ошибка биржи/сети. Цикл с такой ошибкой пропускается,
// данные не выдумываем.
type RetrievalError struct {
	Symbol    string
	Timeframe string
	Err       error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s %s candles: %v", e.Symbol, e.Timeframe, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }
