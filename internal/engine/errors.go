package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig    = errors.New("invalid engine config")
	ErrInsufficientData = errors.New("insufficient data")
)

// InsufficientDataError — свечей меньше, чем нужно окнам.
type InsufficientDataError struct {
	Required int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d candles, got %d (short by %d)", e.Required, e.Got, e.Shortfall())
}

func (e *InsufficientDataError) Shortfall() int { return e.Required - e.Got }

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }
