package models

import (
	"fmt"
	"strings"
	"time"
)

type Timeframe string

const (
	Timeframe1h Timeframe = "1h"
	Timeframe4h Timeframe = "4h"
	Timeframe1d Timeframe = "1d"
)

var Timeframes = []Timeframe{Timeframe1h, Timeframe4h, Timeframe1d}

func ParseTimeframe(raw string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1h", "60m":
		return Timeframe1h, nil
	case "4h":
		return Timeframe4h, nil
	case "1d", "24h":
		return Timeframe1d, nil
	}
	return "", fmt.Errorf("unsupported timeframe %q (want 1h, 4h or 1d)", raw)
}

func (tf Timeframe) Duration() time.Duration {
	switch tf {
	case Timeframe1h:
		return time.Hour
	case Timeframe4h:
		return 4 * time.Hour
	case Timeframe1d:
		return 24 * time.Hour
	default:
		return 0
	}
}

func (tf Timeframe) String() string { return string(tf) }
