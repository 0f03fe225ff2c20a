package signal

import (
	"errors"
	"fmt"

	"signal_bot/internal/indicator"
)

var ErrUndefined = errors.New("indicator undefined at evaluation point")

// Snapshot — всё, что правила видят: две последние точки каждого ряда.
type Snapshot struct {
	Close, PrevClose   float64
	MA                 float64
	RSI                float64
	MACD, PrevMACD     float64
	Signal, PrevSignal float64

	// CrossCarry — знак MACD-Signal до N-2, если на N-2 они совпали.
	CrossCarry int
}

// SnapshotOf берёт индексы N-1 и N-2; любой неопределённый ряд — ошибка.
func SnapshotOf(set indicator.Set) (Snapshot, error) {
	n := len(set.Close)
	if n < 2 {
		return Snapshot{}, fmt.Errorf("%w: need 2 closes, got %d", ErrUndefined, n)
	}

	var s Snapshot
	s.Close, s.PrevClose = set.Close[n-1], set.Close[n-2]

	pick := []struct {
		series indicator.Series
		back   int
		dst    *float64
	}{
		{set.MA, 0, &s.MA},
		{set.RSI, 0, &s.RSI},
		{set.MACD, 0, &s.MACD},
		{set.MACD, 1, &s.PrevMACD},
		{set.Signal, 0, &s.Signal},
		{set.Signal, 1, &s.PrevSignal},
	}
	for _, p := range pick {
		v, ok := p.series.Back(p.back)
		if !ok {
			return Snapshot{}, fmt.Errorf("%w: %s at N-%d", ErrUndefined, p.series.Name, p.back+1)
		}
		*p.dst = v
	}
	s.CrossCarry = carryBefore(set.MACD, set.Signal, n-2)
	return s, nil
}
