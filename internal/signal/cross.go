package signal

import (
	"math"

	"signal_bot/internal/indicator"
)

type Direction int

const (
	CrossNone Direction = iota
	CrossUp
	CrossDown
)

func (d Direction) String() string {
	switch d {
	case CrossUp:
		return "up"
	case CrossDown:
		return "down"
	default:
		return "none"
	}
}

// crossing — смена знака разности a-b. Ноль знаком не считается: для
// предыдущей точки с нулевой разностью берётся carry, последний ненулевой знак
// до неё. carry == 0 значит, что ряды с затравки не расходились.
func crossing(prevA, prevB, a, b float64, carry int) Direction {
	ps := sign(prevA - prevB)
	if ps == 0 {
		ps = carry
	}
	return crossFrom(ps, a-b)
}

func crossFrom(prevSign int, d float64) Direction {
	switch {
	case d > 0 && prevSign <= 0:
		return CrossUp
	case d < 0 && prevSign >= 0:
		return CrossDown
	default:
		return CrossNone
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

type Crossing struct {
	Index     int
	Direction Direction
}

// Crossovers проходит весь ряд, включая прогрев, и возвращает все пересечения a и b.
func Crossovers(a, b indicator.Series) []Crossing {
	n := min(a.Len(), b.Len())
	var out []Crossing
	last, seen := 0, false // последний ненулевой знак разности
	for i := 0; i < n; i++ {
		ca, cb := a.Values[i], b.Values[i]
		if math.IsNaN(ca) || math.IsNaN(cb) {
			last, seen = 0, false
			continue
		}
		d := ca - cb
		if seen {
			if dir := crossFrom(last, d); dir != CrossNone {
				out = append(out, Crossing{Index: i, Direction: dir})
			}
		}
		if s := sign(d); s != 0 {
			last = s
		}
		seen = true
	}
	return out
}

// carryBefore — последний ненулевой знак a-b строго до индекса i.
func carryBefore(a, b indicator.Series, i int) int {
	for j := min(i, a.Len(), b.Len()) - 1; j >= 0; j-- {
		va, vb := a.Values[j], b.Values[j]
		if math.IsNaN(va) || math.IsNaN(vb) {
			return 0
		}
		if s := sign(va - vb); s != 0 {
			return s
		}
	}
	return 0
}
