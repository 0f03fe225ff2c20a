// Package signal превращает последние точки индикаторов в набор событий и
// сводит их в одно решение.
package signal

import (
	"math"

	"signal_bot/internal/indicator"
	"signal_bot/internal/models"
)

type rule struct {
	kind models.SignalKind
	eval func(s Snapshot, th Thresholds) (bool, *float64)
}

// Порядок в слайсе = порядок событий в решении.
var rules = []rule{
	{models.SignalBuyTrendMomentum, buyTrendMomentum},
	{models.SignalSellTrendMomentum, sellTrendMomentum},
	{models.SignalBuyMACDCross, buyMACDCross},
	{models.SignalSellMACDCross, sellMACDCross},
	{models.SignalVolatility, volatility},
}

func buyTrendMomentum(s Snapshot, th Thresholds) (bool, *float64) {
	return s.Close > s.MA && s.RSI < th.RSIOversold, nil
}

func sellTrendMomentum(s Snapshot, th Thresholds) (bool, *float64) {
	return s.Close < s.MA && s.RSI > th.RSIOverbought, nil
}

func buyMACDCross(s Snapshot, _ Thresholds) (bool, *float64) {
	return crossing(s.PrevMACD, s.PrevSignal, s.MACD, s.Signal, s.CrossCarry) == CrossUp, nil
}

func sellMACDCross(s Snapshot, _ Thresholds) (bool, *float64) {
	return crossing(s.PrevMACD, s.PrevSignal, s.MACD, s.Signal, s.CrossCarry) == CrossDown, nil
}

// volatility: порог включительный, 100 -> 102 это ровно +2.00% и уже тревога.
func volatility(s Snapshot, th Thresholds) (bool, *float64) {
	if s.PrevClose == 0 {
		return false, nil
	}
	pct := (s.Close - s.PrevClose) / s.PrevClose * 100
	if math.Abs(pct) < th.VolatilityPct {
		return false, nil
	}
	return true, &pct
}

// Synthesize прогоняет все правила независимо; может сработать несколько сразу.
func Synthesize(s Snapshot, th Thresholds) []models.SignalEvent {
	var events []models.SignalEvent
	for _, r := range rules {
		if ok, mag := r.eval(s, th); ok {
			events = append(events, models.SignalEvent{Kind: r.kind, Magnitude: mag})
		}
	}
	return events
}

// Aggregate: ни одного события — Hold.
func Aggregate(events []models.SignalEvent) models.Decision {
	if len(events) == 0 {
		return models.Decision{}
	}
	out := make([]models.SignalEvent, len(events))
	copy(out, events)
	return models.Decision{Events: out}
}

func Decide(set indicator.Set, th Thresholds) (models.Decision, error) {
	snap, err := SnapshotOf(set)
	if err != nil {
		return models.Decision{}, err
	}
	return Aggregate(Synthesize(snap, th)), nil
}
