package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Side как в старом раннере: "BUY"/"SELL" или пустая строка.
type Side string

const (
	SideNone Side = ""
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// SignalKind — какое именно правило сработало.
type SignalKind string

const (
	SignalBuyTrendMomentum  SignalKind = "buy_trend_momentum"
	SignalSellTrendMomentum SignalKind = "sell_trend_momentum"
	SignalBuyMACDCross      SignalKind = "buy_macd_cross"
	SignalSellMACDCross     SignalKind = "sell_macd_cross"
	SignalVolatility        SignalKind = "volatility"
)

// Side сигнала; волатильность ни к покупке, ни к продаже не относится.
func (k SignalKind) Side() Side {
	switch k {
	case SignalBuyTrendMomentum, SignalBuyMACDCross:
		return SideBuy
	case SignalSellTrendMomentum, SignalSellMACDCross:
		return SideSell
	default:
		return SideNone
	}
}

var signalText = map[SignalKind]string{
	SignalBuyTrendMomentum:  "Buy: price above MA, RSI oversold",
	SignalSellTrendMomentum: "Sell: price below MA, RSI overbought",
	SignalBuyMACDCross:      "Buy: MACD crossed above signal",
	SignalSellMACDCross:     "Sell: MACD crossed below signal",
	SignalVolatility:        "Volatility alert",
}

// SignalEvent — одно сработавшее условие. Magnitude есть только у тех
// правил, где она осмысленна (процент изменения цены).
type SignalEvent struct {
	Kind      SignalKind
	Magnitude *float64
}

func (e SignalEvent) Describe() string {
	text, ok := signalText[e.Kind]
	if !ok {
		text = string(e.Kind)
	}
	if e.Magnitude != nil {
		return text + ": " + FormatPercent(*e.Magnitude)
	}
	return text
}

const HoldText = "Hold"

// Decision — либо Hold (ни одного события), либо упорядоченный список событий.
type Decision struct {
	Events []SignalEvent
}

func (d Decision) Hold() bool { return len(d.Events) == 0 }

// ShouldAlert — хук для звука/уведомления: есть хотя бы один SELL.
func (d Decision) ShouldAlert() bool {
	for _, e := range d.Events {
		if e.Kind.Side() == SideSell {
			return true
		}
	}
	return false
}

func (d Decision) Kinds() []SignalKind {
	out := make([]SignalKind, 0, len(d.Events))
	for _, e := range d.Events {
		out = append(out, e.Kind)
	}
	return out
}

// String склеивает описания событий через sep; пустое решение — "Hold".
func (d Decision) String(sep string) string {
	if d.Hold() {
		return HoldText
	}
	parts := make([]string, 0, len(d.Events))
	for _, e := range d.Events {
		parts = append(parts, e.Describe())
	}
	return strings.Join(parts, sep)
}

// FormatPercent: 2 -> "+2.00%", -2.1 -> "-2.10%".
func FormatPercent(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// FormatPrice — для дешёвых монет (DOGE и т.п.) двух знаков мало.
func FormatPrice(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.Abs().LessThan(decimal.NewFromInt(1)) {
		return d.StringFixed(6)
	}
	return d.StringFixed(2)
}
