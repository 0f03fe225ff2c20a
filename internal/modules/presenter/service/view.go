package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"signal_bot/internal/engine"
	"signal_bot/internal/i18n"
	"signal_bot/internal/models"
	market "signal_bot/internal/modules/market/service"
)

const decisionSep = "; "

// View — карточка по символу, уже в строках нужного языка.
type View struct {
	Symbol    string
	Timeframe string
	LastPrice string
	MA        string
	RSI       string
	MACD      string
	Signal    string
	Decision  string
	UpdatedAt time.Time
	Alert     bool
}

func BuildView(cat *i18n.Catalog, lang string, r engine.Result) View {
	last := r.Last()
	return View{
		Symbol:    r.Symbol,
		Timeframe: r.Timeframe.String(),
		LastPrice: models.FormatPrice(r.LastClose),
		MA:        models.FormatPrice(last.MA),
		RSI:       models.FormatPrice(last.RSI),
		MACD:      models.FormatPrice(last.MACD),
		Signal:    models.FormatPrice(last.Signal),
		Decision:  cat.Decision(lang, r.Decision, decisionSep),
		UpdatedAt: r.LastTime,
		Alert:     r.Decision.ShouldAlert(),
	}
}

func (v View) Render(cat *i18n.Catalog, lang string) string {
	var b strings.Builder
	mark := "📊"
	if v.Alert {
		mark = "🔔"
	}
	fmt.Fprintf(&b, "%s %s %s\n", mark, v.Symbol, v.Timeframe)
	line := func(key, val string) {
		fmt.Fprintf(&b, "%s: %s\n", cat.Label(lang, key), val)
	}
	line("last_price", v.LastPrice)
	line("moving_average", v.MA)
	line("rsi", v.RSI)
	line("macd", v.MACD)
	line("macd_signal", v.Signal)
	line("decision", v.Decision)
	if !v.UpdatedAt.IsZero() {
		line("updated_at", v.UpdatedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// ErrorKey — ключ таблицы errors для ошибки цикла, "" если класс неизвестен.
func ErrorKey(err error) string {
	var re *market.RetrievalError
	switch {
	case errors.As(err, &re):
		return "retrieval"
	case errors.Is(err, engine.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, engine.ErrInvalidConfig):
		return "invalid_config"
	}
	return ""
}

func RenderError(cat *i18n.Catalog, lang, symbol string, err error) string {
	text := fmt.Sprintf("⚠️ %s %s", symbol, cat.Label(lang, "error"))
	if key := ErrorKey(err); key != "" {
		text += ": " + cat.Error(lang, key)
	}
	var ide *engine.InsufficientDataError
	if errors.As(err, &ide) {
		text += fmt.Sprintf(" (%d/%d)", ide.Got, ide.Required)
	}
	return text
}
