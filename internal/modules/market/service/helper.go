package service

import (
	"fmt"
	"strings"

	"signal_bot/internal/models"
)

// okx отдаёт не больше 300 свечей за запрос
const maxCandlesPerRequest = 300

func okxBar(tf models.Timeframe) (string, error) {
	switch tf {
	case models.Timeframe1h:
		return "1H", nil
	case models.Timeframe4h:
		return "4H", nil
	case models.Timeframe1d:
		return "1D", nil
	}
	return "", fmt.Errorf("unsupported timeframe for OKX bar: %q", tf)
}

// NormSymbol: "btc/usdt" -> "BTC-USDT" (instId OKX).
func NormSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("/", "-", "_", "-").Replace(s)
	return s
}
