package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/models"
)

func TestLoad_AllTablesHaveSameKeys(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{English, Ukrainian}, c.Languages())

	en := c.tables[English]
	for _, lang := range c.Languages() {
		tb := c.tables[lang]
		for k := range en.Labels {
			assert.Contains(t, tb.Labels, k, "%s labels", lang)
		}
		for k := range en.Signals {
			assert.Contains(t, tb.Signals, k, "%s signals", lang)
		}
		for k := range en.Errors {
			assert.Contains(t, tb.Errors, k, "%s errors", lang)
		}
	}
}

func TestDecision_Localized(t *testing.T) {
	c := MustLoad()
	pct := -2.1
	d := models.Decision{Events: []models.SignalEvent{
		{Kind: models.SignalSellMACDCross},
		{Kind: models.SignalVolatility, Magnitude: &pct},
	}}

	assert.Equal(t, "Sell: MACD crossed below signal; Volatility alert: -2.10%", c.Decision(English, d, "; "))
	assert.Equal(t, "Тримати", c.Decision(Ukrainian, models.Decision{}, "; "))
	assert.Equal(t, "Hold", c.Decision("de", models.Decision{}, "; "))
}

func TestNormalize(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, Ukrainian, c.Normalize("Українська"))
	assert.Equal(t, Ukrainian, c.Normalize("UA"))
	assert.Equal(t, English, c.Normalize("English"))
	assert.Equal(t, English, c.Normalize("klingon"))

	_, ok := c.Resolve("klingon")
	assert.False(t, ok)
	code, ok := c.Resolve(" EN ")
	assert.True(t, ok)
	assert.Equal(t, English, code)

	assert.Equal(t, "Українська", c.Name(Ukrainian))
	assert.Equal(t, "de", c.Name("de"))
}

func TestLabel_FallsBackToKey(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, "Остання ціна", c.Label(Ukrainian, "last_price"))
	assert.Equal(t, "nope", c.Label(Ukrainian, "nope"))
}
