package health

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal_bot/internal/modules/health/service"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestMux_ReadinessFollowsFirstCycle(t *testing.T) {
	state := service.NewState()
	srv := httptest.NewServer(NewMux(state, service.NewMetrics()))
	defer srv.Close()

	code, _ := get(t, srv, "/livez")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	state.CycleFailed("ETH-USDT", time.Now(), errors.New("boom"))
	code, _ = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	state.CycleOK("BTC-USDT", time.Now())
	code, body := get(t, srv, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body)
}

func TestMux_Healthz(t *testing.T) {
	state := service.NewState()
	state.CycleOK("BTC-USDT", time.Unix(1700000000, 0))
	state.CycleFailed("ETH-USDT", time.Unix(1700000100, 0), errors.New("timeout"))

	srv := httptest.NewServer(NewMux(state, service.NewMetrics()))
	defer srv.Close()

	code, body := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, code)

	var resp struct {
		Ready         bool                            `json:"ready"`
		LastCycleUnix int64                           `json:"lastCycleUnix"`
		Symbols       map[string]service.SymbolStatus `json:"symbols"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &resp))
	assert.True(t, resp.Ready)
	assert.Equal(t, int64(1700000100), resp.LastCycleUnix)
	assert.Equal(t, int64(1700000000), resp.Symbols["BTC-USDT"].LastEvalUnix)
	assert.Equal(t, "timeout", resp.Symbols["ETH-USDT"].LastError)
}

func TestMux_Metrics(t *testing.T) {
	m := service.NewMetrics()
	m.ObserveCycle("BTC-USDT", service.OutcomeOK, 120*time.Millisecond)
	m.ObserveCycle("BTC-USDT", service.OutcomeRetrievalError, time.Second)
	m.CountSignal("volatility")

	srv := httptest.NewServer(NewMux(service.NewState(), m))
	defer srv.Close()

	code, body := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `signal_bot_cycles_total{outcome="ok",symbol="BTC-USDT"} 1`)
	assert.Contains(t, body, `signal_bot_cycles_total{outcome="retrieval_error",symbol="BTC-USDT"} 1`)
	assert.Contains(t, body, `signal_bot_signals_total{kind="volatility"} 1`)
	assert.Contains(t, body, `signal_bot_cycle_duration_seconds_count{symbol="BTC-USDT"} 2`)
}
