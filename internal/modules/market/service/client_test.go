package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/logger"
)

func init() {
	logger.Use(zap.NewNop())
}

func newTestClient(srvURL string, includeForming bool) *Client {
	cfg := &config.Config{}
	cfg.Market.RESTURL = srvURL
	cfg.Market.WSURL = "ws" + strings.TrimPrefix(srvURL, "http")
	cfg.Market.RequestTimeout = 2 * time.Second
	cfg.Market.IncludeForming = includeForming
	return NewClient(cfg)
}

// rows newest-first, последняя строка (самая новая) не закрыта
func okxRows(n int, start time.Time) string {
	rows := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		ts := start.Add(time.Duration(i) * time.Hour).UnixMilli()
		confirm := "1"
		if i == n-1 {
			confirm = "0"
		}
		px := 100 + i
		rows = append(rows, fmt.Sprintf(`["%d","%d","%d","%d","%d","12.5","0","0","%s"]`, ts, px, px+1, px-1, px, confirm))
	}
	return `{"code":"0","msg":"","data":[` + strings.Join(rows, ",") + `]}`
}

func TestGetCandles_OldestFirstWithoutForming(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(okxRows(6, start)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, false)
	candles, err := c.GetCandles(context.Background(), "btc/usdt", models.Timeframe1h, 5)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "instId=BTC-USDT")
	assert.Contains(t, gotQuery, "bar=1H")
	assert.Contains(t, gotQuery, "limit=6")

	require.Len(t, candles, 5)
	assert.Equal(t, start, candles[0].Timestamp)
	assert.Equal(t, 100.0, candles[0].Close)
	assert.Equal(t, 104.0, candles[4].Close)
	assert.Equal(t, 12.5, candles[4].Volume)
	for i := 1; i < len(candles); i++ {
		assert.True(t, candles[i].Timestamp.After(candles[i-1].Timestamp))
	}
}

func TestGetCandles_IncludeForming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(okxRows(3, time.Unix(0, 0))))
	}))
	defer srv.Close()

	candles, err := newTestClient(srv.URL, true).GetCandles(context.Background(), "ETH-USDT", models.Timeframe4h, 3)
	require.NoError(t, err)
	require.Len(t, candles, 3)
	assert.Equal(t, 102.0, candles[2].Close)
}

func TestGetCandles_RetrievalErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"50011","msg":"Too Many Requests"}`))
		}},
		{"api error", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":"51001","msg":"Instrument ID does not exist","data":[]}`))
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
		{"bad number", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":"0","data":[["1","x","1","1","1","1","0","0","1"]]}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestClient(srv.URL, false).GetCandles(context.Background(), "BTC/USDT", models.Timeframe1d, 10)
			require.Error(t, err)
			var re *RetrievalError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, "BTC-USDT", re.Symbol)
			assert.Equal(t, "1d", re.Timeframe)
		})
	}
}

func TestGetCandles_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := newTestClient(srv.URL, false).GetCandles(context.Background(), "BTC/USDT", models.Timeframe1h, 10)
	var re *RetrievalError
	assert.ErrorAs(t, err, &re)
}

func TestGetCandles_InvalidLimit(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:0", false).GetCandles(context.Background(), "BTC/USDT", models.Timeframe1h, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestNormSymbol(t *testing.T) {
	assert.Equal(t, "BTC-USDT", NormSymbol("BTC/USDT"))
	assert.Equal(t, "DOGE-USDT", NormSymbol(" doge_usdt "))
	assert.Equal(t, "ETH-USDT", NormSymbol("ETH-USDT"))
}

func TestStreamCandleClose_EmitsOnlyClosed(t *testing.T) {
	upgrader := websocket.Upgrader{}
	subscribed := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		subscribed <- string(msg)

		frames := []string{
			`{"event":"subscribe","arg":{"channel":"candle1H","instId":"BTC-USDT"}}`,
			`{"arg":{"channel":"candle1H","instId":"ETH-USDT"},"data":[["1","1","1","1","1","1","0","0","0"]]}`,
			`{"arg":{"channel":"candle1H","instId":"BTC-USDT"},"data":[["1","1","1","1","1","1","0","0","1"]]}`,
		}
		for _, f := range frames {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(f))
		}
		// держим соединение, пока клиент не уйдёт
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var connected atomic.Bool
	ch, err := newTestClient(srv.URL, false).StreamCandleClose(ctx, []string{"BTC/USDT", "ETH/USDT"}, models.Timeframe1h, connected.Store)
	require.NoError(t, err)

	select {
	case sub := <-subscribed:
		assert.Contains(t, sub, `"op":"subscribe"`)
		assert.Contains(t, sub, `"instId":"ETH-USDT"`)
	case <-time.After(2 * time.Second):
		t.Fatal("no subscribe message")
	}

	select {
	case inst := <-ch:
		assert.Equal(t, "BTC-USDT", inst)
	case <-time.After(2 * time.Second):
		t.Fatal("no candle close event")
	}
	assert.True(t, connected.Load())

	cancel()
	for range ch {
	}
	assert.False(t, connected.Load())
}

func TestStreamCandleClose_NotConnectedUntilSubscribed(t *testing.T) {
	// сервер без websocket: дозвон падает, статус так и не становится true
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		http.Error(w, "no upgrade", http.StatusBadRequest)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var everConnected atomic.Bool
	onConn := func(v bool) {
		if v {
			everConnected.Store(true)
		}
	}
	ch, err := newTestClient(srv.URL, false).StreamCandleClose(ctx, []string{"BTC/USDT"}, models.Timeframe1h, onConn)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return dials.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	for range ch {
	}
	assert.False(t, everConnected.Load())
}
