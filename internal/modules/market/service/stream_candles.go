package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

const (
	wsPingEvery   = 20 * time.Second
	wsRetryPause  = time.Second
	wsMaxRetryGap = 30 * time.Second
)

type candleFrame struct {
	Arg struct {
		Channel string `json:"channel"`
		InstID  string `json:"instId"`
	} `json:"arg"`
	Data [][]string `json:"data"`
}

// StreamCandleClose — один WebSocket на таймфрейм с пачкой инструментов.
// Шлёт instId каждый раз, когда по нему закрылась свеча (confirm == "1").
// Канал закрывается при отмене ctx. onConn (может быть nil) получает true
// после успешной подписки и false, когда соединение потеряно.
func (c *Client) StreamCandleClose(ctx context.Context, symbols []string, tf models.Timeframe, onConn func(bool)) (<-chan string, error) {
	bar, err := okxBar(tf)
	if err != nil {
		return nil, err
	}
	channel := "candle" + bar // "1H" -> "candle1H"

	args := make([]map[string]string, 0, len(symbols))
	for _, s := range symbols {
		args = append(args, map[string]string{"channel": channel, "instId": NormSymbol(s)})
	}

	if onConn == nil {
		onConn = func(bool) {}
	}

	out := make(chan string, len(symbols))
	go func() {
		defer close(out)
		if len(args) == 0 {
			return
		}

		retry := 0
		for {
			if ctx.Err() != nil {
				return
			}
			logger.Info("[MARKET] ws connect %s %d symbols", channel, len(args))
			err := c.streamOnce(ctx, channel, args, out, onConn)
			onConn(false)
			if err != nil {
				logger.Error("[MARKET] ws %s: %v", channel, err)
			}

			retry++
			pause := min(time.Duration(retry)*wsRetryPause, wsMaxRetryGap)
			select {
			case <-ctx.Done():
				return
			case <-time.After(pause):
			}
		}
	}()
	return out, nil
}

func (c *Client) streamOnce(ctx context.Context, channel string, args []map[string]string, out chan<- string, onConn func(bool)) error {
	conn, _, err := c.wsDialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"op": "subscribe", "args": args}); err != nil {
		return err
	}
	onConn(true)

	// keepalive ping каждые 20s — иначе OKX рвёт соединение
	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		t := time.NewTicker(wsPingEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-stopPing:
				return
			case <-t.C:
				_ = conn.WriteMessage(websocket.TextMessage, []byte("ping"))
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if string(msg) == "pong" {
			continue
		}

		var frame candleFrame
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			continue
		}
		if frame.Arg.Channel != channel || len(frame.Data) == 0 {
			continue
		}
		row := frame.Data[0]
		if len(row) < 9 || row[8] != "1" {
			continue // ждём закрытую свечу
		}

		select {
		case out <- frame.Arg.InstID:
		case <-ctx.Done():
			return nil
		}
	}
}
