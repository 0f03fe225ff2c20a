package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"signal_bot/internal/models"
)

type candlesResponse struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

// GetCandles: OKX data row: [ts, o, h, l, c, vol, volCcy, volCcyQuote, confirm].
// Отдаёт до limit свечей от старых к новым. Незакрытую свечу отбрасываем,
// если не включён include_forming.
func (c *Client) GetCandles(ctx context.Context, symbol string, tf models.Timeframe, limit int) ([]models.Candle, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	instID := NormSymbol(symbol)
	fail := func(err error) error {
		return &RetrievalError{Symbol: instID, Timeframe: tf.String(), Err: err}
	}

	bar, err := okxBar(tf)
	if err != nil {
		return nil, fail(err)
	}

	// +1 под незакрытую свечу, которую потом выкинем
	want := limit
	if !c.includeForming {
		want++
	}
	want = min(want, maxCandlesPerRequest)

	u := fmt.Sprintf("%s/api/v5/market/candles?instId=%s&bar=%s&limit=%d",
		c.restURL, url.QueryEscape(instID), url.QueryEscape(bar), want,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fail(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fail(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(errors.Wrap(err, "read body"))
	}
	if resp.StatusCode/100 != 2 {
		return nil, fail(fmt.Errorf("http %d: %s", resp.StatusCode, string(b)))
	}

	var r candlesResponse
	if err := sonic.Unmarshal(b, &r); err != nil {
		return nil, fail(errors.Wrap(err, "decode candles"))
	}
	if r.Code != "0" {
		return nil, fail(fmt.Errorf("okx candles error: code=%s msg=%s", r.Code, r.Msg))
	}

	// OKX отдаёт newest-first → разворачиваем
	out := make([]models.Candle, 0, len(r.Data))
	for i := len(r.Data) - 1; i >= 0; i-- {
		row := r.Data[i]
		if len(row) >= 9 && row[8] == "0" && !c.includeForming {
			continue
		}
		candle, err := parseRow(row)
		if err != nil {
			return nil, fail(err)
		}
		if n := len(out); n > 0 && !candle.Timestamp.After(out[n-1].Timestamp) {
			return nil, fail(fmt.Errorf("candles out of order at %s", candle.Timestamp.Format(time.RFC3339)))
		}
		out = append(out, candle)
	}

	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func parseRow(row []string) (models.Candle, error) {
	if len(row) < 6 {
		return models.Candle{}, fmt.Errorf("short candle row: %v", row)
	}
	tsMs, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return models.Candle{}, errors.Wrapf(err, "candle ts %q", row[0])
	}
	var vals [5]float64
	for i := range vals {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return models.Candle{}, errors.Wrapf(err, "candle field %d %q", i+1, row[i+1])
		}
		vals[i] = v
	}
	if vals[3] <= 0 {
		return models.Candle{}, fmt.Errorf("non-positive close %v at %d", vals[3], tsMs)
	}
	return models.Candle{
		Timestamp: time.UnixMilli(tsMs).UTC(),
		Open:      vals[0],
		High:      vals[1],
		Low:       vals[2],
		Close:     vals[3],
		Volume:    vals[4],
	}, nil
}
