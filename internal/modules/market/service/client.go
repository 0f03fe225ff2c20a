package service

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"signal_bot/internal/modules/config"
)

type Client struct {
	http     *http.Client
	wsDialer *websocket.Dialer

	restURL        string
	wsURL          string
	includeForming bool
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:           &http.Client{Timeout: cfg.Market.RequestTimeout},
		wsDialer:       &websocket.Dialer{HandshakeTimeout: cfg.Market.RequestTimeout},
		restURL:        strings.TrimRight(cfg.Market.RESTURL, "/"),
		wsURL:          cfg.Market.WSURL,
		includeForming: cfg.Market.IncludeForming,
	}
}
