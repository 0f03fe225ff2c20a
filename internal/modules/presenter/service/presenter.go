package service

import (
	"context"

	"signal_bot/internal/engine"
)

type Presenter interface {
	Present(ctx context.Context, r engine.Result) error
	PresentError(ctx context.Context, symbol string, err error) error
}
