package market

import (
	"go.uber.org/fx"

	"signal_bot/internal/modules/market/service"
)

// Module поднимает клиент рыночных данных OKX.
func Module() fx.Option {
	return fx.Module("market",
		fx.Provide(
			service.NewClient,
		),
	)
}
