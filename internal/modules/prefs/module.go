package prefs

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/modules/prefs/service"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

func NewStore(tm *db.PgTxManager) (service.Store, error) {
	if tm == nil {
		logger.Info("[PREFS] in-memory store")
		return service.NewMemory(), nil
	}
	s, err := service.NewPG(context.Background(), tm)
	if err != nil {
		return nil, err
	}
	logger.Info("[PREFS] postgres store")
	return s, nil
}

func Module() fx.Option {
	return fx.Module("prefs",
		fx.Provide(NewStore),
	)
}
