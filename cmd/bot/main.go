package main

import (
	"context"
	"log"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/market"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/modules/prefs"
	"signal_bot/internal/modules/presenter"
	"signal_bot/internal/modules/scheduler"
	"signal_bot/internal/modules/sound"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

// setupObservability: уровень логов и имя сервиса из конфига, jaeger если задан агент.
func setupObservability(lc fx.Lifecycle, cfg *config.Config) error {
	logger.SetServiceName(cfg.Service.Name)
	tracing.SetServiceName(cfg.Service.Name)
	if _, err := logger.Init(cfg.Service.LogLevel); err != nil {
		return err
	}

	_, closeTracer, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			_ = logger.L().Sync()
			return nil
		},
	})
	return nil
}

func main() {
	if _, err := logger.Init("info"); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.L()}
		}),
		config.Module(),
		fx.Invoke(setupObservability),
		health.Module(),
		market.Module(),
		postgres.Module(),
		prefs.Module(),
		presenter.Module(),
		sound.Module(),
		scheduler.Module(),
	)
	app.Run()
}
