package scheduler

import (
	"context"

	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	health "signal_bot/internal/modules/health/service"
	market "signal_bot/internal/modules/market/service"
	prefsvc "signal_bot/internal/modules/prefs/service"
	presenter "signal_bot/internal/modules/presenter/service"
	"signal_bot/internal/modules/scheduler/service"
	sound "signal_bot/internal/modules/sound/service"
	"signal_bot/pkg/logger"
)

type Params struct {
	fx.In

	Cfg       *config.Config
	Market    *market.Client
	Presenter presenter.Presenter
	Player    sound.Player
	Prefs     prefsvc.Store
	State     *health.State
	Metrics   *health.Metrics
}

func NewScheduler(p Params) *service.Scheduler {
	return service.New(service.Options{
		Symbols:      p.Cfg.Market.Symbols,
		Timeframe:    p.Cfg.Market.TF(),
		Limit:        p.Cfg.Market.Limit,
		Interval:     p.Cfg.Market.Interval,
		Engine:       p.Cfg.Engine,
		SoundDefault: p.Cfg.Sound.Enabled,
	}, p.Market, p.Presenter, p.Player, p.Prefs, p.State, p.Metrics)
}

func Run(lc fx.Lifecycle, cfg *config.Config, s *service.Scheduler, mc *market.Client, state *health.State) {
	var (
		cancel context.CancelFunc
		done   = make(chan struct{})
	)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			if cfg.Market.StreamTrigger {
				closes, err := mc.StreamCandleClose(ctx, s.Symbols(), cfg.Market.TF(), state.SetStreamConnected)
				if err != nil {
					cancel()
					return err
				}
				go s.Forward(ctx, closes)
			}

			go func() {
				defer close(done)
				s.Run(ctx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn("[SCHED] stop timeout, cycles still running")
			}
			return nil
		},
	})
}

func Module() fx.Option {
	return fx.Module("scheduler",
		fx.Provide(NewScheduler),
		fx.Invoke(Run),
	)
}
