package presenter

import (
	"context"
	"os"

	"go.uber.org/fx"

	"signal_bot/internal/i18n"
	"signal_bot/internal/modules/config"
	prefsvc "signal_bot/internal/modules/prefs/service"
	"signal_bot/internal/modules/presenter/service"
	"signal_bot/pkg/logger"
)

type Params struct {
	fx.In

	LC    fx.Lifecycle
	Cfg   *config.Config
	Cat   *i18n.Catalog
	Prefs prefsvc.Store
	Board *service.Board
}

// NewPresenter: есть токен — телеграм, нет — stdout.
func NewPresenter(p Params) (service.Presenter, error) {
	if p.Cfg.Telegram.Token == "" {
		logger.Info("[PRESENT] telegram token is empty, printing to stdout")
		return service.NewStdout(os.Stdout, p.Cat, p.Prefs, p.Cfg.DefaultLanguage, p.Board), nil
	}

	tg, err := service.NewTelegram(service.TelegramConfig{
		Token:        p.Cfg.Telegram.Token,
		ChatID:       p.Cfg.Telegram.ChatID,
		DefaultLang:  p.Cfg.DefaultLanguage,
		SoundDefault: p.Cfg.Sound.Enabled,
	}, p.Cat, p.Prefs, p.Board)
	if err != nil {
		return nil, err
	}

	var cancel context.CancelFunc
	p.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			tg.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			tg.Stop()
			return nil
		},
	})
	return tg, nil
}

func Module() fx.Option {
	return fx.Module("presenter",
		fx.Provide(
			i18n.Load,
			service.NewBoard,
			NewPresenter,
		),
	)
}
