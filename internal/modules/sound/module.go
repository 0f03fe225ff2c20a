package sound

import (
	"go.uber.org/fx"

	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/sound/service"
	"signal_bot/pkg/logger"
)

func NewPlayer(cfg *config.Config) (service.Player, error) {
	if !cfg.Sound.Enabled {
		logger.Info("[SOUND] disabled")
		return service.Nop{}, nil
	}
	p, err := service.NewCommandPlayer(cfg.Sound.Command, cfg.Sound.File)
	if err != nil {
		return nil, err
	}
	logger.Info("[SOUND] %s %s", cfg.Sound.Command, cfg.Sound.File)
	return p, nil
}

func Module() fx.Option {
	return fx.Module("sound",
		fx.Provide(NewPlayer),
	)
}
