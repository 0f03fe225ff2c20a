package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"signal_bot/internal/engine"
	"signal_bot/internal/models"
	health "signal_bot/internal/modules/health/service"
	market "signal_bot/internal/modules/market/service"
	prefsvc "signal_bot/internal/modules/prefs/service"
	presenter "signal_bot/internal/modules/presenter/service"
	sound "signal_bot/internal/modules/sound/service"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"
)

type CandleFetcher interface {
	GetCandles(ctx context.Context, symbol string, tf models.Timeframe, limit int) ([]models.Candle, error)
}

type Options struct {
	Symbols   []string
	Timeframe models.Timeframe
	Limit     int
	Interval  time.Duration
	Engine    engine.Config

	// звук до первой команды /sound
	SoundDefault bool
}

// Scheduler — по горутине на символ: цикл сразу, потом по тикеру и по триггерам.
// Триггеры схлопываются в канал на 1 слот, в полёте не больше одного цикла на символ.
type Scheduler struct {
	opt       Options
	market    CandleFetcher
	presenter presenter.Presenter
	player    sound.Player
	prefs     prefsvc.Store
	state     *health.State
	metrics   *health.Metrics

	symbols  []string
	triggers map[string]chan struct{}
	now      func() time.Time
}

func New(
	opt Options,
	market CandleFetcher,
	p presenter.Presenter,
	player sound.Player,
	prefs prefsvc.Store,
	state *health.State,
	metrics *health.Metrics,
) *Scheduler {
	s := &Scheduler{
		opt:       opt,
		market:    market,
		presenter: p,
		player:    player,
		prefs:     prefs,
		state:     state,
		metrics:   metrics,
		triggers:  make(map[string]chan struct{}, len(opt.Symbols)),
		now:       time.Now,
	}
	for _, raw := range opt.Symbols {
		sym := normSymbol(raw)
		if _, dup := s.triggers[sym]; dup {
			continue
		}
		s.symbols = append(s.symbols, sym)
		s.triggers[sym] = make(chan struct{}, 1)
	}
	return s
}

func (s *Scheduler) Symbols() []string { return s.symbols }

// Trigger просит внеочередной цикл. Если один уже ждёт, новый не копится.
func (s *Scheduler) Trigger(symbol string) bool {
	ch, ok := s.triggers[normSymbol(symbol)]
	if !ok {
		return false
	}
	select {
	case ch <- struct{}{}:
	default:
	}
	return true
}

// Forward — закрытия свечей из стрима в триггеры.
func (s *Scheduler) Forward(ctx context.Context, closes <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case inst, ok := <-closes:
			if !ok {
				return
			}
			if !s.Trigger(inst) {
				logger.Warn("[SCHED] candle close for unknown symbol %s", inst)
			}
		}
	}
}

// Run блокируется до отмены ctx и ждёт, пока доработают текущие циклы.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, sym := range s.symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			s.loop(ctx, sym)
		}(sym)
	}
	logger.Info("[SCHED] started %d symbols, tf=%s every %s", len(s.symbols), s.opt.Timeframe, s.opt.Interval)
	wg.Wait()
	logger.Info("[SCHED] stopped")
}

func (s *Scheduler) loop(ctx context.Context, sym string) {
	t := time.NewTicker(s.opt.Interval)
	defer t.Stop()

	for {
		// цикл не прерываем посередине, отмена проверяется между циклами
		_, _ = s.RunCycle(context.WithoutCancel(ctx), sym)

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		case <-s.triggers[sym]:
		}
	}
}

// RunCycle: свечи -> Evaluate -> презентер -> звук -> метрики.
func (s *Scheduler) RunCycle(ctx context.Context, sym string) (res engine.Result, err error) {
	started := s.now()
	span, ctx := tracing.StartSpan(ctx, "scheduler.cycle", map[string]string{
		"symbol":    sym,
		"timeframe": s.opt.Timeframe.String(),
	})
	defer func() {
		tracing.Fail(span, err)
		span.Finish()
		s.metrics.ObserveCycle(sym, Outcome(err), s.now().Sub(started))
		if err != nil {
			s.state.CycleFailed(sym, s.now(), err)
		} else {
			s.state.CycleOK(sym, s.now())
		}
	}()

	candles, err := s.market.GetCandles(ctx, sym, s.opt.Timeframe, s.opt.Limit)
	if err != nil {
		s.fail(ctx, sym, err)
		return engine.Result{}, err
	}

	res, err = engine.Evaluate(candles, s.opt.Engine)
	if err != nil {
		s.fail(ctx, sym, err)
		return engine.Result{}, err
	}
	res.Symbol = sym
	res.Timeframe = s.opt.Timeframe

	for _, k := range res.Decision.Kinds() {
		s.metrics.CountSignal(string(k))
	}
	logger.Info("[SCHED] %s %s close=%s -> %s", sym, s.opt.Timeframe, models.FormatPrice(res.LastClose), res.Decision.String("; "))

	if perr := s.presenter.Present(ctx, res); perr != nil {
		// показать не вышло, но расчёт валиден
		logger.Error("[SCHED] present %s: %v", sym, perr)
	}

	if res.Decision.ShouldAlert() {
		s.alert(ctx, sym)
	}
	return res, nil
}

func (s *Scheduler) fail(ctx context.Context, sym string, err error) {
	logger.Error("[SCHED] %s cycle failed: %v", sym, err)
	if perr := s.presenter.PresentError(ctx, sym, err); perr != nil {
		logger.Error("[SCHED] present error %s: %v", sym, perr)
	}
}

func (s *Scheduler) alert(ctx context.Context, sym string) {
	p, err := prefsvc.GetOr(ctx, s.prefs, prefsvc.HostChatID, prefsvc.Prefs{SoundEnabled: s.opt.SoundDefault})
	if err != nil {
		logger.Error("[SCHED] prefs: %v", err)
		return
	}
	if !p.SoundEnabled {
		return
	}
	if err := s.player.Play(ctx); err != nil {
		logger.Error("[SCHED] sound for %s: %v", sym, err)
	}
}

// Outcome — метка исхода цикла для метрик.
func Outcome(err error) string {
	if err == nil {
		return health.OutcomeOK
	}
	var re *market.RetrievalError
	switch {
	case errors.As(err, &re):
		return health.OutcomeRetrievalError
	case errors.Is(err, engine.ErrInsufficientData):
		return health.OutcomeInsufficientData
	case errors.Is(err, engine.ErrInvalidConfig):
		return health.OutcomeInvalidConfig
	}
	return health.OutcomeInternal
}

func normSymbol(raw string) string { return market.NormSymbol(raw) }
