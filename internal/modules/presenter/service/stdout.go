package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"signal_bot/internal/engine"
	"signal_bot/internal/i18n"
	prefsvc "signal_bot/internal/modules/prefs/service"
)

// Stdout — презентер без телеграма. Язык берётся из настроек хоста.
type Stdout struct {
	w       io.Writer
	cat     *i18n.Catalog
	prefs   prefsvc.Store
	defLang string
	board   *Board

	mu sync.Mutex
}

func NewStdout(w io.Writer, cat *i18n.Catalog, prefs prefsvc.Store, defLang string, board *Board) *Stdout {
	return &Stdout{w: w, cat: cat, prefs: prefs, defLang: defLang, board: board}
}

func (s *Stdout) lang(ctx context.Context) string {
	p, err := prefsvc.GetOr(ctx, s.prefs, prefsvc.HostChatID, prefsvc.Prefs{Language: s.defLang})
	if err != nil {
		return s.cat.Normalize(s.defLang)
	}
	return s.cat.Normalize(p.Language)
}

func (s *Stdout) Present(ctx context.Context, r engine.Result) error {
	s.board.Put(r)
	lang := s.lang(ctx)
	text := BuildView(s.cat, lang, r).Render(s.cat, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, text+"\n")
	return err
}

func (s *Stdout) PresentError(ctx context.Context, symbol string, err error) error {
	text := RenderError(s.cat, s.lang(ctx), symbol, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, werr := fmt.Fprintln(s.w, text)
	return werr
}
