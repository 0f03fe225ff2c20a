package service

import (
	"sync"

	"signal_bot/internal/engine"
)

// Board — последний успешно показанный результат по каждому символу.
// Ошибка цикла его не трогает.
type Board struct {
	mu    sync.RWMutex
	last  map[string]engine.Result
	order []string
}

func NewBoard() *Board {
	return &Board{last: make(map[string]engine.Result)}
}

func (b *Board) Put(r engine.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.last[r.Symbol]; !ok {
		b.order = append(b.order, r.Symbol)
	}
	b.last[r.Symbol] = r
}

func (b *Board) Get(symbol string) (engine.Result, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.last[symbol]
	return r, ok
}

// All — в порядке первого появления.
func (b *Board) All() []engine.Result {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]engine.Result, 0, len(b.order))
	for _, s := range b.order {
		out = append(out, b.last[s])
	}
	return out
}
