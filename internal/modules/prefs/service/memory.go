package service

import (
	"context"
	"sync"
)

type Memory struct {
	mu   sync.RWMutex
	data map[int64]Prefs
}

func NewMemory() *Memory {
	return &Memory{data: make(map[int64]Prefs)}
}

func (m *Memory) Get(_ context.Context, chatID int64) (Prefs, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.data[chatID]
	if !ok {
		return Prefs{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) Save(_ context.Context, p Prefs) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[p.ChatID] = p
	return nil
}
