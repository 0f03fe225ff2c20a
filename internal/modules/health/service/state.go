package service

import (
	"sync"
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	streamConnected atomic.Bool
	lastCycleUnix   atomic.Int64 // unix seconds

	mu       sync.Mutex
	lastEval map[string]time.Time // символ -> последний успешный цикл
	lastErr  map[string]string
}

func NewState() *State {
	s := &State{
		startedAt: time.Now(),
		lastEval:  make(map[string]time.Time),
		lastErr:   make(map[string]string),
	}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) SetStreamConnected(v bool) { s.streamConnected.Store(v) }
func (s *State) StreamConnected() bool     { return s.streamConnected.Load() }

// CycleOK — цикл по символу прошёл. Первый успешный цикл делает сервис ready.
func (s *State) CycleOK(symbol string, t time.Time) {
	s.lastCycleUnix.Store(t.Unix())
	s.mu.Lock()
	s.lastEval[symbol] = t
	delete(s.lastErr, symbol)
	s.mu.Unlock()
	s.ready.Store(true)
}

func (s *State) CycleFailed(symbol string, t time.Time, err error) {
	s.lastCycleUnix.Store(t.Unix())
	s.mu.Lock()
	s.lastErr[symbol] = err.Error()
	s.mu.Unlock()
}

func (s *State) LastCycle() time.Time {
	u := s.lastCycleUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

type SymbolStatus struct {
	LastEvalUnix int64  `json:"lastEvalUnix,omitempty"`
	LastError    string `json:"lastError,omitempty"`
}

func (s *State) Symbols() map[string]SymbolStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]SymbolStatus, len(s.lastEval)+len(s.lastErr))
	for sym, t := range s.lastEval {
		st := out[sym]
		st.LastEvalUnix = t.Unix()
		out[sym] = st
	}
	for sym, e := range s.lastErr {
		st := out[sym]
		st.LastError = e
		out[sym] = st
	}
	return out
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
