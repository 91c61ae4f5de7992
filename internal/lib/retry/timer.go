package retry

import (
	"sync"
	"time"
)

// ImmediateTimer реализует backoff.Timer, который срабатывает сразу и
// запоминает запрошенные задержки. Используется в тестах вместо реального ожидания.
type ImmediateTimer struct {
	mu     sync.Mutex
	delays []time.Duration
	c      chan time.Time
}

// NewImmediateTimer создаёт ImmediateTimer.
func NewImmediateTimer() *ImmediateTimer {
	return &ImmediateTimer{c: make(chan time.Time, 1)}
}

// Start записывает задержку d и сразу срабатывает.
func (t *ImmediateTimer) Start(d time.Duration) {
	t.mu.Lock()
	t.delays = append(t.delays, d)
	t.mu.Unlock()

	select {
	case t.c <- time.Now():
	default:
	}
}

// Stop ничего не делает.
func (t *ImmediateTimer) Stop() {}

// C возвращает канал срабатывания.
func (t *ImmediateTimer) C() <-chan time.Time {
	return t.c
}

// Delays возвращает копию запрошенных задержек.
func (t *ImmediateTimer) Delays() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.delays...)
}
