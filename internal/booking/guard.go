package booking

import (
	"context"
	"sync"
)

// SlotGuard не даёт двум сессиям одновременно отправлять запись на один слот.
// Acquire возвращает ErrSlotBusy, если слот уже захвачен.
type SlotGuard interface {
	Acquire(ctx context.Context, slotID string) (release func(), err error)
}

// LocalGuard блокировка в памяти одного процесса
type LocalGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, slotID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[slotID]; busy {
		return nil, ErrSlotBusy
	}
	g.held[slotID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, slotID)
			g.mu.Unlock()
		})
	}, nil
}
