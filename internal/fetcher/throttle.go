package fetcher

import (
	"context"
	"sync"
	"time"
)

// Ledger отслеживает время последнего запроса по паре ключ-эндпоинт и
// выдерживает минимальный интервал между запросами. Состояние живет в
// памяти процесса и защищено мьютексом.
type Ledger struct {
	mu   sync.Mutex
	last map[string]time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewLedger() *Ledger {
	return &Ledger{
		last:  make(map[string]time.Time),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// Wait блокирует вызов до момента, когда с последнего запроса по ключу
// пройдет не меньше spacing. Слот резервируется до ожидания, поэтому
// конкурирующие вызовы выстраиваются в очередь, а не уходят разом.
func (l *Ledger) Wait(ctx context.Context, key string, spacing time.Duration) error {
	if spacing <= 0 {
		return nil
	}

	l.mu.Lock()
	now := l.now()
	slot := now
	if prev, ok := l.last[key]; ok {
		if next := prev.Add(spacing); next.After(slot) {
			slot = next
		}
	}
	l.last[key] = slot
	l.mu.Unlock()

	if wait := slot.Sub(now); wait > 0 {
		return l.sleep(ctx, wait)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
