package service

import (
	"context"
	"sync"
	"time"

	stateservice "signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"
)

const DefaultWindow = 48 * time.Hour

// Tracker подавляет повторные сигналы по символу на фиксированное окно.
// Просроченные записи удаляются лениво, при чтении.
type Tracker struct {
	window time.Duration
	now    func() time.Time
	store  stateservice.Store

	mu          sync.Mutex
	cooldownTil map[string]time.Time // symbol -> fired_at
}

func NewTracker(window time.Duration, store stateservice.Store) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{
		window:      window,
		now:         time.Now,
		store:       store,
		cooldownTil: make(map[string]time.Time),
	}
}

// WithClock подменяет часы (тесты).
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Restore поднимает активные окна из хранилища.
func (t *Tracker) Restore(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	var snap map[string]time.Time
	ok, err := t.store.Load(ctx, stateservice.KeyCooldown, &snap)
	if err != nil || !ok {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for sym, firedAt := range snap {
		if now.After(firedAt.Add(t.window)) {
			continue
		}
		t.cooldownTil[sym] = firedAt
	}
	return nil
}

// IsCoolingDown true пока now <= fired_at + window.
func (t *Tracker) IsCoolingDown(symbol string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	firedAt, ok := t.cooldownTil[symbol]
	if !ok {
		return false
	}
	if t.now().After(firedAt.Add(t.window)) {
		delete(t.cooldownTil, symbol)
		t.persistLocked()
		return false
	}
	return true
}

// Start открывает (или перезапускает) окно с текущего момента.
func (t *Tracker) Start(symbol string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cooldownTil[symbol] = t.now()
	t.persistLocked()
}

// Remaining сколько осталось до конца окна.
func (t *Tracker) Remaining(symbol string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	firedAt, ok := t.cooldownTil[symbol]
	if !ok {
		return 0
	}
	left := firedAt.Add(t.window).Sub(t.now())
	if left < 0 {
		return 0
	}
	return left
}

// Active число символов в окне (для админки).
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	n := 0
	for _, firedAt := range t.cooldownTil {
		if !now.After(firedAt.Add(t.window)) {
			n++
		}
	}
	return n
}

func (t *Tracker) persistLocked() {
	if t.store == nil {
		return
	}
	snap := make(map[string]time.Time, len(t.cooldownTil))
	for k, v := range t.cooldownTil {
		snap[k] = v
	}
	if err := t.store.Save(context.Background(), stateservice.KeyCooldown, snap); err != nil {
		logger.Error("[COOLDOWN] persist: %v", err)
	}
}
