package service

import (
	"context"
	"sync"
	"time"

	"signal_bot/internal/models"
	stateservice "signal_bot/internal/modules/state/service"
	"signal_bot/pkg/logger"
)

const DefaultSize = 5

// History кольцо последних сигналов, новые в начале.
type History struct {
	size  int
	store stateservice.Store

	mu      sync.Mutex
	entries []models.HistoryEntry
}

func NewHistory(size int, store stateservice.Store) *History {
	if size <= 0 {
		size = DefaultSize
	}
	return &History{
		size:    size,
		store:   store,
		entries: make([]models.HistoryEntry, 0, size),
	}
}

// Add вставляет в начало, самый старый вытесняется.
func (h *History) Add(symbol, message string, firedAt time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := models.HistoryEntry{Symbol: symbol, Message: message, FiredAt: firedAt}
	h.entries = append([]models.HistoryEntry{e}, h.entries...)
	if len(h.entries) > h.size {
		h.entries = h.entries[:h.size]
	}
	h.persistLocked()
}

// Recent копия, новые первыми.
func (h *History) Recent() []models.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Since сколько сигналов с момента t (для /status "за сегодня").
func (h *History) Since(t time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := 0
	for _, e := range h.entries {
		if !e.FiredAt.Before(t) {
			n++
		}
	}
	return n
}

func (h *History) Restore(ctx context.Context) error {
	if h.store == nil {
		return nil
	}
	var entries []models.HistoryEntry
	ok, err := h.store.Load(ctx, stateservice.KeyHistory, &entries)
	if err != nil || !ok {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(entries) > h.size {
		entries = entries[:h.size]
	}
	h.entries = entries
	return nil
}

func (h *History) persistLocked() {
	if h.store == nil {
		return
	}
	if err := h.store.Save(context.Background(), stateservice.KeyHistory, h.entries); err != nil {
		logger.Error("[HISTORY] persist: %v", err)
	}
}
