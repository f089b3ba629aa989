package service

import (
	"context"
	"errors"
	"sync"

	"github.com/bytedance/sonic"
)

// Ключи состояния, которое обязано пережить рестарт.
const (
	KeyAccess   = "access"
	KeyCooldown = "cooldown"
	KeyHistory  = "history"
	KeyCursor   = "dispatcher_cursor"
)

var ErrClosed = errors.New("state store closed")

// Store key/value хранилище снапшотов. Значения кодируются в JSON.
type Store interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Close() error
}

func encode(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

func decode(b []byte, dst any) error {
	return sonic.Unmarshal(b, dst)
}

// Memory in-process Store; для тестов и dry-run.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, decode(b, dst)
}

func (m *Memory) Save(_ context.Context, key string, v any) error {
	b, err := encode(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = b
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
