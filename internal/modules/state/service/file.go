package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

// File держит все ключи в одном JSON-снапшоте на диске.
type File struct {
	path string

	mu     sync.Mutex
	cache  map[string]json.RawMessage
	loaded bool
}

func NewFile(path string) *File {
	return &File{
		path:  path,
		cache: make(map[string]json.RawMessage),
	}
}

func (f *File) Load(_ context.Context, key string, dst any) (ok bool, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("state.File.Load %s: %w", key, err)
		}
	}()
	f.mu.Lock()
	defer f.mu.Unlock()

	if err = f.loadLocked(); err != nil {
		return false, err
	}
	raw, ok := f.cache[key]
	if !ok {
		return false, nil
	}
	return true, decode(raw, dst)
}

func (f *File) Save(_ context.Context, key string, v any) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("state.File.Save %s: %w", key, err)
		}
	}()
	b, err := encode(v)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err = f.loadLocked(); err != nil {
		return err
	}
	f.cache[key] = b
	return f.saveLocked()
}

func (f *File) Close() error { return nil }

// ---- storage format ----

type snapshot struct {
	UpdatedAt time.Time                  `json:"updated_at"`
	Values    map[string]json.RawMessage `json:"values"`
}

func (f *File) loadLocked() error {
	if f.loaded {
		return nil
	}

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.loaded = true
			return nil
		}
		return fmt.Errorf("read %s: %w", f.path, err)
	}

	var snap snapshot
	if err := sonic.Unmarshal(b, &snap); err != nil {
		return fmt.Errorf("decode %s: %w", f.path, err)
	}
	if snap.Values != nil {
		f.cache = snap.Values
	}
	f.loaded = true
	return nil
}

func (f *File) saveLocked() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	snap := snapshot{
		UpdatedAt: time.Now(),
		Values:    f.cache,
	}

	b, err := sonic.ConfigStd.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path) // атомарно
}
