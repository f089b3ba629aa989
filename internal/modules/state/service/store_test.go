package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Free    []string             `json:"free"`
	Expiry  map[string]time.Time `json:"expiry"`
	Counter int                  `json:"counter"`
}

func TestFileRoundTripSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := sample{Free: []string{"1", "2"}, Expiry: map[string]time.Time{"3": exp}, Counter: 7}

	f := NewFile(path)
	require.NoError(t, f.Save(ctx, KeyAccess, in))
	require.NoError(t, f.Save(ctx, KeyCursor, 4))

	_, err := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "tmp file must be renamed")

	// новый экземпляр читает с диска
	g := NewFile(path)
	var out sample
	ok, err := g.Load(ctx, KeyAccess, &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in.Free, out.Free)
	require.True(t, exp.Equal(out.Expiry["3"]))

	var cursor int
	ok, err = g.Load(ctx, KeyCursor, &cursor)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 4, cursor)

	ok, err = g.Load(ctx, KeyHistory, &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var v int
	_, err := NewFile(path).Load(context.Background(), KeyCursor, &v)
	require.Error(t, err)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var v []string
	ok, err := m.Load(ctx, KeyHistory, &v)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Save(ctx, KeyHistory, []string{"a"}))
	ok, err = m.Load(ctx, KeyHistory, &v)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"a"}, v)

	require.NoError(t, m.Close())
	require.ErrorIs(t, m.Save(ctx, KeyHistory, v), ErrClosed)
}
