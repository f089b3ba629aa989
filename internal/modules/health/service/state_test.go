package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStateTouches(t *testing.T) {
	s := NewState()
	require.False(t, s.Ready())
	require.True(t, s.LastCycle().IsZero())
	require.False(t, s.Stale(time.Now(), time.Minute))

	at := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	s.TouchCycle(at)
	s.TouchCycle(at)
	s.TouchPoll(at.Add(time.Second))
	s.SetReady(true)

	require.True(t, s.Ready())
	require.True(t, at.Equal(s.LastCycle()))
	require.True(t, at.Add(time.Second).Equal(s.LastPoll()))
	require.EqualValues(t, 2, s.Cycles())
	require.False(t, s.Stale(at.Add(time.Minute), 2*time.Minute))
	require.True(t, s.Stale(at.Add(3*time.Minute), 2*time.Minute))
}

func TestNilStateIsNoop(t *testing.T) {
	var s *State
	require.NotPanics(t, func() {
		s.SetReady(true)
		s.TouchCycle(time.Now())
		s.TouchPoll(time.Now())
	})
	require.False(t, s.Ready())
}
