package service

import (
	"sync/atomic"
	"time"
)

// State что видят пробы: готовность и отметки последних циклов диспетчера и опроса Telegram.
// Методы безопасны для nil-получателя.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastCycleUnix atomic.Int64 // unix seconds
	lastPollUnix  atomic.Int64
	cycles        atomic.Int64
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) {
	if s != nil {
		s.ready.Store(v)
	}
}

func (s *State) Ready() bool { return s != nil && s.ready.Load() }

func (s *State) TouchCycle(t time.Time) {
	if s == nil {
		return
	}
	s.lastCycleUnix.Store(t.Unix())
	s.cycles.Add(1)
}

func (s *State) TouchPoll(t time.Time) {
	if s != nil {
		s.lastPollUnix.Store(t.Unix())
	}
}

func (s *State) LastCycle() time.Time { return fromUnix(s.lastCycleUnix.Load()) }
func (s *State) LastPoll() time.Time  { return fromUnix(s.lastPollUnix.Load()) }
func (s *State) Cycles() int64        { return s.cycles.Load() }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

// Stale цикл не отмечался дольше maxAge. До первого цикла не stale.
func (s *State) Stale(now time.Time, maxAge time.Duration) bool {
	last := s.LastCycle()
	if last.IsZero() {
		return false
	}
	return now.Sub(last) > maxAge
}

func fromUnix(u int64) time.Time {
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}
