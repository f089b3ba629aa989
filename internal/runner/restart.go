package runner

import "sync/atomic"

// RestartSignal флаг перезапуска: ставит админ, снимает диспетчер во время сна.
type RestartSignal struct {
	flag atomic.Bool
}

func NewRestartSignal() *RestartSignal {
	return &RestartSignal{}
}

func (r *RestartSignal) RequestRestart() { r.flag.Store(true) }

func (r *RestartSignal) Requested() bool { return r.flag.Load() }

// consume читает и сбрасывает флаг
func (r *RestartSignal) consume() bool {
	if r == nil {
		return false
	}
	return r.flag.Swap(false)
}
