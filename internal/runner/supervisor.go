package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"signal_bot/pkg/logger"
)

var ErrRestartRequested = errors.New("restart requested")

func (d *Dispatcher) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	d.done = make(chan struct{})
	go func() {
		defer close(d.done)
		d.Run(ctx)
	}()
}

func (d *Dispatcher) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
}

// Run внешний контур: перезапускает цикл после паники, ошибки или запроса /restart.
func (d *Dispatcher) Run(ctx context.Context) {
	logger.Info("[DISPATCH] ▶️ start: %d symbols, %d per cycle, every %s",
		len(d.opts.Symbols), d.opts.PairsPerCycle, d.opts.CycleInterval)
	for {
		err := d.runGuarded(ctx)
		if ctx.Err() != nil {
			logger.Info("[DISPATCH] ⏹ stopped")
			return
		}

		delay := d.opts.ErrorBackoff
		if errors.Is(err, ErrRestartRequested) {
			delay = d.opts.RestartDelay
			logger.Info("[DISPATCH] 🔄 restart in %s", delay)
		} else {
			logger.Error("[DISPATCH] loop failed: %v, retry in %s", err, delay)
		}
		if !sleepCtx(ctx, delay) {
			return
		}
	}
}

func (d *Dispatcher) runGuarded(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.Metrics.Panic("supervisor")
			logger.Error("[DISPATCH] panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("runner.Run: panic: %v", r)
		}
	}()

	d.Metrics.Started()
	d.sent = make(map[string]struct{})
	if err := d.Restore(ctx); err != nil {
		logger.Warn("[DISPATCH] restore cursor: %v", err)
	}
	return d.loop(ctx)
}

func (d *Dispatcher) loop(ctx context.Context) error {
	for {
		d.RunCycle(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.wait(ctx) {
			return ErrRestartRequested
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// wait спит CycleInterval, каждые PollInterval проверяя флаг рестарта. true если рестарт запрошен.
func (d *Dispatcher) wait(ctx context.Context) bool {
	timer := time.NewTimer(d.opts.CycleInterval)
	defer timer.Stop()
	ticker := time.NewTicker(d.opts.PollInterval)
	defer ticker.Stop()

	for {
		if d.Restart.consume() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return d.Restart.consume()
		case <-ticker.C:
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
