// Package schedule runs callbacks on their own goroutine at a period that can
// be changed while running.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ErrPeriod is returned when a non-positive period is requested.
var ErrPeriod = errors.New("schedule: period must be positive")

// Periodic owns at most one goroutine that calls fn every period.
//
// Reschedule swaps the period of that goroutine instead of starting another
// one, so there is never more than one schedule for a job. A panic inside fn
// is recovered and logged; the next firing happens as usual.
//
// Stop waits for the goroutine to exit and must not be called from fn.
type Periodic struct {
	name   string
	fn     func()
	logger *log.Logger

	lifecycle sync.Mutex // Serializes Start and Stop

	mu      sync.Mutex
	period  time.Duration
	cancel  context.CancelFunc
	resetCh chan time.Duration
	done    chan struct{}

	fired  atomic.Uint64
	panics atomic.Uint64
}

// New creates a stopped job. A nil logger uses the default logger.
func New(name string, fn func(), logger *log.Logger) *Periodic {
	if logger == nil {
		logger = log.Default()
	}
	return &Periodic{
		name:   name,
		fn:     fn,
		logger: logger,
	}
}

// Start begins firing after initialDelay and then every period. A running job
// is stopped first, so Start never leaves two schedules behind.
func (p *Periodic) Start(initialDelay, period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("%w: %s got %v", ErrPeriod, p.name, period)
	}
	if initialDelay < 0 {
		initialDelay = 0
	}

	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	p.stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	p.period = period
	p.cancel = cancel
	p.resetCh = make(chan time.Duration, 1)
	p.done = make(chan struct{})

	go p.run(ctx, initialDelay, period, p.resetCh, p.done)
	p.logger.Debug("schedule started", "job", p.name, "delay", initialDelay, "period", period)
	return nil
}

// Reschedule replaces the period. On a running job the next firing happens
// one new period from now; on a stopped job only the stored period changes.
func (p *Periodic) Reschedule(period time.Duration) error {
	if period <= 0 {
		return fmt.Errorf("%w: %s got %v", ErrPeriod, p.name, period)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.period = period
	if p.cancel == nil {
		return nil
	}

	// Keep only the latest request if the goroutine has not consumed the last one.
	select {
	case <-p.resetCh:
	default:
	}
	p.resetCh <- period
	p.logger.Debug("schedule period changed", "job", p.name, "period", period)
	return nil
}

// Stop cancels the schedule and waits for an in-flight firing to finish.
// Stopping a stopped job is a no-op.
func (p *Periodic) Stop() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()
	p.stop()
}

func (p *Periodic) stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done, p.resetCh = nil, nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Debug("schedule stopped", "job", p.name)
}

// Running reports whether the job is scheduled.
func (p *Periodic) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Period returns the current period.
func (p *Periodic) Period() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.period
}

// Fired returns how many firings completed without panicking.
func (p *Periodic) Fired() uint64 { return p.fired.Load() }

// Panics returns how many firings panicked.
func (p *Periodic) Panics() uint64 { return p.panics.Load() }

func (p *Periodic) run(ctx context.Context, delay, period time.Duration, resetCh <-chan time.Duration, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-resetCh:
			period = d
			timer.Reset(period)
		case <-timer.C:
			if ctx.Err() != nil {
				return
			}
			p.fire()
			timer.Reset(period)
		}
	}
}

// fire runs fn once, isolating a panic to this firing.
func (p *Periodic) fire() {
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			p.logger.Error("scheduled job panicked",
				"job", p.name, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	p.fn()
	p.fired.Add(1)
}
