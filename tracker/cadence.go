package tracker

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Cadence rate-limits recomputation. Implementations receive every
// trigger and decide when the compute callback actually runs, always
// guaranteeing one trailing run after triggers quiesce. Stop discards
// pending work so no callback fires after teardown.
type Cadence interface {
	Trigger(compute func())
	Stop()
}

// PerEvent runs every compute immediately.
type PerEvent struct{}

// Trigger runs compute synchronously.
func (PerEvent) Trigger(compute func()) {
	if compute != nil {
		compute()
	}
}

// Stop is a no-op.
func (PerEvent) Stop() {}

// Throttle runs the first trigger of a burst immediately (leading
// edge) and coalesces the rest into one trailing run per interval.
type Throttle struct {
	interval time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	stopped bool
}

// NewThrottle creates a throttle with the given minimum interval
// between computes.
func NewThrottle(interval time.Duration) (*Throttle, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("tracker: throttle interval %v must be positive", interval)
	}
	return &Throttle{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// Trigger runs compute now if the limiter allows, otherwise schedules
// it for the end of the current interval, replacing any pending run.
func (t *Throttle) Trigger(compute func()) {
	if t == nil || compute == nil {
		return
	}
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.limiter.Allow() {
		t.mu.Unlock()
		compute()
		return
	}
	t.pending = compute
	if t.timer == nil {
		t.timer = time.AfterFunc(t.interval, t.fire)
	}
	t.mu.Unlock()
}

// Stop cancels any pending trailing run.
func (t *Throttle) Stop() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.stopped = true
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

func (t *Throttle) fire() {
	t.mu.Lock()
	compute := t.pending
	t.pending = nil
	t.timer = nil
	stopped := t.stopped
	if !stopped && compute != nil {
		// The trailing run spends a token too, so a trigger arriving
		// right after it cannot compute again within the interval.
		t.limiter.Reserve()
	}
	t.mu.Unlock()
	if stopped || compute == nil {
		return
	}
	compute()
}

// Debounce runs only a trailing compute after triggers have been
// quiet for the configured delay.
type Debounce struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	stopped bool
}

// NewDebounce creates a debounce with the given quiet delay.
func NewDebounce(delay time.Duration) (*Debounce, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("tracker: debounce delay %v must be positive", delay)
	}
	return &Debounce{delay: delay}, nil
}

// Trigger restarts the quiet timer; compute runs once no trigger has
// arrived for the full delay.
func (d *Debounce) Trigger(compute func()) {
	if d == nil || compute == nil {
		return
	}
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = compute
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
	d.mu.Unlock()
}

// Stop cancels any pending run.
func (d *Debounce) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}

func (d *Debounce) fire() {
	d.mu.Lock()
	compute := d.pending
	d.pending = nil
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()
	if stopped || compute == nil {
		return
	}
	compute()
}
