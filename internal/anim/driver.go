// Package anim owns the animation clock for wave flows: a per-frame phase
// accumulator plus a cache that throttles path regeneration.
package anim

import (
	"math"
	"sync"
	"time"
)

const (
	// DefaultPhaseStep is the phase advance per frame, in radians.
	DefaultPhaseStep = 0.02

	twoPi = 2 * math.Pi
)

// Driver advances a phase offset on a fixed interval and reports each new
// value through its frame callback. The offset is owned exclusively by the
// driver; consumers only ever observe it. Every flow visualization owns its
// own Driver so stopping one never couples into another.
type Driver struct {
	interval time.Duration
	step     float64
	onFrame  func(offset float64)

	// frames, when non-nil, replaces the internal ticker. Tests use it to
	// drive frames by hand.
	frames <-chan time.Time

	mu      sync.Mutex
	offset  float64
	running bool
	stopc   chan struct{}
	done    chan struct{}
}

// NewDriver creates a stopped driver. onFrame is invoked once per tick with
// the already-advanced, wrapped offset; a nil onFrame is allowed.
func NewDriver(interval time.Duration, step float64, onFrame func(offset float64)) *Driver {
	if interval <= 0 {
		interval = time.Second / 30
	}
	if step == 0 {
		step = DefaultPhaseStep
	}
	return &Driver{
		interval: interval,
		step:     step,
		onFrame:  onFrame,
	}
}

// Start begins advancing the phase. Calling Start on a running driver is a
// no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.stopc = make(chan struct{})
	d.done = make(chan struct{})
	notify := make(chan float64)
	go d.run(d.stopc, d.done, notify)
	go d.dispatch(notify)
}

// Stop halts the driver and waits for the tick loop to exit. Once Stop
// returns, the phase never advances again and no new frame callback starts;
// at most one already-dequeued callback may still be completing. Stop never
// waits on the callback itself, so it is safe to call from inside one (a
// bubbletea Update handler, say). Safe to call repeatedly and on a driver
// that never started.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	stopc, done := d.stopc, d.done
	d.mu.Unlock()

	close(stopc)
	<-done
}

// Running reports whether the driver is currently advancing.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Offset returns the current phase in [0, 2π).
func (d *Driver) Offset() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offset
}

func (d *Driver) run(stopc, done chan struct{}, notify chan<- float64) {
	defer close(done)
	defer close(notify)

	frames := d.frames
	if frames == nil {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		frames = ticker.C
	}

	for {
		select {
		case <-stopc:
			return
		case <-frames:
			// Advance first so the same tick that produces a new offset is
			// the one whose callback observes it.
			offset := d.advance()
			select {
			case notify <- offset:
			case <-stopc:
				return
			}
		}
	}
}

// dispatch invokes the frame callback outside the tick loop. A callback that
// blocks stalls frame delivery, not the clock and not Stop.
func (d *Driver) dispatch(notify <-chan float64) {
	for offset := range notify {
		if d.onFrame != nil {
			d.onFrame(offset)
		}
	}
}

func (d *Driver) advance() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offset = math.Mod(d.offset+d.step, twoPi)
	return d.offset
}
