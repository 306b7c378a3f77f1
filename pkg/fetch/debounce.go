package fetch

import (
	"strings"
	"sync"
	"time"
)

// DefaultQuietPeriod is how long input must stay unchanged before a search
// fires.
const DefaultQuietPeriod = time.Second

// Debouncer sits between raw input changes and a Fetcher. Each Observe call
// cancels the pending trigger; a non-empty value reschedules the trigger for
// one quiet period later, so only the last value within a burst fires. An
// empty value resets downstream immediately.
//
// The Debouncer owns timers only. It never cancels an already-dispatched
// request; the Fetcher's sequence check handles late responses.
type Debouncer struct {
	quiet   time.Duration
	trigger func(query string)
	reset   func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer builds a Debouncer firing trigger with the settled value, or
// reset on empty input. A non-positive quiet period falls back to
// DefaultQuietPeriod.
func NewDebouncer(quiet time.Duration, trigger func(query string), reset func()) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{quiet: quiet, trigger: trigger, reset: reset}
}

// Observe records one input change.
func (d *Debouncer) Observe(input string) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if strings.TrimSpace(input) == "" {
		d.mu.Unlock()
		d.reset()
		return
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		fire := !d.stopped
		d.mu.Unlock()
		if fire {
			d.trigger(input)
		}
	})
	d.mu.Unlock()
}

// Stop cancels any pending trigger and ignores further Observe calls. Call
// it on teardown so a timer cannot fire into a disposed owner.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}
