package service

import (
	"context"
	"sync"
	"time"
)

// DefaultWriteDebounce is the delay applied to rapid successive capacity
// edits against the same key before they hit the store.
const DefaultWriteDebounce = 500 * time.Millisecond

// keyedDebouncer coalesces rapid writes per key. Each key holds only its
// latest payload; a new write supersedes the pending timer, and because a
// firing timer reads the payload current at fire time, a superseded write
// never lands stale state over a newer one.
type keyedDebouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timers   map[string]*time.Timer
	payloads map[string]func(ctx context.Context) error
	onError  func(key string, err error)
}

func newKeyedDebouncer(duration time.Duration, onError func(key string, err error)) *keyedDebouncer {
	if onError == nil {
		onError = func(string, error) {}
	}
	return &keyedDebouncer{
		duration: duration,
		timers:   make(map[string]*time.Timer),
		payloads: make(map[string]func(ctx context.Context) error),
		onError:  onError,
	}
}

// Schedule queues fn under key, resetting the key's timer. With a zero
// duration the write runs synchronously.
func (d *keyedDebouncer) Schedule(key string, fn func(ctx context.Context) error) error {
	if d.duration <= 0 {
		return fn(context.Background())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.payloads[key] = fn
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.duration, func() { d.fire(key) })
	return nil
}

func (d *keyedDebouncer) fire(key string) {
	d.mu.Lock()
	fn, ok := d.payloads[key]
	delete(d.payloads, key)
	delete(d.timers, key)
	d.mu.Unlock()

	if !ok {
		return
	}
	if err := fn(context.Background()); err != nil {
		d.onError(key, err)
	}
}

// Flush stops every pending timer and runs the queued writes
// synchronously.
func (d *keyedDebouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	pending := make(map[string]func(ctx context.Context) error, len(d.payloads))
	for key, fn := range d.payloads {
		pending[key] = fn
		if t, ok := d.timers[key]; ok {
			t.Stop()
		}
		delete(d.payloads, key)
		delete(d.timers, key)
	}
	d.mu.Unlock()

	var firstErr error
	for key, fn := range pending {
		if err := fn(ctx); err != nil {
			d.onError(key, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
