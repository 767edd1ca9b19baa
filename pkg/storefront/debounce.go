package storefront

import (
	"sync"
	"time"
)

type pendingTask struct {
	id    uint64
	timer *time.Timer
}

// Debouncer runs a task once a key has been quiet for delay. Scheduling a
// key replaces its pending task, so at most one timer exists per key.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingTask
	closed  bool
	running sync.WaitGroup
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*pendingTask),
	}
}

// Schedule cancels the pending task for key and schedules fn after the delay.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if t, ok := d.pending[key]; ok {
		t.timer.Stop()
	}
	d.seq++
	id := d.seq
	d.pending[key] = &pendingTask{
		id:    id,
		timer: time.AfterFunc(d.delay, func() { d.fire(key, id, fn) }),
	}
}

// fire runs fn unless the task was superseded or cancelled after its timer
// had already started.
func (d *Debouncer) fire(key string, id uint64, fn func()) {
	d.mu.Lock()
	t, ok := d.pending[key]
	if d.closed || !ok || t.id != id {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	fn()
}

// Cancel drops the pending task for key and reports whether one existed.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.pending[key]
	if ok {
		t.timer.Stop()
		delete(d.pending, key)
	}
	return ok
}

func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

// Close cancels every pending task and waits for running ones to return.
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.closed = true
	for key, t := range d.pending {
		t.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()
	d.running.Wait()
}
