// Package toast implements the ephemeral notification queue shown in the
// page corner.
package toast

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Severity of a toast.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case Success, Error, Warning, Info:
		return true
	}
	return false
}

// DefaultDuration is used by the severity helpers.
const DefaultDuration = 5 * time.Second

// Toast is a single notification.
type Toast struct {
	ID       string        `json:"id"`
	Severity Severity      `json:"type"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
}

// Listener receives the full queue after every change.
type Listener func([]Toast)

// Timer is the subset of *time.Timer the queue needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configures a Queue.
type Option func(*Queue)

// WithAfterFunc replaces the timer source.
func WithAfterFunc(fn AfterFunc) Option {
	return func(q *Queue) {
		if fn != nil {
			q.after = fn
		}
	}
}

// WithIDGenerator replaces the id source.
func WithIDGenerator(fn func() string) Option {
	return func(q *Queue) {
		if fn != nil {
			q.newID = fn
		}
	}
}

// Queue is an insertion-ordered notification list. It is safe for
// concurrent use.
type Queue struct {
	mu        sync.Mutex
	items     []Toast
	timers    map[string]Timer
	listeners map[int]Listener
	nextSub   int
	after     AfterFunc
	newID     func() string
}

// NewQueue returns an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		timers:    make(map[string]Timer),
		listeners: make(map[int]Listener),
		after:     realAfterFunc,
		newID:     func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends a toast and returns its id. When duration > 0 the toast
// is removed after duration unless removed earlier.
func (q *Queue) Enqueue(sev Severity, message string, duration time.Duration) string {
	q.mu.Lock()
	id := q.newID()
	q.items = append(q.items, Toast{ID: id, Severity: sev, Message: message, Duration: duration})
	snapshot, listeners := q.snapshotLocked()
	q.mu.Unlock()

	notify(listeners, snapshot)

	if duration > 0 {
		timer := q.after(duration, func() { q.Remove(id) })
		q.mu.Lock()
		if q.indexLocked(id) >= 0 {
			q.timers[id] = timer
		} else {
			timer.Stop()
		}
		q.mu.Unlock()
	}
	return id
}

// Success enqueues a success toast with DefaultDuration.
func (q *Queue) Success(msg string) string { return q.Enqueue(Success, msg, DefaultDuration) }

// Error enqueues an error toast with DefaultDuration.
func (q *Queue) Error(msg string) string { return q.Enqueue(Error, msg, DefaultDuration) }

// Warning enqueues a warning toast with DefaultDuration.
func (q *Queue) Warning(msg string) string { return q.Enqueue(Warning, msg, DefaultDuration) }

// Info enqueues an info toast with DefaultDuration.
func (q *Queue) Info(msg string) string { return q.Enqueue(Info, msg, DefaultDuration) }

// Remove deletes the toast with id. Unknown ids are ignored and do not
// notify listeners.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	idx := q.indexLocked(id)
	if idx < 0 {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items[:idx:idx], q.items[idx+1:]...)
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	snapshot, listeners := q.snapshotLocked()
	q.mu.Unlock()

	notify(listeners, snapshot)
}

// Toasts returns a copy of the current queue.
func (q *Queue) Toasts() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Toast(nil), q.items...)
}

// Len returns the number of queued toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Subscribe registers fn and returns a function that unregisters it.
func (q *Queue) Subscribe(fn Listener) (unsubscribe func()) {
	q.mu.Lock()
	id := q.nextSub
	q.nextSub++
	q.listeners[id] = fn
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			delete(q.listeners, id)
			q.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered listeners.
func (q *Queue) Subscribers() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.listeners)
}

// Close stops pending timers.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}

func (q *Queue) indexLocked(id string) int {
	for i, t := range q.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue) snapshotLocked() ([]Toast, []Listener) {
	snapshot := append([]Toast(nil), q.items...)
	listeners := make([]Listener, 0, len(q.listeners))
	for i := 0; i < q.nextSub; i++ {
		if l, ok := q.listeners[i]; ok {
			listeners = append(listeners, l)
		}
	}
	return snapshot, listeners
}

func notify(listeners []Listener, snapshot []Toast) {
	for _, l := range listeners {
		l(append([]Toast(nil), snapshot...))
	}
}
