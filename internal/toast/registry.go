package toast

import (
	"context"
	"sync"
	"time"
)

// Registry holds one queue per browser client. It is created once at the
// application root and passed to handlers.
type Registry struct {
	mu     sync.Mutex
	queues map[string]*entry
	opts   []Option
	now    func() time.Time
}

type entry struct {
	queue    *Queue
	lastSeen time.Time
}

// NewRegistry returns an empty registry. opts apply to every queue it creates.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{queues: make(map[string]*entry), opts: opts, now: time.Now}
}

// Queue returns the queue for client, creating it on first use.
func (r *Registry) Queue(client string) *Queue {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.queues[client]
	if !ok {
		e = &entry{queue: NewQueue(r.opts...)}
		r.queues[client] = e
	}
	e.lastSeen = r.now()
	return e.queue
}

// Peek returns the queue for client without creating one.
func (r *Registry) Peek(client string) (*Queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.queues[client]
	if !ok {
		return nil, false
	}
	return e.queue, true
}

// Len returns the number of tracked clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queues)
}

// Prune drops queues that are empty, unsubscribed and idle for longer than idle.
func (r *Registry) Prune(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	dropped := 0
	for id, e := range r.queues {
		if e.lastSeen.After(cutoff) {
			continue
		}
		if e.queue.Len() > 0 || e.queue.Subscribers() > 0 {
			continue
		}
		e.queue.Close()
		delete(r.queues, id)
		dropped++
	}
	return dropped
}

// Run prunes idle queues every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Prune(idle)
		}
	}
}
