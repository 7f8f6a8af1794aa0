package toast

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fireAll() {
	c.mu.Lock()
	timers := append([]*fakeTimer(nil), c.timers...)
	c.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.fn()
		}
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

func ids(ts []Toast) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestRemoveMiddlePreservesOrder(t *testing.T) {
	q := NewQueue(WithIDGenerator(sequentialIDs()))
	a := q.Enqueue(Info, "first", 0)
	b := q.Enqueue(Warning, "second", 0)
	c := q.Enqueue(Success, "third", 0)

	q.Remove(b)
	require.Equal(t, []string{a, c}, ids(q.Toasts()))
	require.Equal(t, "first", q.Toasts()[0].Message)
	require.Equal(t, "third", q.Toasts()[1].Message)
}

func TestRemoveIsIdempotent(t *testing.T) {
	q := NewQueue()
	id := q.Info("hello")
	calls := 0
	unsubscribe := q.Subscribe(func([]Toast) { calls++ })
	defer unsubscribe()

	q.Remove(id)
	q.Remove(id)
	q.Remove("missing")
	require.Equal(t, 0, q.Len())
	require.Equal(t, 1, calls)
	q.Close()
}

func TestSubscribersReceiveFullQueue(t *testing.T) {
	q := NewQueue(WithIDGenerator(sequentialIDs()))
	var snapshots [][]string
	unsubscribe := q.Subscribe(func(ts []Toast) { snapshots = append(snapshots, ids(ts)) })

	q.Enqueue(Info, "a", 0)
	q.Enqueue(Error, "b", 0)
	q.Remove("t1")
	unsubscribe()
	unsubscribe()
	q.Enqueue(Info, "c", 0)

	require.Equal(t, [][]string{{"t1"}, {"t1", "t2"}, {"t2"}}, snapshots)
	require.Equal(t, 0, q.Subscribers())
}

func TestAutoDismiss(t *testing.T) {
	clock := &fakeClock{}
	q := NewQueue(WithAfterFunc(clock.AfterFunc), WithIDGenerator(sequentialIDs()))

	q.Enqueue(Info, "sticky", 0)
	q.Success("saved")
	q.Enqueue(Warning, "quick", 2*time.Second)
	require.Len(t, clock.timers, 2)
	require.Equal(t, DefaultDuration, clock.timers[0].d)

	clock.fireAll()
	require.Equal(t, []string{"t1"}, ids(q.Toasts()))
}

func TestManualRemoveCancelsTimer(t *testing.T) {
	clock := &fakeClock{}
	q := NewQueue(WithAfterFunc(clock.AfterFunc))
	id := q.Error("boom")
	q.Remove(id)
	require.True(t, clock.timers[0].stopped)
}

func TestRealTimerRemoves(t *testing.T) {
	q := NewQueue()
	done := make(chan struct{})
	var once sync.Once
	unsubscribe := q.Subscribe(func(ts []Toast) {
		if len(ts) == 0 {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	q.Enqueue(Info, "brief", 10*time.Millisecond)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("toast was not removed")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	a := r.Queue("client-a")
	require.Same(t, a, r.Queue("client-a"))
	r.Queue("client-b").Enqueue(Info, "keep", 0)
	_, ok := r.Peek("client-c")
	require.False(t, ok)

	now = now.Add(time.Hour)
	require.Equal(t, 1, r.Prune(30*time.Minute))
	require.Equal(t, 1, r.Len())
	_, ok = r.Peek("client-a")
	require.False(t, ok)
}
