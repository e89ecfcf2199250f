// SPDX-License-Identifier: Unlicense OR MIT

/*
Package loop implements a cooperative event queue.

A Looper runs every callback posted to it on a single goroutine, in
deadline order and first-in first-out for equal deadlines. Touch
events, long-press timers and animation ticks are all callbacks, so
the state they share never needs locking.

Post and AfterFunc may be called from any goroutine. Callbacks run
inside Run, or inside Advance for a manual Looper whose clock only
moves when told to.
*/
package loop

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Looper is a single threaded callback queue.
type Looper struct {
	mu     sync.Mutex
	timers timerHeap
	seq    uint64
	wake   chan struct{}

	manual bool
	start  time.Time
	// now is the clock of a manual Looper.
	now time.Duration
}

// Timer is a pending callback.
type Timer struct {
	l     *Looper
	when  time.Duration
	seq   uint64
	f     func()
	index int
}

type timerHeap []*Timer

// New returns a Looper driven by the monotonic wall clock.
func New() *Looper {
	return &Looper{
		start: time.Now(),
		wake:  make(chan struct{}, 1),
	}
}

// NewManual returns a Looper whose clock starts at zero and
// only advances through Advance.
func NewManual() *Looper {
	return &Looper{
		manual: true,
		wake:   make(chan struct{}, 1),
	}
}

// Now returns the current time of the Looper's clock.
func (l *Looper) Now() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.clock()
}

func (l *Looper) clock() time.Duration {
	if l.manual {
		return l.now
	}
	return time.Since(l.start)
}

// Post schedules f to run as soon as possible, after the
// callbacks already due.
func (l *Looper) Post(f func()) *Timer {
	return l.AfterFunc(0, f)
}

// AfterFunc schedules f to run once d has elapsed.
func (l *Looper) AfterFunc(d time.Duration, f func()) *Timer {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	t := &Timer{l: l, when: l.clock() + d, seq: l.seq, f: f}
	l.seq++
	heap.Push(&l.timers, t)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return t
}

// Stop cancels t. It reports whether t was still pending.
// Stopping a nil Timer is allowed and reports false.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	l := t.l
	l.mu.Lock()
	defer l.mu.Unlock()
	if t.index < 0 {
		return false
	}
	heap.Remove(&l.timers, t.index)
	return true
}

// Pending reports whether t is scheduled and has not run yet.
func (t *Timer) Pending() bool {
	if t == nil {
		return false
	}
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	return t.index >= 0
}

// Len returns the number of pending callbacks.
func (l *Looper) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// pop removes and returns the earliest callback due at or before
// deadline, or nil.
func (l *Looper) pop(deadline time.Duration) *Timer {
	if len(l.timers) == 0 || l.timers[0].when > deadline {
		return nil
	}
	return heap.Pop(&l.timers).(*Timer)
}

// Run executes callbacks as they fall due until ctx is done.
func (l *Looper) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		if t := l.pop(l.clock()); t != nil {
			l.mu.Unlock()
			t.f()
			continue
		}
		var (
			wait  <-chan time.Time
			timer *time.Timer
		)
		if len(l.timers) > 0 {
			timer = time.NewTimer(l.timers[0].when - l.clock())
			wait = timer.C
		}
		l.mu.Unlock()
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case <-l.wake:
		case <-wait:
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

// Advance moves the clock of a manual Looper forward by d, running
// every callback that falls due on the way, including callbacks
// scheduled by those callbacks. Advance(0) runs the callbacks that
// are already due.
func (l *Looper) Advance(d time.Duration) {
	if !l.manual {
		panic("loop: Advance on a Looper driven by the wall clock")
	}
	l.mu.Lock()
	deadline := l.now + d
	for {
		t := l.pop(deadline)
		if t == nil {
			break
		}
		if t.when > l.now {
			l.now = t.when
		}
		l.mu.Unlock()
		t.f()
		l.mu.Lock()
	}
	l.now = deadline
	l.mu.Unlock()
}

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when != h[j].when {
		return h[i].when < h[j].when
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x interface{}) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
