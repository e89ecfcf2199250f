// SPDX-License-Identifier: Unlicense OR MIT

package loop

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestAdvanceOrder(t *testing.T) {
	l := NewManual()
	var got []string
	l.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })
	l.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	l.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })
	l.Post(func() { got = append(got, "now") })

	l.Advance(15 * time.Millisecond)
	if want := []string{"now", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := l.Now(), 15*time.Millisecond; got != want {
		t.Errorf("clock at %v, want %v", got, want)
	}
	l.Advance(5 * time.Millisecond)
	if len(got) != 4 || got[3] != "c" {
		t.Errorf("got %v, want c last", got)
	}
}

func TestStop(t *testing.T) {
	l := NewManual()
	fired := false
	tm := l.AfterFunc(time.Millisecond, func() { fired = true })
	if !tm.Pending() {
		t.Fatal("timer not pending")
	}
	if !tm.Stop() {
		t.Error("Stop reported the timer as not pending")
	}
	if tm.Stop() {
		t.Error("second Stop reported the timer as pending")
	}
	l.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	var nilTimer *Timer
	if nilTimer.Stop() || nilTimer.Pending() {
		t.Error("nil timer reported pending")
	}
}

func TestRequeueDuringAdvance(t *testing.T) {
	l := NewManual()
	var ticks []time.Duration
	var tick func()
	tick = func() {
		ticks = append(ticks, l.Now())
		l.AfterFunc(17*time.Millisecond, tick)
	}
	l.Post(tick)
	l.Advance(50 * time.Millisecond)
	want := []time.Duration{0, 17 * time.Millisecond, 34 * time.Millisecond}
	if !reflect.DeepEqual(ticks, want) {
		t.Errorf("ticks at %v, want %v", ticks, want)
	}
	if l.Len() != 1 {
		t.Errorf("%d pending callbacks, want 1", l.Len())
	}
}

func TestRun(t *testing.T) {
	l := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		l.AfterFunc(time.Millisecond, func() {
			close(done)
		})
	}()
	go func() {
		<-done
		cancel()
	}()
	if err := l.Run(ctx); err != context.Canceled {
		t.Errorf("Run returned %v, want %v", err, context.Canceled)
	}
	select {
	case <-done:
	default:
		t.Error("callback did not run")
	}
}
