// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements the touch gesture of floating windows.

A Touch accepts the low level pointer Events of one window and
tells taps, long presses and drags apart. A sequence is a drag once
the pointer has moved past the touch slop; a drag never ends in a
click, and neither does a press held long enough to long click.
A drag that starts after a long click clears the long click.
*/
package gesture

import (
	"time"

	"floatingview.org/f32"
	"floatingview.org/io/pointer"
	"floatingview.org/loop"
	"floatingview.org/unit"
)

// DefaultLongPressTimeout is the platform long press threshold
// used when a Touch has none.
const DefaultLongPressTimeout = 500 * time.Millisecond

// touchSlop is the distance a pointer must move along an
// axis before a press becomes a drag.
var touchSlop = unit.Dp(8)

// Touch detects taps, long presses and drags of a single pointer.
type Touch struct {
	// Loop runs the long press timer.
	Loop *loop.Looper
	// LongPressTimeout is the platform long press threshold.
	// A long press fires after one and a half times the
	// threshold. Zero means DefaultLongPressTimeout.
	LongPressTimeout time.Duration
	// LongPress, if not nil, is called from the Loop when the
	// pointer is held without dragging.
	LongPress func(TouchEvent)

	state       TouchState
	downTime    time.Duration
	down        f32.Point
	raw         f32.Point
	local       f32.Point
	accepted    bool
	longPressed bool
	timer       *loop.Timer
}

// TouchEvent is a gesture level event.
type TouchEvent struct {
	Type TouchType
	// Position is the screen position of the pointer.
	Position f32.Point
	// Dragged is set for TypeRelease when the sequence
	// was a drag.
	Dragged bool
}

type TouchType uint8

type TouchState uint8

const (
	// TypePress is reported when a sequence starts.
	TypePress TouchType = iota
	// TypeDrag is reported for every move of an accepted drag.
	TypeDrag
	// TypeRelease is reported when a sequence ends, by
	// release or cancellation.
	TypeRelease
	// TypeClick is reported after TypeRelease for a tap.
	TypeClick
	// TypeLongClick is delivered through Touch.LongPress.
	TypeLongClick
)

const (
	// StateIdle is the state between sequences.
	StateIdle TouchState = iota
	// StatePressed is reported while a pointer is down
	// but has not moved past the touch slop.
	StatePressed
	// StateDragging is reported during drags.
	StateDragging
)

// Update processes a pointer event. Events of a stale sequence
// and moves within the touch slop return no TouchEvents and leave
// the Touch unchanged.
func (t *Touch) Update(m unit.Metric, e pointer.Event) []TouchEvent {
	switch e.Kind {
	case pointer.Press:
		t.timer.Stop()
		t.state = StatePressed
		t.downTime = e.DownTime
		t.down = e.Raw
		t.raw = e.Raw
		t.local = e.Position
		t.accepted = false
		t.longPressed = false
		downTime := t.downTime
		t.timer = t.Loop.AfterFunc(t.longPressDelay(), func() { t.fire(downTime) })
		return []TouchEvent{{Type: TypePress, Position: e.Raw}}
	case pointer.Move:
		if t.Stale(e) {
			return nil
		}
		if !t.accepted {
			d := e.Raw.Sub(t.down).Abs()
			if slop := m.DpF(touchSlop); d.X < slop && d.Y < slop {
				return nil
			}
			t.accepted = true
			t.longPressed = false
			t.timer.Stop()
			t.timer = nil
			t.state = StateDragging
		}
		t.raw = e.Raw
		return []TouchEvent{{Type: TypeDrag, Position: e.Raw}}
	case pointer.Release, pointer.Cancel:
		if t.Stale(e) {
			return nil
		}
		t.raw = e.Raw
		longPressed := t.longPressed
		t.longPressed = false
		t.timer.Stop()
		t.timer = nil
		t.state = StateIdle
		events := []TouchEvent{{Type: TypeRelease, Position: e.Raw, Dragged: t.accepted}}
		if !t.accepted && !longPressed {
			events = append(events, TouchEvent{Type: TypeClick, Position: e.Raw})
		}
		return events
	}
	return nil
}

// Stale reports whether e belongs to a sequence other than the
// current one.
func (t *Touch) Stale(e pointer.Event) bool {
	if e.Kind == pointer.Press {
		return false
	}
	return t.state == StateIdle || e.DownTime != t.downTime
}

func (t *Touch) fire(downTime time.Duration) {
	if t.state != StatePressed || t.downTime != downTime {
		return
	}
	t.timer = nil
	t.longPressed = true
	if t.LongPress != nil {
		t.LongPress(TouchEvent{Type: TypeLongClick, Position: t.raw})
	}
}

func (t *Touch) longPressDelay() time.Duration {
	d := t.LongPressTimeout
	if d == 0 {
		d = DefaultLongPressTimeout
	}
	return d * 3 / 2
}

// Stop cancels a pending long press.
func (t *Touch) Stop() {
	t.timer.Stop()
	t.timer = nil
	t.longPressed = false
}

// Reset forgets the drag of the current sequence: the move
// acceptance and the press offsets.
func (t *Touch) Reset() {
	t.accepted = false
	t.down = f32.Point{}
	t.local = f32.Point{}
}

// State reports the gesture state.
func (t *Touch) State() TouchState {
	return t.state
}

// Accepted reports whether the current sequence is a drag.
func (t *Touch) Accepted() bool {
	return t.accepted
}

// LongPressed reports whether a long press fired in the current
// sequence and no drag has cleared it.
func (t *Touch) LongPressed() bool {
	return t.longPressed
}

// Raw returns the last screen position of the pointer.
func (t *Touch) Raw() f32.Point {
	return t.raw
}

// Local returns the press position relative to the window.
func (t *Touch) Local() f32.Point {
	return t.local
}

// DownTime returns the press time of the current sequence.
func (t *Touch) DownTime() time.Duration {
	return t.downTime
}

func (ct TouchType) String() string {
	switch ct {
	case TypePress:
		return "TypePress"
	case TypeDrag:
		return "TypeDrag"
	case TypeRelease:
		return "TypeRelease"
	case TypeClick:
		return "TypeClick"
	case TypeLongClick:
		return "TypeLongClick"
	default:
		panic("invalid TouchType")
	}
}

func (ts TouchState) String() string {
	switch ts {
	case StateIdle:
		return "StateIdle"
	case StatePressed:
		return "StatePressed"
	case StateDragging:
		return "StateDragging"
	default:
		panic("invalid TouchState")
	}
}
