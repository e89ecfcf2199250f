// SPDX-License-Identifier: Unlicense OR MIT

/*
Package anim implements the timed animations of floating windows.

A Tracker chases a live target: the pointer during a drag, or the
center of a drop target. A Tween moves a single coordinate to a
fixed goal in a fixed time. Both tick on a loop.Looper every
RefreshInterval and never run two frames concurrently.
*/
package anim

import (
	"image"
	"log"
	"time"

	"floatingview.org/layout"
	"floatingview.org/loop"
)

const (
	// RefreshInterval is the time between animation frames.
	RefreshInterval = 17 * time.Millisecond
	// CaptureDuration is how long a Tracker takes to catch
	// up with its target after a mode change.
	CaptureDuration = 300 * time.Millisecond
)

// Mode selects the target of a Tracker.
type Mode uint8

const (
	// Follow moves the subject to the followed pointer position,
	// constrained to the subject's move limits.
	Follow Mode = iota
	// Seek moves the center of the subject to the seek point.
	Seek
)

// Subject is the window moved by an animation.
type Subject interface {
	Position() image.Point
	SetPosition(p image.Point) error
	Size() image.Point
	Limits() layout.Limits
}

// Run is a single capture of a Tracker. A Run is replaced, never
// modified, when the Tracker is re-armed.
type Run struct {
	// Token identifies the run. Tokens increase monotonically.
	Token uint64
	// Start is the loop time the run started at.
	Start time.Duration
	// From is the subject position at Start.
	From image.Point
}

// Tracker moves a Subject toward a live target.
type Tracker struct {
	Loop *loop.Looper
	// Subject resolves the moved window. It returns nil
	// once the window is gone, which stops the Tracker.
	Subject func() Subject

	mode    Mode
	changed bool
	follow  image.Point
	seek    image.Point
	token   uint64
	run     Run
	timer   *loop.Timer
}

// Start (re)arms the Tracker. Unless the mode changed since the
// last frame, the first frame jumps straight to the target.
func (t *Tracker) Start() {
	t.Stop()
	token := t.token
	t.timer = t.Loop.Post(func() { t.tick(token, true) })
}

// Stop cancels the pending frame, if any.
func (t *Tracker) Stop() {
	t.token++
	t.timer.Stop()
	t.timer = nil
}

// Active reports whether a frame is pending.
func (t *Tracker) Active() bool {
	return t.timer.Pending()
}

// SetMode switches the target kind. A change restarts the capture
// from the current position on the next frame.
func (t *Tracker) SetMode(m Mode) {
	if m != t.mode {
		t.changed = true
	}
	t.mode = m
}

// Mode returns the current target kind.
func (t *Tracker) Mode() Mode {
	return t.mode
}

// Follow updates the pointer position followed in Follow mode.
func (t *Tracker) Follow(p image.Point) {
	t.follow = p
}

// Seek updates the point sought in Seek mode.
func (t *Tracker) Seek(center image.Point) {
	t.seek = center
}

// Run returns the current capture.
func (t *Tracker) Run() Run {
	return t.run
}

func (t *Tracker) tick(token uint64, first bool) {
	if token != t.token {
		return
	}
	t.timer = nil
	s := t.Subject()
	if s == nil {
		t.Stop()
		return
	}
	now := t.Loop.Now()
	if first || t.changed {
		start := now - CaptureDuration
		if t.changed {
			start = now
		}
		t.token++
		t.run = Run{Token: t.token, Start: start, From: s.Position()}
		t.changed = false
	}
	rate := float32(now-t.run.Start) / float32(CaptureDuration)
	if rate > 1 {
		rate = 1
	}
	eased := Capture(rate)
	var target image.Point
	switch t.mode {
	case Follow:
		target = s.Limits().ClampMove(t.follow)
	case Seek:
		target = t.seek.Sub(s.Size().Div(2))
	}
	from := t.run.From
	p := image.Point{
		X: int(float32(from.X) + float32(target.X-from.X)*eased),
		Y: int(float32(from.Y) + float32(target.Y-from.Y)*eased),
	}
	if err := s.SetPosition(p); err != nil {
		log.Printf("anim: tracker stopped: %v", err)
		t.Stop()
		return
	}
	token = t.run.Token
	t.timer = t.Loop.AfterFunc(RefreshInterval, func() { t.tick(token, false) })
}
