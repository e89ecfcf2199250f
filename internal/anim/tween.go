// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"time"

	"floatingview.org/loop"
)

// Tween animates a single integer value over a fixed Duration.
type Tween struct {
	Loop     *loop.Looper
	Duration time.Duration
	// Curve maps the elapsed fraction to the animated
	// fraction. Nil means Linear.
	Curve func(float32) float32
	// Done, if not nil, is called after the last frame of an
	// animation that ran to completion.
	Done func()

	token uint64
	timer *loop.Timer
}

// Start animates from one value to another, replacing any running
// animation. apply is called for every frame, the last frame with
// exactly to; returning false stops the Tween.
func (tw *Tween) Start(from, to int, apply func(v int) bool) {
	tw.Stop()
	token := tw.token
	start := tw.Loop.Now()
	curve := tw.Curve
	if curve == nil {
		curve = Linear
	}
	var tick func()
	tick = func() {
		if token != tw.token {
			return
		}
		tw.timer = nil
		frac := float32(1)
		if tw.Duration > 0 {
			frac = float32(tw.Loop.Now()-start) / float32(tw.Duration)
		}
		v := to
		if frac < 1 {
			v = from + int(float32(to-from)*curve(frac))
		}
		if !apply(v) {
			tw.token++
			return
		}
		if frac >= 1 {
			tw.token++
			if tw.Done != nil {
				tw.Done()
			}
			return
		}
		tw.timer = tw.Loop.AfterFunc(RefreshInterval, tick)
	}
	tw.timer = tw.Loop.Post(tick)
}

// Stop cancels the animation, leaving the value where the
// last frame put it.
func (tw *Tween) Stop() {
	tw.token++
	tw.timer.Stop()
	tw.timer = nil
}

// Active reports whether the animation is running.
func (tw *Tween) Active() bool {
	return tw.timer.Pending()
}
