// SPDX-License-Identifier: Unlicense OR MIT

package anim

import (
	"errors"
	"image"
	"math"
	"testing"
	"time"

	"floatingview.org/layout"
	"floatingview.org/loop"
)

type subject struct {
	pos    image.Point
	size   image.Point
	limits layout.Limits
	moves  int
	err    error
}

func (s *subject) Position() image.Point { return s.pos }
func (s *subject) Size() image.Point     { return s.size }
func (s *subject) Limits() layout.Limits { return s.limits }

func (s *subject) SetPosition(p image.Point) error {
	if s.err != nil {
		return s.err
	}
	s.pos = p
	s.moves++
	return nil
}

func newSubject() *subject {
	return &subject{
		size:   image.Pt(20, 20),
		limits: layout.ComputeLimits(image.Pt(1000, 1000), image.Pt(20, 20), 0, 0),
	}
}

func TestCaptureContinuity(t *testing.T) {
	const eps = 1e-3
	below := Capture(math.Nextafter32(captureBreak, 0))
	above := Capture(math.Nextafter32(captureBreak, 1))
	if d := math.Abs(float64(below - above)); d > eps {
		t.Errorf("Capture jumps by %g at %g", d, captureBreak)
	}
	if got := Capture(1); got != 1 {
		t.Errorf("Capture(1) = %g, want 1", got)
	}
	if got := Capture(0); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("Capture(0) = %g, want 0", got)
	}
	if peak := Capture(captureBreak); peak <= 1 {
		t.Errorf("Capture(%g) = %g, want an overshoot", captureBreak, peak)
	}
}

func TestOvershoot(t *testing.T) {
	f := Overshoot(1.25)
	if got := f(0); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("f(0) = %g, want 0", got)
	}
	if got := f(1); got != 1 {
		t.Errorf("f(1) = %g, want 1", got)
	}
	if got := f(.7); got <= 1 {
		t.Errorf("f(.7) = %g, want > 1", got)
	}
}

func TestTrackerFollow(t *testing.T) {
	l := loop.NewManual()
	s := newSubject()
	tr := &Tracker{Loop: l, Subject: func() Subject { return s }}
	tr.Follow(image.Pt(500, 400))
	tr.Start()
	l.Advance(0)
	if got, want := s.pos, image.Pt(500, 400); got != want {
		t.Fatalf("first frame at %v, want %v", got, want)
	}
	tr.Follow(image.Pt(5000, -5000))
	l.Advance(RefreshInterval)
	if got, want := s.pos, s.limits.ClampMove(image.Pt(5000, -5000)); got != want {
		t.Errorf("frame at %v, want clamped %v", got, want)
	}
	if !tr.Active() {
		t.Error("tracker stopped after a frame")
	}
	tr.Stop()
	moves := s.moves
	l.Advance(time.Second)
	if s.moves != moves {
		t.Errorf("%d frames after Stop", s.moves-moves)
	}
}

func TestTrackerSeek(t *testing.T) {
	l := loop.NewManual()
	s := newSubject()
	tr := &Tracker{Loop: l, Subject: func() Subject { return s }}
	tr.Follow(image.Pt(500, 500))
	tr.Start()
	l.Advance(0)

	tr.SetMode(Seek)
	tr.Seek(image.Pt(100, 100))
	l.Advance(RefreshInterval)
	if got, want := s.pos, image.Pt(500, 500); got != want {
		t.Errorf("capture jumped to %v, want it to start at %v", got, want)
	}
	run := tr.Run()
	if run.From != image.Pt(500, 500) {
		t.Errorf("run starts from %v", run.From)
	}
	l.Advance(CaptureDuration + 2*RefreshInterval)
	if got, want := s.pos, image.Pt(90, 90); got != want {
		t.Errorf("settled at %v, want %v", got, want)
	}
	if tr.Run().Token != run.Token {
		t.Error("run replaced without a mode change")
	}
}

func TestTrackerSubjectGone(t *testing.T) {
	l := loop.NewManual()
	var s Subject
	tr := &Tracker{Loop: l, Subject: func() Subject { return s }}
	tr.Start()
	l.Advance(time.Second)
	if tr.Active() {
		t.Error("tracker kept ticking without a subject")
	}
}

func TestTrackerError(t *testing.T) {
	l := loop.NewManual()
	s := newSubject()
	s.err = errors.New("window gone")
	tr := &Tracker{Loop: l, Subject: func() Subject { return s }}
	tr.Start()
	l.Advance(time.Second)
	if tr.Active() {
		t.Error("tracker kept ticking after a failed move")
	}
}

func TestTween(t *testing.T) {
	l := loop.NewManual()
	tw := &Tween{Loop: l, Duration: 450 * time.Millisecond, Curve: Overshoot(1.25)}
	var values []int
	tw.Start(0, 100, func(v int) bool {
		values = append(values, v)
		return true
	})
	l.Advance(time.Second)
	if len(values) == 0 {
		t.Fatal("no frames")
	}
	if values[0] != 0 {
		t.Errorf("first frame %d, want 0", values[0])
	}
	if last := values[len(values)-1]; last != 100 {
		t.Errorf("last frame %d, want 100", last)
	}
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 100 {
		t.Errorf("no overshoot, max %d", max)
	}
	if tw.Active() {
		t.Error("tween active after its duration")
	}
}

func TestTweenStop(t *testing.T) {
	l := loop.NewManual()
	tw := &Tween{Loop: l, Duration: 450 * time.Millisecond}
	frames := 0
	tw.Start(0, 100, func(int) bool {
		frames++
		return frames < 3
	})
	l.Advance(time.Second)
	if frames != 3 {
		t.Errorf("%d frames, want 3", frames)
	}
	tw.Start(0, 100, func(int) bool {
		frames++
		return true
	})
	tw.Stop()
	l.Advance(time.Second)
	if frames != 3 {
		t.Errorf("frames after Stop")
	}
}
