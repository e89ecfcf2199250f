// SPDX-License-Identifier: Unlicense OR MIT

package floating

import (
	"image"
	"testing"
	"time"

	"floatingview.org/f32"
	"floatingview.org/io/pointer"
	"floatingview.org/loop"
)

type viewRig struct {
	loop     *loop.Looper
	wm       *fakeWM
	m        *Manager
	listener *fakeListener
	vibrator *fakeVibrator
}

func newViewRig() *viewRig {
	r := &viewRig{
		loop:     loop.NewManual(),
		wm:       newFakeWM(),
		listener: new(fakeListener),
		vibrator: new(fakeVibrator),
	}
	r.m = NewManager(r.loop, r.wm, r.listener, WithVibrator(r.vibrator))
	return r
}

// attach attaches a 100x100 view and lays it out.
func (r *viewRig) attach(t *testing.T, opts Options) (*View, *fakeContent) {
	t.Helper()
	c := new(fakeContent)
	v, err := r.m.Attach(c, opts, "test")
	if err != nil {
		t.Fatal(err)
	}
	r.wm.measure(v, image.Pt(100, 100))
	return v, c
}

func (r *viewRig) send(t *testing.T, v *View, e pointer.Event) {
	t.Helper()
	if err := v.Event(e); err != nil {
		t.Fatal(err)
	}
}

func position(v *View) image.Point {
	p := v.LayoutParams()
	return image.Pt(p.X, p.Y)
}

func TestInitialPosition(t *testing.T) {
	tests := []struct {
		name string
		opts func(o *Options)
		want image.Point
	}{
		{"default", func(o *Options) {}, image.Pt(0, 1850)},
		{"left", func(o *Options) { o.MoveDirection = MoveLeft }, image.Pt(0, 1850)},
		{"right", func(o *Options) { o.MoveDirection = MoveRight }, image.Pt(900, 1850)},
		{"right over margin", func(o *Options) {
			o.MoveDirection = MoveRight
			o.OverMargin = 20
		}, image.Pt(920, 1850)},
		{"explicit", func(o *Options) { o.X, o.Y = 100, 200 }, image.Pt(100, 200)},
		{"explicit out of limits", func(o *Options) { o.X, o.Y = 5000, 5000 }, image.Pt(900, 1850)},
		{"explicit x only", func(o *Options) { o.X = 300 }, image.Pt(300, 0)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newViewRig()
			opts := DefaultOptions()
			test.opts(&opts)
			v, _ := r.attach(t, opts)
			if got := position(v); got != test.want {
				t.Errorf("got position %v, want %v", got, test.want)
			}
			if !v.Draggable() {
				t.Error("view not draggable after layout")
			}
		})
	}
}

func TestExplicitPositionDisablesSnap(t *testing.T) {
	r := newViewRig()
	opts := DefaultOptions()
	opts.X, opts.Y = 100, 200
	v, _ := r.attach(t, opts)
	tc := touch{down: 1, local: f32.Pt(50, 50)}
	// The view spans screen rows 1700 to 1800.
	r.send(t, v, tc.event(pointer.Press, f32.Pt(150, 1750)))
	r.send(t, v, tc.event(pointer.Move, f32.Pt(400, 1000)))
	r.loop.Advance(100 * time.Millisecond)
	r.send(t, v, tc.event(pointer.Release, f32.Pt(400, 1000)))
	r.loop.Advance(time.Second)
	// The view settles where it was released, not at its
	// initial position.
	if got, want := position(v), image.Pt(350, 950); got != want {
		t.Errorf("got position %v, want %v", got, want)
	}
}

func TestZeroOptions(t *testing.T) {
	r := newViewRig()
	v, _ := r.attach(t, Options{})
	if got := v.Shape(); got != ShapeCircle {
		t.Errorf("got shape %v, want %v", got, ShapeCircle)
	}
	if got, want := position(v), image.Pt(0, 0); got != want {
		t.Errorf("got position %v, want %v", got, want)
	}
	if got, want := r.m.Trash().Rect().Dx(), 100; got != want {
		t.Errorf("got trash width %d, want %d", got, want)
	}
}

func TestEventsBeforeLayout(t *testing.T) {
	r := newViewRig()
	c := new(fakeContent)
	v, err := r.m.Attach(c, DefaultOptions(), "test")
	if err != nil {
		t.Fatal(err)
	}
	tc := touch{down: 1}
	r.send(t, v, tc.event(pointer.Press, f32.Pt(10, 10)))
	r.send(t, v, tc.event(pointer.Release, f32.Pt(10, 10)))
	if c.clicks != 0 {
		t.Errorf("got %d clicks before layout, want 0", c.clicks)
	}
	// A zero size is not a layout.
	r.wm.measure(v, image.Point{})
	if v.Draggable() {
		t.Error("view draggable after zero size layout")
	}
}

func TestClick(t *testing.T) {
	r := newViewRig()
	v, c := r.attach(t, DefaultOptions())
	tc := touch{down: 1, local: f32.Pt(50, 50)}
	r.send(t, v, tc.event(pointer.Press, f32.Pt(50, 100)))
	if got := v.LayoutParams().Scale; got != scalePressed {
		t.Errorf("got pressed scale %v, want %v", got, scalePressed)
	}
	r.send(t, v, tc.event(pointer.Release, f32.Pt(50, 100)))
	if c.clicks != 1 {
		t.Errorf("got %d clicks, want 1", c.clicks)
	}
	if got := v.LayoutParams().Scale; got != scaleNormal {
		t.Errorf("got released scale %v, want %v", got, scaleNormal)
	}
	if got, want := position(v), image.Pt(0, 1850); got != want {
		t.Errorf("tap moved view to %v, want %v", got, want)
	}
}

func TestLongClick(t *testing.T) {
	r := newViewRig()
	v, c := r.attach(t, DefaultOptions())
	tc := touch{down: 1, local: f32.Pt(50, 50)}
	r.send(t, v, tc.event(pointer.Press, f32.Pt(50, 100)))
	r.loop.Advance(749 * time.Millisecond)
	if c.longClicks != 0 {
		t.Fatalf("long click after %v", 749*time.Millisecond)
	}
	r.loop.Advance(time.Millisecond)
	if c.longClicks != 1 {
		t.Errorf("got %d long clicks, want 1", c.longClicks)
	}
	r.send(t, v, tc.event(pointer.Release, f32.Pt(50, 100)))
	if c.clicks != 0 {
		t.Errorf("got %d clicks after long click, want 0", c.clicks)
	}
}

func TestDragSnapsToEdge(t *testing.T) {
	tests := []struct {
		name string
		dir  MoveDirection
		to   f32.Point
		want image.Point
	}{
		{"default right", MoveDefault, f32.Pt(700, 1000), image.Pt(900, 950)},
		{"default left", MoveDefault, f32.Pt(300, 1000), image.Pt(0, 950)},
		{"left", MoveLeft, f32.Pt(700, 1000), image.Pt(0, 950)},
		{"right", MoveRight, f32.Pt(300, 1000), image.Pt(900, 950)},
		{"clamped", MoveDefault, f32.Pt(300, 10), image.Pt(0, 1850)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newViewRig()
			opts := DefaultOptions()
			opts.MoveDirection = test.dir
			v, c := r.attach(t, opts)
			tc := touch{down: 1, local: f32.Pt(50, 50)}
			start := f32.Pt(50, 100)
			if test.dir == MoveRight {
				start.X += 900
			}
			r.send(t, v, tc.event(pointer.Press, start))
			r.send(t, v, tc.event(pointer.Move, test.to))
			r.loop.Advance(100 * time.Millisecond)
			r.send(t, v, tc.event(pointer.Release, test.to))
			r.loop.Advance(time.Second)
			if got := position(v); got != test.want {
				t.Errorf("got position %v, want %v", got, test.want)
			}
			if c.clicks != 0 {
				t.Errorf("got %d clicks after drag, want 0", c.clicks)
			}
			if !v.Draggable() {
				t.Error("view not draggable after drag")
			}
		})
	}
}

func TestDragFollowsPointer(t *testing.T) {
	r := newViewRig()
	v, _ := r.attach(t, DefaultOptions())
	tc := touch{down: 1, local: f32.Pt(50, 50)}
	r.send(t, v, tc.event(pointer.Press, f32.Pt(50, 100)))
	r.send(t, v, tc.event(pointer.Move, f32.Pt(700, 1000)))
	r.loop.Advance(0)
	// The first frame jumps to the pointer.
	if got, want := position(v), image.Pt(650, 950); got != want {
		t.Errorf("got position %v, want %v", got, want)
	}
	if got, want := v.Rect(), image.Rect(650, 950, 750, 1050); got != want {
		t.Errorf("got rect %v, want %v", got, want)
	}
}

func TestHostSizeChanged(t *testing.T) {
	r := newViewRig()
	v, _ := r.attach(t, DefaultOptions())
	// Same sizes are a no-op.
	for i := 0; i < 2; i++ {
		r.wm.measure(v, image.Pt(100, 100))
		if err := v.HostSizeChanged(); err != nil {
			t.Fatal(err)
		}
		if got, want := position(v), image.Pt(0, 1850); got != want {
			t.Fatalf("got position %v after relayout, want %v", got, want)
		}
	}
	r.wm.display.Size = image.Pt(2000, 1000)
	r.wm.measure(v, image.Pt(100, 100))
	if got, want := position(v), image.Pt(0, 850); got != want {
		t.Errorf("got position %v after rotation, want %v", got, want)
	}
	r.wm.display.Size = image.Pt(1000, 2000)
	r.wm.measure(v, image.Pt(100, 100))
	if got, want := position(v), image.Pt(0, 1850); got != want {
		t.Errorf("got position %v after rotating back, want %v", got, want)
	}
}

func TestLayoutWhileDragging(t *testing.T) {
	r := newViewRig()
	v, _ := r.attach(t, DefaultOptions())
	tc := touch{down: 1, local: f32.Pt(50, 50)}
	r.send(t, v, tc.event(pointer.Press, f32.Pt(50, 100)))
	r.send(t, v, tc.event(pointer.Move, f32.Pt(300, 1000)))
	r.loop.Advance(50 * time.Millisecond)
	if got, want := position(v), image.Pt(250, 950); got != want {
		t.Fatalf("got position %v, want %v", got, want)
	}
	r.wm.display.Inset = 0
	r.wm.measure(v, image.Pt(100, 100))
	r.send(t, v, tc.event(pointer.Move, f32.Pt(600, 600)))
	r.loop.Advance(500 * time.Millisecond)
	if got, want := position(v), image.Pt(550, 1350); got != want {
		t.Errorf("got position %v after relayout, want %v", got, want)
	}
	// A new display size moves the view and the drag goes on.
	r.wm.display.Size = image.Pt(1200, 2000)
	r.wm.measure(v, image.Pt(100, 100))
	r.send(t, v, tc.event(pointer.Move, f32.Pt(700, 600)))
	r.loop.Advance(500 * time.Millisecond)
	if got, want := position(v), image.Pt(650, 1350); got != want {
		t.Errorf("got position %v after resize, want %v", got, want)
	}
}

func TestHostSizeChangedRightEdge(t *testing.T) {
	r := newViewRig()
	opts := DefaultOptions()
	opts.MoveDirection = MoveRight
	v, _ := r.attach(t, opts)
	r.wm.display.Size = image.Pt(2000, 1000)
	r.wm.measure(v, image.Pt(100, 100))
	if got, want := position(v), image.Pt(1900, 850); got != want {
		t.Errorf("got position %v, want %v", got, want)
	}
}

func TestHideWhileDragging(t *testing.T) {
	r := newViewRig()
	v, c := r.attach(t, DefaultOptions())
	tc := touch{down: 1, local: f32.Pt(50, 50)}
	r.send(t, v, tc.event(pointer.Press, f32.Pt(50, 100)))
	r.send(t, v, tc.event(pointer.Move, f32.Pt(700, 1000)))
	if err := v.SetVisible(false); err != nil {
		t.Fatal(err)
	}
	if got, want := position(v), image.Pt(900, 950); got != want {
		t.Errorf("got position %v, want %v", got, want)
	}
	if v.Visible() {
		t.Error("view visible after SetVisible(false)")
	}
	r.loop.Advance(time.Second)
	if got, want := position(v), image.Pt(900, 950); got != want {
		t.Errorf("hidden view moved to %v, want %v", got, want)
	}
	// Hidden views ignore events.
	tc = touch{down: 2, local: f32.Pt(50, 50)}
	r.send(t, v, tc.event(pointer.Press, f32.Pt(950, 1000)))
	r.send(t, v, tc.event(pointer.Release, f32.Pt(950, 1000)))
	if c.clicks != 0 {
		t.Errorf("got %d clicks on hidden view, want 0", c.clicks)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateNormal:       "StateNormal",
		StateIntersecting: "StateIntersecting",
		StateFinishing:    "StateFinishing",
	} {
		if got := s.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
