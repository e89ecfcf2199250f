// SPDX-License-Identifier: Unlicense OR MIT

package floating

import (
	"fmt"
	"image"
	"log"
	"time"

	"floatingview.org/f32"
	"floatingview.org/gesture"
	"floatingview.org/internal/anim"
	"floatingview.org/io/pointer"
	"floatingview.org/layout"
	"floatingview.org/loop"
)

const (
	scalePressed = 0.9
	scaleNormal  = 1.0

	moveToEdgeDuration = 450 * time.Millisecond
	moveToEdgeTension  = 1.25
)

// State is the coordination state of a View.
type State uint8

const (
	// StateNormal views follow the pointer and settle on an edge.
	StateNormal State = iota
	// StateIntersecting views are pulled to the trash.
	StateIntersecting
	// StateFinishing views are being removed.
	StateFinishing
)

// View is a floating window holding one Content.
type View struct {
	wm      WindowManager
	content Content
	tag     string
	ref     *ref

	params    Params
	display   Display
	size      image.Point
	limits    layout.Limits
	laidOut   bool
	draggable bool
	state     State

	shape      float32
	overMargin int
	initial    image.Point
	direction  MoveDirection

	touch   gesture.Touch
	tracker anim.Tracker
	snap    anim.Tween

	// onTouch forwards gesture events to the Manager.
	onTouch func(v *View, e pointer.Event) error
	// onLayout is called after the first layout.
	onLayout    func(v *View)
	stopObserve func()
}

// ref is a weak handle to a View. Scheduled callbacks hold a ref
// instead of the View, and do nothing once the View is removed.
type ref struct {
	v *View
}

// subject adapts a View to anim.Subject.
type subject View

func newView(l *loop.Looper, wm WindowManager, content Content, opts Options, tag string, longPress time.Duration) *View {
	v := &View{
		wm:         wm,
		content:    content,
		tag:        tag,
		display:    wm.Display(),
		shape:      opts.Shape,
		overMargin: opts.OverMargin,
		initial:    image.Pt(opts.X, opts.Y),
		direction:  opts.MoveDirection,
		params: Params{
			Z:     LayerView,
			Flags: FlagNotFocusable | FlagLayoutNoLimits | FlagNotTouchModal,
			Scale: scaleNormal,
		},
	}
	if opts.explicit() {
		v.direction = MoveNone
	}
	if v.shape <= 0 {
		v.shape = ShapeCircle
	}
	r := &ref{v: v}
	v.ref = r
	v.touch = gesture.Touch{
		Loop:             l,
		LongPressTimeout: longPress,
		LongPress: func(gesture.TouchEvent) {
			if v := r.v; v != nil {
				v.content.LongClick()
			}
		},
	}
	v.tracker = anim.Tracker{
		Loop: l,
		Subject: func() anim.Subject {
			if v := r.v; v != nil {
				return (*subject)(v)
			}
			return nil
		},
	}
	v.snap = anim.Tween{
		Loop:     l,
		Duration: moveToEdgeDuration,
		Curve:    anim.Overshoot(moveToEdgeTension),
	}
	return v
}

// Content returns the content of the view.
func (v *View) Content() Content {
	return v.content
}

// Tag returns the tag the view was attached with.
func (v *View) Tag() string {
	return v.tag
}

// LayoutParams implements Window.
func (v *View) LayoutParams() Params {
	return v.params
}

// State returns the coordination state of the view.
func (v *View) State() State {
	return v.state
}

// Size returns the measured size of the view.
func (v *View) Size() image.Point {
	return v.size
}

// Limits returns the limits computed at the last layout.
func (v *View) Limits() layout.Limits {
	return v.limits
}

// Shape returns the shape ratio of the view.
func (v *View) Shape() float32 {
	return v.shape
}

// Visible reports whether the view is shown.
func (v *View) Visible() bool {
	return !v.params.Hidden
}

// Draggable reports whether the view accepts touches.
func (v *View) Draggable() bool {
	return v.draggable
}

// Rect returns the screen rectangle of the view at the position of
// the pointer that drags it.
func (v *View) Rect() image.Rectangle {
	p := v.touchPosition()
	return image.Rectangle{Min: p, Max: p.Add(v.size)}
}

// layout is the WindowManager observer of the view.
func (v *View) layout(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		// Not measured yet.
		return
	}
	v.size = size
	if err := v.HostSizeChanged(); err != nil {
		log.Printf("floating: %v", err)
		return
	}
	if v.laidOut {
		return
	}
	if err := v.place(); err != nil {
		log.Printf("floating: %v", err)
		return
	}
	v.laidOut = true
	v.draggable = true
	if v.onLayout != nil {
		v.onLayout(v)
	}
}

// place moves the view to its initial position.
func (v *View) place() error {
	if v.direction == MoveNone {
		v.params.X, v.params.Y = v.initial.X, v.initial.Y
		if err := v.moveTo(v.initial, v.initial, false); err != nil {
			return err
		}
	} else {
		v.params.X = 0
		v.params.Y = v.display.Size.Y - v.display.Inset - v.size.Y
		if err := v.moveToEdge(false); err != nil {
			return err
		}
	}
	return v.update()
}

// HostSizeChanged recomputes the limits of the view after a change
// of the view or display size. When the display size changed, the
// view is moved without animation: horizontally by its edge policy,
// vertically to the same relative place within its limits. A drag
// in progress keeps following the pointer within the new limits.
func (v *View) HostSizeChanged() error {
	v.snap.Stop()
	old, oldLimits := v.display, v.limits
	v.display = v.wm.Display()
	v.limits = layout.ComputeLimits(v.display.Size, v.size, v.overMargin, v.display.Inset)
	if old.Size == v.display.Size {
		return nil
	}
	switch v.direction {
	case MoveDefault:
		if v.params.X > (v.display.Size.X-v.size.X)/2 {
			v.params.X = v.limits.Position.Max.X
		} else {
			v.params.X = v.limits.Position.Min.X
		}
	case MoveLeft:
		v.params.X = v.limits.Position.Min.X
	case MoveRight:
		v.params.X = v.limits.Position.Max.X
	default:
		v.params.X = layout.Rescale(v.params.X, oldLimits.Horizontal(), v.limits.Horizontal())
	}
	v.params.Y = layout.Rescale(v.params.Y, oldLimits.Vertical(), v.limits.Vertical())
	return v.update()
}

// Event processes a pointer event of the view. Events are ignored
// while the view is hidden or before its first layout.
func (v *View) Event(e pointer.Event) error {
	if v.params.Hidden || !v.draggable {
		return nil
	}
	if e.Kind == pointer.Press {
		v.snap.Stop()
	}
	events := v.touch.Update(v.display.Metric, e)
	if len(events) == 0 {
		return nil
	}
	for _, te := range events {
		switch te.Type {
		case gesture.TypePress:
			if err := v.setScale(scalePressed); err != nil {
				return err
			}
			v.tracker.Follow(v.touchPosition())
			v.tracker.Start()
		case gesture.TypeDrag:
			v.tracker.Follow(v.touchPosition())
		case gesture.TypeRelease:
			v.tracker.Stop()
			if err := v.setScale(scaleNormal); err != nil {
				return err
			}
			if te.Dragged {
				if err := v.moveToEdge(true); err != nil {
					return err
				}
			}
		case gesture.TypeClick:
			v.content.Click()
		}
	}
	if v.onTouch != nil {
		return v.onTouch(v, e)
	}
	return nil
}

// SetVisible shows or hides the view. Hiding a view in the middle of
// a drag settles it on its edge without animation.
func (v *View) SetVisible(visible bool) error {
	if !visible {
		v.touch.Stop()
		v.params.Scale = scaleNormal
		if v.touch.Accepted() {
			if err := v.moveToEdge(false); err != nil {
				return err
			}
		}
		v.tracker.Stop()
	}
	if v.params.Hidden == !visible {
		return nil
	}
	v.params.Hidden = !visible
	return v.update()
}

func (v *View) setDraggable(draggable bool) {
	v.draggable = draggable && v.laidOut
}

func (v *View) setNormal() {
	v.state = StateNormal
	v.tracker.SetMode(anim.Follow)
	v.tracker.Follow(v.touchPosition())
}

func (v *View) setIntersecting(center image.Point) {
	v.state = StateIntersecting
	v.tracker.SetMode(anim.Seek)
	v.tracker.Seek(center)
}

func (v *View) setFinishing() error {
	v.state = StateFinishing
	v.tracker.Stop()
	v.snap.Stop()
	return v.SetVisible(false)
}

// moveToEdge settles the view from the pointer position onto the
// edge picked by its move direction.
func (v *View) moveToEdge(animate bool) error {
	cur := v.touchPosition()
	goal := cur
	switch v.direction {
	case MoveDefault:
		if cur.X > (v.display.Size.X-v.size.X)/2 {
			goal.X = v.limits.Position.Max.X
		} else {
			goal.X = v.limits.Position.Min.X
		}
	case MoveLeft:
		goal.X = v.limits.Position.Min.X
	case MoveRight:
		goal.X = v.limits.Position.Max.X
	}
	return v.moveTo(cur, goal, animate)
}

// moveTo moves the view to goal, clamped to its position limits. An
// animated move slides horizontally from cur and jumps vertically.
func (v *View) moveTo(cur, goal image.Point, animate bool) error {
	goal = v.limits.Clamp(goal)
	var err error
	if animate {
		v.params.Y = goal.Y
		r := v.ref
		v.snap.Start(cur.X, goal.X, func(x int) bool {
			v := r.v
			if v == nil {
				return false
			}
			v.params.X = x
			if err := v.update(); err != nil {
				log.Printf("floating: edge animation stopped: %v", err)
				return false
			}
			return true
		})
	} else if v.params.X != goal.X || v.params.Y != goal.Y {
		v.params.X, v.params.Y = goal.X, goal.Y
		err = v.update()
	}
	v.touch.Reset()
	return err
}

// touchPosition returns the view position that puts the press point
// of the view under the pointer.
func (v *View) touchPosition() image.Point {
	d := v.touch.Raw().Sub(v.touch.Local())
	return f32.Pt(d.X, float32(v.display.Size.Y-v.size.Y)-d.Y).Trunc()
}

func (v *View) setScale(s float32) error {
	if v.params.Scale == s {
		return nil
	}
	v.params.Scale = s
	return v.update()
}

func (v *View) update() error {
	if err := v.wm.Update(v); err != nil {
		return fmt.Errorf("floating: update view %q: %w", v.tag, err)
	}
	return nil
}

// release cancels everything pending for the view and clears its
// weak handle.
func (v *View) release() {
	if v.stopObserve != nil {
		v.stopObserve()
		v.stopObserve = nil
	}
	v.touch.Stop()
	v.tracker.Stop()
	v.snap.Stop()
	v.draggable = false
	v.ref.v = nil
}

func (s *subject) Position() image.Point {
	return image.Pt(s.params.X, s.params.Y)
}

func (s *subject) SetPosition(p image.Point) error {
	s.params.X, s.params.Y = p.X, p.Y
	return (*View)(s).update()
}

func (s *subject) Size() image.Point {
	return s.size
}

func (s *subject) Limits() layout.Limits {
	return s.limits
}

func (s State) String() string {
	switch s {
	case StateNormal:
		return "StateNormal"
	case StateIntersecting:
		return "StateIntersecting"
	case StateFinishing:
		return "StateFinishing"
	default:
		panic("invalid State")
	}
}
