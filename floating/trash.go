// SPDX-License-Identifier: Unlicense OR MIT

package floating

import (
	"fmt"
	"image"
	"log"
	"time"

	"floatingview.org/internal/anim"
	"floatingview.org/io/pointer"
	"floatingview.org/loop"
	"floatingview.org/unit"
)

// TrashAnimation identifies an animation of the Trash.
type TrashAnimation uint8

const (
	TrashNone TrashAnimation = iota
	// TrashOpen slides the trash icon up into view.
	TrashOpen
	// TrashClose slides the trash icon out of view.
	TrashClose
	// TrashForceClose hides the trash icon at once.
	TrashForceClose
)

const (
	trashIconSize = unit.Dp(64)
	trashMargin   = unit.Dp(32)
	// trashLean is the divisor of the horizontal distance
	// between the dragged view and the trash that the trash
	// leans by.
	trashLean = 4

	progressOpen = 1000
)

// Trash is the drop target at the bottom of the display.
type Trash struct {
	wm        WindowManager
	loop      *loop.Looper
	longPress time.Duration

	params  Params
	display Display
	added   bool
	enabled bool
	scaled  bool
	// padding grows the icon into the action area.
	padding    int
	hasPadding bool
	lean       int
	progress   int
	animation  TrashAnimation
	tween      anim.Tween
	openTimer  *loop.Timer

	fixed, action *icon

	started, ended func(TrashAnimation)
	stopObserve    func()
}

func newTrash(l *loop.Looper, wm WindowManager, longPress time.Duration) *Trash {
	fixed, action := defaultIcons()
	t := &Trash{
		wm:        wm,
		loop:      l,
		longPress: longPress,
		enabled:   true,
		display:   wm.Display(),
		fixed:     fixed,
		action:    action,
		params: Params{
			Z:      LayerTrash,
			Flags:  FlagNotFocusable | FlagNotTouchable | FlagLayoutNoLimits,
			Hidden: true,
			Scale:  1,
		},
	}
	t.tween = anim.Tween{
		Loop:     l,
		Duration: anim.CaptureDuration,
		Curve:    anim.Capture,
		Done:     t.animationEnded,
	}
	t.place()
	return t
}

// LayoutParams implements Window.
func (t *Trash) LayoutParams() Params {
	return t.params
}

// Enabled reports whether the trash accepts views.
func (t *Trash) Enabled() bool {
	return t.enabled
}

// Open reports whether the trash is shown.
func (t *Trash) Open() bool {
	return t.progress > 0
}

// Animation returns the last animation started.
func (t *Trash) Animation() TrashAnimation {
	return t.animation
}

// Scaled reports whether the action icon is shown.
func (t *Trash) Scaled() bool {
	return t.scaled
}

// Alpha returns the opacity of the trash between 0 and 1.
func (t *Trash) Alpha() float32 {
	a := float32(t.progress) / progressOpen
	switch {
	case a < 0:
		return 0
	case a > 1:
		return 1
	}
	return a
}

// Icon returns the current trash icon, sized for the
// trash window.
func (t *Trash) Icon() image.Image {
	if t.scaled {
		return t.action.image(t.size())
	}
	return t.fixed.image(t.iconSize())
}

// Center returns the center of the action area.
func (t *Trash) Center() image.Point {
	r := t.Rect()
	return r.Min.Add(r.Size().Div(2))
}

// Rect returns the action area of the trash at its current place
// in the open or close animation: the icon grown by the padding
// fitted to the floating views.
func (t *Trash) Rect() image.Rectangle {
	r := t.openRect()
	return r.Add(image.Pt(0, t.params.Y-r.Min.Y))
}

// openRect returns the action area of the fully open trash.
func (t *Trash) openRect() image.Rectangle {
	sz := t.size()
	o := image.Point{
		X: (t.display.Size.X-sz)/2 + t.lean,
		Y: t.display.Metric.Dp(trashMargin),
	}
	return image.Rectangle{Min: o, Max: o.Add(image.Pt(sz, sz))}
}

func (t *Trash) iconSize() int {
	return t.display.Metric.Dp(trashIconSize)
}

func (t *Trash) size() int {
	return t.iconSize() + 2*t.padding
}

// fitPadding sizes the action area to a floating view.
func (t *Trash) fitPadding(size image.Point, shape float32) error {
	if t.hasPadding {
		return nil
	}
	t.hasPadding = true
	m := size.X
	if size.Y > m {
		m = size.Y
	}
	t.padding = (int(float32(m)*shape) - t.iconSize()) / 2
	if t.padding < 0 {
		t.padding = 0
	}
	t.place()
	return t.update()
}

// layout follows display changes.
func (t *Trash) layout(image.Point) {
	t.display = t.wm.Display()
	t.place()
	if err := t.update(); err != nil {
		log.Printf("floating: %v", err)
	}
}

// place positions the trash window by the animation progress.
func (t *Trash) place() {
	r := t.openRect()
	sz := r.Dx()
	closed := -sz
	t.params.Width, t.params.Height = sz, sz
	t.params.X = r.Min.X
	t.params.Y = closed + (r.Min.Y-closed)*t.progress/progressOpen
	t.params.Hidden = t.progress <= 0
}

// SetEnabled enables or disables the trash. A disabled trash is
// dismissed and stays closed.
func (t *Trash) SetEnabled(enabled bool) error {
	if t.enabled == enabled {
		return nil
	}
	t.enabled = enabled
	if !enabled {
		return t.dismiss()
	}
	return nil
}

// SetIcons replaces the fixed and action icons. A nil image keeps
// the current icon.
func (t *Trash) SetIcons(fixed, action image.Image) {
	if fixed != nil {
		t.fixed = newImageIcon(fixed)
	}
	if action != nil {
		t.action = newImageIcon(action)
	}
}

func (t *Trash) setScaled(scaled bool) error {
	if t.scaled == scaled {
		return nil
	}
	t.scaled = scaled
	return t.update()
}

// onTouchFloatingView drives the open and close animations from
// the pointer events of the dragged view at x, y.
func (t *Trash) onTouchFloatingView(kind pointer.Kind, x, y int) {
	if !t.enabled {
		return
	}
	t.lean = (x - (t.display.Size.X-t.size())/2) / trashLean
	if lim := t.display.Metric.Dp(trashMargin); t.lean > lim {
		t.lean = lim
	} else if t.lean < -lim {
		t.lean = -lim
	}
	switch kind {
	case pointer.Press:
		t.openTimer.Stop()
		t.openTimer = t.loop.AfterFunc(t.longPress, func() {
			t.openTimer = nil
			t.start(TrashOpen)
		})
	case pointer.Move:
		if t.animation != TrashOpen {
			t.openTimer.Stop()
			t.openTimer = nil
			t.start(TrashOpen)
		}
	case pointer.Release, pointer.Cancel:
		t.openTimer.Stop()
		t.openTimer = nil
		t.start(TrashClose)
	}
}

func (t *Trash) start(a TrashAnimation) {
	t.animation = a
	if t.started != nil {
		t.started(a)
	}
	goal := 0
	if a == TrashOpen {
		goal = progressOpen
	}
	t.tween.Start(t.progress, goal, func(v int) bool {
		t.progress = v
		t.place()
		if err := t.update(); err != nil {
			log.Printf("floating: trash animation stopped: %v", err)
			return false
		}
		return true
	})
}

func (t *Trash) animationEnded() {
	if t.ended != nil {
		t.ended(t.animation)
	}
}

// dismiss closes the trash without animation.
func (t *Trash) dismiss() error {
	t.openTimer.Stop()
	t.openTimer = nil
	t.tween.Stop()
	t.animation = TrashForceClose
	if t.started != nil {
		t.started(TrashForceClose)
	}
	t.progress = 0
	t.scaled = false
	t.place()
	err := t.update()
	if t.ended != nil {
		t.ended(TrashForceClose)
	}
	return err
}

func (t *Trash) update() error {
	if !t.added {
		return nil
	}
	if err := t.wm.Update(t); err != nil {
		return fmt.Errorf("floating: update trash: %w", err)
	}
	return nil
}

// release cancels pending animations of a removed trash.
func (t *Trash) release() {
	if t.stopObserve != nil {
		t.stopObserve()
		t.stopObserve = nil
	}
	t.openTimer.Stop()
	t.openTimer = nil
	t.tween.Stop()
	t.added = false
	t.progress = 0
	t.animation = TrashNone
	t.scaled = false
	t.lean = 0
	// The next first view fits the action area again.
	t.padding, t.hasPadding = 0, false
	t.place()
}

func (a TrashAnimation) String() string {
	switch a {
	case TrashNone:
		return "TrashNone"
	case TrashOpen:
		return "TrashOpen"
	case TrashClose:
		return "TrashClose"
	case TrashForceClose:
		return "TrashForceClose"
	default:
		panic("invalid TrashAnimation")
	}
}
