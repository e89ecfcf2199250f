// SPDX-License-Identifier: Unlicense OR MIT

package floating

import (
	"errors"
	"image"
	"time"

	"floatingview.org/f32"
	"floatingview.org/io/pointer"
	"floatingview.org/unit"
)

// fakeWM is a WindowManager that lays windows out only when told.
type fakeWM struct {
	display   Display
	windows   []Window
	observers map[Window]func(image.Point)
	updates   int
	failAdd   error
}

func newFakeWM() *fakeWM {
	return &fakeWM{
		display: Display{
			Size:   image.Pt(1000, 2000),
			Metric: unit.Metric{PxPerDp: 1},
			Inset:  50,
		},
		observers: make(map[Window]func(image.Point)),
	}
}

func (w *fakeWM) Display() Display {
	return w.display
}

func (w *fakeWM) Add(win Window) error {
	if w.failAdd != nil {
		return w.failAdd
	}
	if w.index(win) != -1 {
		return errors.New("window already added")
	}
	w.windows = append(w.windows, win)
	return nil
}

func (w *fakeWM) Update(win Window) error {
	if w.index(win) == -1 {
		return errors.New("window not added")
	}
	w.updates++
	return nil
}

func (w *fakeWM) Remove(win Window) error {
	i := w.index(win)
	if i == -1 {
		return errors.New("window not added")
	}
	w.windows = append(w.windows[:i], w.windows[i+1:]...)
	return nil
}

func (w *fakeWM) Observe(win Window, f func(image.Point)) func() {
	w.observers[win] = f
	return func() {
		delete(w.observers, win)
	}
}

func (w *fakeWM) index(win Window) int {
	for i, x := range w.windows {
		if x == win {
			return i
		}
	}
	return -1
}

// measure lays win out at size.
func (w *fakeWM) measure(win Window, size image.Point) {
	if f := w.observers[win]; f != nil {
		f(size)
	}
}

type fakeContent struct {
	clicks, longClicks int
}

func (c *fakeContent) Click()     { c.clicks++ }
func (c *fakeContent) LongClick() { c.longClicks++ }

type fakeListener struct {
	finished    []Content
	allFinished int
}

func (l *fakeListener) Finished(c Content) { l.finished = append(l.finished, c) }
func (l *fakeListener) AllFinished()       { l.allFinished++ }

type fakeVibrator struct {
	vibrations []time.Duration
}

func (v *fakeVibrator) Vibrate(d time.Duration) { v.vibrations = append(v.vibrations, d) }

// touch builds pointer events of a sequence pressed at down, with
// the pointer at local in the pressed window.
type touch struct {
	down  time.Duration
	local f32.Point
}

func (t touch) event(k pointer.Kind, raw f32.Point) pointer.Event {
	return pointer.Event{
		Kind:     k,
		Source:   pointer.Touch,
		DownTime: t.down,
		Position: t.local,
		Raw:      raw,
	}
}
