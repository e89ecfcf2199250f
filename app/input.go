// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"floatingview.org/f32"
	"floatingview.org/floating"
	"floatingview.org/io/pointer"
)

// pointerState tracks the mouse sequence in progress.
type pointerState struct {
	// grab receives the events of the sequence.
	grab     *window
	pressed  bool
	downTime time.Duration
	last     f32.Point
}

func (h *Host) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	raw := f32.Pt(
		float32(col*h.cell.X+h.cell.X/2),
		float32(row*h.cell.Y+h.cell.Y/2),
	)
	down := ev.Buttons()&tcell.Button1 != 0
	p := &h.pointer
	switch {
	case down && !p.pressed:
		p.pressed = true
		p.grab = h.hit(raw)
		p.downTime = h.loop.Now()
		h.dispatch(pointer.Press, raw)
	case down:
		if raw == p.last {
			return
		}
		h.dispatch(pointer.Move, raw)
	case p.pressed:
		h.dispatch(pointer.Release, raw)
		p.pressed = false
		p.grab = nil
	}
}

// cancel ends the current sequence.
func (h *Host) cancel() {
	h.dispatch(pointer.Cancel, h.pointer.last)
	h.pointer.pressed = false
	h.pointer.grab = nil
}

func (h *Host) dispatch(k pointer.Kind, raw f32.Point) {
	p := &h.pointer
	p.last = raw
	if p.grab == nil {
		return
	}
	v, ok := p.grab.w.(*floating.View)
	if !ok {
		return
	}
	e := pointer.Event{
		Kind:     k,
		Source:   pointer.Mouse,
		Time:     h.loop.Now(),
		DownTime: p.downTime,
		Position: raw.Sub(f32.FPt(h.bounds(p.grab).Min)),
		Raw:      raw,
	}
	if err := v.Event(e); err != nil {
		log.Printf("app: %v", err)
	}
}

// hit returns the topmost touchable window at pos.
func (h *Host) hit(pos f32.Point) *window {
	pt := image.Pt(int(pos.X), int(pos.Y))
	for i := len(h.windows) - 1; i >= 0; i-- {
		win := h.windows[i]
		p := win.w.LayoutParams()
		if p.Hidden || p.Flags.Has(floating.FlagNotTouchable) {
			continue
		}
		if pt.In(h.bounds(win)) {
			return win
		}
	}
	return nil
}
