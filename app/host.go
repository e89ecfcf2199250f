// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app hosts floating windows on a terminal.

A Host implements floating.WindowManager on a tcell.Screen. Every
terminal cell is treated as a block of pixels, so the pixel geometry
of package floating applies unchanged. Mouse events become pointer
events of the window under the mouse, and the top rows of the
terminal are a status area that disappears in fullscreen mode.

Host methods must be called from the goroutine running its Looper.
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/slices"

	"floatingview.org/floating"
	"floatingview.org/loop"
	"floatingview.org/unit"
)

// ErrNotAdded is returned for operations on a window the Host
// does not present.
var ErrNotAdded = errors.New("app: window not added")

// Host presents floating windows on a terminal screen.
type Host struct {
	screen tcell.Screen
	loop   *loop.Looper

	cell       image.Point
	metric     unit.Metric
	statusRows int
	status     string
	fullscreen bool
	keys       func(e *tcell.EventKey) bool

	// windows are sorted by increasing Z.
	windows []*window
	pointer pointerState
	dirty   bool
	quit    context.CancelFunc
}

type window struct {
	w       floating.Window
	observe func(size image.Point)
	// size is the last measured size.
	size image.Point
}

// Widget is window content the Host can measure and draw.
type Widget interface {
	floating.Content
	// Size returns the size of the widget in pixels.
	Size() image.Point
	// Label is drawn in the middle of the widget.
	Label() string
}

// Option configures a Host.
type Option func(h *Host)

// defaultWidgetSize is the size of content that is not a Widget.
var defaultWidgetSize = image.Pt(48, 48)

// NewHost returns a Host drawing on screen. The screen must be
// initialized.
func NewHost(screen tcell.Screen, l *loop.Looper, options ...Option) *Host {
	h := &Host{
		screen:     screen,
		loop:       l,
		cell:       image.Pt(8, 16),
		metric:     unit.Metric{PxPerDp: 1},
		statusRows: 1,
		status:     "floating  f fullscreen  q quit",
	}
	for _, o := range options {
		o(h)
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	return h
}

// CellSize sets the pixel size of a terminal cell.
func CellSize(w, h int) Option {
	return func(host *Host) {
		host.cell = image.Pt(w, h)
	}
}

// Density sets the pixels per dp of the Host.
func Density(pxPerDp float32) Option {
	return func(h *Host) {
		h.metric = unit.Metric{PxPerDp: pxPerDp}
	}
}

// StatusRows sets the height of the status area in rows.
func StatusRows(n int) Option {
	return func(h *Host) {
		h.statusRows = n
	}
}

// Status sets the text of the status area.
func Status(s string) Option {
	return func(h *Host) {
		h.status = s
	}
}

// Keys sets a handler for key events. Keys the handler reports
// as handled are not processed by the Host.
func Keys(f func(e *tcell.EventKey) bool) Option {
	return func(h *Host) {
		h.keys = f
	}
}

// Display implements floating.WindowManager.
func (h *Host) Display() floating.Display {
	cols, rows := h.screen.Size()
	return floating.Display{
		Size:   image.Pt(cols*h.cell.X, rows*h.cell.Y),
		Metric: h.metric,
		Inset:  h.statusRows * h.cell.Y,
	}
}

// Add implements floating.WindowManager.
func (h *Host) Add(w floating.Window) error {
	if h.lookup(w) != nil {
		return fmt.Errorf("app: window already added")
	}
	h.windows = append(h.windows, &window{w: w})
	slices.SortStableFunc(h.windows, func(a, b *window) bool {
		return a.w.LayoutParams().Z < b.w.LayoutParams().Z
	})
	h.invalidate()
	return nil
}

// Update implements floating.WindowManager.
func (h *Host) Update(w floating.Window) error {
	if h.lookup(w) == nil {
		return ErrNotAdded
	}
	h.invalidate()
	return nil
}

// Remove implements floating.WindowManager.
func (h *Host) Remove(w floating.Window) error {
	win := h.lookup(w)
	if win == nil {
		return ErrNotAdded
	}
	win.observe = nil
	i := slices.Index(h.windows, win)
	h.windows = slices.Delete(h.windows, i, i+1)
	if h.pointer.grab == win {
		h.pointer.grab = nil
	}
	h.invalidate()
	return nil
}

// Observe implements floating.WindowManager. The first layout
// happens on the next turn of the Looper.
func (h *Host) Observe(w floating.Window, f func(size image.Point)) (stop func()) {
	win := h.lookup(w)
	if win == nil {
		return func() {}
	}
	win.observe = f
	h.loop.Post(func() { h.measure(win) })
	return func() {
		win.observe = nil
	}
}

// Fullscreen reports whether the status area is hidden.
func (h *Host) Fullscreen() bool {
	return h.fullscreen
}

// SetFullscreen hides or shows the status area.
func (h *Host) SetFullscreen(fullscreen bool) {
	if h.fullscreen == fullscreen {
		return
	}
	h.fullscreen = fullscreen
	h.relayout()
	h.invalidate()
}

// Run draws the screen and processes terminal events until ctx is
// done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	h.quit = cancel
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				// The screen is finalized.
				return
			}
			h.loop.Post(func() { h.handle(ev) })
		}
	}()
	h.invalidate()
	err := h.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Quit ends Run.
func (h *Host) Quit() {
	if h.quit != nil {
		h.quit()
	}
}

func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.relayout()
		h.invalidate()
	case *tcell.EventKey:
		if h.keys != nil && h.keys(ev) {
			return
		}
		switch {
		case ev.Key() == tcell.KeyEscape && h.pointer.grab != nil:
			h.cancel()
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
			ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			h.Quit()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'f':
			h.SetFullscreen(!h.fullscreen)
		}
	case *tcell.EventMouse:
		h.mouse(ev)
	}
}

func (h *Host) lookup(w floating.Window) *window {
	for _, win := range h.windows {
		if win.w == w {
			return win
		}
	}
	return nil
}

func (h *Host) measure(win *window) {
	if win.observe == nil {
		return
	}
	win.size = h.sizeOf(win.w)
	win.observe(win.size)
}

// relayout measures every observed window again.
func (h *Host) relayout() {
	for _, win := range slices.Clone(h.windows) {
		h.measure(win)
	}
}

// sizeOf returns the laid out size of w.
func (h *Host) sizeOf(w floating.Window) image.Point {
	p := w.LayoutParams()
	d := h.Display()
	size := image.Pt(p.Width, p.Height)
	if v, ok := w.(*floating.View); ok {
		size = defaultWidgetSize
		if wd, ok := v.Content().(Widget); ok {
			size = wd.Size()
		}
	}
	if p.Width == floating.MatchParent {
		size.X = d.Size.X
	}
	if p.Height == floating.MatchParent {
		size.Y = d.Size.Y
		if !h.fullscreen {
			size.Y -= d.Inset
		}
	}
	return size
}

// bounds returns the screen rectangle of win, with the origin at
// the top-left corner of the screen.
func (h *Host) bounds(win *window) image.Rectangle {
	p := win.w.LayoutParams()
	size := win.size
	if size == (image.Point{}) {
		size = h.sizeOf(win.w)
	}
	o := image.Pt(p.X, h.Display().Size.Y-p.Y-size.Y)
	return image.Rectangle{Min: o, Max: o.Add(size)}
}
