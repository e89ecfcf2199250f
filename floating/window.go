// SPDX-License-Identifier: Unlicense OR MIT

package floating

import (
	"image"
	"time"

	"floatingview.org/unit"
)

// WindowManager presents windows on the host. Its methods and the
// observer callbacks run on the Manager's loop.
type WindowManager interface {
	// Display describes the screen windows are laid out on.
	Display() Display
	// Add presents a window with its current LayoutParams.
	Add(w Window) error
	// Update moves or restyles a presented window.
	Update(w Window) error
	// Remove takes a window off the screen.
	Remove(w Window) error
	// Observe calls f with the measured size of w once w has been
	// laid out for the first time, and again whenever the size of w
	// or of the display changes. Calling stop ends the observation.
	Observe(w Window, f func(size image.Point)) (stop func())
}

// Window is a surface presented by a WindowManager: a *View, the
// *Trash or the fullscreen probe.
type Window interface {
	LayoutParams() Params
}

// Display describes a screen.
type Display struct {
	// Size of the screen in pixels.
	Size image.Point
	// Metric converts dps to pixels.
	Metric unit.Metric
	// Inset is the height of the status area at the top of the
	// screen.
	Inset int
}

// Params are the layout parameters of a window. Positions are
// offsets of the window's bottom-left corner from the screen's
// bottom-left corner, y growing upwards.
type Params struct {
	X, Y int
	// Width and Height of the window. Zero wraps the content,
	// MatchParent fills the screen.
	Width, Height int
	// Z orders windows; larger values are on top.
	Z     int
	Flags Flags
	// Hidden windows are neither drawn nor touchable.
	Hidden bool
	// Scale is the drawing scale of the window content.
	Scale float32
}

// Flags are window behaviours requested from the host.
type Flags uint8

const (
	// FlagNotFocusable windows never take key focus.
	FlagNotFocusable Flags = 1 << iota
	// FlagLayoutNoLimits windows may extend past the screen.
	FlagLayoutNoLimits
	// FlagNotTouchModal windows pass touches outside their
	// bounds to the windows behind.
	FlagNotTouchModal
	// FlagNotTouchable windows never receive touches.
	FlagNotTouchable
)

// MatchParent sizes a window to the screen.
const MatchParent = -1

// Window layers.
const (
	LayerProbe = iota
	LayerView
	LayerTrash
)

// Content is the user widget shown inside a View.
type Content interface {
	// Click is called for a tap on the view.
	Click()
	// LongClick is called when the view is held without dragging.
	LongClick()
}

// Listener is notified when views go away.
type Listener interface {
	// Finished is called with the content of a removed view.
	Finished(c Content)
	// AllFinished is called when the last view is removed.
	AllFinished()
}

// Vibrator plays a short haptic cue.
type Vibrator interface {
	Vibrate(d time.Duration)
}

// Has reports whether f contains all of flags.
func (f Flags) Has(flags Flags) bool {
	return f&flags == flags
}
