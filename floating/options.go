// SPDX-License-Identifier: Unlicense OR MIT

package floating

import (
	"fmt"
	"math"
)

// Unset marks an Options coordinate without an explicit value.
const Unset = math.MinInt

const (
	// ShapeCircle is the shape of a round view.
	ShapeCircle float32 = 1.0
	// ShapeRectangle is the shape of a square view; the trash
	// action area grows by the ratio of its diagonal.
	ShapeRectangle float32 = 1.4142
)

// Options configure an attached view. Start from DefaultOptions:
// the zero Options is an explicit position at (0, 0), so the view
// starts in the bottom left corner and settles where it is released.
type Options struct {
	// Shape is ShapeCircle, ShapeRectangle or a ratio between.
	// Zero means ShapeCircle.
	Shape float32
	// OverMargin is how far, in pixels, a settled view may
	// hang past the left and right screen edges. It must not be
	// negative.
	OverMargin int
	// X and Y are the initial position of the view. Setting
	// either forces MoveNone. An Unset coordinate of an explicit
	// position is clamped to the bottom or left limit.
	X, Y int
	// MoveDirection selects the edge a released view settles on.
	MoveDirection MoveDirection
}

// MoveDirection is the edge policy of a released view.
type MoveDirection uint8

// DisplayMode controls when views are shown.
type DisplayMode uint8

const (
	// MoveDefault settles on the nearest of the left and right edges.
	MoveDefault MoveDirection = iota
	// MoveLeft always settles on the left edge.
	MoveLeft
	// MoveRight always settles on the right edge.
	MoveRight
	// MoveNone settles where the view was released.
	MoveNone
)

const (
	// HideFullscreen hides views while the host is fullscreen.
	HideFullscreen DisplayMode = iota
	// ShowAlways always shows views.
	ShowAlways
	// HideAlways never shows views.
	HideAlways
)

// DefaultOptions returns the options of a round view that snaps
// to the nearest edge.
func DefaultOptions() Options {
	return Options{
		Shape:         ShapeCircle,
		X:             Unset,
		Y:             Unset,
		MoveDirection: MoveDefault,
	}
}

// explicit reports whether o sets an initial position.
func (o Options) explicit() bool {
	return o.X != Unset || o.Y != Unset
}

func (d MoveDirection) String() string {
	switch d {
	case MoveDefault:
		return "default"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveNone:
		return "none"
	default:
		panic("invalid MoveDirection")
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *MoveDirection) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "default", "":
		*d = MoveDefault
	case "left":
		*d = MoveLeft
	case "right":
		*d = MoveRight
	case "none":
		*d = MoveNone
	default:
		return fmt.Errorf("floating: unknown move direction %q", s)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d MoveDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (m DisplayMode) String() string {
	switch m {
	case HideFullscreen:
		return "hide-fullscreen"
	case ShowAlways:
		return "show-always"
	case HideAlways:
		return "hide-always"
	default:
		panic("invalid DisplayMode")
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DisplayMode) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "hide-fullscreen", "":
		*m = HideFullscreen
	case "show-always":
		*m = ShowAlways
	case "hide-always":
		*m = HideAlways
	default:
		return fmt.Errorf("floating: unknown display mode %q", s)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m DisplayMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
