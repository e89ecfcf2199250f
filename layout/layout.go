// SPDX-License-Identifier: Unlicense OR MIT

/*
Package layout computes the areas a floating window may occupy.

Positions are offsets of a window's bottom-left corner from the
bottom-left corner of the screen, with y growing upwards. The
rectangles of this package are inclusive: a position p is within r
when r.Min.X <= p.X <= r.Max.X and r.Min.Y <= p.Y <= r.Max.Y.
*/
package layout

import (
	"image"
	"math"
)

// Limits are the areas a window position may range over.
type Limits struct {
	// Move bounds the position while it follows a pointer. It
	// extends past the screen so a dragged window can overshoot
	// the edges.
	Move image.Rectangle
	// Position bounds the settled position of the window.
	Position image.Rectangle
}

// Constraint is a range of acceptable values in a single
// dimension.
type Constraint struct {
	Min, Max int
}

// ComputeLimits returns the limits of a window of the given size on a
// screen of the given size. overMargin is how far the settled window
// may hang past the left and right edges; inset is the height of the
// status area at the top of the screen that a settled window must not
// cover.
//
// The position rectangle is canonical even for a window larger than the
// screen, and the move rectangle always contains it.
func ComputeLimits(screen, size image.Point, overMargin, inset int) Limits {
	move := image.Rectangle{
		Min: image.Pt(-size.X, -size.Y*2),
		Max: image.Pt(screen.X+size.X, screen.Y+size.Y),
	}
	pos := image.Rectangle{
		Min: image.Pt(-overMargin, 0),
		Max: image.Pt(screen.X-size.X+overMargin, screen.Y-inset-size.Y),
	}
	if pos.Max.X < pos.Min.X {
		pos.Max.X = pos.Min.X
	}
	if pos.Max.Y < pos.Min.Y {
		pos.Max.Y = pos.Min.Y
	}
	return Limits{
		Move:     union(move, pos),
		Position: pos,
	}
}

// Clamp p into the position rectangle.
func (l Limits) Clamp(p image.Point) image.Point {
	return clamp(l.Position, p)
}

// ClampMove clamps p into the move rectangle.
func (l Limits) ClampMove(p image.Point) image.Point {
	return clamp(l.Move, p)
}

// Horizontal returns the horizontal range of the position rectangle.
func (l Limits) Horizontal() Constraint {
	return Constraint{Min: l.Position.Min.X, Max: l.Position.Max.X}
}

// Vertical returns the vertical range of the position rectangle.
func (l Limits) Vertical() Constraint {
	return Constraint{Min: l.Position.Min.Y, Max: l.Position.Max.Y}
}

// Constrain a value to the range [Min; Max].
func (c Constraint) Constrain(v int) int {
	if v < c.Min {
		return c.Min
	} else if v > c.Max {
		return c.Max
	}
	return v
}

// Len returns the length of the range.
func (c Constraint) Len() int {
	return c.Max - c.Min
}

// Rescale maps v from its relative place in the old range onto the
// new range, rounding half up. The result is constrained to the new
// range. A value in an empty old range is only constrained.
func Rescale(v int, old, new Constraint) int {
	if old.Len() <= 0 {
		return new.Constrain(v)
	}
	rel := float64(v-old.Min) / float64(old.Len())
	r := new.Min + int(math.Floor(rel*float64(new.Len())+.5))
	return new.Constrain(r)
}

// union is like image.Rectangle.Union for inclusive rectangles, where
// a rectangle with Min == Max still holds a point.
func union(r, s image.Rectangle) image.Rectangle {
	if r.Min.X > s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y > s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X < s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y < s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

func clamp(r image.Rectangle, p image.Point) image.Point {
	return image.Point{
		X: Constraint{Min: r.Min.X, Max: r.Max.X}.Constrain(p.X),
		Y: Constraint{Min: r.Min.Y, Max: r.Max.Y}.Constrain(p.Y),
	}
}
