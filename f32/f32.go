// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 is a float32 implementation of package image's
Point.

Touch coordinates are reported by hosts in fractional pixels;
the coordinate space has the origin in the top left corner with
the axes extending right and down.
*/
package f32

import (
	"image"
	"strconv"
)

// A Point is a two dimensional point.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// FPt converts an integer point to a Point.
func FPt(p image.Point) Point {
	return Point{X: float32(p.X), Y: float32(p.Y)}
}

// String return a string representation of p.
func (p Point) String() string {
	return "(" + strconv.FormatFloat(float64(p.X), 'f', -1, 32) +
		"," + strconv.FormatFloat(float64(p.Y), 'f', -1, 32) + ")"
}

// Sub returns the vector p-p2.
func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// Abs returns the component-wise absolute value of p.
func (p Point) Abs() Point {
	return Point{X: abs(p.X), Y: abs(p.Y)}
}

// Trunc returns p with both components truncated toward zero.
func (p Point) Trunc() image.Point {
	return image.Point{X: int(p.X), Y: int(p.Y)}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
