// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer implements pointer events.

A touch sequence starts with a Press, is followed by zero or more
Moves and ends with a single Release or Cancel. Every event of a
sequence carries the DownTime of its Press, so handlers can tell
events of a superseded sequence apart from the current one.
*/
package pointer

import (
	"strings"
	"time"

	"floatingview.org/f32"
)

// Event is a pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// DownTime is the Time of the Press that started
	// the sequence this event belongs to.
	DownTime time.Duration
	// Position is the coordinates of the event relative to
	// the top-left corner of the receiving window.
	Position f32.Point
	// Raw is the coordinates of the event in screen space,
	// with the origin at the top-left corner of the screen.
	Raw f32.Point
}

// Kind of an Event.
type Kind uint8

// Source of an Event.
type Source uint8

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by other handlers or the system.
	Cancel Kind = 1 << iota
	// Press of a pointer.
	Press
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

// Terminal reports whether k ends a pointer sequence.
func (k Kind) Terminal() bool {
	return k&(Release|Cancel) != 0
}

func (k Kind) String() string {
	if k == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for kk := Kind(1); kk > 0; kk <<= 1 {
		if k&kk > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((k & kk).string())
		}
	}
	return buf.String()
}

func (k Kind) string() string {
	switch k {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	default:
		panic("unknown Kind")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}
