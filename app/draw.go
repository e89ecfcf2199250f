// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"floatingview.org/floating"
)

var (
	styleView      = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorWhite)
	stylePressed   = tcell.StyleDefault.Background(tcell.ColorDarkCyan).Foreground(tcell.ColorWhite)
	styleOverTrash = tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite)
	styleStatus    = tcell.StyleDefault.Reverse(true)
)

// alphaThreshold is the least coverage of a cell drawn for an
// icon.
const alphaThreshold = 0x40

// invalidate schedules a redraw.
func (h *Host) invalidate() {
	if h.dirty {
		return
	}
	h.dirty = true
	h.loop.Post(h.draw)
}

func (h *Host) draw() {
	h.dirty = false
	h.screen.Clear()
	for _, win := range h.windows {
		if win.w.LayoutParams().Hidden {
			continue
		}
		switch w := win.w.(type) {
		case *floating.View:
			h.drawView(win, w)
		case *floating.Trash:
			h.drawTrash(win, w)
		}
	}
	if !h.fullscreen {
		h.drawStatus()
	}
	h.screen.Show()
}

func (h *Host) drawView(win *window, v *floating.View) {
	style := styleView
	switch {
	case v.State() != floating.StateNormal:
		style = styleOverTrash
	case v.LayoutParams().Scale < 1:
		style = stylePressed
	}
	cells := h.cells(h.bounds(win))
	for y := cells.Min.Y; y < cells.Max.Y; y++ {
		for x := cells.Min.X; x < cells.Max.X; x++ {
			h.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	label := ""
	if wd, ok := v.Content().(Widget); ok {
		label = wd.Label()
	}
	runes := []rune(label)
	if len(runes) > cells.Dx() {
		runes = runes[:cells.Dx()]
	}
	x := cells.Min.X + (cells.Dx()-len(runes))/2
	y := cells.Min.Y + cells.Dy()/2
	for i, r := range runes {
		h.screen.SetContent(x+i, y, r, nil, style)
	}
}

// drawTrash rasterizes the trash icon onto the cell grid, one
// block per cell covered enough by the icon.
func (h *Host) drawTrash(win *window, t *floating.Trash) {
	icon := t.Icon()
	b := h.bounds(win)
	sz := icon.Bounds().Size()
	o := b.Min.Add(b.Size().Sub(sz).Div(2))
	cells := h.cells(image.Rectangle{Min: o, Max: o.Add(sz)})
	if cells.Empty() {
		return
	}
	grid := image.NewNRGBA(image.Rectangle{Max: cells.Size()})
	xdraw.ApproxBiLinear.Scale(grid, grid.Bounds(), icon, icon.Bounds(), xdraw.Src, nil)
	alpha := t.Alpha()
	for y := 0; y < cells.Dy(); y++ {
		for x := 0; x < cells.Dx(); x++ {
			c := grid.NRGBAAt(x, y)
			if float32(c.A)*alpha < alphaThreshold {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			h.screen.SetContent(cells.Min.X+x, cells.Min.Y+y, '█', nil, style)
		}
	}
}

func (h *Host) drawStatus() {
	cols, _ := h.screen.Size()
	text := []rune(h.status)
	for y := 0; y < h.statusRows; y++ {
		for x := 0; x < cols; x++ {
			r := ' '
			if y == 0 && x < len(text) {
				r = text[x]
			}
			h.screen.SetContent(x, y, r, nil, styleStatus)
		}
	}
}

// cells returns the cells covering the pixel rectangle r.
func (h *Host) cells(r image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(floorDiv(r.Min.X, h.cell.X), floorDiv(r.Min.Y, h.cell.Y)),
		Max: image.Pt(ceilDiv(r.Max.X, h.cell.X), ceilDiv(r.Max.Y, h.cell.Y)),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
