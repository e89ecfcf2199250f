// SPDX-License-Identifier: Unlicense OR MIT

package floating

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/exp/shiny/iconvg"
	"golang.org/x/exp/shiny/materialdesign/icons"
	xdraw "golang.org/x/image/draw"
)

var (
	trashFixedColor  = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	trashActionColor = color.RGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
)

// icon is a square trash icon, either IconVG data or a bitmap.
type icon struct {
	src   []byte
	img   image.Image
	color color.RGBA

	// Cached values.
	cache *image.RGBA
	size  int
}

func newVGIcon(data []byte, c color.RGBA) (*icon, error) {
	if _, err := iconvg.DecodeMetadata(data); err != nil {
		return nil, fmt.Errorf("floating: decode icon: %w", err)
	}
	return &icon{src: data, color: c}, nil
}

func newImageIcon(img image.Image) *icon {
	return &icon{img: img}
}

// defaultIcons returns the fixed and action icons shown by a new
// Trash.
func defaultIcons() (fixed, action *icon) {
	fixed, err := newVGIcon(icons.ActionDelete, trashFixedColor)
	if err != nil {
		panic(err)
	}
	action, err = newVGIcon(icons.ActionDeleteForever, trashActionColor)
	if err != nil {
		panic(err)
	}
	return fixed, action
}

// image returns the icon rendered into a sz by sz image.
func (ic *icon) image(sz int) *image.RGBA {
	if sz <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	if ic.cache != nil && ic.size == sz {
		return ic.cache
	}
	dst := image.NewRGBA(image.Rectangle{Max: image.Point{X: sz, Y: sz}})
	if ic.src != nil {
		m, _ := iconvg.DecodeMetadata(ic.src)
		var r iconvg.Rasterizer
		r.SetDstImage(dst, dst.Bounds(), draw.Src)
		m.Palette[0] = ic.color
		iconvg.Decode(&r, ic.src, &iconvg.DecodeOptions{
			Palette: &m.Palette,
		})
	} else {
		xdraw.CatmullRom.Scale(dst, fit(ic.img.Bounds().Size(), sz), ic.img, ic.img.Bounds(), draw.Src, nil)
	}
	ic.cache = dst
	ic.size = sz
	return dst
}

// fit centers a rectangle of the aspect ratio of src in a sz by sz
// square.
func fit(src image.Point, sz int) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 {
		return image.Rectangle{}
	}
	w, h := sz, sz
	if src.X > src.Y {
		h = sz * src.Y / src.X
	} else {
		w = sz * src.X / src.Y
	}
	o := image.Pt((sz-w)/2, (sz-h)/2)
	return image.Rectangle{Min: o, Max: o.Add(image.Pt(w, h))}
}
