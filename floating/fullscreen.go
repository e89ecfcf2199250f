// SPDX-License-Identifier: Unlicense OR MIT

package floating

import "image"

// probe is an invisible window spanning the display height. The
// host lays it out over the status area only when that area is
// hidden, so a probe taller than the display minus its inset means
// the display is fullscreen.
type probe struct {
	wm         WindowManager
	params     Params
	fullscreen bool
	// changed is called when the fullscreen state flips.
	changed     func(fullscreen bool)
	stopObserve func()
}

func newProbe(wm WindowManager, changed func(bool)) *probe {
	return &probe{
		wm: wm,
		params: Params{
			Width:  1,
			Height: MatchParent,
			Z:      LayerProbe,
			Flags:  FlagNotFocusable | FlagNotTouchable | FlagLayoutNoLimits,
			Scale:  1,
		},
		changed: changed,
	}
}

// LayoutParams implements Window.
func (p *probe) LayoutParams() Params {
	return p.params
}

func (p *probe) layout(size image.Point) {
	d := p.wm.Display()
	full := d.Inset > 0 && size.Y > d.Size.Y-d.Inset
	if full == p.fullscreen {
		return
	}
	p.fullscreen = full
	if p.changed != nil {
		p.changed(full)
	}
}

func (p *probe) release() {
	if p.stopObserve != nil {
		p.stopObserve()
		p.stopObserve = nil
	}
	p.fullscreen = false
}
