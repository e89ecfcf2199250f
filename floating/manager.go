// SPDX-License-Identifier: Unlicense OR MIT

/*
Package floating implements draggable windows that float over other
applications.

A Manager attaches Content to View windows presented by a
WindowManager. Views follow the pointer while dragged, settle on a
display edge when released and are removed when dropped on the
Trash at the bottom of the display.

All Manager and View methods, and the callbacks of Content, Listener
and Vibrator, run on the Manager's loop.Looper.
*/
package floating

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"golang.org/x/exp/slices"

	"floatingview.org/gesture"
	"floatingview.org/io/pointer"
	"floatingview.org/loop"
)

// vibrateDuration is the haptic cue of a view entering the trash.
const vibrateDuration = 15 * time.Millisecond

// Manager coordinates the views, the trash and the fullscreen
// probe of a WindowManager.
type Manager struct {
	loop      *loop.Looper
	wm        WindowManager
	listener  Listener
	vibrator  Vibrator
	longPress time.Duration

	views  []*View
	target *View
	// rect is the rectangle of the target at its last move.
	rect  image.Rectangle
	trash *Trash
	probe *probe
	// moveAccepted is set while a view is in a touch sequence.
	moveAccepted bool
	mode         DisplayMode
	// presented is set while the probe and the trash are added.
	presented bool
}

// Option configures a Manager.
type Option func(m *Manager)

// WithVibrator sets the haptic feedback of a Manager.
func WithVibrator(v Vibrator) Option {
	return func(m *Manager) {
		m.vibrator = v
	}
}

// WithLongPressTimeout sets the long press threshold of the host.
func WithLongPressTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.longPress = d
	}
}

// NewManager returns a Manager presenting windows on wm. The
// listener is told when views are removed.
func NewManager(l *loop.Looper, wm WindowManager, listener Listener, opts ...Option) *Manager {
	m := &Manager{
		loop:      l,
		wm:        wm,
		listener:  listener,
		longPress: gesture.DefaultLongPressTimeout,
	}
	for _, o := range opts {
		o(m)
	}
	m.trash = newTrash(l, wm, m.longPress)
	m.trash.started = m.trashAnimationStarted
	m.trash.ended = m.trashAnimationEnded
	m.probe = newProbe(wm, m.OnScreenChanged)
	return m
}

// Attach presents content in a new View.
func (m *Manager) Attach(content Content, opts Options, tag string) (*View, error) {
	first := len(m.views) == 0
	v := newView(m.loop, m.wm, content, opts, tag, m.longPress)
	v.onTouch = m.onTouch
	v.onLayout = m.viewLaidOut
	if m.mode == HideAlways || m.mode == HideFullscreen && m.probe.fullscreen {
		v.params.Hidden = true
	}
	if err := m.wm.Add(v); err != nil {
		v.release()
		return nil, fmt.Errorf("floating: attach %q: %w", tag, err)
	}
	m.views = append(m.views, v)
	v.stopObserve = m.wm.Observe(v, v.layout)
	if !first {
		return v, nil
	}
	m.target = v
	if err := m.present(); err != nil {
		m.views = m.views[:0]
		m.target = nil
		v.release()
		return nil, errors.Join(err, m.wm.Remove(v))
	}
	return v, nil
}

// present adds the probe and the trash with the first view.
func (m *Manager) present() error {
	if err := m.wm.Add(m.probe); err != nil {
		return fmt.Errorf("floating: add fullscreen probe: %w", err)
	}
	m.probe.stopObserve = m.wm.Observe(m.probe, m.probe.layout)
	m.trash.display = m.wm.Display()
	m.trash.place()
	if err := m.wm.Add(m.trash); err != nil {
		m.probe.release()
		return errors.Join(fmt.Errorf("floating: add trash: %w", err), m.wm.Remove(m.probe))
	}
	m.trash.added = true
	m.trash.stopObserve = m.wm.Observe(m.trash, m.trash.layout)
	m.presented = true
	return nil
}

// Detach removes v as if it had been dropped on the trash. Removing
// the last view also removes the trash and the probe.
func (m *Manager) Detach(v *View) error {
	return m.remove(v)
}

// DetachAll removes every window of the Manager without notifying
// the listener.
func (m *Manager) DetachAll() error {
	var errs []error
	if m.presented {
		m.presented = false
		m.trash.release()
		m.probe.release()
		errs = append(errs, m.wm.Remove(m.trash), m.wm.Remove(m.probe))
	}
	for _, v := range m.views {
		v.release()
		errs = append(errs, m.wm.Remove(v))
	}
	m.views = nil
	m.target = nil
	m.moveAccepted = false
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("floating: detach all: %w", err)
	}
	return nil
}

// remove takes v off the screen and notifies the listener.
func (m *Manager) remove(v *View) error {
	i := slices.Index(m.views, v)
	if i == -1 {
		return nil
	}
	m.views = slices.Delete(m.views, i, i+1)
	v.release()
	err := m.wm.Remove(v)
	if m.target == v {
		m.target = nil
		m.moveAccepted = false
		if len(m.views) > 0 {
			m.target = m.views[0]
		}
	}
	if m.listener != nil {
		m.listener.Finished(v.content)
	}
	if len(m.views) == 0 {
		if m.listener != nil {
			m.listener.AllFinished()
		}
		err = errors.Join(err, m.DetachAll())
	}
	if err != nil {
		return fmt.Errorf("floating: detach %q: %w", v.tag, err)
	}
	return nil
}

// Views returns the attached views in attach order.
func (m *Manager) Views() []*View {
	return slices.Clone(m.views)
}

// Trash returns the drop target of the Manager.
func (m *Manager) Trash() *Trash {
	return m.trash
}

// DisplayMode returns the visibility policy of the views.
func (m *Manager) DisplayMode() DisplayMode {
	return m.mode
}

// SetDisplayMode sets the visibility policy of the views.
func (m *Manager) SetDisplayMode(mode DisplayMode) error {
	m.mode = mode
	var errs []error
	switch mode {
	case ShowAlways, HideFullscreen:
		for _, v := range m.views {
			errs = append(errs, v.SetVisible(true))
		}
	case HideAlways:
		for _, v := range m.views {
			errs = append(errs, v.SetVisible(false))
		}
		errs = append(errs, m.trash.dismiss())
	}
	return errors.Join(errs...)
}

// SetTrashEnabled enables or disables the trash.
func (m *Manager) SetTrashEnabled(enabled bool) error {
	return m.trash.SetEnabled(enabled)
}

// TrashEnabled reports whether views can be dropped on the trash.
func (m *Manager) TrashEnabled() bool {
	return m.trash.Enabled()
}

// SetTrashIcons replaces the icons of the trash. fixed is shown
// while dragging, action while a view is over the trash. A nil
// image keeps the current icon.
func (m *Manager) SetTrashIcons(fixed, action image.Image) {
	m.trash.SetIcons(fixed, action)
}

// OnScreenChanged applies the HideFullscreen policy. Views are
// hidden while the display is fullscreen, and a view over the trash
// is removed.
func (m *Manager) OnScreenChanged(fullscreen bool) {
	if m.mode != HideFullscreen || m.target == nil {
		return
	}
	m.moveAccepted = false
	var errs []error
	switch m.target.state {
	case StateNormal:
		for _, v := range m.views {
			errs = append(errs, v.SetVisible(!fullscreen))
		}
		errs = append(errs, m.trash.dismiss())
	case StateIntersecting:
		errs = append(errs, m.target.setFinishing())
		errs = append(errs, m.trash.dismiss())
	}
	if err := errors.Join(errs...); err != nil {
		log.Printf("floating: screen change: %v", err)
	}
}

// onTouch coordinates the views and the trash for the pointer
// events of v.
func (m *Manager) onTouch(v *View, e pointer.Event) error {
	if e.Kind != pointer.Press && !m.moveAccepted {
		return nil
	}
	if m.target == nil {
		m.target = v
	}
	state := m.target.state
	m.target = v
	var errs []error
	switch {
	case e.Kind == pointer.Press:
		m.moveAccepted = true
	case e.Kind == pointer.Move:
		hit := m.intersects()
		was := state == StateIntersecting
		if hit {
			v.setIntersecting(m.trash.Center())
		}
		switch {
		case hit && !was:
			if m.vibrator != nil {
				m.vibrator.Vibrate(vibrateDuration)
			}
			errs = append(errs, m.trash.setScaled(true))
		case !hit && was:
			v.setNormal()
			errs = append(errs, m.trash.setScaled(false))
		}
	case e.Kind.Terminal():
		if state == StateIntersecting {
			errs = append(errs, v.setFinishing(), m.trash.setScaled(false))
		}
		m.moveAccepted = false
	}
	if state == StateIntersecting {
		m.trash.onTouchFloatingView(e.Kind, m.rect.Min.X, m.rect.Min.Y)
	} else {
		m.trash.onTouchFloatingView(e.Kind, v.params.X, v.params.Y)
	}
	return errors.Join(errs...)
}

// intersects reports whether the target is over the shown trash.
func (m *Manager) intersects() bool {
	m.rect = m.target.Rect()
	if !m.trash.Enabled() || !m.trash.Open() {
		return false
	}
	return m.rect.Overlaps(m.trash.Rect())
}

// viewLaidOut fits the trash to the first view laid out.
func (m *Manager) viewLaidOut(v *View) {
	if err := m.trash.fitPadding(v.size, v.shape); err != nil {
		log.Printf("floating: %v", err)
	}
}

func (m *Manager) trashAnimationStarted(a TrashAnimation) {
	if a == TrashClose || a == TrashForceClose {
		for _, v := range m.views {
			v.setDraggable(false)
		}
	}
}

func (m *Manager) trashAnimationEnded(TrashAnimation) {
	if t := m.target; t != nil && t.state == StateFinishing {
		if err := m.remove(t); err != nil {
			log.Printf("floating: %v", err)
		}
	}
	for _, v := range m.views {
		v.setDraggable(true)
	}
}
