// SPDX-License-Identifier: Unlicense OR MIT

// Command floating shows draggable widgets floating over a terminal.
// Drag a widget to move it, release it to let it settle on an edge,
// or drop it on the trash to remove it.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"floatingview.org/app"
	"floatingview.org/floating"
	"floatingview.org/loop"
)

var (
	configPath = flag.String("config", "", "read settings from the TOML file at `path`")
	logPath    = flag.String("log", "", "write the log to `path`")
	noTrash    = flag.Bool("notrash", false, "disable the trash")
	haptics    = flag.Bool("haptics", false, "buzz when a widget enters the trash")
	mode       = flag.String("mode", "", "display mode (hide-fullscreen, show-always, hide-always)")
)

const mainUsage = `Floating shows draggable widgets floating over the terminal.

Usage:

	floating [flags]

Keys:

	a	attach a widget
	t	toggle the trash
	m	cycle display modes
	f	toggle fullscreen
	q	quit

Flags:

`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "floating: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}
	conf, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *mode != "" {
		if err := conf.DisplayMode.UnmarshalText([]byte(*mode)); err != nil {
			return err
		}
	}
	if *noTrash {
		conf.Trash = false
	}
	if *haptics {
		conf.Haptics = true
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	s := &session{conf: conf, loop: loop.New()}
	s.host = app.NewHost(screen, s.loop, app.StatusRows(conf.InsetRows), app.Keys(s.key))
	opts := []floating.Option{floating.WithLongPressTimeout(conf.longPress())}
	if conf.Haptics {
		b, err := app.NewBuzzer()
		if err != nil {
			log.Printf("floating: haptics disabled: %v", err)
		} else {
			defer b.Close()
			opts = append(opts, floating.WithVibrator(b))
		}
	}
	s.m = floating.NewManager(s.loop, s.host, s, opts...)
	if err := s.m.SetDisplayMode(conf.DisplayMode); err != nil {
		return err
	}
	if err := s.m.SetTrashEnabled(conf.Trash); err != nil {
		return err
	}
	for _, w := range conf.Widgets {
		if err := s.attach(w); err != nil {
			return err
		}
	}
	return s.host.Run(context.Background())
}

// session is the state of a running command.
type session struct {
	conf *config
	loop *loop.Looper
	host *app.Host
	m    *floating.Manager
	// attached counts the widgets attached so far.
	attached int
}

func (s *session) attach(w widgetConfig) error {
	s.attached++
	if w.Label == "" {
		w.Label = fmt.Sprint(s.attached)
	}
	_, err := s.m.Attach(&widget{label: w.Label, size: image.Pt(w.Width, w.Height)}, w.options(), w.Label)
	return err
}

func (s *session) key(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}
	var err error
	switch ev.Rune() {
	case 'a':
		err = s.attach(defaultWidget(""))
	case 't':
		err = s.m.SetTrashEnabled(!s.m.TrashEnabled())
	case 'm':
		err = s.m.SetDisplayMode((s.m.DisplayMode() + 1) % (floating.HideAlways + 1))
	default:
		return false
	}
	if err != nil {
		log.Printf("floating: %v", err)
	}
	return true
}

// Finished implements floating.Listener.
func (s *session) Finished(c floating.Content) {
	log.Printf("floating: %s removed", c.(*widget).label)
}

// AllFinished implements floating.Listener.
func (s *session) AllFinished() {
	s.host.Quit()
}

// widget is a labelled box counting its clicks.
type widget struct {
	label  string
	size   image.Point
	clicks int
}

func (w *widget) Click() {
	w.clicks++
}

func (w *widget) LongClick() {
	w.clicks = 0
}

func (w *widget) Size() image.Point {
	return w.size
}

func (w *widget) Label() string {
	if w.clicks == 0 {
		return w.label
	}
	return fmt.Sprintf("%s %d", w.label, w.clicks)
}
