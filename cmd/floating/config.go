// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"floatingview.org/floating"
)

type config struct {
	DisplayMode floating.DisplayMode `toml:"display_mode"`
	Trash       bool                 `toml:"trash"`
	LongPressMS int                  `toml:"long_press_ms"`
	InsetRows   int                  `toml:"inset_rows"`
	Haptics     bool                 `toml:"haptics"`
	Widgets     []widgetConfig       `toml:"widget"`
}

type widgetConfig struct {
	Label      string                 `toml:"label"`
	Width      int                    `toml:"width"`
	Height     int                    `toml:"height"`
	Shape      string                 `toml:"shape"`
	OverMargin int                    `toml:"over_margin"`
	X          *int                   `toml:"x"`
	Y          *int                   `toml:"y"`
	Direction  floating.MoveDirection `toml:"direction"`
}

func defaultConfig() *config {
	return &config{
		DisplayMode: floating.HideFullscreen,
		Trash:       true,
		LongPressMS: 500,
		InsetRows:   1,
		Widgets:     []widgetConfig{defaultWidget("hello")},
	}
}

// defaultWidgetSize is the width and height of widgets that do not
// set them.
const defaultWidgetSize = 48

func defaultWidget(label string) widgetConfig {
	return widgetConfig{
		Label:  label,
		Width:  defaultWidgetSize,
		Height: defaultWidgetSize,
		Shape:  "circle",
	}
}

// loadConfig reads the TOML file at path over the defaults. An
// empty path returns the defaults.
func loadConfig(path string) (*config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	conf.Widgets = nil
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if !md.IsDefined("widget") {
		conf.Widgets = defaultConfig().Widgets
	}
	for i := range conf.Widgets {
		w := &conf.Widgets[i]
		if w.Width == 0 {
			w.Width = defaultWidgetSize
		}
		if w.Height == 0 {
			w.Height = defaultWidgetSize
		}
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		var names []string
		for _, k := range keys {
			names = append(names, k.String())
		}
		return nil, fmt.Errorf("read config: unknown keys %s", strings.Join(names, ", "))
	}
	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return conf, nil
}

func (c *config) validate() error {
	var errs []error
	if c.LongPressMS < 0 {
		errs = append(errs, fmt.Errorf("negative long_press_ms %d", c.LongPressMS))
	}
	if c.InsetRows < 0 {
		errs = append(errs, fmt.Errorf("negative inset_rows %d", c.InsetRows))
	}
	for i, w := range c.Widgets {
		if w.Width <= 0 || w.Height <= 0 {
			errs = append(errs, fmt.Errorf("widget %d: invalid size %dx%d", i, w.Width, w.Height))
		}
		if w.OverMargin < 0 {
			errs = append(errs, fmt.Errorf("widget %d: negative over_margin %d", i, w.OverMargin))
		}
		if _, err := parseShape(w.Shape); err != nil {
			errs = append(errs, fmt.Errorf("widget %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (c *config) longPress() time.Duration {
	return time.Duration(c.LongPressMS) * time.Millisecond
}

func (w widgetConfig) options() floating.Options {
	o := floating.DefaultOptions()
	o.Shape, _ = parseShape(w.Shape)
	o.OverMargin = w.OverMargin
	o.MoveDirection = w.Direction
	if w.X != nil {
		o.X = *w.X
	}
	if w.Y != nil {
		o.Y = *w.Y
	}
	return o
}

func parseShape(s string) (float32, error) {
	switch s {
	case "circle", "":
		return floating.ShapeCircle, nil
	case "rectangle":
		return floating.ShapeRectangle, nil
	default:
		return 0, fmt.Errorf("unknown shape %q", s)
	}
}
