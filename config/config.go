// seehuhn.de/go/annotedit - interactive editing of vector annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads the editor configuration from a YAML file.
//
// A configuration file looks like this; every field is optional:
//
//	style:
//	  color: "#e4463b"
//	  opacity: 0.8
//	  thickness: 2
//	editor:
//	  controlRadius: 7.5
//	  multiStroke: true
//	  timedSaveInterval: 2s
//	storage:
//	  backend: badger
//	  path: annots.db
//	relay:
//	  listen: localhost:8080
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/tool"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config is the editor configuration.
type Config struct {
	Pen     Pen     `yaml:"style"`
	Editor  Editor  `yaml:"editor"`
	Storage Storage `yaml:"storage"`
	Relay   Relay   `yaml:"relay"`
}

// Pen describes the style of new annotations.
type Pen struct {
	Color     string  `yaml:"color"`
	Opacity   float64 `yaml:"opacity"`
	Thickness float64 `yaml:"thickness"`
	Stylus    bool    `yaml:"stylus"`
}

// Editor holds the tunables of the editing tools.  Lengths are in
// screen units, unless noted otherwise.
type Editor struct {
	ControlRadius            float64       `yaml:"controlRadius"`
	TouchTolerance           float64       `yaml:"touchTolerance"`
	DotThreshold             float64       `yaml:"dotThreshold"`
	EraserHalfThickness      float64       `yaml:"eraserHalfThickness"`
	AnnotEraserHalfThickness float64       `yaml:"annotEraserHalfThickness"`
	MultiStroke              *bool         `yaml:"multiStroke"`
	TimedSaveInterval        time.Duration `yaml:"timedSaveInterval"`
	TimedSaveMargin          float64       `yaml:"timedSaveMargin"` // document units
	CloudIntensity           float64       `yaml:"cloudIntensity"`
}

// Storage selects where annotations are kept.
type Storage struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path"`
	CompressAbove int    `yaml:"compressAbove"`
}

// Relay configures the websocket change feed.
type Relay struct {
	// Listen is the address of the HTTP server.  If empty, no
	// changes are published.
	Listen string `yaml:"listen"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.fillDefaults()
	return c
}

// Load reads the configuration file fname.
func Load(fname string) (*Config, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return c, nil
}

// Parse decodes a YAML configuration.  Missing values are replaced
// by their defaults.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, err
	}
	c.fillDefaults()
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) fillDefaults() {
	def := tool.DefaultSettings()

	if c.Pen.Color == "" {
		c.Pen.Color = annotedit.DefaultStyle.HexColor()
	}
	if c.Pen.Opacity == 0 {
		c.Pen.Opacity = annotedit.DefaultStyle.Opacity
	}
	if c.Pen.Thickness == 0 {
		c.Pen.Thickness = annotedit.DefaultStyle.Thickness
	}

	e := &c.Editor
	if e.ControlRadius == 0 {
		e.ControlRadius = def.ControlRadius
	}
	if e.TouchTolerance == 0 {
		e.TouchTolerance = def.TouchTolerance
	}
	if e.DotThreshold == 0 {
		e.DotThreshold = def.DotThreshold
	}
	if e.EraserHalfThickness == 0 {
		e.EraserHalfThickness = def.EraserHalfThickness
	}
	if e.AnnotEraserHalfThickness == 0 {
		e.AnnotEraserHalfThickness = def.AnnotEraserHalfThickness
	}
	if e.MultiStroke == nil {
		multi := def.MultiStroke
		e.MultiStroke = &multi
	}
	if e.TimedSaveInterval == 0 {
		e.TimedSaveInterval = def.TimedSaveInterval
	}
	if e.TimedSaveMargin == 0 {
		e.TimedSaveMargin = def.TimedSaveMargin
	}
	if e.CloudIntensity == 0 {
		e.CloudIntensity = def.CloudIntensity
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendMemory
	}
}

func (c *Config) check() error {
	if _, err := annotedit.ParseHexColor(c.Pen.Color); err != nil {
		return err
	}
	if c.Pen.Opacity < 0 || c.Pen.Opacity > 1 {
		return fmt.Errorf("opacity %g not in range [0, 1]", c.Pen.Opacity)
	}
	if c.Pen.Thickness < 0 {
		return fmt.Errorf("negative thickness %g", c.Pen.Thickness)
	}
	if c.Editor.TimedSaveInterval < 0 {
		return errors.New("negative timed save interval")
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendBadger:
		if c.Storage.Path == "" {
			return errors.New("badger storage needs a path")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// Style returns the style for a new editing session.
func (c *Config) Style() annotedit.Style {
	col, err := annotedit.ParseHexColor(c.Pen.Color)
	if err != nil {
		col = annotedit.DefaultStyle.Color
	}
	return annotedit.Style{
		Color:     col,
		Opacity:   c.Pen.Opacity,
		Thickness: c.Pen.Thickness,
		Stylus:    c.Pen.Stylus,
	}
}

// Settings returns the tool settings.
func (c *Config) Settings() tool.Settings {
	e := c.Editor
	return tool.Settings{
		ControlRadius:            e.ControlRadius,
		TouchTolerance:           e.TouchTolerance,
		DotThreshold:             e.DotThreshold,
		EraserHalfThickness:      e.EraserHalfThickness,
		AnnotEraserHalfThickness: e.AnnotEraserHalfThickness,
		MultiStroke:              e.MultiStroke == nil || *e.MultiStroke,
		TimedSaveInterval:        e.TimedSaveInterval,
		TimedSaveMargin:          e.TimedSaveMargin,
		CloudIntensity:           e.CloudIntensity,
	}
}
