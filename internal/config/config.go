// Package config holds the signboard's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solarlune/signboard"
	"github.com/solarlune/signboard/colors"
)

const DefaultFilename = "signboard.yml"

// maxConfigSize bounds how much of a config file is read.
const maxConfigSize = 1024 * 1024

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Camera struct {
	FieldOfView float32 `yaml:"fov"` // Vertical field of view, in degrees
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Z           float32 `yaml:"z"` // Distance of the camera from the signboard along +Z
}

type Outline struct {
	Strength     float32 `yaml:"strength"`
	Glow         float32 `yaml:"glow"`
	Thickness    float32 `yaml:"thickness"`
	VisibleColor string  `yaml:"visible_color"`
	HiddenColor  string  `yaml:"hidden_color"`
}

type Orbit struct {
	Damping     float32 `yaml:"damping"` // Seconds; 0 disables easing
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
}

// Config is the full configuration of the signboard application.
type Config struct {
	Window      Window  `yaml:"window"`
	Camera      Camera  `yaml:"camera"`
	ClearColor  string  `yaml:"clear_color"`
	TextColor   string  `yaml:"text_color"`
	PanelColor  string  `yaml:"panel_color"`
	Text        string  `yaml:"text"`
	Model       string  `yaml:"model"`       // URL or path of a glTF / GLB model shown instead of the text, if set
	Interactive string  `yaml:"interactive"` // Name of the node inside Model that reacts to the pointer
	Outline     Outline `yaml:"outline"`
	Orbit       Orbit   `yaml:"orbit"`
	LogLevel    string  `yaml:"log_level"`
	Progress    bool    `yaml:"progress"` // Show a progress bar on stderr while downloading models
}

// Default returns the configuration used for anything a config file leaves out.
func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Signboard",
		},
		Camera: Camera{
			FieldOfView: 70,
			Near:        0.1,
			Far:         1000,
			Z:           5,
		},
		ClearColor: "#555555",
		TextColor:  "#00ff00",
		PanelColor: "#ffffff",
		Text:       "Hello",
		Outline: Outline{
			Strength:     10,
			Glow:         0,
			Thickness:    1.5,
			VisibleColor: "white",
			HiddenColor:  "black",
		},
		Orbit: Orbit{
			Damping:     0.25,
			MinDistance: 1,
			MaxDistance: 100,
		},
		LogLevel: "info",
		Progress: true,
	}
}

// Load reads the YAML file at path over the defaults. A missing file isn't an error; the defaults are returned as-is.
func Load(path string) (Config, error) {

	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no config file; using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config %q: %w", path, err)
	}

	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %q is too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil

}

// Validate checks that the values can be used to start the signboard.
func (c Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		return fmt.Errorf("camera fov %v must be between 0 and 180 degrees", c.Camera.FieldOfView)
	}

	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera near %v and far %v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}

	if c.Orbit.Damping < 0 {
		return fmt.Errorf("orbit damping %v must not be negative", c.Orbit.Damping)
	}

	if c.Orbit.MinDistance <= 0 || c.Orbit.MaxDistance < c.Orbit.MinDistance {
		return fmt.Errorf("orbit min_distance %v and max_distance %v must satisfy 0 < min <= max", c.Orbit.MinDistance, c.Orbit.MaxDistance)
	}

	for name, value := range map[string]string{
		"clear_color":           c.ClearColor,
		"text_color":            c.TextColor,
		"panel_color":           c.PanelColor,
		"outline.visible_color": c.Outline.VisibleColor,
		"outline.hidden_color":  c.Outline.HiddenColor,
	} {
		if _, err := colors.Parse(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil

}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Color parses one of the configuration's color values, falling back to fallback if it can't be parsed.
func Color(value string, fallback signboard.Color) signboard.Color {
	c, err := colors.Parse(value)
	if err != nil {
		return fallback
	}
	return c
}
