// Package settings provides display settings for the viewer and exports.
// They are loaded from a YAML file so a user can keep their own palette.
package settings

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/camyaw/internal/core/camera"
)

var (
	ErrInvalidDiameter = errors.New("diameter must be a positive number")
	ErrInvalidColor    = errors.New("color must be #rrggbb or #rrggbbaa")
)

// Settings holds everything the renderers read besides the geometry.
type Settings struct {
	BackgroundColor       string  `yaml:"background_color"`
	ValidPositionColor    string  `yaml:"valid_position_color"`
	TestPointSuccessColor string  `yaml:"test_point_success_color"`
	TestPointFailureColor string  `yaml:"test_point_failure_color"`
	TestPointDiameter     float64 `yaml:"test_point_diameter"`
	Flipped               bool    `yaml:"flipped"`     // initial orientation
	WindowSize            int     `yaml:"window_size"` // square window in pixels
}

// Palette is Settings with colors resolved.
type Palette struct {
	Background       color.RGBA
	ValidPosition    color.RGBA
	TestPointSuccess color.RGBA
	TestPointFailure color.RGBA
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		BackgroundColor:       "#1e1e1e",
		ValidPositionColor:    "#3c8c3c",
		TestPointSuccessColor: "#40e0ff",
		TestPointFailureColor: "#ff4040",
		TestPointDiameter:     10,
		Flipped:               false,
		WindowSize:            1024,
	}
}

// Load reads settings from a YAML file, starting from the defaults. A missing
// file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings as YAML.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Validate checks every field.
func (s *Settings) Validate() error {
	if s.TestPointDiameter <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDiameter, s.TestPointDiameter)
	}
	if s.WindowSize <= 0 {
		return fmt.Errorf("invalid window size: %d", s.WindowSize)
	}
	_, err := s.Palette()
	return err
}

// SetPointDiameter parses and applies a new test point diameter. The old
// value is kept if the input is rejected.
func (s *Settings) SetPointDiameter(v string) error {
	d, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || d <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidDiameter, v)
	}
	s.TestPointDiameter = d
	return nil
}

// AdjustPointDiameter grows or shrinks the test point diameter. A change
// that would leave it at or below zero is rejected and nothing changes.
func (s *Settings) AdjustPointDiameter(delta float64) error {
	d := s.TestPointDiameter + delta
	if d <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDiameter, d)
	}
	s.TestPointDiameter = d
	return nil
}

// Orientation returns the orientation the session should start with.
func (s *Settings) Orientation() camera.Orientation {
	return camera.Orientation{Flipped: s.Flipped}
}

// Palette resolves the hex colors.
func (s *Settings) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Background, err = ParseColor(s.BackgroundColor); err != nil {
		return p, fmt.Errorf("background_color: %w", err)
	}
	if p.ValidPosition, err = ParseColor(s.ValidPositionColor); err != nil {
		return p, fmt.Errorf("valid_position_color: %w", err)
	}
	if p.TestPointSuccess, err = ParseColor(s.TestPointSuccessColor); err != nil {
		return p, fmt.Errorf("test_point_success_color: %w", err)
	}
	if p.TestPointFailure, err = ParseColor(s.TestPointFailureColor); err != nil {
		return p, fmt.Errorf("test_point_failure_color: %w", err)
	}
	return p, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColor formats a color as "#rrggbb", dropping alpha.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
