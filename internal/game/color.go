package game

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"chosenoffset.com/ledgewalk/internal/config"
)

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// NewPalette builds the debug palette from editor config.
func NewPalette(cfg config.EditorConfig) (Palette, error) {
	p := Palette{StrokeWidth: float32(cfg.StrokeWidth)}
	if p.StrokeWidth <= 0 {
		p.StrokeWidth = 1
	}

	var err error
	if p.Stroke, err = ParseHexColor(cfg.StrokeColor); err != nil {
		return p, fmt.Errorf("stroke_color: %w", err)
	}
	if p.Highlight, err = ParseHexColor(cfg.HighlightColor); err != nil {
		return p, fmt.Errorf("highlight_color: %w", err)
	}
	if p.Ray, err = ParseHexColor(cfg.RayColor); err != nil {
		return p, fmt.Errorf("ray_color: %w", err)
	}
	return p, nil
}
