package main

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// parseColor accepts "#rgb" and "#rrggbb".
func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c.Clamped(), nil
}

// colorOr parses s and falls back when it is not a colour.
func colorOr(s string, fallback color.Color) color.Color {
	c, err := parseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// normalizeHex returns s as lowercase "#rrggbb".
func normalizeHex(s string) (string, error) {
	c, err := parseColor(s)
	if err != nil {
		return "", err
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex(), nil
}

// defaultPalette is a hue strip of fully saturated colours, with
// white first and black last.
func defaultPalette() []string {
	palette := []string{"#ffffff"}
	for _, hue := range []float64{0, 60, 120, 180, 240, 300} {
		palette = append(palette, colorful.Hsv(hue, 1, 1).Hex())
	}
	return append(palette, "#000000")
}
