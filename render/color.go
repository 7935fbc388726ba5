// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"
)

// DefaultClearColor is opaque blue.
var DefaultClearColor = gputypes.Color{R: 0, G: 0, B: 1, A: 1}

// ParseColor parses an SVG 1.1 color name ("blue", "cornflowerblue") or a
// hex color ("#rgb", "#rrggbb", "#rrggbbaa").
func ParseColor(s string) (gputypes.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return gputypes.Color{}, fmt.Errorf("render: empty color")
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	c, ok := colornames.Map[s]
	if !ok {
		return gputypes.Color{}, fmt.Errorf("render: unknown color name %q", s)
	}
	return FromRGBA(c), nil
}

func parseHex(s string) (gputypes.Color, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return gputypes.Color{}, fmt.Errorf("render: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return gputypes.Color{}, fmt.Errorf("render: invalid hex color %q", s)
	}
	return FromRGBA(color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}), nil
}

// FromRGBA converts an 8-bit color to a clear value in [0, 1].
func FromRGBA(c color.RGBA) gputypes.Color {
	return gputypes.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}
