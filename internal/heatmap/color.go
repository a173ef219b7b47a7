// Package heatmap maps matrix counts onto display colors.
package heatmap

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Text colors chosen by ReadableText.
const (
	DarkText  = "#1F2937"
	LightText = "#FFFFFF"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "#RGB".
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustParseHex is ParseHex for package-level constants.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#RRGGBB" form of c.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ColorFor interpolates each channel from base toward accent by
// count/maxCount. A zero count or zero maxCount yields base.
func ColorFor(count, maxCount int, base, accent RGB) RGB {
	if maxCount == 0 || count == 0 {
		return base
	}
	t := float64(count) / float64(maxCount)
	return RGB{
		R: lerp(base.R, accent.R, t),
		G: lerp(base.G, accent.G, t),
		B: lerp(base.B, accent.B, t),
	}
}

func lerp(from, to uint8, t float64) uint8 {
	v := math.Round(float64(from) + (float64(to)-float64(from))*t)
	return uint8(max(0, min(255, v)))
}

// Luminance is the perceived brightness of c in [0, 1].
func Luminance(c RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// ReadableText returns the text color to draw on a c background.
func ReadableText(c RGB) string {
	if Luminance(c) > 0.5 {
		return DarkText
	}
	return LightText
}

// ReadableTextHex is ReadableText for a hex string. Unparseable colors are
// treated as black.
func ReadableTextHex(hex string) string {
	c, err := ParseHex(hex)
	if err != nil {
		return LightText
	}
	return ReadableText(c)
}
