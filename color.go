package signboard

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// NewColorFromHexString parses a hexadecimal color string ("#55ff00", "55ff00", or with an alpha component, "#55ff00ff").
// An error is returned if the string can't be parsed.
func NewColorFromHexString(hex string) (Color, error) {

	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")

	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: expected 6 or 8 hex digits", hex)
	}

	if len(hex) == 6 {
		hex += "ff"
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}

	return NewColor(
		float32((value>>24)&0xff)/255,
		float32((value>>16)&0xff)/255,
		float32((value>>8)&0xff)/255,
		float32(value&0xff)/255,
	), nil

}

// ToNRGBA64 converts the Color to a color.NRGBA64, clamping each component.
func (c Color) ToNRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		clampChannel(c.R),
		clampChannel(c.G),
		clampChannel(c.B),
		clampChannel(c.A),
	}
}

func clampChannel(v float32) uint16 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint16(v * math.MaxUint16)
}

// ConvertTosRGB returns a copy of the Color converted from linear space to sRGB (glTF colors are stored linearly).
func (c Color) ConvertTosRGB() Color {

	conv := func(v float32) float32 {
		if v <= 0.0031308 {
			return v * 12.92
		}
		return float32(1.055*math.Pow(float64(v), 1/2.4) - 0.055)
	}

	c.R = conv(c.R)
	c.G = conv(c.G)
	c.B = conv(c.B)
	return c

}

func (c Color) String() string {
	return fmt.Sprintf("{%.2f, %.2f, %.2f, %.2f}", c.R, c.G, c.B, c.A)
}
