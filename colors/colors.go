// Package colors holds named signboard.Color values, plus a lookup so colors can be given by name in configuration files.
package colors

import (
	"strings"

	"github.com/solarlune/signboard"
)

// Transparent is fully transparent black.
func Transparent() signboard.Color { return signboard.NewColor(0, 0, 0, 0) }

func White() signboard.Color { return signboard.NewColor(1, 1, 1, 1) }

func Black() signboard.Color { return signboard.NewColor(0, 0, 0, 1) }

// Gray is 50% gray.
func Gray() signboard.Color { return signboard.NewColor(0.5, 0.5, 0.5, 1) }

// Charcoal is the #555555 gray used behind the signboard by default.
func Charcoal() signboard.Color { return signboard.NewColor(0x55/255.0, 0x55/255.0, 0x55/255.0, 1) }

func Red() signboard.Color { return signboard.NewColor(1, 0, 0, 1) }

func Orange() signboard.Color { return signboard.NewColor(1, 0.5, 0, 1) }

func Yellow() signboard.Color { return signboard.NewColor(1, 1, 0, 1) }

// Green is pure #00ff00, the default text color.
func Green() signboard.Color { return signboard.NewColor(0, 1, 0, 1) }

func SkyBlue() signboard.Color { return signboard.NewColor(0, 0.5, 1, 1) }

func Blue() signboard.Color { return signboard.NewColor(0, 0, 1, 1) }

func Purple() signboard.Color { return signboard.NewColor(0.5, 0, 1, 1) }

var named = map[string]func() signboard.Color{
	"transparent": Transparent,
	"white":       White,
	"black":       Black,
	"gray":        Gray,
	"grey":        Gray,
	"charcoal":    Charcoal,
	"red":         Red,
	"orange":      Orange,
	"yellow":      Yellow,
	"green":       Green,
	"skyblue":     SkyBlue,
	"blue":        Blue,
	"purple":      Purple,
}

// Parse returns the Color for a case-insensitive color name (like "green"), or parses the value as a hexadecimal color string
// (like "#00ff00") otherwise.
func Parse(value string) (signboard.Color, error) {
	if c, ok := named[strings.ToLower(strings.TrimSpace(value))]; ok {
		return c(), nil
	}
	return signboard.NewColorFromHexString(value)
}
