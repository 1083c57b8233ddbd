// Package palette normalizes color swatches for storage and display.
package palette

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned for values that are not 3 or 6 digit hex colors.
var ErrInvalidHex = errors.New("invalid hex color")

// Text colors used over a swatch.
const (
	LightText = "#FFF"
	DarkText  = "#000"
)

// darkThreshold is the HSL lightness, in whole percent, under which a swatch takes light text.
const darkThreshold = 60

// Swatch is a parsed color ready to persist.
type Swatch struct {
	Hex string // Six lowercase hex digits without '#'.
	RGB string // Space separated 0-255 channels, e.g. "255 128 0".
}

// Parse accepts "#abc", "abc", "#aabbcc" or "aabbcc" in any case.
func Parse(raw string) (Swatch, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Swatch{}, ErrInvalidHex
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Swatch{}, ErrInvalidHex
	}
	r, g, b := c.RGB255()
	return Swatch{
		Hex: strings.ToLower(hex),
		RGB: fmt.Sprintf("%d %d %d", r, g, b),
	}, nil
}

// InfoColor returns the text color readable over the swatch with the given hex.
// Unparseable input yields DarkText.
func InfoColor(hex string) string {
	c, err := colorful.Hex("#" + strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if err != nil {
		return DarkText
	}
	_, _, l := c.Hsl()
	if math.Round(l*100) < darkThreshold {
		return LightText
	}
	return DarkText
}
