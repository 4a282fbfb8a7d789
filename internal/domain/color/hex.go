package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB holds 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// HSL holds hue in degrees and saturation/lightness in percent, rounded.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ParseHex accepts "#RRGGBB", "RRGGBB", "#RGB" and "RGB" in any case.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// IsHex reports whether hex parses.
func IsHex(hex string) bool {
	_, err := ParseHex(hex)
	return err == nil
}

// Normalize returns the canonical "#RRGGBB" form, or false when hex is malformed.
func Normalize(hex string) (string, bool) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", false
	}
	return rgb.Hex(), true
}

// Hex formats the color as upper-case "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Distance is the Euclidean distance in RGB space.
func (c RGB) Distance(o RGB) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// HSL converts to hue/saturation/lightness.
func (c RGB) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{
		H: int(math.Round(h * 360)),
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// Average returns the channel-wise mean, rounded.
func Average(colors []RGB) RGB {
	if len(colors) == 0 {
		return RGB{}
	}
	var r, g, b float64
	for _, c := range colors {
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
	}
	n := float64(len(colors))
	return RGB{
		R: uint8(math.Round(r / n)),
		G: uint8(math.Round(g / n)),
		B: uint8(math.Round(b / n)),
	}
}
