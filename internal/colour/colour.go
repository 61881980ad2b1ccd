// Package colour provides packed colour values and the WCAG contrast
// arithmetic used by the text contrast check.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 0xAARRGGBB colour with 8 bits per channel.
// An alpha of 255 is fully opaque.
type Color uint32

// Well-known colours.
const (
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Transparent Color = 0x00000000
)

// OpaqueAlpha is the alpha value of a fully opaque colour.
const OpaqueAlpha = 255

// ARGB packs the four channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB packs an opaque colour.
func RGB(r, g, b uint8) Color {
	return ARGB(OpaqueAlpha, r, g, b)
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// IsOpaque reports whether the alpha channel is 255.
func (c Color) IsOpaque() bool {
	return c.A() == OpaqueAlpha
}

// Opaque returns c with its alpha channel forced to 255.
func (c Color) Opaque() Color {
	return c | 0xFF000000
}

// OpacityPercent returns the alpha channel as a percentage in [0, 100].
func (c Color) OpacityPercent() float32 {
	return float32(c.A()) * 100 / OpaqueAlpha
}

// RGBA implements color.Color. Values are alpha-premultiplied as the
// interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}

// NRGBA returns the colour as a non-premultiplied color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// FromColor converts any color.Color to a packed, non-premultiplied Color.
func FromColor(c color.Color) Color {
	if packed, ok := c.(Color); ok {
		return packed
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// Hex returns "#RRGGBB" for opaque colours and "#AARRGGBB" otherwise.
func (c Color) Hex() string {
	if c.IsOpaque() {
		return fmt.Sprintf("#%02X%02X%02X", c.R(), c.G(), c.B())
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A(), c.R(), c.G(), c.B())
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// ParseHex parses "#RGB", "#RRGGBB" or "#AARRGGBB" (the leading '#' is
// optional). Colours without an alpha component are opaque.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")

	alpha := uint8(OpaqueAlpha)
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[:2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid alpha component in colour %q: %w", s, err)
		}
		alpha = uint8(a)
		h = h[2:]
	}
	if len(h) != 3 && len(h) != 6 {
		return 0, fmt.Errorf("invalid colour %q: expected #RGB, #RRGGBB or #AARRGGBB", s)
	}

	parsed, err := colorful.Hex("#" + strings.ToLower(h))
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := parsed.RGB255()
	return ARGB(alpha, r, g, b), nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so colours can be
// written as hex strings in JSON and YAML documents.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
