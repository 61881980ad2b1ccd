package cli

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/config"
)

// colourValue is a pflag.Value holding an optional colour. "none" clears it.
type colourValue struct {
	c *colour.Color
}

var _ pflag.Value = (*colourValue)(nil)

func (v *colourValue) String() string {
	if v.c == nil {
		return config.RedactionNone
	}
	return v.c.Hex()
}

func (v *colourValue) Set(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), config.RedactionNone) {
		v.c = nil
		return nil
	}
	c, err := colour.ParseHex(s)
	if err != nil {
		return err
	}
	v.c = &c
	return nil
}

func (v *colourValue) Type() string { return "colour" }

// ratioValue is a pflag.Value holding an optional contrast ratio.
type ratioValue struct {
	r *float64
}

var _ pflag.Value = (*ratioValue)(nil)

func (v *ratioValue) String() string {
	if v.r == nil {
		return ""
	}
	return strconv.FormatFloat(*v.r, 'g', -1, 64)
}

func (v *ratioValue) Set(s string) error {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid ratio %q", s)
	}
	if r < 1 || r > 21 {
		return fmt.Errorf("ratio must be in [1, 21], got %g", r)
	}
	v.r = &r
	return nil
}

func (v *ratioValue) Type() string { return "ratio" }

// regionValue is a pflag.Value holding a rectangle written as x,y,w,h.
type regionValue struct {
	r image.Rectangle
}

var _ pflag.Value = (*regionValue)(nil)

func (v *regionValue) String() string {
	if v.r.Empty() {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d", v.r.Min.X, v.r.Min.Y, v.r.Dx(), v.r.Dy())
}

func (v *regionValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fmt.Errorf("region must be x,y,w,h, got %q", s)
	}
	var n [4]int
	for i, p := range parts {
		val, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("region must be x,y,w,h, got %q", s)
		}
		n[i] = val
	}
	if n[2] <= 0 || n[3] <= 0 {
		return fmt.Errorf("region width and height must be positive, got %q", s)
	}
	v.r = image.Rect(n[0], n[1], n[0]+n[2], n[1]+n[3])
	return nil
}

func (v *regionValue) Type() string { return "region" }
