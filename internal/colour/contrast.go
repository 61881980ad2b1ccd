package colour

import "math"

// WCAG 2.x thresholds.
const (
	// ContrastRatioWCAGNormalText is the minimum ratio for normal text.
	ContrastRatioWCAGNormalText = 4.5

	// ContrastRatioWCAGLargeText is the minimum ratio for large text.
	ContrastRatioWCAGLargeText = 3.0

	// WCAGLargeTextMinSize is the minimum size, in scaled pixels, of large text.
	WCAGLargeTextMinSize = 18.0

	// WCAGLargeBoldTextMinSize is the minimum size, in scaled pixels, of large
	// bold text.
	WCAGLargeBoldTextMinSize = 14.0

	// ContrastTolerance is the amount by which a measured ratio may fall below
	// a threshold and still be treated as meeting it.
	ContrastTolerance = 0.01
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Alpha is ignored. Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c Color) float64 {
	r := gammaExpand(float64(c.R()) / 255.0)
	g := gammaExpand(float64(c.G()) / 255.0)
	b := gammaExpand(float64(c.B()) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaExpand linearises an sRGB channel value in [0, 1].
func gammaExpand(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Composite blends foreground over background with the "over" operator using
// integer channel arithmetic. The result is only meaningful as a rendered
// colour when background is opaque.
func Composite(foreground, background Color) Color {
	fa := int(foreground.A())
	ba := int(background.A())
	a := compositeAlpha(fa, ba)

	r := compositeComponent(int(foreground.R()), fa, int(background.R()), ba, a)
	g := compositeComponent(int(foreground.G()), fa, int(background.G()), ba, a)
	b := compositeComponent(int(foreground.B()), fa, int(background.B()), ba, a)

	return ARGB(uint8(a), uint8(r), uint8(g), uint8(b)) // #nosec G115 - components are bounded to [0, 255]
}

func compositeAlpha(fa, ba int) int {
	return 0xFF - (((0xFF - ba) * (0xFF - fa)) / 0xFF)
}

func compositeComponent(fc, fa, bc, ba, a int) int {
	if a == 0 {
		return 0
	}
	return ((0xFF * fc * fa) + (bc * ba * (0xFF - fa))) / (a * 0xFF)
}

// Range is a closed interval of contrast ratios.
type Range struct {
	Lower float64
	Upper float64
}

// ContrastRatioRange bounds the contrast ratio of foreground text drawn on a
// translucent background whose backdrop is unknown. Every opaque backdrop
// yields a rendered background whose luminance lies between the background
// composited over black and over white, so the bounds come from those two
// extremes. When the text luminance falls between them some backdrop makes
// the two indistinguishable and the lower bound is 1.
func ContrastRatioRange(foreground, background Color) Range {
	overBlack := Composite(background, Black)
	overWhite := Composite(background, White)

	fgOverBlack := Composite(foreground, overBlack)
	fgOverWhite := Composite(foreground, overWhite)

	onBlack := ContrastRatio(fgOverBlack, overBlack)
	onWhite := ContrastRatio(fgOverWhite, overWhite)

	r := Range{Lower: math.Min(onBlack, onWhite), Upper: math.Max(onBlack, onWhite)}

	diffBlack := Luminance(fgOverBlack) - Luminance(overBlack)
	diffWhite := Luminance(fgOverWhite) - Luminance(overWhite)
	if (diffBlack <= 0) != (diffWhite <= 0) {
		r.Lower = 1
	}

	return r
}

// Insufficient reports whether measured falls below required by more than
// ContrastTolerance.
func Insufficient(required, measured float64) bool {
	return required-measured > ContrastTolerance
}
