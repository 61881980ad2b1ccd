package check

import (
	"fmt"
	"image"

	"github.com/jmylchreest/legible/internal/colour"
)

// Metadata keys.
const (
	KeyBackgroundColor           = "KEY_BACKGROUND_COLOR"
	KeyBackgroundOpacity         = "KEY_BACKGROUND_OPACITY"
	KeyContrastRatio             = "KEY_CONTRAST_RATIO"
	KeyForegroundColor           = "KEY_FOREGROUND_COLOR"
	KeyResultTextSubstring       = "KEY_RESULT_TEXT_SUBSTRING"
	KeyRequiredContrastRatio     = "KEY_REQUIRED_CONTRAST_RATIO"
	KeyCustomHeuristicRatio      = "KEY_CUSTOMIZED_HEURISTIC_CONTRAST_RATIO"
	KeyScreenshotBoundsString    = "KEY_SCREENSHOT_BOUNDS_STRING"
	KeyTextColor                 = "KEY_TEXT_COLOR"
	KeyTextOpacity               = "KEY_TEXT_OPACITY"
	KeyTolerantContrastRatio     = "KEY_TOLERANT_CONTRAST_RATIO"
	KeyViewBoundsString          = "KEY_VIEW_BOUNDS_STRING"
	KeyIsAgainstScrollableEdge   = "KEY_IS_AGAINST_SCROLLABLE_EDGE"
	KeyAdditionalForegroundColor = "KEY_ADDITIONAL_FOREGROUND_COLORS"
	KeyAdditionalContrastRatios  = "KEY_ADDITIONAL_CONTRAST_RATIOS"
	KeyIsPotentiallyObscured     = "KEY_IS_POTENTIALLY_OBSCURED"
	KeyIsLargeText               = "KEY_IS_LARGE_TEXT"
)

// Metadata is the key-value data attached to a result. Values are
// colour.Color, float64, bool, string, []colour.Color or []float64.
type Metadata map[string]any

// PutColor stores a colour.
func (m Metadata) PutColor(key string, c colour.Color) { m[key] = c }

// PutFloat stores a number.
func (m Metadata) PutFloat(key string, v float64) { m[key] = v }

// PutBool stores a flag.
func (m Metadata) PutBool(key string, v bool) { m[key] = v }

// PutString stores text.
func (m Metadata) PutString(key string, v string) { m[key] = v }

// Has reports whether key is set.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Color returns a colour value.
func (m Metadata) Color(key string) (colour.Color, bool) {
	v, ok := m[key].(colour.Color)
	return v, ok
}

// Float returns a numeric value.
func (m Metadata) Float(key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}

// Bool returns a flag, false when unset.
func (m Metadata) Bool(key string) bool {
	v, _ := m[key].(bool)
	return v
}

// Text returns a text value.
func (m Metadata) Text(key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

// Colors returns a colour list.
func (m Metadata) Colors(key string) []colour.Color {
	v, _ := m[key].([]colour.Color)
	return v
}

// Floats returns a number list.
func (m Metadata) Floats(key string) []float64 {
	v, _ := m[key].([]float64)
	return v
}

// requireColor reads a colour an earlier stage guarantees was stored.
func (m Metadata) requireColor(key string) (colour.Color, error) {
	c, ok := m.Color(key)
	if !ok {
		return 0, fmt.Errorf("metadata %s missing or not a colour", key)
	}
	return c, nil
}

// putSwatchColors stores the background, the primary foreground and ratio,
// and any further candidates as additional lists.
func (m Metadata) putSwatchColors(background colour.Color, foregrounds []colour.Color, ratios []float64) {
	m.PutColor(KeyBackgroundColor, background)
	m.PutColor(KeyForegroundColor, foregrounds[0])
	if len(foregrounds) > 1 {
		m[KeyAdditionalForegroundColor] = append([]colour.Color(nil), foregrounds[1:]...)
	}
	m.PutFloat(KeyContrastRatio, ratios[0])
	if len(ratios) > 1 {
		m[KeyAdditionalContrastRatios] = append([]float64(nil), ratios[1:]...)
	}
}

// shortString formats a rectangle as [left,top][right,bottom].
func shortString(r image.Rectangle) string {
	return fmt.Sprintf("[%d,%d][%d,%d]", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
