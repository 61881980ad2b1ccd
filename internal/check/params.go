package check

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/colourrange"
	"github.com/jmylchreest/legible/internal/swatch"
)

// DefaultRedactionColour is the uniform colour a platform paints over
// secure content in screen captures.
const DefaultRedactionColour = colour.Black

// Element is the view of a UI element the check reads.
// *hierarchy.Element satisfies it.
type Element interface {
	ID() int
	IsVisible() bool
	IsEnabled() bool
	IsTextElement() bool
	Text() colourrange.StyledText
	HintText() colourrange.StyledText
	TextColor() *colour.Color
	HintTextColor() *colour.Color
	BackgroundColor() *colour.Color
	// IsLargeText reports the size classification and whether the text
	// size was known at all.
	IsLargeText() (large, known bool)
	Bounds() image.Rectangle
	// TextCharacterBounds returns the union of the glyph boxes, or an
	// empty rectangle when none are known.
	TextCharacterBounds() image.Rectangle
	IsPotentiallyObscured() bool
	IsAgainstScrollableEdge() bool
}

// Capture is a screen image in the same coordinate space as element bounds.
// *capture.Screenshot satisfies it.
type Capture interface {
	Width() int
	Height() int
	Crop(r image.Rectangle) (image.Image, error)
}

// Parameters tune a check run. The zero value is usable.
type Parameters struct {
	// CustomRatio overrides the WCAG thresholds when set.
	CustomRatio *float64

	// Capture enables heavyweight evaluation.
	Capture Capture

	// SaveViewImages retains the cropped region on heuristic warnings.
	SaveViewImages bool

	// RedactionColour marks a uniform capture region as redacted.
	// Nil disables redaction detection.
	RedactionColour *colour.Color

	// Extractor separates cropped regions into swatches. Defaults to the
	// histogram extractor.
	Extractor swatch.Extractor

	// Logger receives state transitions. Defaults to a null logger.
	Logger hclog.Logger
}

// DefaultParameters returns parameters with the default redaction colour
// and no capture.
func DefaultParameters() Parameters {
	redaction := DefaultRedactionColour
	return Parameters{RedactionColour: &redaction}
}

// Validate checks the custom ratio, when set, is a meaningful WCAG ratio.
func (p Parameters) Validate() error {
	if p.CustomRatio != nil {
		if r := *p.CustomRatio; r < 1 || r > 21 {
			return fmt.Errorf("custom contrast ratio %.2f outside [1, 21]", r)
		}
	}
	return nil
}

// requiredRatio is the threshold for text of the given size class.
func requiredRatio(large bool) float64 {
	if large {
		return colour.ContrastRatioWCAGLargeText
	}
	return colour.ContrastRatioWCAGNormalText
}
