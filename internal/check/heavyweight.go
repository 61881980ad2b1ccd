package check

import (
	"fmt"
	"image"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/swatch"
)

// evaluateHeavyweight separates the captured pixels under the element into
// background and foreground colours and compares them. Every result it
// produces is NotRun or Warning; false means the contrast is sufficient.
func evaluateHeavyweight(el Element, params Parameters, extractor swatch.Extractor) (Result, bool, error) {
	if params.Capture == nil {
		return newResult(el, NotRun, ResultHeuristicNoScreenCapture, nil), true, nil
	}

	captureBounds := image.Rect(0, 0, params.Capture.Width(), params.Capture.Height())
	region := swatchRegion(el, captureBounds)
	if region.Empty() || !region.In(captureBounds) {
		md := Metadata{}
		md.PutString(KeyViewBoundsString, shortString(region))
		md.PutString(KeyScreenshotBoundsString, shortString(captureBounds))
		return newResult(el, NotRun, ResultNotWithinScreenCapture, md), true, nil
	}

	img, err := params.Capture.Crop(region)
	if err != nil {
		return Result{}, false, fmt.Errorf("cropping capture to %s: %w", shortString(region), err)
	}
	sw, err := extractor.Extract(img)
	if err != nil {
		return Result{}, false, fmt.Errorf("extracting swatch: %w", err)
	}
	if err := sw.Validate(); err != nil {
		return Result{}, false, fmt.Errorf("extracting swatch: %w", err)
	}

	md := Metadata{}
	if el.IsAgainstScrollableEdge() {
		md.PutBool(KeyIsAgainstScrollableEdge, true)
	}

	if sw.Uniform() {
		id := ResultScreenCaptureUniformColor
		if params.RedactionColour != nil && sw.Foreground() == *params.RedactionColour {
			id = ResultScreenCaptureDataHidden
		}
		return newResult(el, NotRun, id, md), true, nil
	}

	if params.CustomRatio != nil {
		fgs, ratios := lowContrast(sw, *params.CustomRatio)
		if len(fgs) == 0 {
			return Result{}, false, nil
		}
		md.PutFloat(KeyCustomHeuristicRatio, *params.CustomRatio)
		return heuristicWarning(el, params, ResultCustomHeuristicContrastNotSufficient, md, sw.Background, fgs, ratios, img), true, nil
	}

	large, known := el.IsLargeText()
	required := colour.ContrastRatioWCAGLargeText
	if known {
		md.PutBool(KeyIsLargeText, large)
		required = requiredRatio(large)
	}
	if fgs, ratios := lowContrast(sw, required); len(fgs) > 0 {
		md.PutFloat(KeyRequiredContrastRatio, required)
		return heuristicWarning(el, params, ResultHeuristicContrastNotSufficient, md, sw.Background, fgs, ratios, img), true, nil
	}
	if known {
		return Result{}, false, nil
	}

	// Size unknown and nothing fails the large text bar. Anything failing
	// the normal text bar is borderline.
	fgs, ratios := lowContrast(sw, colour.ContrastRatioWCAGNormalText)
	if len(fgs) == 0 {
		return Result{}, false, nil
	}
	md.PutFloat(KeyRequiredContrastRatio, colour.ContrastRatioWCAGNormalText)
	md.PutFloat(KeyTolerantContrastRatio, colour.ContrastRatioWCAGLargeText)
	return heuristicWarning(el, params, ResultHeuristicContrastBorderline, md, sw.Background, fgs, ratios, img), true, nil
}

// swatchRegion narrows the element bounds to its glyphs when the glyph box
// is non-empty, lies inside the capture and overlaps the element.
func swatchRegion(el Element, captureBounds image.Rectangle) image.Rectangle {
	bounds := el.Bounds()
	glyphs := el.TextCharacterBounds()
	if !glyphs.Empty() && glyphs.In(captureBounds) && glyphs.Overlaps(bounds) {
		return glyphs
	}
	return bounds
}

// lowContrast returns the candidates, in swatch order, whose ratio falls
// below required.
func lowContrast(sw *swatch.ContrastSwatch, required float64) ([]colour.Color, []float64) {
	var fgs []colour.Color
	var ratios []float64
	for i, ratio := range sw.Ratios {
		if colour.Insufficient(required, ratio) {
			fgs = append(fgs, sw.Foregrounds[i])
			ratios = append(ratios, ratio)
		}
	}
	return fgs, ratios
}

func heuristicWarning(el Element, params Parameters, id ResultID, md Metadata, background colour.Color,
	fgs []colour.Color, ratios []float64, img image.Image,
) Result {
	if el.IsPotentiallyObscured() {
		md.PutBool(KeyIsPotentiallyObscured, true)
	}
	md.putSwatchColors(background, fgs, ratios)

	r := newResult(el, Warning, id, md)
	if params.SaveViewImages {
		r.Image = img
	}
	return r
}
