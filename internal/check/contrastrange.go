package check

import (
	"fmt"

	"github.com/jmylchreest/legible/internal/colour"
)

// evaluateContrastRange bounds the contrast of a translucent-background
// placeholder. It returns an Error when even the upper bound is
// insufficient, a Warning when only the lower bound is, and false when both
// bounds pass.
func evaluateContrastRange(el Element, params Parameters, placeholder Result) (Result, bool, error) {
	fg, err := placeholder.Metadata.requireColor(KeyTextColor)
	if err != nil {
		return Result{}, false, err
	}
	bg, err := placeholder.Metadata.requireColor(KeyBackgroundColor)
	if err != nil {
		return Result{}, false, err
	}

	md := Metadata{}
	md.PutColor(KeyTextColor, fg)
	md.PutColor(KeyBackgroundColor, bg)
	if sub, ok := placeholder.Metadata.Text(KeyResultTextSubstring); ok && sub != "" {
		md.PutString(KeyResultTextSubstring, sub)
	}

	large, known := el.IsLargeText()
	required := requiredRatio(large && known)
	custom := params.CustomRatio != nil
	if custom {
		required = *params.CustomRatio
		md.PutFloat(KeyCustomHeuristicRatio, required)
	} else {
		md.PutFloat(KeyRequiredContrastRatio, required)
	}

	bounds := colour.ContrastRatioRange(fg, bg)
	if bounds.Lower > bounds.Upper {
		return Result{}, false, fmt.Errorf("contrast range [%.2f, %.2f] is inverted", bounds.Lower, bounds.Upper)
	}

	switch {
	case colour.Insufficient(required, bounds.Upper):
		md.PutFloat(KeyContrastRatio, bounds.Upper)
		id := ResultUpperBoundContrastNotSufficient
		if custom {
			id = ResultCustomUpperBoundNotSufficient
		}
		return newResult(el, Error, id, md), true, nil
	case colour.Insufficient(required, bounds.Lower):
		md.PutFloat(KeyContrastRatio, bounds.Lower)
		id := ResultLowerBoundContrastNotSufficient
		if custom {
			id = ResultCustomLowerBoundNotSufficient
		}
		return newResult(el, Warning, id, md), true, nil
	default:
		return Result{}, false, nil
	}
}
