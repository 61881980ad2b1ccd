package check

import (
	"fmt"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/colourrange"
)

// preconditions returns the single NotRun result for an element the check
// cannot evaluate, or false when evaluation may proceed.
func preconditions(el Element) (Result, bool) {
	switch {
	case !el.IsVisible():
		return newResult(el, NotRun, ResultNotVisible, nil), true
	case !el.IsTextElement():
		return newResult(el, NotRun, ResultNotTextElement, nil), true
	case el.Text().IsEmpty() && el.HintText().IsEmpty():
		return newResult(el, NotRun, ResultTextEmpty, nil), true
	case !el.IsEnabled():
		return newResult(el, NotRun, ResultNotEnabled, nil), true
	}
	return Result{}, false
}

// evaluatedText returns the text the element renders and its primary colour.
// The hint stands in for empty text.
func evaluatedText(el Element) (colourrange.StyledText, *colour.Color) {
	if el.Text().IsEmpty() {
		return el.HintText(), el.HintTextColor()
	}
	return el.Text(), el.TextColor()
}

// evaluateLightweight compares the declared colours of every colour pair in
// the element's text. Pairs on a translucent background produce a
// ResultBackgroundMustBeOpaque placeholder for range evaluation.
func evaluateLightweight(el Element, params Parameters) ([]Result, error) {
	text, foreground := evaluatedText(el)
	background := el.BackgroundColor()

	if foreground == nil && !text.HasSpans(colourrange.Foreground) {
		return []Result{newResult(el, NotRun, ResultCouldNotGetTextColor, nil)}, nil
	}
	if background == nil && !text.HasSpans(colourrange.Background) {
		return []Result{newResult(el, NotRun, ResultCouldNotGetBackgroundColor, nil)}, nil
	}

	pairs, err := colourrange.Merge(text, foreground, background)
	if err != nil {
		return nil, fmt.Errorf("merging colour spans: %w", err)
	}

	large, known := el.IsLargeText()
	required := requiredRatio(large && known)
	if params.CustomRatio != nil {
		required = *params.CustomRatio
	}

	length := text.Len()
	var results []Result
	for _, pair := range pairs {
		if !pair.Complete() {
			continue
		}
		fg, bg := *pair.Foreground, *pair.Background

		md := Metadata{}
		if pair.Start > 0 || pair.End < length {
			md.PutString(KeyResultTextSubstring, text.Substring(pair.Start, pair.End))
		}

		if !bg.IsOpaque() {
			md.PutFloat(KeyBackgroundOpacity, float64(bg.OpacityPercent()))
			md.PutColor(KeyTextColor, fg)
			md.PutColor(KeyBackgroundColor, bg)
			results = append(results, newResult(el, NotRun, ResultBackgroundMustBeOpaque, md))
			continue
		}

		ratio := colour.ContrastRatio(colour.Composite(fg, bg), bg)
		if !colour.Insufficient(required, ratio) {
			continue
		}

		id := ResultContrastNotSufficient
		requiredKey := KeyRequiredContrastRatio
		if params.CustomRatio != nil {
			id = ResultCustomContrastNotSufficient
			requiredKey = KeyCustomHeuristicRatio
		}
		md.PutFloat(requiredKey, required)
		md.PutFloat(KeyContrastRatio, ratio)
		md.PutColor(KeyTextColor, fg)
		md.PutColor(KeyBackgroundColor, bg)
		results = append(results, newResult(el, Error, id, md))
	}

	return results, nil
}
