package report

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/legible/internal/check"
	"github.com/jmylchreest/legible/internal/colour"
)

const (
	addendumObscured       = "This element may be partially hidden by another element drawn above it, which can affect the captured colours."
	addendumScrollableEdge = "This element sits against the edge of a scrollable container and may be partially scrolled out of view."
)

var fixedMessages = map[check.ResultID]string{
	check.ResultNotVisible:                 "This element is not visible.",
	check.ResultNotTextElement:             "This element does not display text.",
	check.ResultNotEnabled:                 "This element is not enabled.",
	check.ResultTextEmpty:                  "This element has no text or hint text to evaluate.",
	check.ResultCouldNotGetTextColor:       "The text colour of this element could not be determined.",
	check.ResultCouldNotGetBackgroundColor: "The background colour of this element could not be determined.",
	check.ResultHeuristicNoScreenCapture:   "No screen capture was available to evaluate the rendered colours.",
	check.ResultScreenCaptureDataHidden:    "The screen capture content for this element was hidden by the application.",
	check.ResultScreenCaptureUniformColor:  "The captured region for this element is a single colour, so no text could be found.",
	check.ResultTextMustBeOpaque:           "The text colour must be opaque.",
	check.ResultBackgroundMustBeOpaque:     "The background colour must be opaque.",
}

// Message describes a result in English.
func Message(r check.Result) string {
	if msg, ok := fixedMessages[r.ID]; ok {
		switch r.ID {
		case check.ResultTextMustBeOpaque:
			return withOpacity(msg, r.Metadata, check.KeyTextOpacity)
		case check.ResultBackgroundMustBeOpaque:
			return withOpacity(msg, r.Metadata, check.KeyBackgroundOpacity)
		}
		return msg
	}

	md := r.Metadata
	ratio, _ := md.Float(check.KeyContrastRatio)
	required, _ := md.Float(check.KeyRequiredContrastRatio)
	custom, _ := md.Float(check.KeyCustomHeuristicRatio)
	text := hexOf(md, check.KeyTextColor)
	fg := hexOf(md, check.KeyForegroundColor)
	bg := hexOf(md, check.KeyBackgroundColor)

	var msg string
	switch r.ID {
	case check.ResultContrastNotSufficient:
		msg = fmt.Sprintf("The text has a contrast ratio of %.2f between the text colour %s and background colour %s. Consider increasing it to %.2f or greater.", ratio, text, bg, required)
	case check.ResultCustomContrastNotSufficient:
		msg = fmt.Sprintf("The text has a contrast ratio of %.2f between the text colour %s and background colour %s, below the configured ratio of %.2f.", ratio, text, bg, custom)
	case check.ResultUpperBoundContrastNotSufficient:
		msg = fmt.Sprintf("Even on the most favourable backdrop, the text colour %s on the translucent background %s reaches a contrast ratio of at most %.2f. Consider increasing it to %.2f or greater.", text, bg, ratio, required)
	case check.ResultCustomUpperBoundNotSufficient:
		msg = fmt.Sprintf("Even on the most favourable backdrop, the text colour %s on the translucent background %s reaches a contrast ratio of at most %.2f, below the configured ratio of %.2f.", text, bg, ratio, custom)
	case check.ResultLowerBoundContrastNotSufficient:
		msg = fmt.Sprintf("Depending on what is drawn behind it, the text colour %s on the translucent background %s may have a contrast ratio as low as %.2f. Consider increasing it to %.2f or greater.", text, bg, ratio, required)
	case check.ResultCustomLowerBoundNotSufficient:
		msg = fmt.Sprintf("Depending on what is drawn behind it, the text colour %s on the translucent background %s may have a contrast ratio as low as %.2f, below the configured ratio of %.2f.", text, bg, ratio, custom)
	case check.ResultNotWithinScreenCapture:
		view, _ := md.Text(check.KeyViewBoundsString)
		screen, _ := md.Text(check.KeyScreenshotBoundsString)
		return fmt.Sprintf("The element bounds %s are not within the screen capture bounds %s.", view, screen)
	case check.ResultHeuristicContrastNotSufficient:
		if md.Has(check.KeyIsLargeText) {
			msg = fmt.Sprintf("The rendered text appears to have a contrast ratio of %.2f between the foreground colour %s and background colour %s. Consider increasing it to %.2f or greater.", ratio, fg, bg, required)
		} else {
			msg = heuristicUnknownSize(ratio, fg, bg, colour.ContrastRatioWCAGNormalText, colour.ContrastRatioWCAGLargeText)
		}
	case check.ResultHeuristicContrastBorderline:
		tolerant, _ := md.Float(check.KeyTolerantContrastRatio)
		msg = heuristicUnknownSize(ratio, fg, bg, required, tolerant)
	case check.ResultCustomHeuristicContrastNotSufficient:
		msg = fmt.Sprintf("The rendered text appears to have a contrast ratio of %.2f between the foreground colour %s and background colour %s, below the configured ratio of %.2f.", ratio, fg, bg, custom)
	default:
		return fmt.Sprintf("Unrecognised result %s.", r.ID)
	}
	return withAddenda(msg, md)
}

// ShortMessage is a one-line summary of a result.
func ShortMessage(r check.Result) string {
	switch r.ID {
	case check.ResultTextMustBeOpaque, check.ResultBackgroundMustBeOpaque:
		return fixedMessages[r.ID]
	case check.ResultNotWithinScreenCapture:
		return fixedMessages[check.ResultHeuristicNoScreenCapture]
	case check.ResultContrastNotSufficient,
		check.ResultCustomContrastNotSufficient,
		check.ResultHeuristicContrastNotSufficient,
		check.ResultHeuristicContrastBorderline,
		check.ResultCustomHeuristicContrastNotSufficient,
		check.ResultUpperBoundContrastNotSufficient,
		check.ResultCustomUpperBoundNotSufficient,
		check.ResultLowerBoundContrastNotSufficient,
		check.ResultCustomLowerBoundNotSufficient:
		return "Text contrast is not sufficient."
	}
	return Message(r)
}

func heuristicUnknownSize(ratio float64, fg, bg string, normal, large float64) string {
	return fmt.Sprintf("The rendered text appears to have a contrast ratio of %.2f between the foreground colour %s and background colour %s. Consider increasing it to %.2f or greater for small text, or %.2f or greater for large text.", ratio, fg, bg, normal, large)
}

func withOpacity(msg string, md check.Metadata, key string) string {
	pct, ok := md.Float(key)
	if !ok {
		return msg
	}
	return fmt.Sprintf("%s Its opacity is %.2f%%.", msg, pct)
}

func withAddenda(msg string, md check.Metadata) string {
	var b strings.Builder
	b.WriteString(msg)
	if md.Bool(check.KeyIsPotentiallyObscured) {
		b.WriteString(" ")
		b.WriteString(addendumObscured)
	}
	if md.Bool(check.KeyIsAgainstScrollableEdge) {
		b.WriteString(" ")
		b.WriteString(addendumScrollableEdge)
	}
	return b.String()
}

func hexOf(md check.Metadata, key string) string {
	c, ok := md.Color(key)
	if !ok {
		return "unknown"
	}
	return c.Hex()
}
