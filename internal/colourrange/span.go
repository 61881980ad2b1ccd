// Package colourrange decomposes styled text into contiguous ranges with a
// constant foreground and background colour.
package colourrange

import (
	"fmt"

	"github.com/jmylchreest/legible/internal/colour"
)

// Kind identifies which layer a colour span paints.
type Kind int

const (
	// Foreground spans colour the glyphs.
	Foreground Kind = iota
	// Background spans colour the area behind the glyphs.
	Background
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "foreground", "fg":
		*k = Foreground
	case "background", "bg":
		*k = Background
	default:
		return fmt.Errorf("unknown span kind %q (valid: foreground, background)", text)
	}
	return nil
}

// Span colours the characters in [Start, End) of a text.
type Span struct {
	Start int          `json:"start" yaml:"start"`
	End   int          `json:"end" yaml:"end"`
	Color colour.Color `json:"color" yaml:"color"`
	Kind  Kind         `json:"kind" yaml:"kind"`
}

// StyledText is a character sequence with its colour spans. Offsets count
// Unicode code points.
type StyledText struct {
	Text  string `json:"text" yaml:"text"`
	Spans []Span `json:"spans,omitempty" yaml:"spans,omitempty"`
}

// Len returns the number of characters in the text.
func (t StyledText) Len() int {
	return len([]rune(t.Text))
}

// IsEmpty reports whether the text has no characters.
func (t StyledText) IsEmpty() bool {
	return t.Text == ""
}

// Substring returns the characters in [start, end).
func (t StyledText) Substring(start, end int) string {
	runes := []rune(t.Text)
	return string(runes[start:end])
}

// HasSpans reports whether any span of the given kind is present.
func (t StyledText) HasSpans(kind Kind) bool {
	for _, s := range t.Spans {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// SpansOf returns the spans of the given kind in their original order.
func (t StyledText) SpansOf(kind Kind) []Span {
	var out []Span
	for _, s := range t.Spans {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
