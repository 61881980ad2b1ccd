package colourrange

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jmylchreest/legible/internal/colour"
)

var (
	// ErrInvalidRange is returned when a range starts after it ends.
	ErrInvalidRange = errors.New("invalid colour range")

	// ErrInvalidSpan is returned when a span lies outside its text.
	ErrInvalidSpan = errors.New("invalid colour span")
)

// RangeInfo is a text range and the colour defined over it. A nil Color
// means no explicit colour is defined.
type RangeInfo struct {
	Start int
	End   int
	Color *colour.Color
}

// NewRangeInfo validates and returns a RangeInfo.
func NewRangeInfo(start, end int, c *colour.Color) (RangeInfo, error) {
	if start > end {
		return RangeInfo{}, fmt.Errorf("%w: start %d should be before end %d", ErrInvalidRange, start, end)
	}
	return RangeInfo{Start: start, End: end, Color: c}, nil
}

// String implements fmt.Stringer.
func (r RangeInfo) String() string {
	return fmt.Sprintf("RangeInfo{range=[%d,%d] color=%s}", r.Start, r.End, formatOptional(r.Color))
}

// ColorPair is a range with constant foreground and background colours.
type ColorPair struct {
	Start      int
	End        int
	Foreground *colour.Color
	Background *colour.Color
}

// String implements fmt.Stringer.
func (p ColorPair) String() string {
	return fmt.Sprintf("ColorPair{range=[%d,%d] fg=%s bg=%s}",
		p.Start, p.End, formatOptional(p.Foreground), formatOptional(p.Background))
}

// Complete reports whether both colours are known.
func (p ColorPair) Complete() bool {
	return p.Foreground != nil && p.Background != nil
}

func formatOptional(c *colour.Color) string {
	if c == nil {
		return "none"
	}
	return c.Hex()
}

// Partition splits [0, length) into ordered, contiguous ranges, starting
// from a single range in defaultColor and painting each span over it in
// order. Where spans overlap the later span wins. Empty spans contribute
// nothing.
func Partition(length int, defaultColor *colour.Color, spans []Span) ([]RangeInfo, error) {
	initial, err := NewRangeInfo(0, length, defaultColor)
	if err != nil {
		return nil, err
	}
	ranges := []RangeInfo{initial}

	for _, span := range spans {
		if span.Start < 0 || span.End > length || span.Start > span.End {
			return nil, fmt.Errorf("%w: [%d,%d) in text of length %d", ErrInvalidSpan, span.Start, span.End, length)
		}
		if span.Start == span.End {
			continue
		}

		// Identify the ranges touched by the span.
		first := 0
		for ranges[first].End < span.Start {
			first++
		}
		last := len(ranges) - 1
		for ranges[last].Start > span.End {
			last--
		}
		startRange := ranges[first]
		endRange := ranges[last]

		spanColor := span.Color
		pieces := make([]RangeInfo, 0, 3)
		if startRange.Start < span.Start {
			pieces = append(pieces, RangeInfo{Start: startRange.Start, End: span.Start, Color: startRange.Color})
		}
		pieces = append(pieces, RangeInfo{Start: span.Start, End: span.End, Color: &spanColor})
		if span.End < endRange.End {
			pieces = append(pieces, RangeInfo{Start: span.End, End: endRange.End, Color: endRange.Color})
		}

		ranges = slices.Replace(ranges, first, last+1, pieces...)
	}

	return ranges, nil
}

// Pairs intersects a foreground partition with a background partition.
// Both partitions must cover the same extent. The result is contiguous and
// covers that extent exactly once.
func Pairs(foreground, background []RangeInfo) []ColorPair {
	pairs := make([]ColorPair, 0, len(foreground)+len(background))

	fi, bi := 0, 0
	for fi < len(foreground) && bi < len(background) {
		fg := foreground[fi]
		bg := background[bi]

		pairs = append(pairs, ColorPair{
			Start:      max(fg.Start, bg.Start),
			End:        min(fg.End, bg.End),
			Foreground: fg.Color,
			Background: bg.Color,
		})

		switch {
		case fg.End == bg.End:
			fi++
			bi++
		case fg.End < bg.End:
			fi++
		default:
			bi++
		}
	}

	return pairs
}

// Merge decomposes styled text into colour pairs using the given default
// foreground and background colours for unspanned characters.
func Merge(text StyledText, defaultForeground, defaultBackground *colour.Color) ([]ColorPair, error) {
	length := text.Len()

	foreground, err := Partition(length, defaultForeground, text.SpansOf(Foreground))
	if err != nil {
		return nil, fmt.Errorf("foreground spans: %w", err)
	}
	background, err := Partition(length, defaultBackground, text.SpansOf(Background))
	if err != nil {
		return nil, fmt.Errorf("background spans: %w", err)
	}

	return Pairs(foreground, background), nil
}
