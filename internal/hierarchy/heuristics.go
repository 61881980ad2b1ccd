package hierarchy

import (
	"image"

	"github.com/jmylchreest/legible/internal/colour"
)

// IsLargeText classifies the element text against the WCAG large-text
// minimums using the device scaled density. known is false when the text
// size is unavailable.
func (e *Element) IsLargeText() (large, known bool) {
	size, ok := e.TextSize()
	if !ok {
		return false, false
	}
	scaled := size / e.hierarchy.device.density()
	if scaled >= colour.WCAGLargeTextMinSize {
		return true, true
	}
	return e.bold && scaled >= colour.WCAGLargeBoldTextMinSize, true
}

// TextCharacterBounds returns the smallest rectangle enclosing every glyph,
// or an empty rectangle when no glyph locations are known.
func (e *Element) TextCharacterBounds() image.Rectangle {
	if len(e.glyphs) == 0 {
		return image.Rectangle{}
	}
	r := e.glyphs[0]
	for _, g := range e.glyphs[1:] {
		r.Min.X = min(r.Min.X, g.Min.X)
		r.Min.Y = min(r.Min.Y, g.Min.Y)
		r.Max.X = max(r.Max.X, g.Max.X)
		r.Max.Y = max(r.Max.Y, g.Max.Y)
	}
	return r
}

// IsPotentiallyObscured reports whether a visible element drawn after this
// one, and not related to it by ancestry, overlaps its bounds.
func (e *Element) IsPotentiallyObscured() bool {
	if e.bounds.Empty() {
		return false
	}
	for _, other := range e.hierarchy.elements {
		if other.order <= e.order || !other.visible || other.bounds.Empty() {
			continue
		}
		if !other.bounds.Overlaps(e.bounds) {
			continue
		}
		if e.isAncestorOf(other) || other.isAncestorOf(e) {
			continue
		}
		return true
	}
	return false
}

// IsAgainstScrollableEdge reports whether the element reaches an edge of
// its nearest scrollable ancestor along that ancestor's scroll axis, where
// content may be clipped.
func (e *Element) IsAgainstScrollableEdge() bool {
	for p, ok := e.Parent(); ok; p, ok = p.Parent() {
		switch p.scroll {
		case ScrollVertical:
			return e.bounds.Min.Y <= p.bounds.Min.Y || e.bounds.Max.Y >= p.bounds.Max.Y
		case ScrollHorizontal:
			return e.bounds.Min.X <= p.bounds.Min.X || e.bounds.Max.X >= p.bounds.Max.X
		}
	}
	return false
}

func (e *Element) isAncestorOf(other *Element) bool {
	for p, ok := other.Parent(); ok; p, ok = p.Parent() {
		if p.id == e.id {
			return true
		}
	}
	return false
}
