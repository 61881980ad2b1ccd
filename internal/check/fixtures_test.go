package check

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/colourrange"
	"github.com/jmylchreest/legible/internal/swatch"
)

// fakeElement is a text element with every precondition satisfied unless a
// field says otherwise.
type fakeElement struct {
	id         int
	hidden     bool
	disabled   bool
	notText    bool
	text       colourrange.StyledText
	hint       colourrange.StyledText
	textColor  *colour.Color
	hintColor  *colour.Color
	background *colour.Color
	large      bool
	sizeKnown  bool
	bounds     image.Rectangle
	glyphs     image.Rectangle
	obscured   bool
	edge       bool
}

func (e *fakeElement) ID() int                              { return e.id }
func (e *fakeElement) IsVisible() bool                      { return !e.hidden }
func (e *fakeElement) IsEnabled() bool                      { return !e.disabled }
func (e *fakeElement) IsTextElement() bool                  { return !e.notText }
func (e *fakeElement) Text() colourrange.StyledText         { return e.text }
func (e *fakeElement) HintText() colourrange.StyledText     { return e.hint }
func (e *fakeElement) TextColor() *colour.Color             { return e.textColor }
func (e *fakeElement) HintTextColor() *colour.Color         { return e.hintColor }
func (e *fakeElement) BackgroundColor() *colour.Color       { return e.background }
func (e *fakeElement) IsLargeText() (bool, bool)            { return e.large, e.sizeKnown }
func (e *fakeElement) Bounds() image.Rectangle              { return e.bounds }
func (e *fakeElement) TextCharacterBounds() image.Rectangle { return e.glyphs }
func (e *fakeElement) IsPotentiallyObscured() bool          { return e.obscured }
func (e *fakeElement) IsAgainstScrollableEdge() bool        { return e.edge }

func ptr[T any](v T) *T { return &v }

func textElement(fg, bg colour.Color) *fakeElement {
	return &fakeElement{
		id:         1,
		text:       colourrange.StyledText{Text: "Hello"},
		textColor:  ptr(fg),
		background: ptr(bg),
		bounds:     image.Rect(10, 10, 30, 30),
	}
}

// fakeCapture is an in-memory capture.
type fakeCapture struct {
	img *image.NRGBA
}

func (c *fakeCapture) Width() int  { return c.img.Bounds().Dx() }
func (c *fakeCapture) Height() int { return c.img.Bounds().Dy() }
func (c *fakeCapture) Crop(r image.Rectangle) (image.Image, error) {
	return c.img.SubImage(r), nil
}

// screen returns a w×h capture filled with bg.
func screen(w, h int, bg colour.Color) *fakeCapture {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg.NRGBA()), image.Point{}, draw.Src)
	return &fakeCapture{img: img}
}

// paint fills r with c.
func (c *fakeCapture) paint(r image.Rectangle, fill color.Color) *fakeCapture {
	draw.Draw(c.img, r, image.NewUniform(fill), image.Point{}, draw.Src)
	return c
}

// stubExtractor returns a fixed swatch.
type stubExtractor struct {
	swatch *swatch.ContrastSwatch
	err    error
	calls  int
}

func (s *stubExtractor) Extract(image.Image) (*swatch.ContrastSwatch, error) {
	s.calls++
	return s.swatch, s.err
}

func ids(results []Result) []ResultID {
	out := make([]ResultID, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a, b []ResultID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	grey        = colour.RGB(0x88, 0x88, 0x88)
	translucent = colour.ARGB(0x80, 0, 0, 0)
)
