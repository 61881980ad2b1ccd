package hierarchy

import (
	"image"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/colourrange"
)

// Source is the input a Hierarchy is built from: a SnapshotSource or a
// ViewSource.
type Source interface {
	windows() (DeviceState, []WindowNode, error)
}

// Rect is a serialized rectangle in screen pixels.
type Rect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Rectangle converts to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// RectFrom converts an image.Rectangle.
func RectFrom(r image.Rectangle) Rect {
	return Rect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// Snapshot is a serialized hierarchy.
type Snapshot struct {
	Device  DeviceState  `json:"device" yaml:"device"`
	Windows []WindowNode `json:"windows" yaml:"windows"`
}

// WindowNode is a serialized window with its element tree and child
// windows.
type WindowNode struct {
	Layer    int          `json:"layer" yaml:"layer"`
	Bounds   Rect         `json:"bounds" yaml:"bounds"`
	Root     *Node        `json:"root,omitempty" yaml:"root,omitempty"`
	Children []WindowNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Node is a serialized element. Visible and Enabled default to true.
type Node struct {
	Role            Role               `json:"role" yaml:"role"`
	Visible         *bool              `json:"visible,omitempty" yaml:"visible,omitempty"`
	Enabled         *bool              `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Scroll          ScrollAxis         `json:"scroll,omitempty" yaml:"scroll,omitempty"`
	Text            string             `json:"text,omitempty" yaml:"text,omitempty"`
	TextSpans       []colourrange.Span `json:"text_spans,omitempty" yaml:"text_spans,omitempty"`
	Hint            string             `json:"hint,omitempty" yaml:"hint,omitempty"`
	HintSpans       []colourrange.Span `json:"hint_spans,omitempty" yaml:"hint_spans,omitempty"`
	TextColor       *colour.Color      `json:"text_color,omitempty" yaml:"text_color,omitempty"`
	HintTextColor   *colour.Color      `json:"hint_text_color,omitempty" yaml:"hint_text_color,omitempty"`
	BackgroundColor *colour.Color      `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	TextSize        *float64           `json:"text_size,omitempty" yaml:"text_size,omitempty"`
	Bold            bool               `json:"bold,omitempty" yaml:"bold,omitempty"`
	Bounds          Rect               `json:"bounds" yaml:"bounds"`
	Glyphs          []Rect             `json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
	Children        []Node             `json:"children,omitempty" yaml:"children,omitempty"`
}

// SnapshotSource builds a hierarchy from a deserialized snapshot.
type SnapshotSource struct {
	Snapshot *Snapshot
}

func (s SnapshotSource) windows() (DeviceState, []WindowNode, error) {
	if s.Snapshot == nil {
		return DeviceState{}, nil, ErrInvalidSnapshot
	}
	return s.Snapshot.Device, s.Snapshot.Windows, nil
}

// View is a live UI node, as exposed by a toolkit adapter.
type View interface {
	Role() Role
	Visible() bool
	Enabled() bool
	ScrollAxis() ScrollAxis
	Text() colourrange.StyledText
	HintText() colourrange.StyledText
	TextColor() (colour.Color, bool)
	HintTextColor() (colour.Color, bool)
	BackgroundColor() (colour.Color, bool)
	TextSize() (float64, bool)
	Bold() bool
	Bounds() image.Rectangle
	GlyphBounds() []image.Rectangle
	Children() []View
}

// ViewWindow is a live window and its root view.
type ViewWindow struct {
	Layer    int
	Bounds   image.Rectangle
	Root     View
	Children []ViewWindow
}

// ViewSource builds a hierarchy from live views.
type ViewSource struct {
	Device  DeviceState
	Windows []ViewWindow
}

func (s ViewSource) windows() (DeviceState, []WindowNode, error) {
	out := make([]WindowNode, len(s.Windows))
	for i, w := range s.Windows {
		out[i] = windowFromView(w)
	}
	return s.Device, out, nil
}

func windowFromView(w ViewWindow) WindowNode {
	n := WindowNode{Layer: w.Layer, Bounds: RectFrom(w.Bounds)}
	if w.Root != nil {
		root := nodeFromView(w.Root)
		n.Root = &root
	}
	for _, c := range w.Children {
		n.Children = append(n.Children, windowFromView(c))
	}
	return n
}

func nodeFromView(v View) Node {
	visible, enabled := v.Visible(), v.Enabled()
	text, hint := v.Text(), v.HintText()
	n := Node{
		Role:      v.Role(),
		Visible:   &visible,
		Enabled:   &enabled,
		Scroll:    v.ScrollAxis(),
		Text:      text.Text,
		TextSpans: text.Spans,
		Hint:      hint.Text,
		HintSpans: hint.Spans,
		Bold:      v.Bold(),
		Bounds:    RectFrom(v.Bounds()),
	}
	if c, ok := v.TextColor(); ok {
		n.TextColor = &c
	}
	if c, ok := v.HintTextColor(); ok {
		n.HintTextColor = &c
	}
	if c, ok := v.BackgroundColor(); ok {
		n.BackgroundColor = &c
	}
	if size, ok := v.TextSize(); ok {
		n.TextSize = &size
	}
	for _, g := range v.GlyphBounds() {
		n.Glyphs = append(n.Glyphs, RectFrom(g))
	}
	for _, c := range v.Children() {
		n.Children = append(n.Children, nodeFromView(c))
	}
	return n
}
