// Package hierarchy models a captured UI tree as an arena of windows and
// elements addressed by integer ids.
package hierarchy

import (
	"errors"
	"fmt"
	"image"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/colourrange"
)

// NoID marks an absent parent, window or root reference.
const NoID = -1

var (
	// ErrUnknownElement is returned for ids not present in the arena.
	ErrUnknownElement = errors.New("unknown element")

	// ErrInvalidSnapshot is returned when a snapshot cannot form a tree.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// DeviceState describes the display the hierarchy was captured on.
type DeviceState struct {
	// ScaledDensity converts text pixel sizes to scaled pixels. Zero is
	// treated as 1.
	ScaledDensity float64 `json:"scaled_density" yaml:"scaled_density"`
}

func (d DeviceState) density() float64 {
	if d.ScaledDensity <= 0 {
		return 1
	}
	return d.ScaledDensity
}

// Hierarchy owns every window and element. Relations between them are ids
// resolved through the arena.
type Hierarchy struct {
	device   DeviceState
	windows  []*Window
	elements []*Element
}

// Device returns the device state.
func (h *Hierarchy) Device() DeviceState {
	return h.device
}

// Windows returns the windows in capture order.
func (h *Hierarchy) Windows() []*Window {
	return h.windows
}

// Elements returns every element in traversal order: windows in capture
// order, each walked depth-first pre-order.
func (h *Hierarchy) Elements() []*Element {
	return h.elements
}

// Element resolves an element id.
func (h *Hierarchy) Element(id int) (*Element, error) {
	if id < 0 || id >= len(h.elements) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, id)
	}
	return h.elements[id], nil
}

// Window resolves a window id.
func (h *Hierarchy) Window(id int) (*Window, error) {
	if id < 0 || id >= len(h.windows) {
		return nil, fmt.Errorf("unknown window: %d", id)
	}
	return h.windows[id], nil
}

// Window is a top-level surface holding one element tree.
type Window struct {
	ID             int
	Layer          int
	Bounds         image.Rectangle
	ParentWindowID int
	ChildWindowIDs []int
	RootID         int

	// ElementIDs lists the window's elements in traversal order.
	ElementIDs []int
}

// Element is a node of the UI tree.
type Element struct {
	id       int
	parentID int
	childIDs []int
	windowID int

	role       Role
	visible    bool
	enabled    bool
	scroll     ScrollAxis
	text       colourrange.StyledText
	hint       colourrange.StyledText
	textColor  *colour.Color
	hintColor  *colour.Color
	background *colour.Color
	textSize   *float64
	bold       bool
	bounds     image.Rectangle
	glyphs     []image.Rectangle

	// order is the element's position in the global drawing order.
	order int

	hierarchy *Hierarchy
}

// ID returns the element id.
func (e *Element) ID() int { return e.id }

// ParentID returns the parent id, or NoID for a window root.
func (e *Element) ParentID() int { return e.parentID }

// ChildIDs returns the child ids in drawing order.
func (e *Element) ChildIDs() []int { return e.childIDs }

// WindowID returns the id of the containing window.
func (e *Element) WindowID() int { return e.windowID }

// Role returns the element role.
func (e *Element) Role() Role { return e.role }

// IsVisible reports whether the element is visible to the user.
func (e *Element) IsVisible() bool { return e.visible }

// IsEnabled reports whether the element accepts interaction.
func (e *Element) IsEnabled() bool { return e.enabled }

// ScrollAxis returns the direction the element scrolls in, if any.
func (e *Element) ScrollAxis() ScrollAxis { return e.scroll }

// IsTextElement reports whether the element draws text that can be
// evaluated for contrast.
func (e *Element) IsTextElement() bool { return e.role.rendersText(len(e.glyphs) > 0) }

// Text returns the element text and its colour spans.
func (e *Element) Text() colourrange.StyledText { return e.text }

// HintText returns the hint shown when the text is empty.
func (e *Element) HintText() colourrange.StyledText { return e.hint }

// TextColor returns the declared text colour, or nil when unknown.
func (e *Element) TextColor() *colour.Color { return copyColor(e.textColor) }

// HintTextColor returns the declared hint colour, or nil when unknown.
func (e *Element) HintTextColor() *colour.Color { return copyColor(e.hintColor) }

// BackgroundColor returns the declared background colour, or nil when
// unknown.
func (e *Element) BackgroundColor() *colour.Color { return copyColor(e.background) }

// TextSize returns the text size in pixels when known.
func (e *Element) TextSize() (float64, bool) {
	if e.textSize == nil {
		return 0, false
	}
	return *e.textSize, true
}

// IsBold reports whether the text typeface is bold.
func (e *Element) IsBold() bool { return e.bold }

// Bounds returns the element bounds in screen coordinates.
func (e *Element) Bounds() image.Rectangle { return e.bounds }

// GlyphBounds returns the bounds of each text character.
func (e *Element) GlyphBounds() []image.Rectangle { return e.glyphs }

// Parent resolves the parent element.
func (e *Element) Parent() (*Element, bool) {
	if e.parentID == NoID {
		return nil, false
	}
	return e.hierarchy.elements[e.parentID], true
}

// Children resolves the child elements.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.childIDs))
	for i, id := range e.childIDs {
		out[i] = e.hierarchy.elements[id]
	}
	return out
}

// Window resolves the containing window.
func (e *Element) Window() *Window {
	return e.hierarchy.windows[e.windowID]
}

// Hierarchy returns the arena the element belongs to.
func (e *Element) Hierarchy() *Hierarchy {
	return e.hierarchy
}

// String implements fmt.Stringer.
func (e *Element) String() string {
	return fmt.Sprintf("%s#%d%v", e.role, e.id, e.bounds)
}

func copyColor(c *colour.Color) *colour.Color {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
