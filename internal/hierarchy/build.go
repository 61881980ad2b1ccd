package hierarchy

import (
	"fmt"
	"math"
	"sort"

	"github.com/jmylchreest/legible/internal/colourrange"
)

// Build constructs a Hierarchy from either source kind.
func Build(src Source) (*Hierarchy, error) {
	device, windows, err := src.windows()
	if err != nil {
		return nil, err
	}
	if device.ScaledDensity < 0 || math.IsNaN(device.ScaledDensity) {
		return nil, fmt.Errorf("%w: scaled density %v", ErrInvalidSnapshot, device.ScaledDensity)
	}

	b := &builder{h: &Hierarchy{device: device}}
	for _, w := range windows {
		if err := b.addWindow(w, NoID); err != nil {
			return nil, err
		}
	}
	b.assignDrawingOrder()
	return b.h, nil
}

type builder struct {
	h *Hierarchy
}

func (b *builder) addWindow(n WindowNode, parentWindowID int) error {
	w := &Window{
		ID:             len(b.h.windows),
		Layer:          n.Layer,
		Bounds:         n.Bounds.Rectangle(),
		ParentWindowID: parentWindowID,
		RootID:         NoID,
	}
	b.h.windows = append(b.h.windows, w)
	if parentWindowID != NoID {
		parent := b.h.windows[parentWindowID]
		parent.ChildWindowIDs = append(parent.ChildWindowIDs, w.ID)
	}

	if n.Root != nil {
		id, err := b.addElement(*n.Root, w, NoID)
		if err != nil {
			return err
		}
		w.RootID = id
	}

	for _, c := range n.Children {
		if err := b.addWindow(c, w.ID); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addElement(n Node, w *Window, parentID int) (int, error) {
	if n.TextSize != nil && (*n.TextSize < 0 || math.IsNaN(*n.TextSize)) {
		return NoID, fmt.Errorf("%w: element %d text size %v", ErrInvalidSnapshot, len(b.h.elements), *n.TextSize)
	}

	e := &Element{
		id:         len(b.h.elements),
		parentID:   parentID,
		windowID:   w.ID,
		role:       n.Role,
		visible:    n.Visible == nil || *n.Visible,
		enabled:    n.Enabled == nil || *n.Enabled,
		scroll:     n.Scroll,
		text:       colourrange.StyledText{Text: n.Text, Spans: n.TextSpans},
		hint:       colourrange.StyledText{Text: n.Hint, Spans: n.HintSpans},
		textColor:  copyColor(n.TextColor),
		hintColor:  copyColor(n.HintTextColor),
		background: copyColor(n.BackgroundColor),
		bold:       n.Bold,
		bounds:     n.Bounds.Rectangle(),
		hierarchy:  b.h,
	}
	if n.TextSize != nil {
		size := *n.TextSize
		e.textSize = &size
	}
	for _, g := range n.Glyphs {
		e.glyphs = append(e.glyphs, g.Rectangle())
	}
	b.h.elements = append(b.h.elements, e)
	w.ElementIDs = append(w.ElementIDs, e.id)

	for _, c := range n.Children {
		id, err := b.addElement(c, w, e.id)
		if err != nil {
			return NoID, err
		}
		e.childIDs = append(e.childIDs, id)
	}
	return e.id, nil
}

// assignDrawingOrder ranks elements by window layer, then window capture
// order, then traversal order within the window.
func (b *builder) assignDrawingOrder() {
	windows := make([]*Window, len(b.h.windows))
	copy(windows, b.h.windows)
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Layer < windows[j].Layer
	})

	order := 0
	for _, w := range windows {
		for _, id := range w.ElementIDs {
			b.h.elements[id].order = order
			order++
		}
	}
}
