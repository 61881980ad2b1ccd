package swatch

import (
	"cmp"
	"image"
	"slices"

	"github.com/jmylchreest/legible/internal/colour"
)

// HistogramExtractor counts the exact colours of every pixel. The most
// frequent colour is the background.
type HistogramExtractor struct {
	opts Options
}

// NewHistogramExtractor creates a HistogramExtractor.
func NewHistogramExtractor(opts Options) *HistogramExtractor {
	return &HistogramExtractor{opts: opts}
}

// Extract implements Extractor.
func (e *HistogramExtractor) Extract(img image.Image) (*ContrastSwatch, error) {
	counts, total := histogram(img)
	if total == 0 {
		return nil, ErrEmptyImage
	}

	ranked := make([]weighted, 0, len(counts))
	for c, n := range counts {
		ranked = append(ranked, weighted{colour: c, share: float64(n) / float64(total)})
	}
	sortByShare(ranked)

	background := ranked[0].colour
	if len(ranked) == 1 {
		return NewContrastSwatch(background, []colour.Color{background})
	}
	return NewContrastSwatch(background, selectCandidates(background, ranked[1:], e.opts))
}

// histogram counts opaque pixel colours over the image bounds.
func histogram(img image.Image) (map[colour.Color]int, int) {
	bounds := img.Bounds()
	counts := make(map[colour.Color]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			counts[colour.FromColor(img.At(x, y)).Opaque()]++
			total++
		}
	}
	return counts, total
}

// sortByShare orders by descending share, breaking ties on the lower packed
// colour so results do not depend on map iteration order.
func sortByShare(ws []weighted) {
	slices.SortFunc(ws, func(a, b weighted) int {
		if c := cmp.Compare(b.share, a.share); c != 0 {
			return c
		}
		return cmp.Compare(a.colour, b.colour)
	})
}
