// Package swatch separates a small rectangular image region into a dominant
// background colour and candidate text colours.
package swatch

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/jmylchreest/legible/internal/colour"
)

// ErrEmptyImage is returned when an image has no pixels to sample.
var ErrEmptyImage = errors.New("image has no pixels")

// ContrastSwatch is the result of separating a region into background and
// foreground colours. Foregrounds are ordered most-confident first and
// Ratios holds the contrast of each against Background.
type ContrastSwatch struct {
	Background  colour.Color   `json:"background"`
	Foregrounds []colour.Color `json:"foregrounds"`
	Ratios      []float64      `json:"ratios"`
}

// NewContrastSwatch builds a swatch, computing the ratio of every
// foreground against the background.
func NewContrastSwatch(background colour.Color, foregrounds []colour.Color) (*ContrastSwatch, error) {
	if len(foregrounds) == 0 {
		return nil, fmt.Errorf("swatch needs at least one foreground colour")
	}
	ratios := make([]float64, len(foregrounds))
	for i, fg := range foregrounds {
		ratios[i] = colour.ContrastRatio(fg, background)
	}
	return &ContrastSwatch{Background: background, Foregrounds: foregrounds, Ratios: ratios}, nil
}

// Validate checks the parallel sequences agree.
func (s *ContrastSwatch) Validate() error {
	if len(s.Foregrounds) == 0 {
		return fmt.Errorf("swatch has no foreground colours")
	}
	if len(s.Foregrounds) != len(s.Ratios) {
		return fmt.Errorf("swatch has %d foreground colours but %d ratios", len(s.Foregrounds), len(s.Ratios))
	}
	return nil
}

// Foreground returns the most confident foreground colour.
func (s *ContrastSwatch) Foreground() colour.Color {
	return s.Foregrounds[0]
}

// Uniform reports whether the region held a single colour.
func (s *ContrastSwatch) Uniform() bool {
	return s.Foregrounds[0] == s.Background
}

// String implements fmt.Stringer.
func (s *ContrastSwatch) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bg=%s", s.Background.Hex())
	for i, fg := range s.Foregrounds {
		fmt.Fprintf(&b, " fg=%s(%.2f)", fg.Hex(), s.Ratios[i])
	}
	return b.String()
}

// Extractor separates an image region into a ContrastSwatch.
type Extractor interface {
	Extract(img image.Image) (*ContrastSwatch, error)
}

// Algorithm names a swatch extraction algorithm.
type Algorithm string

const (
	// AlgorithmHistogram counts exact pixel colours.
	AlgorithmHistogram Algorithm = "histogram"

	// AlgorithmKMeans clusters pixels in RGB space.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns the supported algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmHistogram, AlgorithmKMeans}
}

// IsValidAlgorithm checks if the given algorithm name is supported.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// Options tune extraction.
type Options struct {
	Algorithm Algorithm `yaml:"algorithm"`

	// Enhanced returns every significant foreground candidate rather than
	// only the highest-contrast one.
	Enhanced bool `yaml:"enhanced"`

	// MaxForegrounds caps the number of candidates returned.
	MaxForegrounds int `yaml:"max_foregrounds"`

	// MinShare is the fraction of sampled pixels a colour must cover to be
	// considered a candidate.
	MinShare float64 `yaml:"min_share"`
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Algorithm:      AlgorithmHistogram,
		MaxForegrounds: 3,
		MinShare:       0.02,
	}
}

// Validate validates the options.
func (o Options) Validate() error {
	if !IsValidAlgorithm(o.Algorithm) {
		return fmt.Errorf("invalid swatch algorithm: %s (valid algorithms: %v)", o.Algorithm, ValidAlgorithms())
	}
	if o.MaxForegrounds < 1 {
		return fmt.Errorf("max foregrounds must be at least 1, got %d", o.MaxForegrounds)
	}
	if o.MaxForegrounds > 16 {
		return fmt.Errorf("max foregrounds too large: %d (maximum: 16)", o.MaxForegrounds)
	}
	if o.MinShare <= 0 || o.MinShare > 1 {
		return fmt.Errorf("min share must be in (0, 1], got %g", o.MinShare)
	}
	return nil
}

// NewExtractor creates an Extractor for the configured algorithm.
func NewExtractor(opts Options) (Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch opts.Algorithm {
	case AlgorithmHistogram:
		return NewHistogramExtractor(opts), nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(opts), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", opts.Algorithm, ValidAlgorithms())
	}
}

// weighted is a colour and the share of the region it covers.
type weighted struct {
	colour colour.Color
	share  float64
}

// selectCandidates picks foreground candidates from the non-background
// colours, which must be ordered by descending share. The standard mode
// keeps the single highest-contrast significant colour; enhanced mode keeps
// every significant colour in share order. When nothing is significant the
// most common remaining colour is used.
func selectCandidates(background colour.Color, others []weighted, opts Options) []colour.Color {
	var significant []weighted
	for _, w := range others {
		if w.share >= opts.MinShare {
			significant = append(significant, w)
		}
	}
	if len(significant) == 0 {
		return []colour.Color{others[0].colour}
	}

	if !opts.Enhanced {
		best := significant[0].colour
		bestRatio := colour.ContrastRatio(best, background)
		for _, w := range significant[1:] {
			if r := colour.ContrastRatio(w.colour, background); r > bestRatio {
				best, bestRatio = w.colour, r
			}
		}
		return []colour.Color{best}
	}

	n := min(len(significant), opts.MaxForegrounds)
	out := make([]colour.Color, n)
	for i := range n {
		out[i] = significant[i].colour
	}
	return out
}
