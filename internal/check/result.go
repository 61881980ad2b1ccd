package check

import (
	"fmt"
	"image"
)

// ResultType is the severity of a result.
type ResultType int

const (
	// NotRun means the check could not be applied to the element.
	NotRun ResultType = iota
	// Warning means contrast may be insufficient.
	Warning
	// Error means contrast is insufficient.
	Error
)

// String returns the lowercase severity name.
func (t ResultType) String() string {
	switch t {
	case NotRun:
		return "not-run"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ResultType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ResultID identifies the condition a result reports. Values are stable.
type ResultID int

const (
	ResultNotVisible                           ResultID = 1
	ResultNotTextElement                       ResultID = 2
	ResultTextEmpty                            ResultID = 3
	ResultCouldNotGetTextColor                 ResultID = 4
	ResultCouldNotGetBackgroundColor           ResultID = 5
	ResultTextMustBeOpaque                     ResultID = 6
	ResultBackgroundMustBeOpaque               ResultID = 7
	ResultContrastNotSufficient                ResultID = 8
	ResultHeuristicNoScreenCapture             ResultID = 9
	ResultNotWithinScreenCapture               ResultID = 10
	ResultHeuristicContrastNotSufficient       ResultID = 11
	ResultHeuristicContrastBorderline          ResultID = 12
	ResultNotEnabled                           ResultID = 13
	ResultScreenCaptureDataHidden              ResultID = 14
	ResultCustomHeuristicContrastNotSufficient ResultID = 15
	ResultScreenCaptureUniformColor            ResultID = 16
	ResultCustomContrastNotSufficient          ResultID = 22
	ResultUpperBoundContrastNotSufficient      ResultID = 23
	ResultLowerBoundContrastNotSufficient      ResultID = 24
	ResultCustomUpperBoundNotSufficient        ResultID = 25
	ResultCustomLowerBoundNotSufficient        ResultID = 26
)

var resultNames = map[ResultID]string{
	ResultNotVisible:                           "not_visible",
	ResultNotTextElement:                       "not_text_element",
	ResultTextEmpty:                            "text_empty",
	ResultCouldNotGetTextColor:                 "could_not_get_text_color",
	ResultCouldNotGetBackgroundColor:           "could_not_get_background_color",
	ResultTextMustBeOpaque:                     "text_must_be_opaque",
	ResultBackgroundMustBeOpaque:               "background_must_be_opaque",
	ResultContrastNotSufficient:                "contrast_not_sufficient",
	ResultHeuristicNoScreenCapture:             "no_screen_capture",
	ResultNotWithinScreenCapture:               "not_within_screen_capture",
	ResultHeuristicContrastNotSufficient:       "heuristic_contrast_not_sufficient",
	ResultHeuristicContrastBorderline:          "heuristic_contrast_borderline",
	ResultNotEnabled:                           "not_enabled",
	ResultScreenCaptureDataHidden:              "screen_capture_data_hidden",
	ResultCustomHeuristicContrastNotSufficient: "custom_heuristic_contrast_not_sufficient",
	ResultScreenCaptureUniformColor:            "screen_capture_uniform_color",
	ResultCustomContrastNotSufficient:          "custom_contrast_not_sufficient",
	ResultUpperBoundContrastNotSufficient:      "upper_bound_contrast_not_sufficient",
	ResultLowerBoundContrastNotSufficient:      "lower_bound_contrast_not_sufficient",
	ResultCustomUpperBoundNotSufficient:        "custom_upper_bound_contrast_not_sufficient",
	ResultCustomLowerBoundNotSufficient:        "custom_lower_bound_contrast_not_sufficient",
}

// String returns a snake_case name for the id.
func (id ResultID) String() string {
	if name, ok := resultNames[id]; ok {
		return name
	}
	return fmt.Sprintf("result(%d)", int(id))
}

// Outcome is the broad classification of a result.
type Outcome int

const (
	// OutcomePass is implied by the absence of results.
	OutcomePass Outcome = iota
	OutcomeNotApplicable
	OutcomeWarning
	OutcomeFail
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNotApplicable:
		return "not-applicable"
	case OutcomeWarning:
		return "warning"
	case OutcomeFail:
		return "fail"
	default:
		return "pass"
	}
}

// Result is one diagnostic produced for an element.
type Result struct {
	ElementID int        `json:"element_id"`
	Type      ResultType `json:"type"`
	ID        ResultID   `json:"result_id"`
	Metadata  Metadata   `json:"metadata,omitempty"`

	// Image is the cropped capture region, retained for heuristic
	// warnings when view images are requested.
	Image image.Image `json:"-"`
}

// Outcome classifies the result.
func (r Result) Outcome() Outcome {
	switch r.Type {
	case Error:
		return OutcomeFail
	case Warning:
		return OutcomeWarning
	default:
		return OutcomeNotApplicable
	}
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("element %d: %s %s (%d)", r.ElementID, r.Type, r.ID, int(r.ID))
}

func newResult(el Element, t ResultType, id ResultID, md Metadata) Result {
	return Result{ElementID: el.ID(), Type: t, ID: id, Metadata: md}
}
