package check

import (
	"context"
	"errors"
	"image"
	"math"
	"reflect"
	"testing"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/colourrange"
	"github.com/jmylchreest/legible/internal/swatch"
)

func mustChecker(t *testing.T, params Parameters) *Checker {
	t.Helper()
	c, err := New(params)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestEvaluatePreconditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *fakeElement)
		want   ResultID
	}{
		{"hidden", func(e *fakeElement) { e.hidden = true }, ResultNotVisible},
		{"not text", func(e *fakeElement) { e.notText = true }, ResultNotTextElement},
		{"empty", func(e *fakeElement) { e.text = colourrange.StyledText{} }, ResultTextEmpty},
		{"disabled", func(e *fakeElement) { e.disabled = true }, ResultNotEnabled},
		{"hidden wins over disabled", func(e *fakeElement) { e.hidden, e.disabled = true, true }, ResultNotVisible},
		{"empty wins over disabled", func(e *fakeElement) { e.text, e.disabled = colourrange.StyledText{}, true }, ResultTextEmpty},
	}

	c := mustChecker(t, DefaultParameters())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := textElement(colour.Black, colour.White)
			tt.mutate(el)

			got, err := c.Evaluate(el)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if len(got) != 1 || got[0].ID != tt.want || got[0].Type != NotRun {
				t.Fatalf("Evaluate() = %v, want single not-run %s", got, tt.want)
			}
			if got[0].ElementID != el.id {
				t.Errorf("ElementID = %d, want %d", got[0].ElementID, el.id)
			}
		})
	}
}

func TestEvaluateLightweight(t *testing.T) {
	greyOnWhite := colour.ContrastRatio(grey, colour.White)

	tests := []struct {
		name   string
		el     *fakeElement
		custom *float64
		want   []ResultID
	}{
		{
			name: "black on white passes",
			el:   textElement(colour.Black, colour.White),
		},
		{
			name: "grey on white fails normal text",
			el:   textElement(grey, colour.White),
			want: []ResultID{ResultContrastNotSufficient},
		},
		{
			name: "grey on white passes large text",
			el: func() *fakeElement {
				e := textElement(grey, colour.White)
				e.large, e.sizeKnown = true, true
				return e
			}(),
		},
		{
			name: "unknown size uses normal threshold",
			el: func() *fakeElement {
				e := textElement(grey, colour.White)
				e.large, e.sizeKnown = true, false
				return e
			}(),
			want: []ResultID{ResultContrastNotSufficient},
		},
		{
			name:   "custom ratio relaxes",
			el:     textElement(grey, colour.White),
			custom: ptr(3.0),
		},
		{
			name:   "custom ratio tightens",
			el:     textElement(colour.Black, grey),
			custom: ptr(7.0),
			want:   []ResultID{ResultCustomContrastNotSufficient},
		},
		{
			name:   "within tolerance passes",
			el:     textElement(grey, colour.White),
			custom: ptr(greyOnWhite + 0.009),
		},
		{
			name:   "beyond tolerance fails",
			el:     textElement(grey, colour.White),
			custom: ptr(greyOnWhite + 0.011),
			want:   []ResultID{ResultCustomContrastNotSufficient},
		},
		{
			name: "translucent text is composited",
			el:   textElement(colour.ARGB(0x40, 0, 0, 0), colour.White),
			want: []ResultID{ResultContrastNotSufficient},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			params.CustomRatio = tt.custom
			got, err := mustChecker(t, params).Evaluate(tt.el)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Evaluate() ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestEvaluateLightweightMetadata(t *testing.T) {
	got, err := mustChecker(t, DefaultParameters()).Evaluate(textElement(grey, colour.White))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Evaluate() = %v, want one result", got)
	}
	r := got[0]
	if r.Type != Error {
		t.Errorf("Type = %s, want error", r.Type)
	}
	if v, _ := r.Metadata.Float(KeyRequiredContrastRatio); v != colour.ContrastRatioWCAGNormalText {
		t.Errorf("required = %v, want 4.5", v)
	}
	if v, _ := r.Metadata.Float(KeyContrastRatio); math.Abs(v-3.54) > 0.01 {
		t.Errorf("ratio = %v, want about 3.54", v)
	}
	if v, _ := r.Metadata.Color(KeyTextColor); v != grey {
		t.Errorf("text colour = %s, want %s", v, grey)
	}
	if v, _ := r.Metadata.Color(KeyBackgroundColor); v != colour.White {
		t.Errorf("background colour = %s, want white", v)
	}
	if r.Metadata.Has(KeyResultTextSubstring) {
		t.Error("whole-text result should not carry a substring")
	}
}

func TestEvaluateHintText(t *testing.T) {
	el := textElement(colour.Black, colour.White)
	el.text = colourrange.StyledText{}
	el.hint = colourrange.StyledText{Text: "Search"}
	el.hintColor = ptr(grey)

	got, err := mustChecker(t, DefaultParameters()).Evaluate(el)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !equalIDs(ids(got), []ResultID{ResultContrastNotSufficient}) {
		t.Fatalf("Evaluate() ids = %v, want hint to fail", ids(got))
	}
	if v, _ := got[0].Metadata.Color(KeyTextColor); v != grey {
		t.Errorf("text colour = %s, want hint colour %s", v, grey)
	}
}

func TestEvaluateSpans(t *testing.T) {
	halfWhite := colour.ARGB(0x80, 0xFF, 0xFF, 0xFF)

	tests := []struct {
		name       string
		spans      []colourrange.Span
		want       []ResultID
		substrings []string
	}{
		{
			name:       "translucent tail",
			spans:      []colourrange.Span{{Start: 6, End: 11, Color: halfWhite, Kind: colourrange.Background}},
			want:       []ResultID{ResultContrastNotSufficient, ResultUpperBoundContrastNotSufficient},
			substrings: []string{"Hello ", "world"},
		},
		{
			name:       "translucent head keeps position",
			spans:      []colourrange.Span{{Start: 0, End: 5, Color: halfWhite, Kind: colourrange.Background}},
			want:       []ResultID{ResultUpperBoundContrastNotSufficient, ResultContrastNotSufficient},
			substrings: []string{"Hello", " world"},
		},
		{
			name:       "passing foreground span",
			spans:      []colourrange.Span{{Start: 0, End: 5, Color: colour.Black, Kind: colourrange.Foreground}},
			want:       []ResultID{ResultContrastNotSufficient},
			substrings: []string{" world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := textElement(grey, colour.White)
			el.text = colourrange.StyledText{Text: "Hello world", Spans: tt.spans}

			got, err := mustChecker(t, DefaultParameters()).Evaluate(el)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Fatalf("Evaluate() ids = %v, want %v", ids(got), tt.want)
			}
			for i, want := range tt.substrings {
				if sub, _ := got[i].Metadata.Text(KeyResultTextSubstring); sub != want {
					t.Errorf("result %d substring = %q, want %q", i, sub, want)
				}
			}
		})
	}
}

func TestEvaluateMissingColours(t *testing.T) {
	noText := textElement(colour.Black, colour.White)
	noText.textColor = nil

	noBackground := textElement(colour.Black, colour.White)
	noBackground.background = nil

	spanOnly := textElement(colour.Black, colour.White)
	spanOnly.textColor = nil
	spanOnly.text.Spans = []colourrange.Span{{Start: 0, End: 5, Color: colour.Black, Kind: colourrange.Foreground}}

	tests := []struct {
		name string
		el   *fakeElement
		want []ResultID
	}{
		{"no text colour", noText, []ResultID{ResultCouldNotGetTextColor, ResultHeuristicNoScreenCapture}},
		{"no background colour", noBackground, []ResultID{ResultCouldNotGetBackgroundColor, ResultHeuristicNoScreenCapture}},
		{"foreground from span", spanOnly, nil},
	}

	c := mustChecker(t, DefaultParameters())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Evaluate(tt.el)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Evaluate() ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestEvaluateTranslucentBackground(t *testing.T) {
	halfWhite := colour.ARGB(0x80, 0xFF, 0xFF, 0xFF)

	tests := []struct {
		name   string
		el     *fakeElement
		custom *float64
		want   []ResultID
		types  []ResultType
	}{
		{
			name:  "ambiguous escalates without capture",
			el:    textElement(colour.Black, translucent),
			want:  []ResultID{ResultHeuristicNoScreenCapture},
			types: []ResultType{NotRun},
		},
		{
			name:  "upper bound fails",
			el:    textElement(grey, halfWhite),
			want:  []ResultID{ResultUpperBoundContrastNotSufficient},
			types: []ResultType{Error},
		},
		{
			name:   "custom upper bound fails",
			el:     textElement(colour.Black, translucent),
			custom: ptr(7.0),
			want:   []ResultID{ResultCustomUpperBoundNotSufficient},
			types:  []ResultType{Error},
		},
		{
			name:   "custom lower bound escalates",
			el:     textElement(grey, halfWhite),
			custom: ptr(3.0),
			want:   []ResultID{ResultHeuristicNoScreenCapture},
			types:  []ResultType{NotRun},
		},
		{
			name:  "both bounds pass",
			el:    textElement(colour.Black, colour.ARGB(0xF0, 0xFF, 0xFF, 0xFF)),
			want:  nil,
			types: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			params.CustomRatio = tt.custom
			got, err := mustChecker(t, params).Evaluate(tt.el)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Fatalf("Evaluate() ids = %v, want %v", ids(got), tt.want)
			}
			for i, want := range tt.types {
				if got[i].Type != want {
					t.Errorf("result %d type = %s, want %s", i, got[i].Type, want)
				}
			}
		})
	}
}

func TestContrastRangeUpperBoundMetadata(t *testing.T) {
	el := textElement(grey, colour.ARGB(0x80, 0xFF, 0xFF, 0xFF))
	got, err := mustChecker(t, DefaultParameters()).Evaluate(el)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Evaluate() = %v, want one result", got)
	}
	md := got[0].Metadata
	bounds := colour.ContrastRatioRange(grey, colour.ARGB(0x80, 0xFF, 0xFF, 0xFF))
	if v, _ := md.Float(KeyContrastRatio); v != bounds.Upper {
		t.Errorf("ratio = %v, want upper bound %v", v, bounds.Upper)
	}
	if v, _ := md.Float(KeyRequiredContrastRatio); v != colour.ContrastRatioWCAGNormalText {
		t.Errorf("required = %v, want 4.5", v)
	}
	if md.Has(KeyBackgroundOpacity) {
		t.Error("range result should not carry the placeholder opacity")
	}
}

func TestContrastRangeMissingMetadata(t *testing.T) {
	el := textElement(colour.Black, translucent)
	placeholder := newResult(el, NotRun, ResultBackgroundMustBeOpaque, Metadata{KeyTextColor: colour.Black})

	if _, _, err := evaluateContrastRange(el, DefaultParameters(), placeholder); err == nil {
		t.Error("evaluateContrastRange() error = nil, want missing background colour error")
	}
}

func TestEvaluateHeavyweight(t *testing.T) {
	glyphs := image.Rect(12, 18, 28, 22)
	capture := func() *fakeCapture {
		return screen(100, 100, colour.White).paint(glyphs, grey.NRGBA())
	}

	tests := []struct {
		name      string
		el        func() *fakeElement
		custom    *float64
		want      []ResultID
		required  float64
		tolerant  float64
		largeText *bool
	}{
		{
			name:     "unknown size is borderline",
			el:       func() *fakeElement { return textElement(colour.Black, translucent) },
			want:     []ResultID{ResultHeuristicContrastBorderline},
			required: colour.ContrastRatioWCAGNormalText,
			tolerant: colour.ContrastRatioWCAGLargeText,
		},
		{
			name: "normal size not sufficient",
			el: func() *fakeElement {
				e := textElement(colour.Black, translucent)
				e.sizeKnown = true
				return e
			},
			want:      []ResultID{ResultHeuristicContrastNotSufficient},
			required:  colour.ContrastRatioWCAGNormalText,
			largeText: ptr(false),
		},
		{
			name: "large size passes",
			el: func() *fakeElement {
				e := textElement(colour.Black, translucent)
				e.large, e.sizeKnown = true, true
				return e
			},
		},
		{
			name: "custom ratio",
			el: func() *fakeElement {
				e := textElement(colour.Black, colour.White)
				e.textColor = nil
				return e
			},
			custom: ptr(7.0),
			want:   []ResultID{ResultCouldNotGetTextColor, ResultCustomHeuristicContrastNotSufficient},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			params.CustomRatio = tt.custom
			params.Capture = capture()

			got, err := mustChecker(t, params).Evaluate(tt.el())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Fatalf("Evaluate() ids = %v, want %v", ids(got), tt.want)
			}
			if len(got) == 0 {
				return
			}

			r := got[len(got)-1]
			if r.Type != Warning {
				t.Errorf("Type = %s, want warning", r.Type)
			}
			if v, _ := r.Metadata.Color(KeyForegroundColor); v != grey {
				t.Errorf("foreground = %s, want %s", v, grey)
			}
			if v, _ := r.Metadata.Color(KeyBackgroundColor); v != colour.White {
				t.Errorf("background = %s, want white", v)
			}
			if tt.required != 0 {
				if v, _ := r.Metadata.Float(KeyRequiredContrastRatio); v != tt.required {
					t.Errorf("required = %v, want %v", v, tt.required)
				}
			}
			if tt.tolerant != 0 {
				if v, _ := r.Metadata.Float(KeyTolerantContrastRatio); v != tt.tolerant {
					t.Errorf("tolerant = %v, want %v", v, tt.tolerant)
				}
			}
			if tt.largeText != nil && r.Metadata.Bool(KeyIsLargeText) != *tt.largeText {
				t.Errorf("large text = %v, want %v", r.Metadata.Bool(KeyIsLargeText), *tt.largeText)
			}
			if tt.custom != nil {
				if v, _ := r.Metadata.Float(KeyCustomHeuristicRatio); v != *tt.custom {
					t.Errorf("custom = %v, want %v", v, *tt.custom)
				}
			}
		})
	}
}

func TestEvaluateHeavyweightRegion(t *testing.T) {
	glyphs := image.Rect(12, 18, 28, 22)

	tests := []struct {
		name   string
		bounds image.Rectangle
		glyphs image.Rectangle
		want   ResultID
	}{
		{"glyphs narrow to uniform text", image.Rect(10, 10, 30, 30), glyphs, ResultScreenCaptureUniformColor},
		{"bounds include background", image.Rect(10, 10, 30, 30), image.Rectangle{}, ResultHeuristicContrastBorderline},
		{"glyphs outside bounds ignored", image.Rect(40, 40, 60, 60), glyphs, ResultScreenCaptureUniformColor},
		{"off screen", image.Rect(90, 90, 130, 130), image.Rectangle{}, ResultNotWithinScreenCapture},
		{"empty bounds", image.Rect(10, 10, 10, 30), image.Rectangle{}, ResultNotWithinScreenCapture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := textElement(colour.Black, colour.White)
			el.textColor = nil
			el.bounds, el.glyphs = tt.bounds, tt.glyphs

			params := DefaultParameters()
			params.Capture = screen(100, 100, colour.White).paint(glyphs, grey.NRGBA())

			got, err := mustChecker(t, params).Evaluate(el)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			want := []ResultID{ResultCouldNotGetTextColor, tt.want}
			if !equalIDs(ids(got), want) {
				t.Errorf("Evaluate() ids = %v, want %v", ids(got), want)
			}
		})
	}
}

func TestEvaluateNotWithinCaptureMetadata(t *testing.T) {
	el := textElement(colour.Black, translucent)
	el.bounds = image.Rect(90, 90, 130, 130)

	params := DefaultParameters()
	params.Capture = screen(100, 100, colour.White)

	got, err := mustChecker(t, params).Evaluate(el)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != ResultNotWithinScreenCapture {
		t.Fatalf("Evaluate() = %v, want not within capture", got)
	}
	if v, _ := got[0].Metadata.Text(KeyViewBoundsString); v != "[90,90][130,130]" {
		t.Errorf("view bounds = %q", v)
	}
	if v, _ := got[0].Metadata.Text(KeyScreenshotBoundsString); v != "[0,0][100,100]" {
		t.Errorf("screenshot bounds = %q", v)
	}
}

func TestEvaluateUniformCapture(t *testing.T) {
	red := colour.RGB(0xFF, 0, 0)

	tests := []struct {
		name      string
		fill      colour.Color
		redaction *colour.Color
		want      ResultID
	}{
		{"uniform white", colour.White, ptr(colour.Black), ResultScreenCaptureUniformColor},
		{"default redaction", colour.Black, ptr(colour.Black), ResultScreenCaptureDataHidden},
		{"custom redaction", red, ptr(red), ResultScreenCaptureDataHidden},
		{"redaction disabled", colour.Black, nil, ResultScreenCaptureUniformColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := textElement(colour.Black, colour.White)
			el.background = nil
			el.edge = true

			params := DefaultParameters()
			params.RedactionColour = tt.redaction
			params.Capture = screen(100, 100, tt.fill)

			got, err := mustChecker(t, params).Evaluate(el)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			want := []ResultID{ResultCouldNotGetBackgroundColor, tt.want}
			if !equalIDs(ids(got), want) {
				t.Fatalf("Evaluate() ids = %v, want %v", ids(got), want)
			}
			last := got[1]
			if last.Type != NotRun {
				t.Errorf("Type = %s, want not-run", last.Type)
			}
			if !last.Metadata.Bool(KeyIsAgainstScrollableEdge) {
				t.Error("uniform result should carry the scrollable edge flag")
			}
		})
	}
}

func TestEvaluateSwatchCandidates(t *testing.T) {
	light := colour.RGB(0xCC, 0xCC, 0xCC)
	stub := &stubExtractor{swatch: &swatch.ContrastSwatch{
		Background:  colour.White,
		Foregrounds: []colour.Color{colour.Black, grey, light},
		Ratios: []float64{
			colour.ContrastRatio(colour.Black, colour.White),
			colour.ContrastRatio(grey, colour.White),
			colour.ContrastRatio(light, colour.White),
		},
	}}

	el := textElement(colour.Black, translucent)
	el.sizeKnown = true
	el.obscured = true

	params := DefaultParameters()
	params.Capture = screen(100, 100, colour.White)
	params.Extractor = stub
	params.SaveViewImages = true

	got, err := mustChecker(t, params).Evaluate(el)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !equalIDs(ids(got), []ResultID{ResultHeuristicContrastNotSufficient}) {
		t.Fatalf("Evaluate() ids = %v", ids(got))
	}
	md := got[0].Metadata
	if v, _ := md.Color(KeyForegroundColor); v != grey {
		t.Errorf("foreground = %s, want first failing candidate %s", v, grey)
	}
	if v := md.Colors(KeyAdditionalForegroundColor); !reflect.DeepEqual(v, []colour.Color{light}) {
		t.Errorf("additional foregrounds = %v, want [%s]", v, light)
	}
	if v := md.Floats(KeyAdditionalContrastRatios); len(v) != 1 || v[0] != stub.swatch.Ratios[2] {
		t.Errorf("additional ratios = %v", v)
	}
	if !md.Bool(KeyIsPotentiallyObscured) {
		t.Error("warning should carry the obscured flag")
	}
	if got[0].Image == nil {
		t.Error("warning should retain the cropped image")
	}
	if stub.calls != 1 {
		t.Errorf("extractor calls = %d, want 1", stub.calls)
	}
}

func TestEvaluateHeavyweightRunsOnce(t *testing.T) {
	stub := &stubExtractor{swatch: &swatch.ContrastSwatch{
		Background: colour.White, Foregrounds: []colour.Color{colour.White}, Ratios: []float64{1},
	}}

	el := textElement(colour.Black, colour.White)
	el.text = colourrange.StyledText{
		Text: "Hello world",
		Spans: []colourrange.Span{
			{Start: 0, End: 5, Color: translucent, Kind: colourrange.Background},
			{Start: 6, End: 11, Color: translucent, Kind: colourrange.Background},
		},
	}

	params := DefaultParameters()
	params.Capture = screen(100, 100, colour.White)
	params.Extractor = stub

	got, err := mustChecker(t, params).Evaluate(el)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !equalIDs(ids(got), []ResultID{ResultScreenCaptureUniformColor}) {
		t.Errorf("Evaluate() ids = %v", ids(got))
	}
	if stub.calls != 1 {
		t.Errorf("extractor calls = %d, want 1", stub.calls)
	}
}

func TestEvaluateErrors(t *testing.T) {
	extractErr := errors.New("plugin crashed")

	tests := []struct {
		name    string
		el      func() *fakeElement
		params  func() Parameters
		wantErr error
	}{
		{
			name: "span past end of text",
			el: func() *fakeElement {
				e := textElement(colour.Black, colour.White)
				e.text.Spans = []colourrange.Span{{Start: 2, End: 40, Color: grey, Kind: colourrange.Foreground}}
				return e
			},
			params:  DefaultParameters,
			wantErr: colourrange.ErrInvalidSpan,
		},
		{
			name: "extractor failure",
			el: func() *fakeElement {
				e := textElement(colour.Black, colour.White)
				e.textColor = nil
				return e
			},
			params: func() Parameters {
				p := DefaultParameters()
				p.Capture = screen(100, 100, colour.White)
				p.Extractor = &stubExtractor{err: extractErr}
				return p
			},
			wantErr: extractErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mustChecker(t, tt.params()).Evaluate(tt.el())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	el := textElement(colour.Black, translucent)
	params := DefaultParameters()
	params.Capture = screen(100, 100, colour.White).paint(image.Rect(12, 18, 28, 22), grey.NRGBA())
	c := mustChecker(t, params)

	first, err := c.Evaluate(el)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	second, err := c.Evaluate(el)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Evaluate() not idempotent:\n%v\n%v", first, second)
	}
}

func TestNewRejectsBadRatio(t *testing.T) {
	params := DefaultParameters()
	params.CustomRatio = ptr(0.5)
	if _, err := New(params); err == nil {
		t.Error("New() error = nil, want ratio error")
	}
}

func TestRun(t *testing.T) {
	var elements []Element
	var want []ResultID
	for i := range 20 {
		el := textElement(colour.Black, colour.White)
		el.id = i
		if i%3 == 0 {
			el.textColor = ptr(grey)
			want = append(want, ResultContrastNotSufficient)
		}
		if i%5 == 0 {
			el.hidden = true
			want = want[:len(want)-boolInt(i%3 == 0)]
			want = append(want, ResultNotVisible)
		}
		elements = append(elements, el)
	}

	c := mustChecker(t, DefaultParameters())
	for _, workers := range []int{0, 1, 4, 32} {
		got, err := c.Run(context.Background(), elements, workers)
		if err != nil {
			t.Fatalf("Run(%d) error = %v", workers, err)
		}
		if !equalIDs(ids(got), want) {
			t.Errorf("Run(%d) ids = %v, want %v", workers, ids(got), want)
		}
		for i := 1; i < len(got); i++ {
			if got[i].ElementID < got[i-1].ElementID {
				t.Fatalf("Run(%d) out of order at %d", workers, i)
			}
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	elements := []Element{textElement(colour.Black, colour.White)}
	if _, err := mustChecker(t, DefaultParameters()).Run(ctx, elements, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
