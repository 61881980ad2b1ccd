package colour

import (
	"math"
	"testing"
)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestLuminance(t *testing.T) {
	if got := Luminance(Black); got != 0 {
		t.Errorf("Luminance(black) = %v, want 0", got)
	}
	if got := Luminance(White); !approx(got, 1, 1e-9) {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if Luminance(ARGB(0, 255, 255, 255)) != Luminance(White) {
		t.Error("Luminance should ignore alpha")
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b Color
		want float64
	}{
		{"black on white", Black, White, 21},
		{"same colour", RGB(120, 30, 200), RGB(120, 30, 200), 1},
		{"grey on white", RGB(0x88, 0x88, 0x88), White, 3.546},
		{"grey on black", RGB(0x77, 0x77, 0x77), Black, 4.69},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContrastRatio(tt.a, tt.b); !approx(got, tt.want, 0.01) {
				t.Errorf("ContrastRatio() = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestContrastRatioSymmetry(t *testing.T) {
	colours := []Color{Black, White, RGB(255, 0, 0), RGB(0, 128, 255), RGB(17, 99, 3), RGB(250, 250, 200)}
	for _, a := range colours {
		for _, b := range colours {
			if ContrastRatio(a, b) != ContrastRatio(b, a) {
				t.Errorf("ContrastRatio(%s, %s) is not symmetric", a, b)
			}
			if ContrastRatio(a, b) < 1 {
				t.Errorf("ContrastRatio(%s, %s) below 1", a, b)
			}
		}
	}
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name   string
		fg, bg Color
		want   Color
	}{
		{"opaque foreground wins", RGB(10, 20, 30), White, RGB(10, 20, 30)},
		{"transparent foreground", Transparent, RGB(1, 2, 3), RGB(1, 2, 3)},
		{"half black over white", 0x80000000, White, RGB(127, 127, 127)},
		{"half white over black", 0x80FFFFFF, Black, RGB(128, 128, 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Composite(tt.fg, tt.bg); got != tt.want {
				t.Errorf("Composite(%s, %s) = %s, want %s", tt.fg, tt.bg, got, tt.want)
			}
		})
	}
}

func TestContrastRatioRange(t *testing.T) {
	tests := []struct {
		name      string
		fg, bg    Color
		wantLower float64
		wantUpper float64
	}{
		{"black text on translucent black", Black, 0x80000000, 1, 5.24},
		{"black text on translucent white", Black, 0x80FFFFFF, 5.32, 21},
		{"white text on translucent black", White, 0x80000000, 4.00, 21},
		{"opaque background has no spread", Black, White, 21, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ContrastRatioRange(tt.fg, tt.bg)
			if r.Lower > r.Upper {
				t.Fatalf("lower %.3f exceeds upper %.3f", r.Lower, r.Upper)
			}
			if !approx(r.Lower, tt.wantLower, 0.02) {
				t.Errorf("Lower = %.3f, want %.3f", r.Lower, tt.wantLower)
			}
			if !approx(r.Upper, tt.wantUpper, 0.02) {
				t.Errorf("Upper = %.3f, want %.3f", r.Upper, tt.wantUpper)
			}
		})
	}
}

func TestContrastRatioRangeCrossing(t *testing.T) {
	// Mid grey text lies between the darkest and lightest possible backgrounds.
	r := ContrastRatioRange(RGB(128, 128, 128), 0x40808080)
	if r.Lower != 1 {
		t.Errorf("Lower = %.3f, want 1 when text luminance is reachable by the background", r.Lower)
	}
	if r.Upper <= 1 {
		t.Errorf("Upper = %.3f, want > 1", r.Upper)
	}
}

func TestInsufficient(t *testing.T) {
	tests := []struct {
		name     string
		required float64
		measured float64
		want     bool
	}{
		{"exactly at threshold", ContrastRatioWCAGNormalText, 4.5, false},
		{"within tolerance", ContrastRatioWCAGNormalText, 4.5 - ContrastTolerance, false},
		{"just beyond tolerance", ContrastRatioWCAGNormalText, 4.5 - ContrastTolerance - 0.001, true},
		{"large text within tolerance", ContrastRatioWCAGLargeText, 3.0 - ContrastTolerance, false},
		{"large text beyond tolerance", ContrastRatioWCAGLargeText, 3.0 - ContrastTolerance - 0.001, true},
		{"above threshold", ContrastRatioWCAGLargeText, 21, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Insufficient(tt.required, tt.measured); got != tt.want {
				t.Errorf("Insufficient(%v, %v) = %v, want %v", tt.required, tt.measured, got, tt.want)
			}
		})
	}
}
