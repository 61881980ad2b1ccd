package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/colour"
)

type ratioOptions struct {
	custom   ratioValue
	noColour bool
}

func newRatioCmd(a *app) *cobra.Command {
	opts := &ratioOptions{}

	cmd := &cobra.Command{
		Use:   "ratio <foreground> <background>",
		Short: "Compute the WCAG contrast ratio of two colours",
		Long: `Compute the WCAG 2.x contrast ratio of a text colour on a background colour.

Colours are hex (#RGB, #RRGGBB or #AARRGGBB). A translucent text colour is
blended over the background. A translucent background has no single ratio, so
the range of ratios over every possible backdrop is reported instead.

Examples:
  legible ratio "#767676" "#FFFFFF"
  legible ratio "#FFFFFF" "#80000000"
  legible ratio 333 eee --custom-ratio 7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := colour.ParseHex(args[0])
			if err != nil {
				return fmt.Errorf("foreground: %w", err)
			}
			bg, err := colour.ParseHex(args[1])
			if err != nil {
				return fmt.Errorf("background: %w", err)
			}
			a.logger.Debug("computing ratio", "foreground", fg, "background", bg)
			out := cmd.OutOrStdout()
			return writeRatio(out, fg, bg, opts.custom.r, !opts.noColour && isTerminal(out))
		},
	}

	cmd.Flags().Var(&opts.custom, "custom-ratio", "also test against this ratio (1-21)")
	cmd.Flags().BoolVar(&opts.noColour, "no-colour", false, "disable the colour preview")

	return cmd
}

func writeRatio(w io.Writer, fg, bg colour.Color, custom *float64, preview bool) error {
	if preview {
		fmt.Fprintln(w, colour.PreviewPair(colour.Composite(fg, bg.Opaque()), bg.Opaque(), "Sample", 12))
	}

	if !bg.IsOpaque() {
		r := colour.ContrastRatioRange(fg, bg)
		fmt.Fprintf(w, "Contrast ratio: %.2f to %.2f (background opacity %.2f%%)\n", r.Lower, r.Upper, bg.OpacityPercent())
		writeVerdict(w, "Normal text", colour.ContrastRatioWCAGNormalText, r)
		writeVerdict(w, "Large text", colour.ContrastRatioWCAGLargeText, r)
		if custom != nil {
			writeVerdict(w, "Custom", *custom, r)
		}
		return nil
	}

	ratio := colour.ContrastRatio(colour.Composite(fg, bg), bg)
	fmt.Fprintf(w, "Contrast ratio: %.2f\n", ratio)
	single := colour.Range{Lower: ratio, Upper: ratio}
	writeVerdict(w, "Normal text", colour.ContrastRatioWCAGNormalText, single)
	writeVerdict(w, "Large text", colour.ContrastRatioWCAGLargeText, single)
	if custom != nil {
		writeVerdict(w, "Custom", *custom, single)
	}
	return nil
}

// writeVerdict prints pass when even the lower bound meets the threshold,
// fail when the upper bound does not, and depends otherwise.
func writeVerdict(w io.Writer, label string, required float64, r colour.Range) {
	verdict := "depends on backdrop"
	switch {
	case !colour.Insufficient(required, r.Lower):
		verdict = "pass"
	case colour.Insufficient(required, r.Upper):
		verdict = "fail"
	}
	fmt.Fprintf(w, "  %-12s (%.1f:1) %s\n", label+":", required, verdict)
}
