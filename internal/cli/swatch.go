package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/capture"
	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/config"
	"github.com/jmylchreest/legible/internal/report"
	"github.com/jmylchreest/legible/internal/swatch"
)

type swatchOptions struct {
	region        regionValue
	format        string
	allowInsecure bool
	noColour      bool
	swatch        swatchFlags
}

func newSwatchCmd(a *app) *cobra.Command {
	opts := &swatchOptions{}

	cmd := &cobra.Command{
		Use:   "swatch <image>",
		Short: "Separate an image region into background and text colours",
		Long: `Run swatch extraction on an image, or a region of it, and print the
background colour, the candidate text colours and their contrast ratios.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  legible swatch button.png
  legible swatch screen.png --region 40,120,200,48 --enhanced
  legible swatch screen.png --region 0,0,64,32 --swatch-plugin ./legible-swatch -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwatch(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().Var(&opts.region, "region", "region to sample as x,y,w,h (default: whole image)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&opts.allowInsecure, "allow-insecure", false, "allow plain HTTP image URLs")
	cmd.Flags().BoolVar(&opts.noColour, "no-colour", false, "disable colour previews")
	opts.swatch.register(cmd)

	return cmd
}

func runSwatch(cmd *cobra.Command, a *app, opts *swatchOptions, path string) error {
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (valid: table, json)", opts.format)
	}
	cfg, err := a.loadConfig(func(c *config.Config) { opts.swatch.apply(cmd, c) })
	if err != nil {
		return err
	}

	loader := capture.NewSmartLoader()
	loader.AllowInsecure = opts.allowInsecure
	shot, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	region := opts.region.r
	if region.Empty() {
		region = shot.Bounds()
	}
	img, err := shot.Crop(region)
	if err != nil {
		return err
	}

	extractor, release, err := newExtractor(cfg, a.logger)
	if err != nil {
		return err
	}
	defer release()

	s, err := extractor.Extract(img)
	if err != nil {
		return fmt.Errorf("swatch extraction failed: %w", err)
	}
	a.logger.Debug("swatch extracted", "region", region, "swatch", s)

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Region string `json:"region"`
			*swatch.ContrastSwatch
		}{(&regionValue{region}).String(), s})
	}

	preview := !opts.noColour && isTerminal(out)
	table := report.NewTable("ROLE", "COLOUR", "RATIO", "NORMAL", "LARGE")
	table.AddRow("background", colourCell(s.Background, preview), "", "", "")
	for i, fg := range s.Foregrounds {
		ratio := s.Ratios[i]
		table.AddRow(
			fmt.Sprintf("foreground %d", i+1),
			colourCell(fg, preview),
			fmt.Sprintf("%.2f", ratio),
			verdict(colour.ContrastRatioWCAGNormalText, ratio),
			verdict(colour.ContrastRatioWCAGLargeText, ratio),
		)
	}
	if s.Uniform() {
		fmt.Fprintln(out, "Region is a single colour.")
	}
	fmt.Fprintf(out, "Region %v\n\n", region)
	_, err = fmt.Fprint(out, table.Render())
	return err
}

func colourCell(c colour.Color, preview bool) string {
	if preview {
		return colour.FormatWithPreview(c, 4)
	}
	return c.Hex()
}

func verdict(required, ratio float64) string {
	if colour.Insufficient(required, ratio) {
		return "fail"
	}
	return "pass"
}
