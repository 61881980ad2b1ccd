package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/capture"
	"github.com/jmylchreest/legible/internal/check"
	"github.com/jmylchreest/legible/internal/config"
	"github.com/jmylchreest/legible/internal/hierarchy"
	"github.com/jmylchreest/legible/internal/report"
	"github.com/jmylchreest/legible/internal/snapshot"
	"github.com/jmylchreest/legible/internal/version"
)

// ErrContrastFailures is returned by check --fail-on-error when any element
// failed.
var ErrContrastFailures = errors.New("text contrast failures found")

type checkOptions struct {
	capturePath   string
	allowInsecure bool
	captureCache  string
	format        string
	sort          string
	output        string
	evidenceDir   string
	workers       int
	failOnError   bool
	short         bool
	noColour      bool

	customRatio ratioValue
	redaction   colourValue
	swatch      swatchFlags
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <snapshot>",
		Short: "Check text contrast in a UI snapshot",
		Long: `Check every element of a UI snapshot for sufficient text contrast.

The snapshot is a JSON or YAML document describing the element tree, and may
be compressed (.gz, .xz, .bz2). Elements whose declared colours are missing
or ambiguous are measured from the screen capture when one is supplied.

Examples:
  # Check declared colours only
  legible check screen.json

  # Measure rendered colours from a capture, most severe first
  legible check screen.json --capture screen.png --sort priority

  # Write a JSON report and keep evidence crops for warnings
  legible check screen.json.xz -c screen.png -f json -o report.json --save-evidence evidence

  # Apply a stricter custom ratio and fail the build on errors
  legible check screen.yaml --custom-ratio 7 --fail-on-error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.capturePath, "capture", "c", "", "screen capture image path or URL")
	cmd.Flags().BoolVar(&opts.allowInsecure, "allow-insecure", false, "allow plain HTTP capture URLs")
	cmd.Flags().StringVar(&opts.captureCache, "capture-cache", "", `directory caching downloaded captures ("default" for the user cache)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "output format (table, json)")
	cmd.Flags().StringVar(&opts.sort, "sort", "order", "result order (order, priority)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.evidenceDir, "save-evidence", "", "directory for PNG crops of heuristic warnings")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "elements evaluated in parallel")
	cmd.Flags().BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero when any element fails")
	cmd.Flags().BoolVar(&opts.short, "short", false, "use one-line messages in table output")
	cmd.Flags().BoolVar(&opts.noColour, "no-colour", false, "disable colour previews")
	cmd.Flags().Var(&opts.customRatio, "custom-ratio", "contrast ratio replacing the WCAG thresholds (1-21)")
	cmd.Flags().Var(&opts.redaction, "redaction-colour", `capture colour marking hidden content ("none" disables)`)
	opts.swatch.register(cmd)

	return cmd
}

func (o *checkOptions) validate() error {
	switch o.format {
	case "table", "json":
	default:
		return fmt.Errorf("unknown format %q (valid: table, json)", o.format)
	}
	switch o.sort {
	case "order", "priority":
	default:
		return fmt.Errorf("unknown sort %q (valid: order, priority)", o.sort)
	}
	return nil
}

func (o *checkOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("custom-ratio") {
		cfg.CustomRatio = o.customRatio.r
	}
	if flags.Changed("redaction-colour") {
		cfg.RedactionColour = o.redaction.String()
	}
	if flags.Changed("save-evidence") {
		cfg.SaveEvidence = true
		cfg.EvidenceDir = o.evidenceDir
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	o.swatch.apply(cmd, cfg)
}

func runCheck(cmd *cobra.Command, a *app, opts *checkOptions, snapshotPath string) error {
	if err := opts.validate(); err != nil {
		return err
	}
	cfg, err := a.loadConfig(func(c *config.Config) { opts.apply(cmd, c) })
	if err != nil {
		return err
	}
	logger := a.logger

	snap, err := snapshot.Load(snapshotPath)
	if err != nil {
		return err
	}
	h, err := hierarchy.Build(hierarchy.SnapshotSource{Snapshot: snap})
	if err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	logger.Debug("snapshot loaded", "path", snapshotPath, "windows", len(h.Windows()), "elements", len(h.Elements()))

	params, err := cfg.Parameters()
	if err != nil {
		return err
	}
	params.Logger = logger

	if opts.capturePath != "" {
		loader := capture.NewSmartLoader()
		loader.AllowInsecure = opts.allowInsecure
		if opts.captureCache != "" {
			dir := opts.captureCache
			if dir == "default" {
				if dir, err = capture.DefaultCacheDir(); err != nil {
					return err
				}
			}
			loader.Cache = &capture.Cache{Dir: dir}
		}
		shot, err := loader.Load(cmd.Context(), opts.capturePath)
		if err != nil {
			return fmt.Errorf("failed to load capture: %w", err)
		}
		logger.Debug("capture loaded", "path", opts.capturePath, "width", shot.Width(), "height", shot.Height())
		params.Capture = shot
	}

	extractor, release, err := newExtractor(cfg, logger)
	if err != nil {
		return err
	}
	defer release()
	params.Extractor = extractor

	checker, err := check.New(params)
	if err != nil {
		return err
	}

	elements := make([]check.Element, 0, len(h.Elements()))
	for _, el := range h.Elements() {
		elements = append(elements, el)
	}
	results, err := checker.Run(cmd.Context(), elements, cfg.Workers)
	if err != nil {
		return err
	}

	doc := report.New(results, len(elements))
	doc.Version = version.Short()
	doc.Snapshot = snapshotPath
	doc.Capture = opts.capturePath

	if cfg.SaveEvidence {
		n, err := doc.SaveEvidence(cfg.EvidenceDir)
		if err != nil {
			return err
		}
		logger.Info("saved evidence", "dir", cfg.EvidenceDir, "images", n)
	}
	if opts.sort == "priority" {
		doc.SortByPriority()
	}

	if err := writeReport(cmd, opts, doc); err != nil {
		return err
	}

	if opts.failOnError && doc.HasFailures() {
		return fmt.Errorf("%w: %d", ErrContrastFailures, doc.Summary.Failures)
	}
	return nil
}

func writeReport(cmd *cobra.Command, opts *checkOptions, doc *report.Document) error {
	if opts.output == "" {
		return encodeReport(cmd.OutOrStdout(), opts, doc)
	}

	f, err := os.Create(opts.output) // #nosec G304 - user-specified output path
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encodeReport(f, opts, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func encodeReport(w io.Writer, opts *checkOptions, doc *report.Document) error {
	if opts.format == "json" {
		return doc.WriteJSON(w)
	}
	return doc.WriteTable(w, report.TableOptions{
		Preview:      !opts.noColour && isTerminal(w),
		Short:        opts.short,
		MessageWidth: 60,
	})
}
