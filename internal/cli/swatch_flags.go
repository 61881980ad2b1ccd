package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/legible/internal/config"
	"github.com/jmylchreest/legible/internal/plugin/executor"
	"github.com/jmylchreest/legible/internal/swatch"
)

// swatchFlags are the extraction flags shared by check and swatch.
type swatchFlags struct {
	algorithm      string
	enhanced       bool
	maxForegrounds int
	minShare       float64
	plugin         string
}

func (f *swatchFlags) register(cmd *cobra.Command) {
	defaults := swatch.DefaultOptions()
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", string(defaults.Algorithm), fmt.Sprintf("swatch extraction algorithm %v", swatch.ValidAlgorithms()))
	cmd.Flags().BoolVar(&f.enhanced, "enhanced", false, "evaluate every significant foreground colour, not only the strongest")
	cmd.Flags().IntVar(&f.maxForegrounds, "max-foregrounds", defaults.MaxForegrounds, "maximum foreground candidates in enhanced mode")
	cmd.Flags().Float64Var(&f.minShare, "min-share", defaults.MinShare, "minimum share of a region a colour must cover to be a candidate")
	cmd.Flags().StringVar(&f.plugin, "swatch-plugin", "", "path to an external swatch extraction plugin")
}

// apply copies the flags the user set over cfg.
func (f *swatchFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Swatch.Algorithm = swatch.Algorithm(f.algorithm)
	}
	if flags.Changed("enhanced") {
		cfg.Swatch.Enhanced = f.enhanced
	}
	if flags.Changed("max-foregrounds") {
		cfg.Swatch.MaxForegrounds = f.maxForegrounds
	}
	if flags.Changed("min-share") {
		cfg.Swatch.MinShare = f.minShare
	}
	if flags.Changed("swatch-plugin") {
		cfg.SwatchPlugin = f.plugin
	}
}

// newExtractor returns the configured extractor and a function releasing it.
func newExtractor(cfg config.Config, logger hclog.Logger) (swatch.Extractor, func(), error) {
	if cfg.SwatchPlugin == "" {
		ex, err := swatch.NewExtractor(cfg.Swatch)
		if err != nil {
			return nil, nil, err
		}
		return ex, func() {}, nil
	}

	ex, err := executor.New(cfg.SwatchPlugin, cfg.Swatch, executor.WithLogger(logger.Named("plugin")))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load swatch plugin: %w", err)
	}
	info := ex.Info()
	logger.Info("using swatch plugin", "name", info.Name, "version", info.Version)
	return ex, ex.Close, nil
}
