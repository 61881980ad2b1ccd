// Package cli provides the command-line interface for legible.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/legible/internal/config"
	"github.com/jmylchreest/legible/internal/version"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	quiet      bool

	logger hclog.Logger
}

// NewRootCmd builds the legible command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "legible",
		Short: "Text contrast checks for UI snapshots",
		Long: `Legible evaluates whether text in a captured user interface has enough
contrast against its background to be readable.

It reads a snapshot of the UI element tree, checks each text element's
declared colours against the WCAG 2.x thresholds, and, when a screen capture
is supplied, measures the colours actually rendered on screen.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newRatioCmd(a))
	rootCmd.AddCommand(newSwatchCmd(a))

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case quiet:
		level = hclog.Off
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "legible",
		Output: w,
		Level:  level,
	})
}

// loadConfig layers the config file and environment, then applies the
// command's flag overrides.
func (a *app) loadConfig(overrides func(*config.Config)) (config.Config, error) {
	cfg, err := config.NewBuilder().
		WithFile(a.configPath).
		WithEnv().
		Apply(overrides).
		Build()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	a.logger.Debug("configuration loaded", "path", a.configPath, "workers", cfg.Workers,
		"algorithm", cfg.Swatch.Algorithm, "plugin", cfg.SwatchPlugin)
	return cfg, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
