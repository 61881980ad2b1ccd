// Package config loads legible's settings. Values are layered: built-in
// defaults, then a YAML file, then LEGIBLE_* environment variables. The CLI
// applies its flags last.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/legible/internal/check"
	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/swatch"
)

// Environment variables read by WithEnv.
const (
	EnvCustomRatio     = "LEGIBLE_CUSTOM_RATIO"
	EnvRedactionColour = "LEGIBLE_REDACTION_COLOUR"
	EnvSaveEvidence    = "LEGIBLE_SAVE_EVIDENCE"
	EnvEvidenceDir     = "LEGIBLE_EVIDENCE_DIR"
	EnvSwatchAlgorithm = "LEGIBLE_SWATCH_ALGORITHM"
	EnvSwatchPlugin    = "LEGIBLE_SWATCH_PLUGIN"
	EnvWorkers         = "LEGIBLE_WORKERS"
	EnvEnhanced        = "LEGIBLE_ENHANCED"
)

// RedactionNone disables redaction detection when used as the redaction colour.
const RedactionNone = "none"

// Config holds every user-tunable setting.
type Config struct {
	// CustomRatio replaces the WCAG thresholds when set.
	CustomRatio *float64 `yaml:"custom_ratio,omitempty"`

	// RedactionColour is the colour a capture is filled with when its
	// owner hid the content. Empty or "none" disables detection.
	RedactionColour string `yaml:"redaction_colour"`

	SaveEvidence bool   `yaml:"save_evidence"`
	EvidenceDir  string `yaml:"evidence_dir"`

	Swatch       swatch.Options `yaml:"swatch"`
	SwatchPlugin string         `yaml:"swatch_plugin,omitempty"`

	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RedactionColour: check.DefaultRedactionColour.Hex(),
		EvidenceDir:     "evidence",
		Swatch:          swatch.DefaultOptions(),
		Workers:         1,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.CustomRatio != nil && (*c.CustomRatio < 1 || *c.CustomRatio > 21) {
		return fmt.Errorf("custom ratio must be in [1, 21], got %g", *c.CustomRatio)
	}
	if _, err := c.Redaction(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.SaveEvidence && c.EvidenceDir == "" {
		return errors.New("evidence directory is required when saving evidence")
	}
	if err := c.Swatch.Validate(); err != nil {
		return fmt.Errorf("swatch: %w", err)
	}
	return nil
}

// Redaction parses the redaction colour. A nil colour means detection is off.
func (c Config) Redaction() (*colour.Color, error) {
	s := strings.TrimSpace(c.RedactionColour)
	if s == "" || strings.EqualFold(s, RedactionNone) {
		return nil, nil
	}
	col, err := colour.ParseHex(s)
	if err != nil {
		return nil, fmt.Errorf("redaction colour: %w", err)
	}
	return &col, nil
}

// Parameters converts the configuration into check parameters. The capture,
// extractor and logger are left for the caller to supply.
func (c Config) Parameters() (check.Parameters, error) {
	if err := c.Validate(); err != nil {
		return check.Parameters{}, err
	}
	redaction, err := c.Redaction()
	if err != nil {
		return check.Parameters{}, err
	}
	params := check.Parameters{
		SaveViewImages:  c.SaveEvidence,
		RedactionColour: redaction,
	}
	if c.CustomRatio != nil {
		r := *c.CustomRatio
		params.CustomRatio = &r
	}
	return params, nil
}

// Builder assembles a Config from its sources.
type Builder struct {
	cfg  Config
	errs []error
}

// NewBuilder starts from the defaults.
func NewBuilder() *Builder {
	return &Builder{cfg: Default()}
}

// WithFile merges a YAML file over the current values. An empty path is
// ignored; a missing file is an error.
func (b *Builder) WithFile(path string) *Builder {
	if path == "" {
		return b
	}
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config path
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("failed to read config: %w", err))
		return b
	}
	return b.WithYAML(data)
}

// WithYAML merges a YAML document over the current values.
func (b *Builder) WithYAML(data []byte) *Builder {
	if err := yaml.Unmarshal(data, &b.cfg); err != nil {
		b.errs = append(b.errs, fmt.Errorf("failed to parse config: %w", err))
	}
	return b
}

// WithEnv applies LEGIBLE_* environment overrides. The env cache is
// reloaded so each build sees the current environment.
func (b *Builder) WithEnv() *Builder {
	env.Load()
	if env.Has(EnvCustomRatio) {
		r, err := strconv.ParseFloat(env.Str(EnvCustomRatio), 64)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("%s: %w", EnvCustomRatio, err))
		} else {
			b.cfg.CustomRatio = &r
		}
	}
	if env.Has(EnvRedactionColour) {
		b.cfg.RedactionColour = env.Str(EnvRedactionColour)
	}
	if env.Has(EnvSaveEvidence) {
		b.cfg.SaveEvidence = b.parseBool(EnvSaveEvidence)
	}
	b.cfg.EvidenceDir = env.Str(EnvEvidenceDir, b.cfg.EvidenceDir)
	if env.Has(EnvSwatchAlgorithm) {
		b.cfg.Swatch.Algorithm = swatch.Algorithm(env.Str(EnvSwatchAlgorithm))
	}
	if env.Has(EnvEnhanced) {
		b.cfg.Swatch.Enhanced = b.parseBool(EnvEnhanced)
	}
	b.cfg.SwatchPlugin = env.Str(EnvSwatchPlugin, b.cfg.SwatchPlugin)
	b.cfg.Workers = env.Int(EnvWorkers, b.cfg.Workers)
	return b
}

func (b *Builder) parseBool(name string) bool {
	v, err := strconv.ParseBool(env.Str(name))
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
	}
	return v
}

// Apply runs fn against the configuration, for flag overrides.
func (b *Builder) Apply(fn func(*Config)) *Builder {
	fn(&b.cfg)
	return b
}

// Build validates and returns the configuration.
func (b *Builder) Build() (Config, error) {
	if err := errors.Join(b.errs...); err != nil {
		return Config{}, err
	}
	if err := b.cfg.Validate(); err != nil {
		return Config{}, err
	}
	return b.cfg, nil
}
