// Package builtin serves the in-process swatch extractors as a plugin.
package builtin

import (
	"fmt"

	"github.com/jmylchreest/legible/internal/swatch"
	"github.com/jmylchreest/legible/internal/version"
	"github.com/jmylchreest/legible/pkg/plugin"
)

// Plugin implements plugin.SwatchPlugin with one of the swatch algorithms.
type Plugin struct {
	Algorithm swatch.Algorithm
}

// Extract implements plugin.SwatchPlugin. Zero request options fall back to
// the swatch defaults.
func (p *Plugin) Extract(req plugin.SwatchRequest) (plugin.SwatchResponse, error) {
	img, err := req.Image()
	if err != nil {
		return plugin.SwatchResponse{}, err
	}

	opts := swatch.DefaultOptions()
	if p.Algorithm != "" {
		opts.Algorithm = p.Algorithm
	}
	opts.Enhanced = req.Enhanced
	if req.MaxForegrounds > 0 {
		opts.MaxForegrounds = req.MaxForegrounds
	}
	if req.MinShare > 0 {
		opts.MinShare = req.MinShare
	}

	extractor, err := swatch.NewExtractor(opts)
	if err != nil {
		return plugin.SwatchResponse{}, err
	}
	sw, err := extractor.Extract(img)
	if err != nil {
		return plugin.SwatchResponse{}, err
	}

	resp := plugin.SwatchResponse{
		Background:  uint32(sw.Background),
		Foregrounds: make([]uint32, len(sw.Foregrounds)),
		Ratios:      sw.Ratios,
	}
	for i, fg := range sw.Foregrounds {
		resp.Foregrounds[i] = uint32(fg)
	}
	return resp, nil
}

// GetMetadata implements plugin.SwatchPlugin.
func (p *Plugin) GetMetadata() plugin.PluginInfo {
	alg := p.Algorithm
	if alg == "" {
		alg = swatch.DefaultOptions().Algorithm
	}
	return plugin.PluginInfo{
		Name:            fmt.Sprintf("legible-swatch-%s", alg),
		Version:         version.Version,
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     fmt.Sprintf("Separates text from background with the %s algorithm", alg),
		PluginProtocol:  string(plugin.PluginTypeGoPlugin),
	}
}
