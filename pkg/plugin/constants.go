// Package plugin provides the public API for legible swatch extraction plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this legible version can work with.
	MinCompatibleVersion = "0.1.0"

	// PluginName is the key swatch plugins are dispensed under.
	PluginName = "swatch"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0, // Major version from ProtocolVersion
	MagicCookieKey:   "LEGIBLE_PLUGIN",
	MagicCookieValue: "legible_contrast_swatch",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)

// SwatchPlugin is the interface swatch plugins implement.
type SwatchPlugin interface {
	// Extract separates the request's pixels into a background colour and
	// ordered foreground candidates.
	Extract(req SwatchRequest) (SwatchResponse, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}

// Serve runs impl as a go-plugin server. It does not return.
func Serve(impl SwatchPlugin) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &SwatchPluginRPC{Impl: impl},
		},
	})
}
