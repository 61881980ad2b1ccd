// Package protocol negotiates the swatch plugin protocol with a plugin
// binary.
package protocol

import (
	"github.com/jmylchreest/legible/pkg/plugin"
)

// Handshake is the go-plugin handshake shared with plugin binaries.
var Handshake = plugin.Handshake

// PluginType is a type alias to the public plugin.PluginType type.
type PluginType = plugin.PluginType

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin = plugin.PluginTypeGoPlugin

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON = plugin.PluginTypeJSON
)

// PluginInfo is a type alias to the public plugin.PluginInfo type.
// External plugins should import github.com/jmylchreest/legible/pkg/plugin directly.
type PluginInfo = plugin.PluginInfo
