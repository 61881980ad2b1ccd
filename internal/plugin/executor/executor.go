// Package executor runs swatch extraction in an external plugin process,
// over go-plugin RPC or JSON on stdin/stdout.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/plugin/protocol"
	"github.com/jmylchreest/legible/internal/swatch"
	"github.com/jmylchreest/legible/pkg/plugin"
)

// DefaultTimeout bounds protocol detection and each JSON-stdio extraction.
const DefaultTimeout = 10 * time.Second

// Executor is a swatch.Extractor backed by a plugin binary. The go-plugin
// client starts on first use and is shared by concurrent callers.
type Executor struct {
	path         string
	protocolType protocol.PluginType
	info         protocol.PluginInfo
	opts         swatch.Options
	runner       ProcessRunner
	logger       hclog.Logger
	timeout      time.Duration

	mu        sync.Mutex
	client    *goplugin.Client
	rpcClient plugin.SwatchPlugin
}

// Option configures an Executor.
type Option func(*Executor)

// WithRunner replaces the process runner used for detection and
// JSON-stdio calls.
func WithRunner(r ProcessRunner) Option {
	return func(e *Executor) { e.runner = r }
}

// WithLogger sets the logger handed to go-plugin.
func WithLogger(l hclog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// New creates an Executor by querying the plugin for its protocol.
func New(pluginPath string, opts swatch.Options, options ...Option) (*Executor, error) {
	e := &Executor{
		path:    pluginPath,
		opts:    opts,
		runner:  &RealProcessRunner{},
		logger:  hclog.NewNullLogger(),
		timeout: DefaultTimeout,
	}
	for _, o := range options {
		o(e)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(ctx, pluginPath, []string{protocol.InfoFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin: %w%s", err, stderrSuffix(stderr))
	}
	result, err := protocol.ParseInfo(stdout)
	if err != nil {
		return nil, err
	}

	e.protocolType = result.Type
	e.info = result.PluginInfo
	e.logger.Debug("detected swatch plugin", "path", pluginPath, "name", e.info.Name, "protocol", e.protocolType)

	return e, nil
}

// Info returns the metadata the plugin reported.
func (e *Executor) Info() protocol.PluginInfo {
	return e.info
}

// Extract implements swatch.Extractor.
func (e *Executor) Extract(img image.Image) (*swatch.ContrastSwatch, error) {
	if img.Bounds().Empty() {
		return nil, swatch.ErrEmptyImage
	}

	req := plugin.NewSwatchRequest(img)
	req.Enhanced = e.opts.Enhanced
	req.MaxForegrounds = e.opts.MaxForegrounds
	req.MinShare = e.opts.MinShare

	var resp plugin.SwatchResponse
	var err error
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		resp, err = e.extractGoPlugin(req)
	case protocol.PluginTypeJSON:
		resp, err = e.extractJSON(req)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", e.path, err)
	}

	return toSwatch(resp)
}

// Close stops the plugin process, if one was started.
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		e.client.Kill()
		e.client = nil
	}
	e.rpcClient = nil
}

// --- Go-Plugin RPC implementation ---

func (e *Executor) getRPCClient() (plugin.SwatchPlugin, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.PluginName: &plugin.SwatchPluginRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger.Named("plugin"),
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginName)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	swatchClient, ok := raw.(plugin.SwatchPlugin)
	if !ok {
		client.Kill()
		return nil, fmt.Errorf("plugin dispensed %T, not a swatch plugin", raw)
	}

	e.client = client
	e.rpcClient = swatchClient
	return swatchClient, nil
}

func (e *Executor) extractGoPlugin(req plugin.SwatchRequest) (plugin.SwatchResponse, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return plugin.SwatchResponse{}, err
	}
	return client.Extract(req)
}

// --- JSON-stdio implementation ---

func (e *Executor) extractJSON(req plugin.SwatchRequest) (plugin.SwatchResponse, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return plugin.SwatchResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(reqJSON))
	if err != nil {
		return plugin.SwatchResponse{}, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}

	var resp plugin.SwatchResponse
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return plugin.SwatchResponse{}, fmt.Errorf("failed to parse plugin output: %w", err)
	}
	return resp, nil
}

// toSwatch converts a plugin response, computing ratios the plugin left out.
func toSwatch(resp plugin.SwatchResponse) (*swatch.ContrastSwatch, error) {
	background := colour.Color(resp.Background)
	foregrounds := make([]colour.Color, len(resp.Foregrounds))
	for i, fg := range resp.Foregrounds {
		foregrounds[i] = colour.Color(fg)
	}

	if len(resp.Ratios) == 0 {
		return swatch.NewContrastSwatch(background, foregrounds)
	}

	s := &swatch.ContrastSwatch{Background: background, Foregrounds: foregrounds, Ratios: resp.Ratios}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return "\nStderr: " + msg
}
