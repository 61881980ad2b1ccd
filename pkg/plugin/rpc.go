package plugin

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// SwatchPluginRPC implements the go-plugin Plugin interface for swatch plugins.
type SwatchPluginRPC struct {
	plugin.Plugin
	Impl SwatchPlugin
}

// Server returns an RPC server for this plugin.
func (p *SwatchPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &SwatchPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *SwatchPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return NewSwatchPluginRPCClient(c), nil
}

// SwatchPluginRPCServer is the RPC server implementation for swatch plugins.
type SwatchPluginRPCServer struct {
	Impl SwatchPlugin
}

// Extract implements the RPC method for swatch extraction.
func (s *SwatchPluginRPCServer) Extract(req SwatchRequest, resp *SwatchResponse) error {
	result, err := s.Impl.Extract(req)
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *SwatchPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// SwatchPluginRPCClient is the RPC client implementation for swatch plugins.
type SwatchPluginRPCClient struct {
	client *rpc.Client
}

// NewSwatchPluginRPCClient wraps an established RPC connection.
func NewSwatchPluginRPCClient(c *rpc.Client) *SwatchPluginRPCClient {
	return &SwatchPluginRPCClient{client: c}
}

// Extract calls the remote Extract method.
func (c *SwatchPluginRPCClient) Extract(req SwatchRequest) (SwatchResponse, error) {
	var resp SwatchResponse
	if err := c.client.Call("Plugin.Extract", req, &resp); err != nil {
		return SwatchResponse{}, &RPCError{Message: err.Error()}
	}
	return resp, nil
}

// GetMetadata calls the remote GetMetadata method. It returns the zero
// value when the call fails.
func (c *SwatchPluginRPCClient) GetMetadata() PluginInfo {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}
	}
	return info
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
