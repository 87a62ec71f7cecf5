// Package rpc maps JSON-RPC requests onto the tool registry. Both the
// stdio and HTTP transports feed requests through the same Dispatcher.
package rpc

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/tools"
	"github.com/nicholaswilde/rescue-groups-mcp/pkg/version"
)

const ServerName = "rescue-groups-mcp"

type Dispatcher struct {
	registry *tools.Registry
}

func NewDispatcher(registry *tools.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Process handles a single request and returns the response to send, or
// nil for notifications, which never get a reply.
func (d *Dispatcher) Process(ctx context.Context, req *mcp.Request) *mcp.Response {
	if req.IsNotification() || req.Method == mcp.MethodNotificationsInitialized {
		log.Debug().Str("method", req.Method).Msg("notification, no response")
		return nil
	}

	switch req.Method {
	case mcp.MethodInitialize:
		return mcp.NewResponse(req.ID, mcp.InitializeResponse{
			ProtocolVersion: mcp.ProtocolVersion,
			Capabilities:    mcp.DefaultCapabilities,
			ServerInfo: mcp.ServerInfo{
				Name:    ServerName,
				Version: version.Version,
			},
		})
	case mcp.MethodPing:
		return mcp.NewResponse(req.ID, mcp.M{})
	case mcp.MethodToolsList:
		return mcp.NewResponse(req.ID, mcp.M{"tools": d.registry.List()})
	case mcp.MethodToolsCall:
		return d.toolsCall(ctx, req)
	default:
		log.Warn().Str("method", req.Method).Msg("unknown method")
		return mcp.NewErrorResponse(req.ID, mcp.ErrMethodNotFound)
	}
}

func (d *Dispatcher) toolsCall(ctx context.Context, req *mcp.Request) *mcp.Response {
	if req.Params == nil {
		return mcp.NewErrorResponse(req.ID, mcp.ErrMissingParams)
	}

	raw, err := json.Marshal(req.Params)
	if err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.ErrInvalidParams)
	}
	var call mcp.ToolsCallRequest
	if err := json.Unmarshal(raw, &call); err != nil {
		return mcp.NewErrorResponse(req.ID, mcp.ErrInvalidParams)
	}

	result, err := d.registry.Call(ctx, call.Name, call.Arguments)
	if err != nil {
		log.Warn().Err(err).Str("tool", call.Name).Msg("tool call failed")
		return mcp.NewErrorResponse(req.ID, errors.RPCError(err))
	}
	return mcp.NewResponse(req.ID, result)
}
