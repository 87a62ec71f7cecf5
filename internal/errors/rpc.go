package errors

import (
	stderrors "errors"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
)

// RPCError converts an error into the JSON-RPC error object delivered to MCP
// clients. Clients branch on the code, so this table is part of the wire
// contract:
//
//	NotFound                        -> -32004
//	API | Network                   -> -32005
//	Validation                      -> -32602
//	Config | Internal | IO | Serialization -> -32603
func RPCError(err error) *mcp.Error {
	var rpcErr *mcp.Error
	if stderrors.As(err, &rpcErr) {
		return rpcErr
	}

	code := mcp.CodeInternalError
	switch KindOf(err) {
	case KindNotFound:
		code = mcp.CodeResourceNotFound
	case KindAPI, KindNetwork:
		code = mcp.CodeUpstreamError
	case KindValidation:
		code = mcp.CodeInvalidParams
	}
	return mcp.NewError(code, err.Error())
}
