package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotification(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`), &req))
	assert.True(t, req.IsNotification())

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":null,"method":"ping"}`), &req))
	assert.True(t, req.IsNotification())

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":0,"method":"ping"}`), &req))
	assert.False(t, req.IsNotification())

	require.NoError(t, json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":"abc","method":"ping"}`), &req))
	assert.False(t, req.IsNotification())
}

func TestResponseMarshalSuccess(t *testing.T) {
	resp := NewResponse(float64(1), M{"foo": "bar"})
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"foo":"bar"}}`, string(data))
}

func TestResponseMarshalError(t *testing.T) {
	resp := NewErrorResponse(float64(1), ErrMethodNotFound)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`, string(data))
}

func TestResponseKeepsStringID(t *testing.T) {
	resp := NewResponse("req-9", M{})
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":"req-9","result":{}}`, string(data))
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, -32700, ErrParseError.Code)
	assert.Equal(t, -32601, ErrMethodNotFound.Code)
	assert.Equal(t, -32602, ErrMissingParams.Code)
	assert.Equal(t, "Missing parameters", ErrMissingParams.Message)
	assert.Equal(t, -32004, CodeResourceNotFound)
	assert.Equal(t, -32005, CodeUpstreamError)
}
