package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
)

func TestAppErrorMessage(t *testing.T) {
	err := NotFound("animal 42")
	assert.Equal(t, "not_found: resource not found: animal 42", err.Error())

	wrapped := Network(fmt.Errorf("connection refused"))
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("x")))
	assert.Equal(t, KindAPI, KindOf(API(500)))
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("plain")))
}

func TestIsMatchesWrappedKind(t *testing.T) {
	cause := Network(fmt.Errorf("dial tcp"))
	wrapped := fmt.Errorf("fetch failed: %w", cause)

	assert.True(t, Is(wrapped, KindNetwork))
	assert.False(t, Is(wrapped, KindNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal("something broke", cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestHTTPStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("x").Code)
	assert.Equal(t, http.StatusBadGateway, API(500).Code)
	assert.Equal(t, http.StatusBadRequest, Validation("x").Code)
	assert.Equal(t, http.StatusInternalServerError, Internal("x", nil).Code)
}

func TestRPCErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", NotFound("animal"), mcp.CodeResourceNotFound},
		{"api", API(502), mcp.CodeUpstreamError},
		{"network", Network(fmt.Errorf("timeout")), mcp.CodeUpstreamError},
		{"validation", Validation("bad args"), mcp.CodeInvalidParams},
		{"config", Config("missing key", nil), mcp.CodeInternalError},
		{"serialization", Serialization(fmt.Errorf("bad json")), mcp.CodeInternalError},
		{"io", IO(fmt.Errorf("pipe closed")), mcp.CodeInternalError},
		{"internal", Internal("boom", nil), mcp.CodeInternalError},
		{"plain error", fmt.Errorf("anything"), mcp.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpcErr := RPCError(tt.err)
			require.NotNil(t, rpcErr)
			assert.Equal(t, tt.code, rpcErr.Code)
		})
	}
}

func TestRPCErrorPassesThroughProtocolErrors(t *testing.T) {
	assert.Same(t, mcp.ErrMethodNotFound, RPCError(mcp.ErrMethodNotFound))

	wrapped := fmt.Errorf("dispatch: %w", mcp.ErrMissingParams)
	assert.Same(t, mcp.ErrMissingParams, RPCError(wrapped))
}
