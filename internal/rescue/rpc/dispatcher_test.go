package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/conf"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/tools"
)

func newTestDispatcher(t *testing.T, lazy bool, handler http.HandlerFunc) *Dispatcher {
	t.Helper()
	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL)
		}
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	settings := &conf.Settings{
		APIKey:            "test_key",
		BaseURL:           srv.URL,
		PostalCode:        "00000",
		Miles:             50,
		Species:           "dogs",
		TimeoutSeconds:    1,
		Lazy:              lazy,
		CacheSize:         10,
		CacheTTLMinutes:   1,
		RateLimitRequests: 100,
		RateLimitWindow:   1,
	}
	return NewDispatcher(tools.NewRegistry(client.New(settings), lazy))
}

func TestProcessInitialize(t *testing.T) {
	d := newTestDispatcher(t, false, nil)
	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(1),
		Method:  mcp.MethodInitialize,
	})

	require.NotNil(t, resp)
	assert.Equal(t, float64(1), resp.ID)
	require.Nil(t, resp.Error)

	init, ok := resp.Result.(mcp.InitializeResponse)
	require.True(t, ok)
	assert.Equal(t, mcp.ProtocolVersion, init.ProtocolVersion)
	assert.Equal(t, ServerName, init.ServerInfo.Name)
}

func TestProcessPing(t *testing.T) {
	d := newTestDispatcher(t, false, nil)
	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(7),
		Method:  mcp.MethodPing,
	})

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":7,"result":{}}`, string(data))
}

func TestProcessNotificationSuppressed(t *testing.T) {
	d := newTestDispatcher(t, false, nil)

	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		Method:  mcp.MethodNotificationsInitialized,
	})
	assert.Nil(t, resp)

	// Any id-less request is a notification, whatever the method.
	resp = d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		Method:  mcp.MethodPing,
	})
	assert.Nil(t, resp)
}

func TestProcessToolsList(t *testing.T) {
	d := newTestDispatcher(t, false, nil)
	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(1),
		Method:  mcp.MethodToolsList,
	})

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(mcp.M)
	require.True(t, ok)
	list, ok := result["tools"].([]mcp.Tool)
	require.True(t, ok)
	assert.Len(t, list, 16)
}

func TestProcessToolsListLazy(t *testing.T) {
	d := newTestDispatcher(t, true, nil)
	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(1),
		Method:  mcp.MethodToolsList,
	})

	require.NotNil(t, resp)
	result := resp.Result.(mcp.M)
	list := result["tools"].([]mcp.Tool)
	assert.Len(t, list, 3)
}

func TestProcessToolsCallMissingParams(t *testing.T) {
	d := newTestDispatcher(t, false, nil)
	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(1),
		Method:  mcp.MethodToolsCall,
	})

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.CodeInvalidParams, resp.Error.Code)
	assert.Equal(t, "Missing parameters", resp.Error.Message)
}

func TestProcessToolsCallUnknownTool(t *testing.T) {
	d := newTestDispatcher(t, false, nil)
	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(1),
		Method:  mcp.MethodToolsCall,
		Params:  map[string]interface{}{"name": "no_such_tool"},
	})

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.CodeResourceNotFound, resp.Error.Code)
}

func TestProcessToolsCallSuccess(t *testing.T) {
	d := newTestDispatcher(t, false, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"1","attributes":{"singular":"Dog","plural":"Dogs"}}]}`))
	})

	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(2),
		Method:  mcp.MethodToolsCall,
		Params: map[string]interface{}{
			"name":      "list_species",
			"arguments": map[string]interface{}{},
		},
	})

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(mcp.ToolsCallResponse)
	require.True(t, ok)
	require.Len(t, result.Content, 1)
	assert.Contains(t, result.Content[0].Text, "Dog")
}

func TestProcessToolsCallUpstreamFailure(t *testing.T) {
	d := newTestDispatcher(t, false, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(3),
		Method:  mcp.MethodToolsCall,
		Params: map[string]interface{}{
			"name":      "get_animal_details",
			"arguments": map[string]interface{}{"animal_id": "123"},
		},
	})

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.CodeUpstreamError, resp.Error.Code)
}

func TestProcessUnknownMethod(t *testing.T) {
	d := newTestDispatcher(t, false, nil)
	resp := d.Process(context.Background(), &mcp.Request{
		JsonRPC: "2.0",
		ID:      float64(1),
		Method:  "unknown",
	})

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcp.CodeMethodNotFound, resp.Error.Code)
}
