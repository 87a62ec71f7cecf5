package stdio

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/conf"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/rpc"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/tools"
)

func newTestDispatcher(t *testing.T) *rpc.Dispatcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	settings := &conf.Settings{
		APIKey:            "test_key",
		BaseURL:           srv.URL,
		PostalCode:        "00000",
		Miles:             50,
		Species:           "dogs",
		TimeoutSeconds:    1,
		CacheSize:         10,
		CacheTTLMinutes:   1,
		RateLimitRequests: 100,
		RateLimitWindow:   1,
	}
	return rpc.NewDispatcher(tools.NewRegistry(client.New(settings), false))
}

func TestRunProcessesLines(t *testing.T) {
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	s := NewWithStreams(newTestDispatcher(t), strings.NewReader(in), &out)
	require.NoError(t, s.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	first := gjson.Parse(lines[0])
	assert.Equal(t, int64(1), first.Get("id").Int())
	assert.Equal(t, "2024-11-05", first.Get("result.protocolVersion").String())

	assert.JSONEq(t, `{"jsonrpc":"2.0","id":2,"result":{}}`, lines[1])
}

func TestRunSkipsMalformedLines(t *testing.T) {
	in := "not json at all\n" +
		`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n"

	var out bytes.Buffer
	s := NewWithStreams(newTestDispatcher(t), strings.NewReader(in), &out)
	require.NoError(t, s.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), gjson.Parse(lines[0]).Get("id").Int())
}

func TestRunSkipsBlankLines(t *testing.T) {
	in := "\n\n" + `{"jsonrpc":"2.0","id":5,"method":"ping"}` + "\n\n"

	var out bytes.Buffer
	s := NewWithStreams(newTestDispatcher(t), strings.NewReader(in), &out)
	require.NoError(t, s.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
}

func TestRunCleanEOF(t *testing.T) {
	var out bytes.Buffer
	s := NewWithStreams(newTestDispatcher(t), strings.NewReader(""), &out)
	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, out.String())
}

func TestRunErrorResponseOnUnknownMethod(t *testing.T) {
	in := `{"jsonrpc":"2.0","id":9,"method":"bogus"}` + "\n"

	var out bytes.Buffer
	s := NewWithStreams(newTestDispatcher(t), strings.NewReader(in), &out)
	require.NoError(t, s.Run(context.Background()))

	resp := gjson.Parse(strings.TrimSpace(out.String()))
	assert.Equal(t, int64(-32601), resp.Get("error.code").Int())
}
