package rescue

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/client"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/conf"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/rpc"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/tools"
)

type app struct {
	settings   *conf.Settings
	client     *client.Client
	registry   *tools.Registry
	dispatcher *rpc.Dispatcher
}

func newApp(overrides ...map[string]any) (*app, error) {
	merged := map[string]any{}
	if apiKey != "" {
		merged["api_key"] = apiKey
	}
	for _, o := range overrides {
		for k, v := range o {
			merged[k] = v
		}
	}

	settings, err := conf.Load(configPath, merged)
	if err != nil {
		return nil, err
	}

	c := client.New(settings)
	registry := tools.NewRegistry(c, settings.Lazy)
	return &app{
		settings:   settings,
		client:     c,
		registry:   registry,
		dispatcher: rpc.NewDispatcher(registry),
	}, nil
}

// printOutput renders a tool result for the terminal: raw JSON with
// --json, markdown otherwise.
func printOutput(raw json.RawMessage, err error, format func(json.RawMessage) (string, error)) {
	if err != nil {
		log.Err(err).Msg("command failed")
		return
	}

	if jsonOutput {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			log.Err(err).Msg("failed to render output")
			return
		}
		fmt.Println(buf.String())
		return
	}

	text, err := format(raw)
	if err != nil {
		log.Err(err).Msg("failed to format output")
		return
	}
	fmt.Println(text)
}
