// Package stdio serves the JSON-RPC protocol over standard input and
// output, one JSON document per line. This is the default transport
// when a desktop client spawns the server as a subprocess.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/rpc"
)

// maxLineSize bounds a single request line. Tool arguments are small;
// anything past this is a broken client.
const maxLineSize = 1024 * 1024

type Server struct {
	dispatcher *rpc.Dispatcher
	in         io.Reader
	out        io.Writer
}

func New(dispatcher *rpc.Dispatcher) *Server {
	return &Server{
		dispatcher: dispatcher,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// NewWithStreams constructs a server over arbitrary streams.
func NewWithStreams(dispatcher *rpc.Dispatcher, in io.Reader, out io.Writer) *Server {
	return &Server{dispatcher: dispatcher, in: in, out: out}
}

// Run reads requests line by line until EOF or context cancellation.
// Malformed lines are logged and skipped so one bad request cannot kill
// the session.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Msg("stdio server started")

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req mcp.Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.Warn().Err(err).Msg("skipping malformed request line")
			continue
		}

		resp := s.dispatcher.Process(ctx, &req)
		if resp == nil {
			continue
		}

		data, err := json.Marshal(resp)
		if err != nil {
			log.Error().Err(err).Msg("failed to encode response")
			continue
		}
		if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
			return errors.IO(err)
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.IO(err)
	}

	log.Info().Msg("stdio server stopped")
	return nil
}
