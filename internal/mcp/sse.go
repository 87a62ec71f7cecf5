package mcp

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	SSEPingInterval = 30 * time.Second
	SSEContentType  = "text/event-stream; charset=utf-8"
)

type SSEWriter struct {
	c *gin.Context
}

func NewSSEWriter(c *gin.Context) *SSEWriter {
	c.Writer.Header().Set("Content-Type", SSEContentType)
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Flush()
	return &SSEWriter{c: c}
}

func (w *SSEWriter) WriteEvent(event string, data string) {
	w.c.Writer.WriteString(fmt.Sprintf("event: %s\n", event))
	w.c.Writer.WriteString(fmt.Sprintf("data: %s\n\n", data))
	w.c.Writer.Flush()
}

func (w *SSEWriter) WriteMessage(data []byte) {
	w.WriteEvent("message", string(data))
}

// WriteEndpoint
// event: endpoint
// data: /message?session_id=285d67ee-1c17-40d9-ab03-173d5ff48419
func (w *SSEWriter) WriteEndpoint(path string) {
	w.WriteEvent("endpoint", path)
}

// WritePing
// : ping - 2025-03-16 06:41:51.280928+00:00
func (w *SSEWriter) WritePing() {
	w.c.Writer.WriteString(fmt.Sprintf(": ping - %s\n\n", time.Now().Format("2006-01-02 15:04:05.999999-07:00")))
	w.c.Writer.Flush()
}

// ServeSession streams a session's queued messages over the connection until
// the client disconnects. The calling goroutine is the sole writer to the
// wire; handlers on other connections only ever touch the queue. Periodic
// ping comments keep intermediary proxies from timing out the idle stream.
func ServeSession(c *gin.Context, s *Session, endpoint string) {
	w := NewSSEWriter(c)
	w.WriteEndpoint(endpoint)

	ticker := time.NewTicker(SSEPingInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.WritePing()
		case <-s.Ready():
			for _, msg := range s.Drain() {
				w.WriteMessage(msg)
			}
		}
	}
}
