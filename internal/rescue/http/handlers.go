package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
)

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRPC serves a single request/response exchange over plain HTTP.
func (s *Service) handleRPC(c *gin.Context) {
	var req mcp.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Err(c, errors.Validation("invalid json-rpc request"))
		return
	}

	resp := s.dispatcher.Process(c.Request.Context(), &req)
	if resp == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleSSE opens the event stream for a new session. The first event
// tells the client where to post its requests; the session dies with
// the connection.
func (s *Service) handleSSE(c *gin.Context) {
	session := mcp.NewSession(uuid.New().String())
	s.sessions.Add(session)
	defer func() {
		s.sessions.Remove(session.ID)
		session.Close()
		log.Debug().Str("session_id", session.ID).Msg("sse session closed")
	}()

	log.Debug().Str("session_id", session.ID).Msg("sse session opened")
	mcp.ServeSession(c, session, "/message?session_id="+session.ID)
}

// handleMessage accepts a request posted against an SSE session and
// dispatches it in the background; the eventual response travels over
// the session's stream. Delivery is best effort: a vanished session
// still gets a 202 because the client can no longer receive anything.
func (s *Service) handleMessage(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		errors.Err(c, errors.Validation("session_id is required"))
		return
	}

	var req mcp.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Err(c, errors.Validation("invalid json-rpc request"))
		return
	}

	go func() {
		resp := s.dispatcher.Process(context.Background(), &req)
		if resp == nil {
			return
		}

		session := s.sessions.Get(sessionID)
		if session == nil {
			log.Debug().Str("session_id", sessionID).Msg("dropping response for unknown session")
			return
		}

		data, err := json.Marshal(resp)
		if err != nil {
			log.Error().Err(err).Msg("failed to encode response")
			return
		}
		session.Push(data)
	}()

	c.Status(http.StatusAccepted)
}
