// Package http exposes the JSON-RPC dispatcher over HTTP: a synchronous
// POST endpoint plus the SSE split-endpoint pair used by streaming
// clients.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nicholaswilde/rescue-groups-mcp/internal/errors"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/mcp"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/conf"
	"github.com/nicholaswilde/rescue-groups-mcp/internal/rescue/rpc"
)

const shutdownTimeout = 2 * time.Second

type Service struct {
	settings   *conf.Settings
	dispatcher *rpc.Dispatcher
	sessions   *mcp.SessionTable
	router     *gin.Engine
	server     *http.Server
}

func NewService(settings *conf.Settings, dispatcher *rpc.Dispatcher) *Service {
	gin.SetMode(gin.ReleaseMode)

	s := &Service{
		settings:   settings,
		dispatcher: dispatcher,
		sessions:   mcp.NewSessionTable(),
	}

	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("failed to set trusted proxies")
	}
	router.Use(
		errors.RecoveryMiddleware(),
		errors.ErrorHandlerMiddleware(),
		corsMiddleware(),
	)

	router.GET("/health", s.handleHealth)
	router.POST("/", authMiddleware(settings.AuthToken), s.handleRPC)
	router.GET("/sse", s.handleSSE)
	router.POST("/message", s.handleMessage)

	s.router = router
	return s
}

// Router exposes the handler for tests.
func (s *Service) Router() http.Handler {
	return s.router
}

func (s *Service) ListenAndServe() error {
	s.server = &http.Server{
		Addr:    s.settings.HTTPAddr,
		Handler: s.router,
	}

	log.Info().Str("addr", s.settings.HTTPAddr).Msg("http server started")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.IO(err)
	}
	return nil
}

func (s *Service) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return errors.IO(err)
	}
	log.Info().Msg("http server stopped")
	return nil
}
