package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Sternrassler/placeholder-proxy/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// HTTPServer is the lifecycle-managed HTTP listener.
type HTTPServer struct {
	server *http.Server
	logger zerolog.Logger
}

// NewHTTPServer creates the listener and registers start/stop hooks.
func NewHTTPServer(lc fx.Lifecycle, cfg config.ServerConfig, router *gin.Engine, logger zerolog.Logger) *HTTPServer {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s := &HTTPServer{
		server: srv,
		logger: logger.With().Str("component", "http-server").Logger(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			s.logger.Info().Str("addr", ln.Addr().String()).Msg("Starting HTTP server")
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.logger.Error().Err(err).Msg("HTTP server stopped unexpectedly")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info().Msg("Shutting down HTTP server")
			return srv.Shutdown(ctx)
		},
	})

	return s
}

// Server returns the underlying http.Server.
func (s *HTTPServer) Server() *http.Server {
	return s.server
}
