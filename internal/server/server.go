// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes search and tag management over HTTP.
//
// Routes:
//
//	POST /search        {"title", "tags"} → {"papers", "total"}
//	GET  /tags          all tags, sorted
//	GET  /tags/:author  one author's tags
//	POST /add_tag       {"author", "tag"} → {"success": true}
//	POST /remove_tag    {"author", "tag"} → {"success": true}
//	GET  /healthz
//	GET  /metrics       Prometheus exposition
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-tags/pkg/types"
)

const defaultShutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), requestMetrics())

	r.POST("/search", h.Search)
	r.GET("/tags", h.AllTags)
	r.GET("/tags/:author", h.AuthorTags)
	r.POST("/add_tag", h.AddTag)
	r.POST("/remove_tag", h.RemoveTag)
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// Run serves handler on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg types.ServerConfig, handler http.Handler, logger *zap.Logger) error {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
