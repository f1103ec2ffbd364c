// Package server exposes the aggregated review store over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KaramelBytes/review-digest/internal/metrics"
	"github.com/KaramelBytes/review-digest/internal/review"
	"github.com/KaramelBytes/review-digest/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	Addr string
	// Store is served read-only for the lifetime of the server.
	Store review.Store
	// JSON is the encoded Store. When nil it is encoded from Store.
	JSON []byte

	Logger *zap.Logger
	// Metrics enables /metrics and request instrumentation when non-nil.
	Metrics *metrics.Metrics
}

// Server wraps the HTTP listener and the gin engine.
type Server struct {
	srv    *http.Server
	engine *gin.Engine
	log    *zap.Logger
}

// New builds the route tree. gin's mode is left to the caller.
func New(opt Options) (*Server, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("http")

	s := opt.Store
	if s == nil {
		s = review.Store{}
	}
	body := opt.JSON
	if body == nil {
		b, err := store.EncodeJSON(s)
		if err != nil {
			return nil, err
		}
		body = b
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(gin.Recovery(), requestID(), accessLog(log, opt.Metrics))

	h := &handlers{categories: s.Categories(), body: body}
	engine.GET("/", h.index)
	engine.GET("/api/data", h.data)
	engine.GET("/healthz", h.health)
	if opt.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opt.Metrics.Handler()))
	}

	return &Server{
		engine: engine,
		log:    log,
		srv: &http.Server{
			Addr:              opt.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	s.log.Info("listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Stop drains open connections, giving up after 10 seconds.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }
