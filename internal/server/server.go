// Package server serves a rendered SmartFormat feed over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lepinkainen/smartformat/internal/config"
	docconfig "github.com/lepinkainen/smartformat/pkg/config"
	"github.com/lepinkainen/smartformat/pkg/content"
	"github.com/lepinkainen/smartformat/pkg/feed"
	"github.com/lepinkainen/smartformat/pkg/interfaces"
)

const (
	defaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Server renders the configured document on every feed request
type Server struct {
	config   *config.Config
	document string
	loader   *docconfig.LoaderConfig
	cache    interfaces.RenderCache
	router   *gin.Engine
}

// New creates a server for document. cache may be nil to render on every request.
func New(cfg *config.Config, document string, cache interfaces.RenderCache) *Server {
	s := &Server{
		config:   cfg,
		document: document,
		loader:   cfg.Loader(),
		cache:    cache,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery(), requestLogger())

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	timeout := s.config.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	g.GET(s.config.Server.FeedPath, withTimeout(timeout, s.feedHandler))

	return g
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if cleaner, ok := s.cache.(interfaces.CleanupProvider); ok {
		if err := cleaner.CleanupExpired(); err != nil {
			slog.Warn("Failed to clean up render cache", "error", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving feed", "addr", srv.Addr, "path", s.config.Server.FeedPath, "document", s.document)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func (s *Server) feedHandler(c *gin.Context) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(s.document)
		if err != nil {
			slog.Warn("Render cache lookup failed", "document", s.document, "error", err)
		}
		if ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, feed.ContentType, []byte(cached))
			return
		}
	}

	w, err := s.buildWriter(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load feed document", "document", s.document, "error", err)
		c.String(http.StatusBadGateway, "failed to load feed document\n")
		return
	}

	var rendered bytes.Buffer
	sink := teeSink{Sink: feed.NewResponseSink(c.Writer), buf: &rendered}
	c.Header("X-Cache", "MISS")
	if err := feed.NewEmitter(w, sink).EmitAll(); err != nil {
		slog.Error("Failed to stream feed", "error", err)
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(s.document, rendered.String(), s.config.Cache.TTL); err != nil {
			slog.Warn("Failed to cache rendered feed", "document", s.document, "error", err)
		}
	}
}

func (s *Server) buildWriter(ctx context.Context) (*feed.Writer, error) {
	doc, err := docconfig.LoadDocument(ctx, s.document, s.loader)
	if err != nil {
		return nil, err
	}

	w := doc.Writer()
	if s.config.DeriveThumbnails {
		articles := w.Articles()
		if content.DeriveThumbnails(articles) > 0 {
			w.SetArticles(articles)
		}
	}
	return w, nil
}

// teeSink copies everything written to the response into buf
type teeSink struct {
	feed.Sink
	buf *bytes.Buffer
}

func (t teeSink) Write(p []byte) (int, error) {
	t.buf.Write(p)
	return t.Sink.Write(p)
}

func withTimeout(d time.Duration, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		fn(c)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
