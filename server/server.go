// Package server exposes the gradient generators over HTTP, with gin.
//
// The stateless routes under /v1/gradient read the gradient from the
// query string, using the same schema as shared links. The routes under
// /v1/sessions keep an editing store per session, edited with JSON
// actions.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/benoitkugler/okgrad"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end.
type Server struct {
	cfg      Config
	engine   *gin.Engine
	sessions *sessions
	metrics  *metrics
}

// New returns a server using cfg. Zero fields of cfg take their
// DefaultConfig value.
func New(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.DefaultImageSize <= 0 {
		cfg.DefaultImageSize = def.DefaultImageSize
	}
	if cfg.MaxImageSize <= 0 {
		cfg.MaxImageSize = def.MaxImageSize
	}
	if cfg.MaxFeather <= 0 {
		cfg.MaxFeather = def.MaxFeather
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = def.SessionTTL
	}
	srv := &Server{
		cfg:      cfg,
		engine:   gin.New(),
		sessions: newSessions(cfg.MaxSessions, cfg.SessionTTL),
		metrics:  newMetrics(),
	}
	srv.engine.Use(gin.Recovery(), logRequest, srv.metrics.middleware)
	srv.routes()
	return srv
}

func (srv *Server) routes() {
	r := srv.engine
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(srv.metrics.handler()))

	v1 := r.Group("/v1")
	gradient := v1.Group("/gradient")
	gradient.GET("/svg", srv.handleSVG)
	gradient.GET("/css", srv.handleCSS)
	gradient.GET("/png", srv.handlePNG)
	gradient.GET("/pdf", srv.handlePDF)
	gradient.GET("/code", srv.handleCode)
	gradient.GET("/state", srv.handleGetState)
	gradient.POST("/state", srv.handlePostState)
	gradient.POST("/import", srv.handleImport)

	sess := v1.Group("/sessions")
	sess.POST("", srv.handleCreateSession)
	sess.GET("/:id", srv.handleGetSession)
	sess.DELETE("/:id", srv.handleDeleteSession)
	sess.POST("/:id/actions", srv.handleSessionAction)
}

// Handler returns the root HTTP handler.
func (srv *Server) Handler() http.Handler { return srv.engine }

// Run serves on the configured address until ctx is done, then shuts
// down gracefully.
func (srv *Server) Run(ctx context.Context) error {
	hs := &http.Server{
		Addr:         srv.cfg.Addr,
		Handler:      srv.engine,
		ReadTimeout:  srv.cfg.ReadTimeout,
		WriteTimeout: srv.cfg.WriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		okgrad.Logger().Info("server listening", "addr", srv.cfg.Addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	okgrad.Logger().Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	okgrad.Logger().Debug("http request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start))
}
