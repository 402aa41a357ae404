// Package server exposes cursor generation over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basel-ax/cursorsmith/internal/archive"
	"github.com/basel-ax/cursorsmith/internal/domain"
)

// CursorGenerator produces a cursor set for a theme
type CursorGenerator interface {
	Generate(ctx context.Context, theme string) (domain.CursorSet, error)
}

type generateRequest struct {
	Theme string `json:"theme" binding:"required"`
}

type generateResponse struct {
	Cursors map[string]*string `json:"cursors"`
	Count   int                `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server wraps the gin engine serving the cursor API
type Server struct {
	generator CursorGenerator
	logger    *log.Logger
	engine    *gin.Engine
}

// New creates the server and registers its routes
func New(generator CursorGenerator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		generator: generator,
		logger:    logger,
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.POST("/cursors", s.generate)
	api.POST("/cursors/archive", s.generateArchive)
}

func (s *Server) generate(c *gin.Context) {
	set, ok := s.run(c)
	if !ok {
		return
	}

	resp := generateResponse{
		Cursors: make(map[string]*string, domain.VariantCount),
		Count:   set.Count(),
	}
	for _, v := range domain.Variants() {
		if img := set.Get(v); img != nil {
			url := img.DataURL()
			resp.Cursors[v.String()] = &url
		} else {
			resp.Cursors[v.String()] = nil
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) generateArchive(c *gin.Context) {
	set, ok := s.run(c)
	if !ok {
		return
	}

	data, err := archive.Bytes(set)
	if err != nil {
		s.logger.Printf("[server] error packaging archive: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to package cursors"})
		return
	}
	if data == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+archive.BundleName+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}

func (s *Server) run(c *gin.Context) (domain.CursorSet, bool) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "request body must contain a theme"})
		return domain.CursorSet{}, false
	}

	set, err := s.generator.Generate(c.Request.Context(), req.Theme)
	switch {
	case err == nil:
		return set, true
	case errors.Is(err, domain.ErrEmptyTheme), errors.Is(err, domain.ErrThemeNotAllowed):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoResults):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		s.logger.Printf("[server] error generating cursors: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to generate cursors"})
	}
	return domain.CursorSet{}, false
}
