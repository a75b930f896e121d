// Package api exposes the editor over HTTP. Handlers are thin: they load a
// project, call into the domain packages and save.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sceneforge/assets"
	"sceneforge/audio"
	"sceneforge/project"
	"sceneforge/script"
)

// Server wires the HTTP surface to the project store and the script
// generator.
type Server struct {
	log      *zap.Logger
	projects project.Store
	gen      *script.Generator
	dec      audio.Decoder
	// assets is optional; export still works without an upload target.
	assets *assets.Store
}

// NewServer creates the API server. The asset store may be nil.
func NewServer(log *zap.Logger, projects project.Store, dec audio.Decoder, as *assets.Store) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		log:      log,
		projects: projects,
		gen:      script.NewGenerator(log),
		dec:      dec,
		assets:   as,
	}
}

// Router constructs the Gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)

	s.registerProjectRoutes(r)
	s.registerElementRoutes(r)
	s.registerSettingsRoutes(r)
	s.registerExportRoutes(r)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// loadProject resolves the :id path parameter, responding with the error
// itself when the project is missing. Returns nil after writing a response.
func (s *Server) loadProject(c *gin.Context) *project.Project {
	p, err := s.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil
	}
	return p
}

// saveProject persists the mutated project, responding with 500 on failure.
// Reports whether the save succeeded.
func (s *Server) saveProject(c *gin.Context, p *project.Project) bool {
	p.Touch()
	if err := s.projects.Save(c.Request.Context(), p); err != nil {
		s.log.Error("save project failed", zap.String("project", p.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	return true
}
