package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sceneforge/script"
)

func (s *Server) registerExportRoutes(r *gin.Engine) {
	g := r.Group("/api/projects/:id")
	g.POST("/export", s.handleExport)
	g.GET("/script", s.handleGetScript)
}

// handleExport generates the project's script. When an asset store is
// configured the script is also uploaded and the object key returned.
// POST /api/projects/:id/export
func (s *Server) handleExport(c *gin.Context) {
	p := s.loadProject(c)
	if p == nil {
		return
	}

	sc, err := p.Export(c.Request.Context(), s.gen, s.dec)
	if errors.Is(err, script.ErrNoScenes) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.log.Error("export failed", zap.String("project", p.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"script": sc}
	if s.assets != nil {
		key, err := s.assets.PutScript(c.Request.Context(), p.ID, sc)
		if err != nil {
			s.log.Error("script upload failed", zap.String("project", p.ID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		resp["key"] = key
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetScript returns the last uploaded script for the project.
// GET /api/projects/:id/script
func (s *Server) handleGetScript(c *gin.Context) {
	if s.assets == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "no asset store configured"})
		return
	}
	p := s.loadProject(c)
	if p == nil {
		return
	}

	sc, err := s.assets.GetScript(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sc)
}
