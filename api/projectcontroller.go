package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sceneforge/audio"
	"sceneforge/project"
	"sceneforge/types"
)

func (s *Server) registerProjectRoutes(r *gin.Engine) {
	g := r.Group("/api/projects")
	g.POST("", s.handleCreateProject)
	g.GET("", s.handleListProjects)
	g.GET("/:id", s.handleGetProject)
	g.DELETE("/:id", s.handleDeleteProject)
	g.PUT("/:id/scenes", s.handleReplaceScenes)
	g.GET("/:id/scenes/:scene/duration", s.handleSceneDuration)
}

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// handleCreateProject creates an empty project.
// POST /api/projects
func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := project.New(req.Name)
	if !s.saveProject(c, p) {
		return
	}
	s.log.Info("created project", zap.String("project", p.ID), zap.String("name", p.Name))
	c.JSON(http.StatusCreated, p)
}

// handleListProjects returns all projects, most recently updated first.
// GET /api/projects
func (s *Server) handleListProjects(c *gin.Context) {
	list, err := s.projects.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// handleGetProject returns one project including its element bags.
// GET /api/projects/:id
func (s *Server) handleGetProject(c *gin.Context) {
	p := s.loadProject(c)
	if p == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project":  p,
		"elements": p.Elements.Snapshot(),
	})
}

// handleDeleteProject removes a project and, when an asset store is
// configured, its uploaded media.
// DELETE /api/projects/:id
func (s *Server) handleDeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := s.projects.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if s.assets != nil {
		if err := s.assets.DeleteProject(c.Request.Context(), id); err != nil {
			s.log.Warn("asset cleanup failed", zap.String("project", id), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type replaceScenesRequest struct {
	Scenes []types.Scene `json:"scenes" binding:"required"`
}

// handleReplaceScenes swaps in a new scene list, resetting element bags and
// the transition list.
// PUT /api/projects/:id/scenes
func (s *Server) handleReplaceScenes(c *gin.Context) {
	p := s.loadProject(c)
	if p == nil {
		return
	}

	var req replaceScenesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p.ReplaceScenes(req.Scenes)
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scenes":      p.Scenes,
		"transitions": p.Settings.IndividualTransitions,
	})
}

// handleSceneDuration resolves one scene's playback duration and reports
// which branch of the fallback chain produced it.
// GET /api/projects/:id/scenes/:scene/duration
func (s *Server) handleSceneDuration(c *gin.Context) {
	p := s.loadProject(c)
	if p == nil {
		return
	}
	num, err := strconv.Atoi(c.Param("scene"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scene number must be an integer"})
		return
	}
	scene, ok := p.Scene(num)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "scene not found"})
		return
	}

	var override *float64
	if bag, ok := p.Elements.Bag(num); ok {
		override = bag.Duration
	}
	c.JSON(http.StatusOK, audio.ResolveSceneDuration(scene, override, s.dec))
}
