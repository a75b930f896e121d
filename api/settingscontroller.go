package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sceneforge/config"
	"sceneforge/settings"
	"sceneforge/transitions"
)

func (s *Server) registerSettingsRoutes(r *gin.Engine) {
	r.GET("/api/transitions", s.handleTransitionCatalog)
	r.GET("/api/music", s.handleMusicCatalog)

	g := r.Group("/api/projects/:id/settings")
	g.GET("", s.handleGetSettings)
	g.PUT("", s.handleUpdateSettings)
	g.PUT("/transitions/:index", s.handleUpdateTransition)
}

// handleTransitionCatalog lists the selectable transition effects.
// GET /api/transitions
func (s *Server) handleTransitionCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, transitions.Catalog())
}

// handleMusicCatalog lists the selectable background tracks.
// GET /api/music
func (s *Server) handleMusicCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, settings.MusicCatalog())
}

// handleGetSettings returns the project's video settings.
// GET /api/projects/:id/settings
func (s *Server) handleGetSettings(c *gin.Context) {
	p := s.loadProject(c)
	if p == nil {
		return
	}
	c.JSON(http.StatusOK, p.Settings)
}

// handleUpdateSettings replaces the project's video settings wholesale,
// except the per-pair transition list, which only scene replacement and the
// transition endpoint may touch.
// PUT /api/projects/:id/settings
func (s *Server) handleUpdateSettings(c *gin.Context) {
	p := s.loadProject(c)
	if p == nil {
		return
	}

	var in settings.VideoSettings
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := normalizeOutputBlock(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Transition != "" && !transitions.IsValid(in.Transition) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown transition type"})
		return
	}
	if in.BackgroundMusic != "" {
		if _, ok := settings.FindTrack(in.BackgroundMusic); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown music track"})
			return
		}
	}

	in.IndividualTransitions = p.Settings.IndividualTransitions
	p.Settings = in
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, p.Settings)
}

// normalizeOutputBlock backfills unset encoder fields with the session
// defaults and rejects unusable values, so a partial settings payload can
// never push exports to a 0x0 resolution.
func normalizeOutputBlock(in *settings.VideoSettings) error {
	if in.Resolution.Width < 0 || in.Resolution.Height < 0 || in.FPS < 0 || in.CRF < 0 {
		return errNegativeOutput
	}
	if in.Resolution.Width == 0 || in.Resolution.Height == 0 {
		in.Resolution.Width = config.DefaultOutputWidth
		in.Resolution.Height = config.DefaultOutputHeight
	}
	if in.FPS == 0 {
		in.FPS = config.DefaultFPS
	}
	if in.CRF == 0 {
		in.CRF = config.DefaultCRF
	}
	if in.Preset == "" {
		in.Preset = config.VideoPreset
	}
	return nil
}

var errNegativeOutput = fmt.Errorf("resolution, fps and crf must not be negative")

// handleUpdateTransition patches one per-pair transition.
// PUT /api/projects/:id/settings/transitions/:index
func (s *Server) handleUpdateTransition(c *gin.Context) {
	p := s.loadProject(c)
	if p == nil {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transition index must be an integer"})
		return
	}

	var patch transitions.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := transitions.Update(p.Settings.IndividualTransitions, index, patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, p.Settings.IndividualTransitions[index])
}
