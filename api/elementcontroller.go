package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sceneforge/audio"
	"sceneforge/elements"
	"sceneforge/project"
	"sceneforge/types"
)

func (s *Server) registerElementRoutes(r *gin.Engine) {
	g := r.Group("/api/projects/:id/scenes/:scene")
	g.POST("/labels", s.handleAddLabel)
	g.PUT("/labels/:elem", s.handleUpdateLabel)
	g.POST("/stickers", s.handleAddSticker)
	g.PUT("/stickers/:elem", s.handleUpdateSticker)
	g.POST("/image-overlays", s.handleAddImageOverlay)
	g.PUT("/image-overlays/:elem", s.handleUpdateImageOverlay)
	g.DELETE("/elements/:kind/:elem", s.handleRemoveElement)
	g.POST("/elements/:kind/:elem/drag", s.handleDragElement)
	g.POST("/elements/:kind/:elem/zorder", s.handleChangeZIndex)
	g.PUT("/preview-size", s.handlePreviewSize)
	g.PUT("/adjustments", s.handleAdjustments)
	g.PUT("/duration", s.handleDurationOverride)
	g.PUT("/active-tab", s.handleActiveTab)
}

// sceneParams resolves the project and scene number shared by every element
// route. Returns ok=false after writing an error response.
func (s *Server) sceneParams(c *gin.Context) (p *project.Project, scene int, ok bool) {
	p = s.loadProject(c)
	if p == nil {
		return nil, 0, false
	}
	scene, err := strconv.Atoi(c.Param("scene"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scene number must be an integer"})
		return nil, 0, false
	}
	return p, scene, true
}

// sceneDuration resolves the scene's current duration so overlay timing can
// be clamped against it.
func (s *Server) sceneDuration(p *project.Project, scene int) float64 {
	sc, ok := p.Scene(scene)
	if !ok {
		return 0
	}
	var override *float64
	if bag, ok := p.Elements.Bag(scene); ok {
		override = bag.Duration
	}
	return audio.ResolveSceneDuration(sc, override, s.dec).Seconds
}

// elementError maps domain errors onto status codes.
func elementError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, elements.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// handleAddLabel appends a text label to the scene.
// POST /api/projects/:id/scenes/:scene/labels
func (s *Server) handleAddLabel(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	var l elements.Label
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := p.Elements.AddLabel(scene, l, s.sceneDuration(p, scene))
	if err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusCreated, added)
}

// handleUpdateLabel replaces a label in place.
// PUT /api/projects/:id/scenes/:scene/labels/:elem
func (s *Server) handleUpdateLabel(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("elem"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "element id must be an integer"})
		return
	}
	var l elements.Label
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l.ID = id

	if err := p.Elements.UpdateLabel(scene, l, s.sceneDuration(p, scene)); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, l)
}

// handleAddSticker appends a sticker to the scene.
// POST /api/projects/:id/scenes/:scene/stickers
func (s *Server) handleAddSticker(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	var st elements.Sticker
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := p.Elements.AddSticker(scene, st, s.sceneDuration(p, scene))
	if err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusCreated, added)
}

// handleUpdateSticker replaces a sticker in place.
// PUT /api/projects/:id/scenes/:scene/stickers/:elem
func (s *Server) handleUpdateSticker(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("elem"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "element id must be an integer"})
		return
	}
	var st elements.Sticker
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st.ID = id

	if err := p.Elements.UpdateSticker(scene, st, s.sceneDuration(p, scene)); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, st)
}

// handleAddImageOverlay appends an image overlay to the scene.
// POST /api/projects/:id/scenes/:scene/image-overlays
func (s *Server) handleAddImageOverlay(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	var o elements.ImageOverlay
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := p.Elements.AddImageOverlay(scene, o, s.sceneDuration(p, scene))
	if err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusCreated, added)
}

// handleUpdateImageOverlay replaces an image overlay in place.
// PUT /api/projects/:id/scenes/:scene/image-overlays/:elem
func (s *Server) handleUpdateImageOverlay(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("elem"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "element id must be an integer"})
		return
	}
	var o elements.ImageOverlay
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o.ID = id

	if err := p.Elements.UpdateImageOverlay(scene, o, s.sceneDuration(p, scene)); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, o)
}

// elemRef parses the :kind/:elem pair shared by remove, drag and z-order.
func elemRef(c *gin.Context) (elements.Kind, int64, bool) {
	kind := elements.Kind(c.Param("kind"))
	switch kind {
	case elements.KindLabel, elements.KindSticker, elements.KindImageOverlay:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown element kind"})
		return "", 0, false
	}
	id, err := strconv.ParseInt(c.Param("elem"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "element id must be an integer"})
		return "", 0, false
	}
	return kind, id, true
}

// handleRemoveElement deletes one overlay.
// DELETE /api/projects/:id/scenes/:scene/elements/:kind/:elem
func (s *Server) handleRemoveElement(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	kind, id, ok := elemRef(c)
	if !ok {
		return
	}

	if err := p.Elements.Remove(scene, kind, id); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": id})
}

type dragRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// handleDragElement moves an overlay by a preview-pixel delta and returns
// the resulting percentage position.
// POST /api/projects/:id/scenes/:scene/elements/:kind/:elem/drag
func (s *Server) handleDragElement(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	kind, id, ok := elemRef(c)
	if !ok {
		return
	}
	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pos, err := p.Elements.Drag(scene, kind, id, req.DX, req.DY, p.Settings.Resolution)
	if err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, pos)
}

type zorderRequest struct {
	Direction elements.Direction `json:"direction" binding:"required"`
}

// handleChangeZIndex moves an overlay up or down in the scene's combined
// stacking order.
// POST /api/projects/:id/scenes/:scene/elements/:kind/:elem/zorder
func (s *Server) handleChangeZIndex(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	kind, id, ok := elemRef(c)
	if !ok {
		return
	}
	var req zorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	z, err := p.Elements.ChangeZIndex(scene, kind, id, req.Direction)
	if err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"zIndex": z})
}

// handlePreviewSize records the measured preview surface. Repeated captures
// are ignored, so the client can send this on every mount.
// PUT /api/projects/:id/scenes/:scene/preview-size
func (s *Server) handlePreviewSize(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	var d types.Dimensions
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := p.Elements.CapturePreviewSize(scene, d); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"captured": true})
}

// handleAdjustments replaces the scene's base image adjustment state.
// PUT /api/projects/:id/scenes/:scene/adjustments
func (s *Server) handleAdjustments(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	var adj elements.ImageAdjustments
	if err := c.ShouldBindJSON(&adj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := p.Elements.SetAdjustments(scene, adj); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, adj)
}

type durationOverrideRequest struct {
	Seconds *float64 `json:"seconds"`
}

// handleDurationOverride sets or clears (null) the scene's manual duration.
// PUT /api/projects/:id/scenes/:scene/duration
func (s *Server) handleDurationOverride(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	var req durationOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Seconds != nil && *req.Seconds <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be positive"})
		return
	}

	if err := p.Elements.SetDurationOverride(scene, req.Seconds); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}

	sc, _ := p.Scene(scene)
	c.JSON(http.StatusOK, audio.ResolveSceneDuration(sc, req.Seconds, s.dec))
}

type activeTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// handleActiveTab records which editor panel is focused for the scene.
// PUT /api/projects/:id/scenes/:scene/active-tab
func (s *Server) handleActiveTab(c *gin.Context) {
	p, scene, ok := s.sceneParams(c)
	if !ok {
		return
	}
	var req activeTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := p.Elements.SetActiveTab(scene, req.Tab); err != nil {
		elementError(c, err)
		return
	}
	if !s.saveProject(c, p) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeTab": req.Tab})
}
