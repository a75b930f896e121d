// Package elements holds the per-scene overlay collections the editor
// mutates: text labels, stickers and image overlays, plus per-scene image
// adjustments and the lazily measured preview surface size.
package elements

import (
	"sceneforge/types"
)

// Kind discriminates the three overlay collections. Overlays of every kind
// share one z-order space per scene.
type Kind string

const (
	KindLabel        Kind = "text"
	KindSticker      Kind = "sticker"
	KindImageOverlay Kind = "image"
)

// Overlay carries the fields common to every overlay kind.
type Overlay struct {
	ID       int64          `json:"id"`
	Position types.Position `json:"position"`
	ZIndex   int            `json:"zIndex"`
	Timing   types.Timing   `json:"timing"`
}

// TextStyle is the visual styling of a text label.
type TextStyle struct {
	Color             string  `json:"color"`
	FontSize          float64 `json:"fontSize"`
	FontFamily        string  `json:"fontFamily"`
	Background        bool    `json:"background"`
	BackgroundColor   string  `json:"backgroundColor,omitempty"`
	BackgroundOpacity float64 `json:"backgroundOpacity,omitempty"`
	Outline           bool    `json:"outline"`
	OutlineColor      string  `json:"outlineColor,omitempty"`
	OutlineWidth      float64 `json:"outlineWidth,omitempty"`
	Shadow            bool    `json:"shadow"`
	ShadowColor       string  `json:"shadowColor,omitempty"`
	TextAlign         string  `json:"textAlign"`
}

// Label is a user-placed text overlay.
type Label struct {
	Overlay
	Text  string    `json:"text"`
	Style TextStyle `json:"style"`
}

// Sticker is a glyph/emoji overlay.
type Sticker struct {
	Overlay
	Content  string  `json:"content"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
}

// ImageOverlay is a user-supplied image composited on the scene. Natural is
// the asset's intrinsic pixel size; Display is its current preview-pixel
// size, maintained so export-time geometry can cross-check.
type ImageOverlay struct {
	Overlay
	Source   string           `json:"source"`
	Natural  types.Dimensions `json:"originalDimensions"`
	Display  types.Dimensions `json:"displayDimensions"`
	Scale    float64          `json:"scale"`
	Rotation float64          `json:"rotation"`
	Opacity  float64          `json:"opacity"`
}

// ImageAdjustments is the per-scene base image filter state.
type ImageAdjustments struct {
	Scale      float64        `json:"scale"`
	Rotation   float64        `json:"rotation"`
	Position   types.Position `json:"position"`
	Brightness float64        `json:"brightness"`
	Contrast   float64        `json:"contrast"`
	Saturation float64        `json:"saturation"`
}

// DefaultAdjustments is the neutral filter state assigned to every fresh bag.
func DefaultAdjustments() ImageAdjustments {
	return ImageAdjustments{
		Scale:      1.0,
		Contrast:   1.0,
		Saturation: 1.0,
		Position:   types.Position{Unit: types.UnitPercentage},
	}
}

// Bag is the full per-scene element state, keyed by scene number in the
// Store. ActiveTab is editor chrome and is never exported.
type Bag struct {
	Labels        []Label           `json:"labels"`
	Stickers      []Sticker         `json:"stickers"`
	ImageOverlays []ImageOverlay    `json:"imageOverlays"`
	Image         ImageAdjustments  `json:"image"`
	PreviewSize   *types.Dimensions `json:"scenePreviewDimensions,omitempty"`
	ActiveTab     string            `json:"activeTab,omitempty"`
	// Duration is the scene's manual duration override, if any (seconds).
	Duration *float64 `json:"duration,omitempty"`
}

// newBag returns an empty bag with neutral adjustments.
func newBag() *Bag {
	return &Bag{
		Labels:        []Label{},
		Stickers:      []Sticker{},
		ImageOverlays: []ImageOverlay{},
		Image:         DefaultAdjustments(),
	}
}

// clone deep-copies the bag so snapshots and restored state never alias the
// live collections.
func (b *Bag) clone() *Bag {
	c := *b
	c.Labels = append([]Label(nil), b.Labels...)
	c.Stickers = append([]Sticker(nil), b.Stickers...)
	c.ImageOverlays = append([]ImageOverlay(nil), b.ImageOverlays...)
	if b.PreviewSize != nil {
		d := *b.PreviewSize
		c.PreviewSize = &d
	}
	if b.Duration != nil {
		d := *b.Duration
		c.Duration = &d
	}
	return &c
}

// maxZIndex returns the highest z-index across all three collections, or
// ok=false when the bag holds no overlays.
func (b *Bag) maxZIndex() (int, bool) {
	max, ok := 0, false
	for _, l := range b.Labels {
		if !ok || l.ZIndex > max {
			max, ok = l.ZIndex, true
		}
	}
	for _, s := range b.Stickers {
		if !ok || s.ZIndex > max {
			max, ok = s.ZIndex, true
		}
	}
	for _, o := range b.ImageOverlays {
		if !ok || o.ZIndex > max {
			max, ok = o.ZIndex, true
		}
	}
	return max, ok
}

// minZIndex mirrors maxZIndex for the bottom of the stack.
func (b *Bag) minZIndex() (int, bool) {
	min, ok := 0, false
	for _, l := range b.Labels {
		if !ok || l.ZIndex < min {
			min, ok = l.ZIndex, true
		}
	}
	for _, s := range b.Stickers {
		if !ok || s.ZIndex < min {
			min, ok = s.ZIndex, true
		}
	}
	for _, o := range b.ImageOverlays {
		if !ok || o.ZIndex < min {
			min, ok = o.ZIndex, true
		}
	}
	return min, ok
}

// nextZIndex is the z-index assigned to a newly added overlay: one above the
// current combined top, or 0 for an empty bag.
func (b *Bag) nextZIndex() int {
	max, ok := b.maxZIndex()
	if !ok {
		return 0
	}
	return max + 1
}

// clampTiming normalizes overlay timing to [0, sceneDuration]. Out-of-bound
// values are clamped, not rejected.
func clampTiming(t types.Timing, sceneDuration float64) types.Timing {
	if t.Start < 0 {
		t.Start = 0
	}
	if sceneDuration > 0 && t.End > sceneDuration {
		t.End = sceneDuration
	}
	if t.End < t.Start {
		t.End = t.Start
	}
	return t
}
