// Package script assembles the declarative, renderer-agnostic document
// describing a full video composition. The document is consumed by an
// external encoding engine; its shape is load-bearing.
package script

import (
	"sceneforge/elements"
	"sceneforge/geometry"
	"sceneforge/settings"
	"sceneforge/transitions"
	"sceneforge/types"
)

// Script is the export artifact: an immutable snapshot of the whole project.
// A fresh one is generated on every export request.
type Script struct {
	Version string        `json:"version"`
	Scenes  []SceneConfig `json:"scenes"`
	Output  OutputConfig  `json:"output"`
	Global  GlobalConfig  `json:"global"`
}

// SceneConfig is one rendered scene.
type SceneConfig struct {
	ID                int                   `json:"id"`
	Duration          float64               `json:"duration"`
	DurationSource    string                `json:"durationSource"`
	Image             ImageConfig           `json:"image"`
	OutputDimensions  types.Dimensions      `json:"outputDimensions"`
	PreviewDimensions types.Dimensions      `json:"previewDimensions"`
	Audio             *AudioConfig          `json:"audio"`
	Overlays          []OverlayConfig       `json:"overlays"`
	Transition        *transitions.Resolved `json:"transition,omitempty"`
}

// ImageConfig is a scene's base image plus its composed filter state.
type ImageConfig struct {
	Source  string       `json:"source"`
	Filters FilterConfig `json:"filters"`
}

// FilterConfig is the per-scene filter block after composition with the
// global visual effects.
type FilterConfig struct {
	Scale      float64        `json:"scale"`
	Rotation   float64        `json:"rotation"`
	Position   types.Position `json:"position"`
	Brightness float64        `json:"brightness"`
	Contrast   float64        `json:"contrast"`
	Saturation float64        `json:"saturation"`
	Hue        float64        `json:"hue"`
	Blur       float64        `json:"blur"`
}

// AudioConfig is a scene's voice-over after composition with the global
// audio effects. Source is a data URI.
type AudioConfig struct {
	Source    string  `json:"source"`
	Volume    float64 `json:"volume"`
	FadeIn    float64 `json:"fadeIn"`
	FadeOut   float64 `json:"fadeOut"`
	Normalize bool    `json:"normalize"`
	Bass      float64 `json:"bass"`
	Treble    float64 `json:"treble"`
}

// Overlay type discriminators in the flattened per-scene overlay list.
const (
	OverlayText      = "text"
	OverlaySticker   = "sticker"
	OverlayImage     = "image"
	OverlayWatermark = "watermark"
)

// PositionConfig locates an overlay in both coordinate systems: the
// percentage the editor worked in plus the absolute output pixels the
// renderer needs. Preset is set instead of coordinates for synthesized
// overlays (subtitle, watermark).
type PositionConfig struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Unit      string  `json:"unit"`
	AbsoluteX float64 `json:"absoluteX"`
	AbsoluteY float64 `json:"absoluteY"`
	Preset    string  `json:"preset,omitempty"`
}

// TransformConfig carries sticker and image overlay transforms.
type TransformConfig struct {
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity,omitempty"`
}

// OverlayConfig is one entry of the flattened overlay list. Kind-specific
// fields are populated according to Type.
type OverlayConfig struct {
	ID        int64               `json:"id,omitempty"`
	Type      string              `json:"type"`
	Position  PositionConfig      `json:"position"`
	Timing    types.Timing        `json:"timing"`
	ZIndex    int                 `json:"zIndex"`
	Text      string              `json:"text,omitempty"`
	Style     *elements.TextStyle `json:"style,omitempty"`
	Content   string              `json:"content,omitempty"`
	Source    string              `json:"source,omitempty"`
	Transform *TransformConfig    `json:"transform,omitempty"`
	Preview   *types.Dimensions   `json:"preview,omitempty"`
	Output    *types.Dimensions   `json:"output,omitempty"`
	ScaleInfo *geometry.Geometry  `json:"scaleInfo,omitempty"`
	Opacity   float64             `json:"opacity,omitempty"`
}

// OutputConfig is the encoder parameter block.
type OutputConfig struct {
	Format     string `json:"format"`
	Codec      string `json:"codec"`
	Preset     string `json:"preset"`
	CRF        int    `json:"crf"`
	Resolution string `json:"resolution"`
	FPS        int    `json:"fps"`
}

// GlobalTransitions preserves both the fallback and the full individual
// array verbatim so the renderer can re-resolve per-pair precedence
// identically.
type GlobalTransitions struct {
	Type                  transitions.Type         `json:"type"`
	Duration              float64                  `json:"duration"`
	IndividualTransitions []transitions.Transition `json:"individualTransitions"`
}

// OverlayDefaults echoes the global overlay configuration.
type OverlayDefaults struct {
	Text      settings.TextOverlayDefaults `json:"text"`
	Watermark settings.WatermarkConfig     `json:"watermark"`
}

// GlobalConfig is the project-wide settings block emitted once per script.
type GlobalConfig struct {
	Transitions            GlobalTransitions      `json:"transitions"`
	Audio                  settings.AudioEffects  `json:"audio"`
	BackgroundMusicEnabled bool                   `json:"backgroundMusicEnabled"`
	BackgroundMusic        string                 `json:"backgroundMusic"`
	BackgroundMusicVolume  float64                `json:"backgroundMusicVolume"`
	Effects                settings.VisualEffects `json:"effects"`
	Overlays               OverlayDefaults        `json:"overlays"`
}
