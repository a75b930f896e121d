// Package settings holds the global, per-project video configuration the
// editor mutates and the script generator reads once at export time.
package settings

import (
	"fmt"

	"sceneforge/config"
	"sceneforge/transitions"
	"sceneforge/types"
)

// AudioEffects are the global audio defaults composed with per-scene voice
// parameters at export.
type AudioEffects struct {
	Volume    float64 `json:"volume"`
	FadeIn    float64 `json:"fadeIn"`
	FadeOut   float64 `json:"fadeOut"`
	Normalize bool    `json:"normalize"`
	Bass      float64 `json:"bass"`
	Treble    float64 `json:"treble"`
}

// VisualEffects are the global image filter defaults composed with per-scene
// adjustments at export.
type VisualEffects struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Hue        float64 `json:"hue"`
	Blur       float64 `json:"blur"`
}

// TextOverlayDefaults configure the auto-synthesized voice-over subtitle.
// Position is a preset name, not explicit coordinates.
type TextOverlayDefaults struct {
	Enabled    bool    `json:"enabled"`
	Position   string  `json:"position"` // "top", "center" or "bottom"
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	Color      string  `json:"color"`
	Background bool    `json:"background"`
}

// WatermarkConfig configures the optional watermark overlay.
type WatermarkConfig struct {
	Enabled  bool    `json:"enabled"`
	Source   string  `json:"source"`
	Position string  `json:"position"` // corner preset
	Opacity  float64 `json:"opacity"`
}

// Preset position names accepted by TextOverlayDefaults and WatermarkConfig.
const (
	PositionTop         = "top"
	PositionCenter      = "center"
	PositionBottom      = "bottom"
	PositionTopLeft     = "top-left"
	PositionTopRight    = "top-right"
	PositionBottomLeft  = "bottom-left"
	PositionBottomRight = "bottom-right"
)

// VideoSettings is the one global settings value per project session.
// Initialized with fixed defaults when the editor mounts, mutated by the
// settings panel, read once at export.
type VideoSettings struct {
	Resolution types.Dimensions `json:"resolution"`
	FPS        int              `json:"fps"`
	Preset     string           `json:"preset"`
	CRF        int              `json:"crf"`

	Transition            transitions.Type         `json:"transition"`
	TransitionDuration    float64                  `json:"transitionDuration"`
	IndividualTransitions []transitions.Transition `json:"individualTransitions"`

	Audio   AudioEffects  `json:"audio"`
	Effects VisualEffects `json:"effects"`

	TextOverlay TextOverlayDefaults `json:"textOverlay"`
	Watermark   WatermarkConfig     `json:"watermark"`

	BackgroundMusicEnabled bool    `json:"backgroundMusicEnabled"`
	BackgroundMusic        string  `json:"backgroundMusic"`
	BackgroundMusicVolume  float64 `json:"backgroundMusicVolume"`
}

// Default returns the settings the editor starts every session with.
func Default() VideoSettings {
	return VideoSettings{
		Resolution: types.Dimensions{
			Width:  config.DefaultOutputWidth,
			Height: config.DefaultOutputHeight,
		},
		FPS:    config.DefaultFPS,
		Preset: config.VideoPreset,
		CRF:    config.DefaultCRF,

		Transition:            transitions.None,
		TransitionDuration:    config.DefaultTransitionDuration,
		IndividualTransitions: []transitions.Transition{},

		Audio: AudioEffects{Volume: 1.0},
		Effects: VisualEffects{
			Contrast:   1.0,
			Saturation: 1.0,
		},

		TextOverlay: TextOverlayDefaults{
			Position:   PositionBottom,
			FontSize:   24,
			FontFamily: "Arial",
			Color:      "#FFFFFF",
			Background: true,
		},
		Watermark: WatermarkConfig{
			Position: PositionBottomRight,
			Opacity:  0.5,
		},

		BackgroundMusicVolume: 0.3,
	}
}

// ResolutionString formats the output resolution as "WxH".
func (s VideoSettings) ResolutionString() string {
	return fmt.Sprintf("%dx%d", int(s.Resolution.Width), int(s.Resolution.Height))
}
