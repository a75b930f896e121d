package script

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sceneforge/audio"
	"sceneforge/config"
	"sceneforge/elements"
	"sceneforge/geometry"
	"sceneforge/settings"
	"sceneforge/transitions"
	"sceneforge/types"
)

// ErrNoScenes is returned when generation is attempted on an empty project.
var ErrNoScenes = errors.New("project has no scenes")

// Generator turns editor state into an export script. It holds no project
// state itself; every Generate call reads its inputs fresh.
type Generator struct {
	log *zap.Logger
}

// NewGenerator creates a script generator. A nil logger disables logging.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

// Generate assembles the full export script from the scene list, the element
// store and the global settings. The decoder is optional; without one, voice
// durations fall back to the payload estimate.
//
// Given identical inputs the output is reproducible: nothing here stamps
// fresh ids or timestamps.
func (g *Generator) Generate(ctx context.Context, scenes []types.Scene, els *elements.Store, cfg settings.VideoSettings, dec audio.Decoder) (*Script, error) {
	if len(scenes) == 0 {
		return nil, ErrNoScenes
	}
	if els == nil {
		return nil, errors.New("element store is nil")
	}

	output := cfg.Resolution
	sc := make([]SceneConfig, 0, len(scenes))

	for i := range scenes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("script generation: %w", err)
		}

		scene := &scenes[i]
		bag, ok := els.Bag(scene.Number)
		if !ok {
			// A scene without a bag renders with neutral element state.
			bag = &elements.Bag{Image: elements.DefaultAdjustments()}
		}

		dur := audio.ResolveSceneDuration(scene, bag.Duration, dec)
		g.log.Debug("resolved scene duration",
			zap.Int("scene", scene.Number),
			zap.Float64("seconds", dur.Seconds),
			zap.String("source", dur.Source))

		preview := output
		if bag.PreviewSize != nil && bag.PreviewSize.Width > 0 {
			preview = *bag.PreviewSize
		}

		cfgScene := SceneConfig{
			ID:                scene.Number,
			Duration:          dur.Seconds,
			DurationSource:    dur.Source,
			Image:             imageBlock(bag.Image, cfg.Effects, scene.ImageURL),
			OutputDimensions:  output,
			PreviewDimensions: preview,
			Audio:             audioBlock(scene, cfg.Audio),
			Overlays:          g.flattenOverlays(scene, bag, cfg, output, dur.Seconds),
		}
		if i < len(scenes)-1 {
			cfgScene.Transition = transitions.ResolveBoundary(i, cfg.IndividualTransitions, cfg.Transition, cfg.TransitionDuration)
		}
		sc = append(sc, cfgScene)
	}

	s := &Script{
		Version: config.ScriptVersion,
		Scenes:  sc,
		Output: OutputConfig{
			Format:     config.VideoFormat,
			Codec:      config.VideoCodec,
			Preset:     cfg.Preset,
			CRF:        cfg.CRF,
			Resolution: cfg.ResolutionString(),
			FPS:        cfg.FPS,
		},
		Global: GlobalConfig{
			Transitions: GlobalTransitions{
				Type:                  cfg.Transition,
				Duration:              cfg.TransitionDuration,
				IndividualTransitions: cfg.IndividualTransitions,
			},
			Audio:                  cfg.Audio,
			BackgroundMusicEnabled: cfg.BackgroundMusicEnabled,
			BackgroundMusic:        cfg.BackgroundMusic,
			BackgroundMusicVolume:  cfg.BackgroundMusicVolume,
			Effects:                cfg.Effects,
			Overlays: OverlayDefaults{
				Text:      cfg.TextOverlay,
				Watermark: cfg.Watermark,
			},
		},
	}

	g.log.Info("generated script",
		zap.Int("scenes", len(sc)),
		zap.String("resolution", s.Output.Resolution))
	return s, nil
}

// imageBlock composes per-scene image adjustments with the global visual
// effects. Brightness is additive; contrast and saturation multiply; hue and
// blur only exist globally and pass through.
func imageBlock(adj elements.ImageAdjustments, fx settings.VisualEffects, source string) ImageConfig {
	return ImageConfig{
		Source: source,
		Filters: FilterConfig{
			Scale:      adj.Scale,
			Rotation:   adj.Rotation,
			Position:   adj.Position,
			Brightness: adj.Brightness + fx.Brightness,
			Contrast:   adj.Contrast * fx.Contrast,
			Saturation: adj.Saturation * fx.Saturation,
			Hue:        fx.Hue,
			Blur:       fx.Blur,
		},
	}
}

// audioBlock composes a scene's voice parameters with the global audio
// effects: volume multiplies, the more pronounced fade wins, the remaining
// knobs pass through from global. Nil for voiceless scenes.
func audioBlock(scene *types.Scene, fx settings.AudioEffects) *AudioConfig {
	if !scene.HasVoice() {
		return nil
	}
	v := scene.Voice

	volume := v.Volume
	if volume == 0 {
		volume = 1.0
	}

	return &AudioConfig{
		Source:    audio.DataURI(v),
		Volume:    volume * fx.Volume,
		FadeIn:    maxf(v.FadeIn, fx.FadeIn),
		FadeOut:   maxf(v.FadeOut, fx.FadeOut),
		Normalize: fx.Normalize,
		Bass:      fx.Bass,
		Treble:    fx.Treble,
	}
}

// flattenOverlays merges the three overlay collections into the single list
// the renderer consumes, in stable order: labels, stickers, image overlays,
// then the synthesized subtitle and watermark. Percentage positions gain
// absolute output-pixel coordinates.
func (g *Generator) flattenOverlays(scene *types.Scene, bag *elements.Bag, cfg settings.VideoSettings, output types.Dimensions, duration float64) []OverlayConfig {
	out := make([]OverlayConfig, 0, len(bag.Labels)+len(bag.Stickers)+len(bag.ImageOverlays)+2)

	for i := range bag.Labels {
		l := &bag.Labels[i]
		style := l.Style
		out = append(out, OverlayConfig{
			ID:       l.ID,
			Type:     OverlayText,
			Position: positionBlock(l.Position, output),
			Timing:   l.Timing,
			ZIndex:   l.ZIndex,
			Text:     l.Text,
			Style:    &style,
		})
	}

	for i := range bag.Stickers {
		s := &bag.Stickers[i]
		out = append(out, OverlayConfig{
			ID:       s.ID,
			Type:     OverlaySticker,
			Position: positionBlock(s.Position, output),
			Timing:   s.Timing,
			ZIndex:   s.ZIndex,
			Content:  s.Content,
			Transform: &TransformConfig{
				Scale:    s.Scale,
				Rotation: s.Rotation,
			},
		})
	}

	for i := range bag.ImageOverlays {
		o := &bag.ImageOverlays[i]
		geo := geometry.ResolveOverlayGeometry(o.Natural, bag.PreviewSize, output, o.Scale)
		preview := geo.PreviewSize
		outSize := geo.OutputSize
		out = append(out, OverlayConfig{
			ID:       o.ID,
			Type:     OverlayImage,
			Position: positionBlock(o.Position, output),
			Timing:   o.Timing,
			ZIndex:   o.ZIndex,
			Source:   o.Source,
			Transform: &TransformConfig{
				Scale:    geo.OutputScale,
				Rotation: o.Rotation,
				Opacity:  o.Opacity,
			},
			Preview:   &preview,
			Output:    &outSize,
			ScaleInfo: &geo,
			Opacity:   o.Opacity,
		})
	}

	if sub := subtitleOverlay(scene, cfg.TextOverlay, duration); sub != nil {
		out = append(out, *sub)
	}
	if wm := watermarkOverlay(cfg.Watermark, duration); wm != nil {
		out = append(out, *wm)
	}
	return out
}

// subtitleOverlay synthesizes the auto-subtitle from the scene's voice text
// when the global text overlay is enabled. User-placed overlays always carry
// explicit coordinates, so the subtitle is the only preset-positioned text
// entry and is synthesized at most once per scene. It spans the whole scene
// and renders above every user-placed overlay.
func subtitleOverlay(scene *types.Scene, defaults settings.TextOverlayDefaults, duration float64) *OverlayConfig {
	if !defaults.Enabled || scene.VoiceText == "" {
		return nil
	}
	return &OverlayConfig{
		Type: OverlayText,
		Position: PositionConfig{
			Unit:   types.UnitPercentage,
			Preset: defaults.Position,
		},
		Timing: types.Timing{Start: 0, End: duration},
		ZIndex: config.SubtitleZIndex,
		Text:   scene.VoiceText,
		Style: &elements.TextStyle{
			Color:      defaults.Color,
			FontSize:   defaults.FontSize,
			FontFamily: defaults.FontFamily,
			Background: defaults.Background,
			TextAlign:  "center",
		},
	}
}

// watermarkOverlay produces the watermark descriptor when enabled. It is
// positioned by corner preset and shown for the whole scene.
func watermarkOverlay(wm settings.WatermarkConfig, duration float64) *OverlayConfig {
	if !wm.Enabled || wm.Source == "" {
		return nil
	}
	return &OverlayConfig{
		Type: OverlayWatermark,
		Position: PositionConfig{
			Unit:   types.UnitPercentage,
			Preset: wm.Position,
		},
		Timing:  types.Timing{Start: 0, End: duration},
		ZIndex:  config.SubtitleZIndex + 1,
		Source:  wm.Source,
		Opacity: wm.Opacity,
	}
}

// positionBlock pairs the stored percentage position with its absolute
// output-pixel coordinates.
func positionBlock(pos types.Position, output types.Dimensions) PositionConfig {
	x, y := geometry.AbsolutePosition(pos, output)
	return PositionConfig{
		X:         pos.X,
		Y:         pos.Y,
		Unit:      types.UnitPercentage,
		AbsoluteX: x,
		AbsoluteY: y,
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
