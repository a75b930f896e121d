// Package render turns an exported script into an mp4 via ffmpeg. It is the
// reference consumer of the script format; the editor itself never renders.
package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"sceneforge/audio"
	"sceneforge/script"
)

// Renderer renders scripts into video files using the system ffmpeg binary.
type Renderer struct {
	log *zap.Logger
	// workDir holds per-render intermediates (scene clips, decoded audio).
	workDir string
}

// NewRenderer creates a renderer writing intermediates under workDir, or the
// OS temp dir when empty.
func NewRenderer(log *zap.Logger, workDir string) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Renderer{log: log, workDir: workDir}
}

// Render encodes the whole script to outputPath. Each scene is rendered to
// an intermediate clip, then the clips are joined; adjacent clips with a
// resolved transition are joined with xfade, the rest are concatenated hard.
func (r *Renderer) Render(ctx context.Context, sc *script.Script, outputPath string) error {
	if len(sc.Scenes) == 0 {
		return fmt.Errorf("script has no scenes")
	}

	dir, err := os.MkdirTemp(r.workDir, "render-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	clips := make([]string, len(sc.Scenes))
	for i := range sc.Scenes {
		if err := ctx.Err(); err != nil {
			return err
		}
		clip := filepath.Join(dir, fmt.Sprintf("scene_%03d.mp4", i))
		if err := r.renderScene(&sc.Scenes[i], &sc.Output, dir, clip); err != nil {
			return fmt.Errorf("render scene %d: %w", sc.Scenes[i].ID, err)
		}
		clips[i] = clip
		r.log.Debug("rendered scene clip",
			zap.Int("scene", sc.Scenes[i].ID),
			zap.Float64("duration", sc.Scenes[i].Duration))
	}

	if err := r.join(sc, clips, dir, outputPath); err != nil {
		return fmt.Errorf("join clips: %w", err)
	}
	r.log.Info("rendered video",
		zap.Int("scenes", len(clips)),
		zap.String("output", outputPath))
	return nil
}

// renderScene encodes one still image plus its audio track into a clip of
// exactly the scene's duration.
func (r *Renderer) renderScene(scene *script.SceneConfig, out *script.OutputConfig, dir, clipPath string) error {
	stream, err := sceneGraph(scene, out, dir, clipPath)
	if err != nil {
		return err
	}
	return stream.OverWriteOutput().Run()
}

// sceneGraph builds the ffmpeg graph for one scene clip: the composed filter
// block and text overlays on the video side, the voice payload (or silence,
// for voiceless scenes) on the audio side. Every clip carries an audio
// track so the join stage can splice them uniformly.
func sceneGraph(scene *script.SceneConfig, out *script.OutputConfig, dir, clipPath string) (*ffmpeg.Stream, error) {
	input := ffmpeg.Input(scene.Image.Source, ffmpeg.KwArgs{
		"loop": 1,
		"t":    fmt.Sprintf("%.3f", scene.Duration),
	})

	stream := input.Filter("scale", ffmpeg.Args{out.Resolution})
	stream = applyFilters(stream, &scene.Image.Filters)
	stream = applyTextOverlays(stream, scene.Overlays)

	kwargs := ffmpeg.KwArgs{
		"c:v":      out.Codec,
		"preset":   out.Preset,
		"crf":      out.CRF,
		"r":        out.FPS,
		"pix_fmt":  "yuv420p",
		"movflags": "+faststart",
		"c:a":      "aac",
		"b:a":      "192k",
	}

	var track *ffmpeg.Stream
	if scene.Audio != nil {
		audioPath := filepath.Join(dir, fmt.Sprintf("voice_%03d.mp3", scene.ID))
		if err := writeDataURI(scene.Audio.Source, audioPath); err != nil {
			return nil, fmt.Errorf("decode voice payload: %w", err)
		}
		track = ffmpeg.Input(audioPath).Audio().
			Filter("volume", ffmpeg.Args{fmt.Sprintf("%.3f", scene.Audio.Volume)})
		if scene.Audio.FadeIn > 0 {
			track = track.Filter("afade", ffmpeg.Args{}, ffmpeg.KwArgs{
				"t": "in", "st": 0, "d": scene.Audio.FadeIn,
			})
		}
		if scene.Audio.FadeOut > 0 {
			track = track.Filter("afade", ffmpeg.Args{}, ffmpeg.KwArgs{
				"t": "out", "st": scene.Duration - scene.Audio.FadeOut, "d": scene.Audio.FadeOut,
			})
		}
		kwargs["shortest"] = ""
	} else {
		track = ffmpeg.Input("anullsrc=channel_layout=stereo:sample_rate=44100", ffmpeg.KwArgs{
			"f": "lavfi",
			"t": fmt.Sprintf("%.3f", scene.Duration),
		})
	}

	return ffmpeg.Output([]*ffmpeg.Stream{stream, track}, clipPath, kwargs), nil
}

// applyFilters maps the script's composed filter block onto ffmpeg filters.
// Neutral values are skipped so the common case stays a bare scale.
func applyFilters(stream *ffmpeg.Stream, f *script.FilterConfig) *ffmpeg.Stream {
	if f.Brightness != 0 || f.Contrast != 1 || f.Saturation != 1 {
		stream = stream.Filter("eq", ffmpeg.Args{}, ffmpeg.KwArgs{
			"brightness": fmt.Sprintf("%.3f", f.Brightness),
			"contrast":   fmt.Sprintf("%.3f", f.Contrast),
			"saturation": fmt.Sprintf("%.3f", f.Saturation),
		})
	}
	if f.Hue != 0 {
		stream = stream.Filter("hue", ffmpeg.Args{}, ffmpeg.KwArgs{"h": fmt.Sprintf("%.1f", f.Hue)})
	}
	if f.Blur > 0 {
		stream = stream.Filter("gblur", ffmpeg.Args{}, ffmpeg.KwArgs{"sigma": fmt.Sprintf("%.2f", f.Blur)})
	}
	if f.Rotation != 0 {
		stream = stream.Filter("rotate", ffmpeg.Args{fmt.Sprintf("%.4f", f.Rotation*3.141592653589793/180)})
	}
	return stream
}

// applyTextOverlays renders the script's text overlays with drawtext, timed
// with enable=between. Sticker and image overlays need compositing inputs
// and are handled by the full pipeline; text covers subtitles and labels.
func applyTextOverlays(stream *ffmpeg.Stream, overlays []script.OverlayConfig) *ffmpeg.Stream {
	for i := range overlays {
		o := &overlays[i]
		if o.Type != script.OverlayText || o.Text == "" {
			continue
		}

		kwargs := ffmpeg.KwArgs{
			"text":     escapeDrawtext(o.Text),
			"fontsize": 24,
			"enable":   fmt.Sprintf("between(t,%.3f,%.3f)", o.Timing.Start, o.Timing.End),
		}
		if o.Style != nil {
			if o.Style.FontSize > 0 {
				kwargs["fontsize"] = int(o.Style.FontSize)
			}
			if o.Style.Color != "" {
				kwargs["fontcolor"] = o.Style.Color
			}
			if o.Style.Background {
				kwargs["box"] = 1
				kwargs["boxcolor"] = "black@0.5"
				kwargs["boxborderw"] = 8
			}
		}
		kwargs["x"], kwargs["y"] = drawtextPosition(o)

		stream = stream.Filter("drawtext", ffmpeg.Args{}, kwargs)
	}
	return stream
}

// drawtextPosition maps either the preset or the absolute coordinates onto
// drawtext x/y expressions.
func drawtextPosition(o *script.OverlayConfig) (x, y interface{}) {
	switch o.Position.Preset {
	case "top":
		return "(w-text_w)/2", "h*0.08"
	case "center":
		return "(w-text_w)/2", "(h-text_h)/2"
	case "bottom":
		return "(w-text_w)/2", "h*0.88"
	case "":
		return fmt.Sprintf("%.0f", o.Position.AbsoluteX), fmt.Sprintf("%.0f", o.Position.AbsoluteY)
	default:
		// Corner presets only occur on watermarks; text falls back to bottom.
		return "(w-text_w)/2", "h*0.88"
	}
}

// join combines the scene clips. With any transitions present, clips are
// folded left-to-right through xfade at each boundary; otherwise the concat
// demuxer does a straight join.
func (r *Renderer) join(sc *script.Script, clips []string, dir, outputPath string) error {
	if len(clips) == 1 {
		return copyFile(clips[0], outputPath)
	}

	hasTransition := false
	for i := range sc.Scenes {
		if sc.Scenes[i].Transition != nil && sc.Scenes[i].Transition.Type != "none" {
			hasTransition = true
			break
		}
	}
	if !hasTransition {
		return r.concat(clips, dir, outputPath)
	}

	return joinGraph(sc, clips, outputPath).OverWriteOutput().Run()
}

// joinGraph folds the clips left-to-right, keeping video and audio in step:
// a transitioned boundary pairs xfade with acrossfade (both shorten the
// result by the transition duration), a plain boundary concatenates each
// stream. Both final streams are mapped into the output.
func joinGraph(sc *script.Script, clips []string, outputPath string) *ffmpeg.Stream {
	first := ffmpeg.Input(clips[0])
	video := first.Video()
	aud := first.Audio()
	offset := sc.Scenes[0].Duration

	for i := 1; i < len(clips); i++ {
		next := ffmpeg.Input(clips[i])
		tr := sc.Scenes[i-1].Transition
		if tr == nil || tr.Type == "none" {
			video = ffmpeg.Concat([]*ffmpeg.Stream{video, next.Video()})
			aud = ffmpeg.Concat([]*ffmpeg.Stream{aud, next.Audio()}, ffmpeg.KwArgs{"v": 0, "a": 1})
			offset += sc.Scenes[i].Duration
			continue
		}
		video = ffmpeg.Filter([]*ffmpeg.Stream{video, next.Video()}, "xfade", ffmpeg.Args{}, ffmpeg.KwArgs{
			"transition": xfadeName(string(tr.Type)),
			"duration":   fmt.Sprintf("%.3f", tr.Duration),
			"offset":     fmt.Sprintf("%.3f", offset-tr.Duration),
		})
		aud = ffmpeg.Filter([]*ffmpeg.Stream{aud, next.Audio()}, "acrossfade", ffmpeg.Args{}, ffmpeg.KwArgs{
			"d": fmt.Sprintf("%.3f", tr.Duration),
		})
		offset += sc.Scenes[i].Duration - tr.Duration
	}

	return ffmpeg.Output([]*ffmpeg.Stream{video, aud}, outputPath, ffmpeg.KwArgs{
		"c:v":     sc.Output.Codec,
		"preset":  sc.Output.Preset,
		"crf":     sc.Output.CRF,
		"pix_fmt": "yuv420p",
		"c:a":     "aac",
		"b:a":     "192k",
	})
}

// concat joins clips losslessly via the concat demuxer.
func (r *Renderer) concat(clips []string, dir, outputPath string) error {
	listPath := filepath.Join(dir, "concat.txt")
	var b strings.Builder
	for _, c := range clips {
		fmt.Fprintf(&b, "file '%s'\n", filepath.ToSlash(c))
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return err
	}
	return ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().Run()
}

// xfadeName maps script transition types to xfade transition names. The
// smooth pushes and the script names line up already.
func xfadeName(t string) string {
	switch t {
	case "slide":
		return "slideleft"
	case "zoom":
		return "zoomin"
	case "blur":
		return "hblur"
	case "wipe":
		return "wipeleft"
	case "dissolve":
		return "pixelize"
	default:
		return t
	}
}

// escapeDrawtext escapes the characters drawtext treats specially.
func escapeDrawtext(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`, `%`, `\%`)
	return r.Replace(s)
}

// writeDataURI decodes a base64 (optionally data-URI wrapped) payload to a
// file.
func writeDataURI(uri, path string) error {
	payload := audio.StripDataURI(uri)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("invalid base64 payload: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
