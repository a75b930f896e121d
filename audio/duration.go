// Package audio resolves scene playback durations from voice-over payloads.
package audio

import (
	"sceneforge/config"
	"sceneforge/types"
)

// Decoder extracts the exact duration of an encoded audio payload. It is
// optional: duration resolution must work without one.
type Decoder interface {
	// Duration returns the playback length in seconds of the audio referenced
	// by the data URI.
	Duration(dataURI string) (float64, error)
}

// Duration sources, recorded so callers can tell which branch of the
// fallback chain produced the number.
const (
	SourceOverride  = "override"
	SourceDecoded   = "decoded"
	SourceEstimated = "estimated"
	SourceDefault   = "default"
)

// Result is a resolved scene duration plus the path that produced it.
type Result struct {
	Seconds float64 `json:"seconds"`
	Source  string  `json:"source"`
}

// ResolveSceneDuration derives a scene's playback duration. Priority:
// manual override, decoded audio length, payload-size estimate, fixed
// default. It always produces a number; decode failures fall through to the
// estimate silently.
func ResolveSceneDuration(scene *types.Scene, override *float64, dec Decoder) Result {
	if override != nil {
		return Result{Seconds: *override, Source: SourceOverride}
	}
	if scene == nil || !scene.HasVoice() {
		return Result{Seconds: config.DefaultSceneDuration, Source: SourceDefault}
	}

	if dec != nil {
		if d, err := dec.Duration(DataURI(scene.Voice)); err == nil && d > 0 {
			return Result{Seconds: d + config.AudioTailPadding, Source: SourceDecoded}
		}
	}

	return Result{Seconds: estimateFromPayload(scene.Voice), Source: SourceEstimated}
}

// estimateFromPayload derives duration from encoded payload size, assuming
// 128 kbps MP3. The estimate is clamped before the tail padding is added.
func estimateFromPayload(v *types.VoiceOver) float64 {
	payload := StripDataURI(v.AudioBase64)
	bytes := float64(len(payload)) * config.Base64ByteFactor
	seconds := bytes / config.VoiceBytesPerSecond

	if seconds < config.MinEstimatedDuration {
		seconds = config.MinEstimatedDuration
	}
	if seconds > config.MaxEstimatedDuration {
		seconds = config.MaxEstimatedDuration
	}
	return seconds + config.AudioTailPadding
}
