package config

// Output Defaults
const (
	// DefaultOutputWidth is the target render width in pixels
	DefaultOutputWidth = 854

	// DefaultOutputHeight is the target render height in pixels
	DefaultOutputHeight = 480

	// DefaultFPS is the output frame rate
	DefaultFPS = 30

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// VideoFormat is the output container format
	VideoFormat = "mp4"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "medium"

	// DefaultCRF is the constant rate factor for libx264
	DefaultCRF = 23
)

// Duration Resolution Constants
const (
	// DefaultSceneDuration is used when a scene has no audio and no manual override (seconds)
	DefaultSceneDuration = 5.0

	// AudioTailPadding is appended to decoded or estimated voice durations so the
	// audio is never truncated at a scene boundary (seconds)
	AudioTailPadding = 0.5

	// Base64ByteFactor converts base64-encoded length to raw byte count
	Base64ByteFactor = 0.75

	// VoiceBytesPerSecond assumes 128 kbps MP3 voice-over audio
	VoiceBytesPerSecond = 12 * 1024

	// MinEstimatedDuration clamps size-based duration estimates (seconds)
	MinEstimatedDuration = 1.0

	// MaxEstimatedDuration clamps size-based duration estimates (seconds)
	MaxEstimatedDuration = 120.0
)

// Overlay Constants
const (
	// BaseOverlayFootprint is the on-screen width in preview pixels that an overlay
	// occupies at user scale 1.0
	BaseOverlayFootprint = 120.0

	// SubtitleZIndex keeps the synthesized voice-over subtitle above every
	// user-placed overlay
	SubtitleZIndex = 999
)

// Transition Constants
const (
	// MinTransitionDuration is the shortest allowed transition (seconds)
	MinTransitionDuration = 0.1

	// MaxTransitionDuration is the longest allowed transition (seconds)
	MaxTransitionDuration = 5.0

	// DefaultTransitionDuration is assigned to newly initialized scene pairs (seconds)
	DefaultTransitionDuration = 1.0
)

// Script Constants
const (
	// ScriptVersion is the version tag stamped on every exported script document
	ScriptVersion = "1.0"
)
