package types

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position locates an overlay on its scene. X and Y are percentages of the
// preview surface ([0,100]); the unit is tagged explicitly so a renderer never
// has to guess.
type Position struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Unit string  `json:"unit"`
}

// UnitPercentage is the only position unit produced by the editor.
const UnitPercentage = "percentage"

// Timing bounds an overlay's visibility within its scene, in seconds from
// scene start.
type Timing struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// VoiceOver is a scene's narration audio as delivered by the persistence
// layer: encoded bytes plus per-scene playback parameters.
type VoiceOver struct {
	// AudioBase64 holds the encoded payload, either bare base64 or a full
	// data URI.
	AudioBase64 string  `json:"audio_base64"`
	Codec       string  `json:"codec,omitempty"`
	Volume      float64 `json:"volume"`
	FadeIn      float64 `json:"fade_in"`
	FadeOut     float64 `json:"fade_out"`
}

// Scene is one unit of the video timeline: one image, optional voice-over,
// and the overlays held in its element bag.
type Scene struct {
	// Number is 1-based and contiguous within a project.
	Number    int        `json:"scene_number"`
	ImageURL  string     `json:"image_url"`
	VoiceText string     `json:"voice_text"`
	Voice     *VoiceOver `json:"voice,omitempty"`
	// Duration overrides audio-derived timing when set (seconds).
	Duration *float64 `json:"duration,omitempty"`
}

// HasVoice reports whether the scene carries a voice audio payload.
func (s *Scene) HasVoice() bool {
	return s.Voice != nil && s.Voice.AudioBase64 != ""
}
