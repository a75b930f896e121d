package audio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	mp3 "github.com/hajimehoshi/go-mp3"

	"sceneforge/types"
)

// MP3Decoder decodes MP3 voice-over payloads to obtain their exact duration.
type MP3Decoder struct{}

// NewMP3Decoder returns a decoder for base64/data-URI MP3 payloads.
func NewMP3Decoder() *MP3Decoder {
	return &MP3Decoder{}
}

// Duration decodes the payload and returns its playback length in seconds.
func (d *MP3Decoder) Duration(dataURI string) (float64, error) {
	raw, err := base64.StdEncoding.DecodeString(StripDataURI(dataURI))
	if err != nil {
		return 0, fmt.Errorf("failed to decode audio payload: %w", err)
	}

	dec, err := mp3.NewDecoder(bytes.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("failed to open mp3 stream: %w", err)
	}

	// Length is the PCM byte count: 2 channels x 2 bytes per sample.
	samples := dec.Length() / 4
	if dec.SampleRate() <= 0 {
		return 0, fmt.Errorf("mp3 stream reports sample rate %d", dec.SampleRate())
	}
	return float64(samples) / float64(dec.SampleRate()), nil
}

// DataURI returns the voice payload as a data URI, adding the audio/mp3
// prefix when the persistence layer delivered bare base64.
func DataURI(v *types.VoiceOver) string {
	if v == nil {
		return ""
	}
	if strings.HasPrefix(v.AudioBase64, "data:") {
		return v.AudioBase64
	}
	mime := "audio/mp3"
	if v.Codec != "" {
		mime = "audio/" + v.Codec
	}
	return "data:" + mime + ";base64," + v.AudioBase64
}

// StripDataURI removes a data URI prefix, returning the bare base64 payload.
func StripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}
