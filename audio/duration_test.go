package audio

import (
	"errors"
	"math"
	"strings"
	"testing"

	"sceneforge/types"
)

// fakeDecoder returns a fixed duration or error without touching real audio.
type fakeDecoder struct {
	seconds float64
	err     error
}

func (f *fakeDecoder) Duration(string) (float64, error) { return f.seconds, f.err }

func sceneWithPayload(n int) *types.Scene {
	return &types.Scene{
		Number: 1,
		Voice:  &types.VoiceOver{AudioBase64: strings.Repeat("A", n), Volume: 1},
	}
}

func TestResolveSceneDurationFallbackChain(t *testing.T) {
	override := 12.0

	cases := []struct {
		name        string
		scene       *types.Scene
		override    *float64
		dec         Decoder
		wantSeconds float64
		wantSource  string
	}{
		{
			name:        "no audio no override",
			scene:       &types.Scene{Number: 1},
			wantSeconds: 5.0,
			wantSource:  SourceDefault,
		},
		{
			name:        "override wins over audio",
			scene:       sceneWithPayload(100000),
			override:    &override,
			dec:         &fakeDecoder{seconds: 3.2},
			wantSeconds: 12.0,
			wantSource:  SourceOverride,
		},
		{
			name:        "decoded plus tail padding",
			scene:       sceneWithPayload(100000),
			dec:         &fakeDecoder{seconds: 3.2},
			wantSeconds: 3.7,
			wantSource:  SourceDecoded,
		},
		{
			name:  "estimate from payload size without decoder",
			scene: sceneWithPayload(32000), // 32000 * 0.75 = 24000 bytes
			// 24000 / 12288 = 1.953..., + 0.5
			wantSeconds: 24000.0/12288.0 + 0.5,
			wantSource:  SourceEstimated,
		},
		{
			name:        "decoder failure falls through to estimate",
			scene:       sceneWithPayload(32000),
			dec:         &fakeDecoder{err: errors.New("corrupt frame")},
			wantSeconds: 24000.0/12288.0 + 0.5,
			wantSource:  SourceEstimated,
		},
		{
			name:        "tiny payload clamps to minimum",
			scene:       sceneWithPayload(16),
			wantSeconds: 1.5,
			wantSource:  SourceEstimated,
		},
		{
			name:        "huge payload clamps to maximum",
			scene:       sceneWithPayload(400 * 1024 * 1024),
			wantSeconds: 120.5,
			wantSource:  SourceEstimated,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ResolveSceneDuration(c.scene, c.override, c.dec)
			if got.Source != c.wantSource {
				t.Fatalf("source = %q, want %q", got.Source, c.wantSource)
			}
			if math.Abs(got.Seconds-c.wantSeconds) > 1e-9 {
				t.Fatalf("seconds = %.6f, want %.6f", got.Seconds, c.wantSeconds)
			}
		})
	}
}

func TestResolveSceneDurationNeverFails(t *testing.T) {
	// Nil scene must still produce a number.
	got := ResolveSceneDuration(nil, nil, nil)
	if got.Seconds != 5.0 || got.Source != SourceDefault {
		t.Fatalf("nil scene resolved to %+v", got)
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	v := &types.VoiceOver{AudioBase64: "aGVsbG8=", Codec: "mp3"}
	uri := DataURI(v)
	if !strings.HasPrefix(uri, "data:audio/mp3;base64,") {
		t.Fatalf("unexpected data URI: %q", uri)
	}
	if got := StripDataURI(uri); got != "aGVsbG8=" {
		t.Fatalf("StripDataURI = %q, want %q", got, "aGVsbG8=")
	}

	// Already-prefixed payloads are passed through unchanged.
	v.AudioBase64 = "data:audio/wav;base64,AAAA"
	if got := DataURI(v); got != v.AudioBase64 {
		t.Fatalf("DataURI rewrote an existing URI: %q", got)
	}

	// Bare strings are returned as-is.
	if got := StripDataURI("AAAA"); got != "AAAA" {
		t.Fatalf("StripDataURI mangled bare base64: %q", got)
	}
}
