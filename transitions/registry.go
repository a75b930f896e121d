// Package transitions maintains the catalog of inter-scene transition
// effects and the per-adjacent-pair selections.
package transitions

import (
	"fmt"

	"sceneforge/config"
)

// Type identifies a transition effect.
type Type string

const (
	None        Type = "none"
	Fade        Type = "fade"
	Slide       Type = "slide"
	Zoom        Type = "zoom"
	Blur        Type = "blur"
	Wipe        Type = "wipe"
	Dissolve    Type = "dissolve"
	SmoothLeft  Type = "smoothleft"
	SmoothRight Type = "smoothright"
	SmoothUp    Type = "smoothup"
	SmoothDown  Type = "smoothdown"
)

// Effect is one catalog entry shown in the transition picker.
type Effect struct {
	Type        Type   `json:"type"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// catalog is the fixed set of supported effects, in picker order.
var catalog = []Effect{
	{None, "∅", "No transition between scenes"},
	{Fade, "◐", "Crossfade through black"},
	{Slide, "→", "Slide the next scene in from the right"},
	{Zoom, "⊕", "Zoom into the next scene"},
	{Blur, "≋", "Blur out, blur in"},
	{Wipe, "▥", "Hard wipe from left to right"},
	{Dissolve, "▒", "Pixel dissolve between scenes"},
	{SmoothLeft, "◀", "Smooth push to the left"},
	{SmoothRight, "▶", "Smooth push to the right"},
	{SmoothUp, "▲", "Smooth push upward"},
	{SmoothDown, "▼", "Smooth push downward"},
}

// Catalog returns the fixed effect list.
func Catalog() []Effect {
	out := make([]Effect, len(catalog))
	copy(out, catalog)
	return out
}

// IsValid reports whether t is a known transition type.
func IsValid(t Type) bool {
	for _, e := range catalog {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Transition is the selection for one adjacent scene pair. ID is the pair
// index; the whole list is regenerated when the scene count changes, never
// patched, so FromScene/ToScene can't dangle.
type Transition struct {
	ID        int     `json:"id"`
	FromScene int     `json:"fromScene"`
	ToScene   int     `json:"toScene"`
	Type      Type    `json:"type"`
	Duration  float64 `json:"duration"`
}

// Initialize produces exactly sceneCount-1 default entries, or none for a
// single-scene (or empty) project.
func Initialize(sceneCount int) []Transition {
	if sceneCount <= 1 {
		return []Transition{}
	}
	out := make([]Transition, sceneCount-1)
	for i := range out {
		out[i] = Transition{
			ID:        i,
			FromScene: i + 1,
			ToScene:   i + 2,
			Type:      None,
			Duration:  config.DefaultTransitionDuration,
		}
	}
	return out
}

// Patch carries a partial transition update; nil fields are left alone.
type Patch struct {
	Type     *Type    `json:"type,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

// Update merges a patch into the transition at index.
func Update(list []Transition, index int, p Patch) error {
	if index < 0 || index >= len(list) {
		return fmt.Errorf("transition index %d out of range [0,%d)", index, len(list))
	}
	if p.Type != nil {
		if !IsValid(*p.Type) {
			return fmt.Errorf("unknown transition type %q", *p.Type)
		}
		list[index].Type = *p.Type
	}
	if p.Duration != nil {
		d := *p.Duration
		if d < config.MinTransitionDuration || d > config.MaxTransitionDuration {
			return fmt.Errorf("transition duration %.2fs outside [%.1f, %.1f]",
				d, config.MinTransitionDuration, config.MaxTransitionDuration)
		}
		list[index].Duration = d
	}
	return nil
}

// Resolved is the transition a renderer should apply at one scene boundary.
type Resolved struct {
	Type      Type    `json:"type"`
	Duration  float64 `json:"duration"`
	FromScene int     `json:"fromScene"`
	ToScene   int     `json:"toScene"`
}

// ResolveBoundary picks the transition for the pair at index: an
// individually configured non-none entry wins, else the global fallback if
// it is not none, else nil (no transition at this boundary).
func ResolveBoundary(index int, individual []Transition, globalType Type, globalDuration float64) *Resolved {
	if index >= 0 && index < len(individual) && individual[index].Type != None {
		t := individual[index]
		return &Resolved{Type: t.Type, Duration: t.Duration, FromScene: t.FromScene, ToScene: t.ToScene}
	}
	if globalType != None && globalType != "" {
		return &Resolved{
			Type:      globalType,
			Duration:  globalDuration,
			FromScene: index + 1,
			ToScene:   index + 2,
		}
	}
	return nil
}
