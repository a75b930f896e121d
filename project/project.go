// Package project ties a scene list, its element store and the global
// settings together into one editable unit, and persists it.
package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sceneforge/audio"
	"sceneforge/elements"
	"sceneforge/script"
	"sceneforge/settings"
	"sceneforge/transitions"
	"sceneforge/types"
)

// Project is one editing session's full state.
type Project struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
	Scenes    []types.Scene          `json:"scenes"`
	Elements  *elements.Store        `json:"-"`
	Settings  settings.VideoSettings `json:"settings"`
}

// New creates an empty project with default settings.
func New(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Scenes:    []types.Scene{},
		Elements:  elements.NewStore(nil),
		Settings:  settings.Default(),
	}
}

// ReplaceScenes swaps in a new scene list. Scenes are renumbered 1..n, every
// element bag is rebuilt empty and the per-pair transition list is
// regenerated to match the new length.
func (p *Project) ReplaceScenes(scenes []types.Scene) {
	p.Scenes = make([]types.Scene, len(scenes))
	nums := make([]int, len(scenes))
	for i, s := range scenes {
		s.Number = i + 1
		p.Scenes[i] = s
		nums[i] = i + 1
	}
	p.Elements.Reinitialize(nums)
	p.Settings.IndividualTransitions = transitions.Initialize(len(scenes))
	p.UpdatedAt = time.Now().UTC()
}

// Scene returns the scene with the given number.
func (p *Project) Scene(number int) (*types.Scene, bool) {
	for i := range p.Scenes {
		if p.Scenes[i].Number == number {
			return &p.Scenes[i], true
		}
	}
	return nil, false
}

// Export runs script generation over the project's current state.
func (p *Project) Export(ctx context.Context, gen *script.Generator, dec audio.Decoder) (*script.Script, error) {
	return gen.Generate(ctx, p.Scenes, p.Elements, p.Settings, dec)
}

// Touch bumps the modification timestamp.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UTC()
}
