package project

import (
	"context"
	"errors"
	"testing"

	"sceneforge/elements"
	"sceneforge/script"
	"sceneforge/transitions"
	"sceneforge/types"
)

func sampleProject(t *testing.T) *Project {
	t.Helper()
	p := New("launch video")
	p.ReplaceScenes([]types.Scene{
		{ImageURL: "https://img/1.png", VoiceText: "intro"},
		{ImageURL: "https://img/2.png"},
		{ImageURL: "https://img/3.png"},
	})
	return p
}

func TestReplaceScenesRenumbers(t *testing.T) {
	p := New("p")
	p.ReplaceScenes([]types.Scene{
		{Number: 7, ImageURL: "a"},
		{Number: 7, ImageURL: "b"},
	})

	for i, s := range p.Scenes {
		if s.Number != i+1 {
			t.Fatalf("scene %d number = %d, want %d", i, s.Number, i+1)
		}
	}
	if got := p.Elements.SceneNumbers(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("element bags = %v, want [1 2]", got)
	}
	if len(p.Settings.IndividualTransitions) != 1 {
		t.Fatalf("transition list length = %d, want 1", len(p.Settings.IndividualTransitions))
	}
}

func TestReplaceScenesResetsElements(t *testing.T) {
	p := sampleProject(t)
	if _, err := p.Elements.AddLabel(1, elements.Label{Text: "stale"}, 5.0); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}

	p.ReplaceScenes([]types.Scene{{ImageURL: "only"}})

	bag, ok := p.Elements.Bag(1)
	if !ok {
		t.Fatal("bag for scene 1 missing after replace")
	}
	if len(bag.Labels) != 0 {
		t.Fatalf("stale labels survived scene replacement: %+v", bag.Labels)
	}
	if len(p.Settings.IndividualTransitions) != 0 {
		t.Fatal("single-scene project kept transition entries")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := sampleProject(t)

	if _, err := p.Elements.AddSticker(2, elements.Sticker{
		Overlay: elements.Overlay{Position: types.Position{X: 40, Y: 60}},
		Content: "⭐",
	}, 5.0); err != nil {
		t.Fatalf("AddSticker: %v", err)
	}
	p.Settings.Transition = transitions.Fade

	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != p.Name || len(got.Scenes) != 3 {
		t.Fatalf("loaded project = %q with %d scenes", got.Name, len(got.Scenes))
	}
	if got.Settings.Transition != transitions.Fade {
		t.Fatalf("settings lost in round trip: %+v", got.Settings)
	}
	bag, ok := got.Elements.Bag(2)
	if !ok || len(bag.Stickers) != 1 || bag.Stickers[0].Content != "⭐" {
		t.Fatalf("element bags lost in round trip")
	}
}

func TestMemoryStoreSaveIsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := sampleProject(t)

	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the live project must not affect the stored copy.
	p.Name = "renamed"
	if _, err := p.Elements.AddLabel(1, elements.Label{Text: "late"}, 5.0); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}

	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "launch video" {
		t.Fatalf("stored name = %q, want snapshot at save time", got.Name)
	}
	bag, _ := got.Elements.Bag(1)
	if len(bag.Labels) != 0 {
		t.Fatal("post-save mutation leaked into the store")
	}
}

func TestMemoryStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a, b := sampleProject(t), sampleProject(t)
	b.Touch()
	for _, p := range []*Project{a, b} {
		if err := store.Save(ctx, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0].ID != b.ID {
		t.Error("list not ordered by most recent update")
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete = %v, want ErrNotFound", err)
	}
}

func TestExport(t *testing.T) {
	p := sampleProject(t)
	s, err := p.Export(context.Background(), script.NewGenerator(nil), nil)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(s.Scenes) != 3 {
		t.Fatalf("exported %d scenes, want 3", len(s.Scenes))
	}

	empty := New("empty")
	if _, err := empty.Export(context.Background(), script.NewGenerator(nil), nil); err == nil {
		t.Fatal("exporting an empty project should fail")
	}
}
