package elements

import (
	"errors"
	"testing"

	"sceneforge/types"
)

func newTestStore(scenes ...int) *Store {
	s := NewStore(NewCounterIDGenerator(0))
	s.Reinitialize(scenes)
	return s
}

func TestAddAssignsSharedZOrderAcrossKinds(t *testing.T) {
	s := newTestStore(1)

	l, err := s.AddLabel(1, Label{Text: "hello"}, 5)
	if err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	if l.ZIndex != 0 {
		t.Fatalf("first element zIndex = %d, want 0", l.ZIndex)
	}

	st, err := s.AddSticker(1, Sticker{Content: "🔥"}, 5)
	if err != nil {
		t.Fatalf("AddSticker: %v", err)
	}
	if st.ZIndex != 1 {
		t.Fatalf("sticker zIndex = %d, want 1 (combined space)", st.ZIndex)
	}

	o, err := s.AddImageOverlay(1, ImageOverlay{Source: "logo.png"}, 5)
	if err != nil {
		t.Fatalf("AddImageOverlay: %v", err)
	}
	if o.ZIndex != 2 {
		t.Fatalf("image overlay zIndex = %d, want 2 (combined space)", o.ZIndex)
	}

	// Ids are unique and monotonic.
	if !(l.ID < st.ID && st.ID < o.ID) {
		t.Fatalf("ids not monotonic: %d %d %d", l.ID, st.ID, o.ID)
	}
}

func TestAddClampsTiming(t *testing.T) {
	s := newTestStore(1)

	l, err := s.AddLabel(1, Label{Overlay: Overlay{Timing: types.Timing{Start: -2, End: 30}}}, 5)
	if err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	if l.Timing.Start != 0 || l.Timing.End != 5 {
		t.Fatalf("timing = %+v, want [0, 5]", l.Timing)
	}

	// Updates re-clamp as well.
	l.Timing = types.Timing{Start: 1, End: 99}
	if err := s.UpdateLabel(1, l, 5); err != nil {
		t.Fatalf("UpdateLabel: %v", err)
	}
	b, _ := s.Bag(1)
	if got := b.Labels[0].Timing; got.Start != 1 || got.End != 5 {
		t.Fatalf("updated timing = %+v, want [1, 5]", got)
	}
}

func TestDragConvertsAndClamps(t *testing.T) {
	s := newTestStore(1)
	if err := s.CapturePreviewSize(1, types.Dimensions{Width: 400, Height: 200}); err != nil {
		t.Fatalf("CapturePreviewSize: %v", err)
	}

	l, _ := s.AddLabel(1, Label{Overlay: Overlay{Position: types.Position{X: 50, Y: 50}}}, 5)

	// 40px right on a 400px surface is +10%.
	pos, err := s.Drag(1, KindLabel, l.ID, 40, -20, types.Dimensions{Width: 854, Height: 480})
	if err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if pos.X != 60 || pos.Y != 40 {
		t.Fatalf("position = (%.2f, %.2f), want (60, 40)", pos.X, pos.Y)
	}

	// Large deltas clamp to [0, 100] per axis.
	pos, err = s.Drag(1, KindLabel, l.ID, 100000, -100000, types.Dimensions{})
	if err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if pos.X != 100 || pos.Y != 0 {
		t.Fatalf("clamped position = (%.2f, %.2f), want (100, 0)", pos.X, pos.Y)
	}
}

func TestDragFallsBackToOutputResolution(t *testing.T) {
	s := newTestStore(1)
	l, _ := s.AddLabel(1, Label{Overlay: Overlay{Position: types.Position{X: 0, Y: 0}}}, 5)

	// No preview measured: the output resolution stands in, never a crash.
	pos, err := s.Drag(1, KindLabel, l.ID, 85.4, 48, types.Dimensions{Width: 854, Height: 480})
	if err != nil {
		t.Fatalf("Drag without measurement: %v", err)
	}
	if pos.X != 10 || pos.Y != 10 {
		t.Fatalf("fallback position = (%.2f, %.2f), want (10, 10)", pos.X, pos.Y)
	}
}

func TestCapturePreviewSizeIsWriteOnce(t *testing.T) {
	s := newTestStore(1)
	if err := s.CapturePreviewSize(1, types.Dimensions{Width: 400, Height: 225}); err != nil {
		t.Fatalf("first capture: %v", err)
	}
	if err := s.CapturePreviewSize(1, types.Dimensions{Width: 999, Height: 999}); err != nil {
		t.Fatalf("second capture: %v", err)
	}
	b, _ := s.Bag(1)
	if b.PreviewSize.Width != 400 {
		t.Fatalf("preview size overwritten: %+v", b.PreviewSize)
	}
}

func TestRemoveKeepsOtherZIndices(t *testing.T) {
	s := newTestStore(1)
	a, _ := s.AddLabel(1, Label{}, 5)
	bMid, _ := s.AddSticker(1, Sticker{}, 5)
	c, _ := s.AddLabel(1, Label{}, 5)

	if err := s.Remove(1, KindSticker, bMid.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	bag, _ := s.Bag(1)
	if len(bag.Stickers) != 0 {
		t.Fatalf("sticker not removed")
	}
	if bag.Labels[0].ZIndex != a.ZIndex || bag.Labels[1].ZIndex != c.ZIndex {
		t.Fatalf("z-indices renumbered after removal: %+v", bag.Labels)
	}

	if err := s.Remove(1, KindSticker, bMid.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second removal error = %v, want ErrNotFound", err)
	}
}

func TestReinitializeWipesBags(t *testing.T) {
	s := newTestStore(1, 2)
	if _, err := s.AddLabel(1, Label{}, 5); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}

	s.Reinitialize([]int{1, 2, 3})
	if s.Len() != 3 {
		t.Fatalf("bag count = %d, want 3", s.Len())
	}
	b, ok := s.Bag(1)
	if !ok || len(b.Labels) != 0 {
		t.Fatalf("bag 1 not rebuilt empty: %+v", b)
	}
	if b.Image != DefaultAdjustments() {
		t.Fatalf("bag 1 adjustments not reset: %+v", b.Image)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := newTestStore(1)
	l, _ := s.AddLabel(1, Label{Text: "keep"}, 5)

	snap := s.Snapshot()

	other := NewStore(nil)
	other.Restore(snap)
	b, ok := other.Bag(1)
	if !ok || len(b.Labels) != 1 || b.Labels[0].ID != l.ID {
		t.Fatalf("restored bag mismatch: %+v", b)
	}

	// Restore re-seeds the id generator past the restored ids.
	next, err := other.AddLabel(1, Label{Text: "new"}, 5)
	if err != nil {
		t.Fatalf("AddLabel after restore: %v", err)
	}
	if next.ID <= l.ID {
		t.Fatalf("post-restore id %d not past restored id %d", next.ID, l.ID)
	}
}

func TestSnapshotDoesNotAliasLiveBags(t *testing.T) {
	s := newTestStore(1)
	l, _ := s.AddLabel(1, Label{Text: "before"}, 5)

	snap := s.Snapshot()

	// In-place mutation of the live label must not show through.
	l.Text = "after"
	if err := s.UpdateLabel(1, l, 5); err != nil {
		t.Fatalf("UpdateLabel: %v", err)
	}
	if snap[1].Labels[0].Text != "before" {
		t.Fatalf("snapshot label mutated to %q", snap[1].Labels[0].Text)
	}

	// And the reverse: editing the snapshot leaves the store alone.
	snap[1].Labels[0].Text = "scribbled"
	b, _ := s.Bag(1)
	if b.Labels[0].Text != "after" {
		t.Fatalf("live bag affected by snapshot edit: %q", b.Labels[0].Text)
	}
}
