package transitions

import "testing"

func TestInitializeLengths(t *testing.T) {
	cases := []struct {
		name       string
		sceneCount int
		wantLen    int
	}{
		{"empty project", 0, 0},
		{"single scene", 1, 0},
		{"two scenes", 2, 1},
		{"five scenes", 5, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Initialize(c.sceneCount)
			if len(got) != c.wantLen {
				t.Fatalf("len = %d, want %d", len(got), c.wantLen)
			}
			for i, tr := range got {
				if tr.ID != i || tr.FromScene != i+1 || tr.ToScene != i+2 {
					t.Fatalf("entry %d has pair (%d→%d), id %d", i, tr.FromScene, tr.ToScene, tr.ID)
				}
				if tr.Type != None || tr.Duration != 1.0 {
					t.Fatalf("entry %d default = %q/%.1fs, want none/1.0s", i, tr.Type, tr.Duration)
				}
			}
		})
	}
}

func TestUpdateMergesFields(t *testing.T) {
	list := Initialize(3)

	z := Zoom
	d := 2.0
	if err := Update(list, 1, Patch{Type: &z, Duration: &d}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if list[1].Type != Zoom || list[1].Duration != 2.0 {
		t.Fatalf("entry 1 = %+v", list[1])
	}
	// Neighbor untouched.
	if list[0].Type != None {
		t.Fatalf("entry 0 mutated: %+v", list[0])
	}

	// Partial patch keeps the other field.
	f := Fade
	if err := Update(list, 1, Patch{Type: &f}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if list[1].Type != Fade || list[1].Duration != 2.0 {
		t.Fatalf("partial patch result = %+v", list[1])
	}
}

func TestUpdateRejectsBadInput(t *testing.T) {
	list := Initialize(2)

	if err := Update(list, 5, Patch{}); err == nil {
		t.Fatal("expected out-of-range error")
	}

	bad := Type("starwipe")
	if err := Update(list, 0, Patch{Type: &bad}); err == nil {
		t.Fatal("expected unknown-type error")
	}

	tooLong := 9.0
	if err := Update(list, 0, Patch{Duration: &tooLong}); err == nil {
		t.Fatal("expected duration-bounds error")
	}
}

func TestResolveBoundaryPrecedence(t *testing.T) {
	// Global fade/1s; pair (2,3) individually zoom/2s; pair (1,2) left at none.
	list := Initialize(3)
	z := Zoom
	d := 2.0
	if err := Update(list, 1, Patch{Type: &z, Duration: &d}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Boundary 1→2 uses the global fallback.
	got := ResolveBoundary(0, list, Fade, 1.0)
	if got == nil || got.Type != Fade || got.Duration != 1.0 {
		t.Fatalf("boundary 1→2 = %+v, want fade/1s", got)
	}
	if got.FromScene != 1 || got.ToScene != 2 {
		t.Fatalf("boundary 1→2 pair = (%d→%d)", got.FromScene, got.ToScene)
	}

	// Boundary 2→3 uses the individual setting.
	got = ResolveBoundary(1, list, Fade, 1.0)
	if got == nil || got.Type != Zoom || got.Duration != 2.0 {
		t.Fatalf("boundary 2→3 = %+v, want zoom/2s", got)
	}

	// No individual entry and global none: no transition.
	if got := ResolveBoundary(0, Initialize(3), None, 1.0); got != nil {
		t.Fatalf("boundary with everything none = %+v, want nil", got)
	}
}

func TestCatalogIsFixed(t *testing.T) {
	c := Catalog()
	if len(c) != 11 {
		t.Fatalf("catalog size = %d, want 11", len(c))
	}
	if !IsValid(SmoothLeft) || IsValid(Type("spiral")) {
		t.Fatal("IsValid misclassifies types")
	}

	// Callers get a copy, not the backing array.
	c[0].Description = "mutated"
	if Catalog()[0].Description == "mutated" {
		t.Fatal("Catalog exposes internal state")
	}
}
