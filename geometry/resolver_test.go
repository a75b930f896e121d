package geometry

import (
	"math"
	"testing"

	"sceneforge/types"
)

func TestResolveOverlayGeometryWYSIWYG(t *testing.T) {
	cases := []struct {
		name      string
		natural   types.Dimensions
		preview   types.Dimensions
		output    types.Dimensions
		userScale float64
	}{
		{"square asset small preview", types.Dimensions{Width: 512, Height: 512}, types.Dimensions{Width: 320, Height: 180}, types.Dimensions{Width: 854, Height: 480}, 1.0},
		{"wide asset", types.Dimensions{Width: 1920, Height: 400}, types.Dimensions{Width: 640, Height: 360}, types.Dimensions{Width: 1280, Height: 720}, 1.0},
		{"scaled up", types.Dimensions{Width: 256, Height: 256}, types.Dimensions{Width: 427, Height: 240}, types.Dimensions{Width: 854, Height: 480}, 2.5},
		{"scaled down", types.Dimensions{Width: 100, Height: 300}, types.Dimensions{Width: 500, Height: 281}, types.Dimensions{Width: 1920, Height: 1080}, 0.4},
		{"preview larger than output", types.Dimensions{Width: 640, Height: 640}, types.Dimensions{Width: 1200, Height: 675}, types.Dimensions{Width: 854, Height: 480}, 1.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := c.preview
			g := ResolveOverlayGeometry(c.natural, &p, c.output, c.userScale)

			// The overlay's share of the frame width must be identical in
			// preview space and output space.
			previewRatio := g.PreviewSize.Width / c.preview.Width
			outputRatio := g.OutputSize.Width / c.output.Width
			if math.Abs(previewRatio-outputRatio) > 1e-9 {
				t.Fatalf("WYSIWYG violated: preview ratio %.9f, output ratio %.9f", previewRatio, outputRatio)
			}

			// Aspect ratio of the overlay itself must be preserved.
			wantAspect := c.natural.Width / c.natural.Height
			gotAspect := g.OutputSize.Width / g.OutputSize.Height
			if math.Abs(wantAspect-gotAspect) > 1e-9 {
				t.Fatalf("aspect not preserved: want %.6f got %.6f", wantAspect, gotAspect)
			}

			// OutputScale must reproduce OutputSize from the natural size.
			if got := c.natural.Width * g.OutputScale; math.Abs(got-g.OutputSize.Width) > 1e-9 {
				t.Fatalf("OutputScale inconsistent: %.6f * %.6f = %.6f, want %.6f",
					c.natural.Width, g.OutputScale, got, g.OutputSize.Width)
			}
		})
	}
}

func TestResolveOverlayGeometryBaseFootprint(t *testing.T) {
	natural := types.Dimensions{Width: 600, Height: 300}
	preview := types.Dimensions{Width: 400, Height: 225}
	output := types.Dimensions{Width: 854, Height: 480}

	g := ResolveOverlayGeometry(natural, &preview, output, 1.0)
	if math.Abs(g.PreviewSize.Width-120.0) > 1e-9 {
		t.Fatalf("base footprint width = %.3f, want 120", g.PreviewSize.Width)
	}

	g = ResolveOverlayGeometry(natural, &preview, output, 2.0)
	if math.Abs(g.PreviewSize.Width-240.0) > 1e-9 {
		t.Fatalf("scaled footprint width = %.3f, want 240", g.PreviewSize.Width)
	}
}

func TestResolveOverlayGeometryFallback(t *testing.T) {
	natural := types.Dimensions{Width: 512, Height: 512}
	output := types.Dimensions{Width: 854, Height: 480}

	// No preview measured: output stands in, so the preview→output ratio is 1
	// and both scales agree.
	g := ResolveOverlayGeometry(natural, nil, output, 1.0)
	if g.ScaleRatio != 1.0 {
		t.Fatalf("fallback ratio = %.6f, want 1", g.ScaleRatio)
	}
	if g.PreviewScale != g.OutputScale {
		t.Fatalf("fallback scales differ: preview %.6f output %.6f", g.PreviewScale, g.OutputScale)
	}

	// Zero-sized measurement is treated the same as missing.
	zero := types.Dimensions{}
	g = ResolveOverlayGeometry(natural, &zero, output, 1.0)
	if g.ScaleRatio != 1.0 {
		t.Fatalf("zero-measurement ratio = %.6f, want 1", g.ScaleRatio)
	}
}

func TestResolveOverlayGeometryContain(t *testing.T) {
	natural := types.Dimensions{Width: 400, Height: 400}
	// Preview is relatively taller than the output, so the Y ratio is the
	// limiting one.
	preview := types.Dimensions{Width: 427, Height: 480}
	output := types.Dimensions{Width: 854, Height: 480}

	g := ResolveOverlayGeometryContain(natural, &preview, output, 1.0)
	wantRatio := math.Min(output.Width/preview.Width, output.Height/preview.Height)
	if math.Abs(g.ScaleRatio-wantRatio) > 1e-9 {
		t.Fatalf("contain ratio = %.6f, want %.6f", g.ScaleRatio, wantRatio)
	}
}

func TestAbsolutePosition(t *testing.T) {
	out := types.Dimensions{Width: 854, Height: 480}
	x, y := AbsolutePosition(types.Position{X: 50, Y: 25, Unit: types.UnitPercentage}, out)
	if x != 427 || y != 120 {
		t.Fatalf("AbsolutePosition = (%.2f, %.2f), want (427, 120)", x, y)
	}
}

func TestDeltaToPercentAndClamp(t *testing.T) {
	surface := types.Dimensions{Width: 400, Height: 200}
	px, py := DeltaToPercent(40, -10, surface)
	if px != 10 || py != -5 {
		t.Fatalf("DeltaToPercent = (%.2f, %.2f), want (10, -5)", px, py)
	}

	if got := ClampPercent(-3); got != 0 {
		t.Fatalf("ClampPercent(-3) = %.2f, want 0", got)
	}
	if got := ClampPercent(101.5); got != 100 {
		t.Fatalf("ClampPercent(101.5) = %.2f, want 100", got)
	}
	if got := ClampPercent(42); got != 42 {
		t.Fatalf("ClampPercent(42) = %.2f, want 42", got)
	}
}
