// Package geometry translates overlay geometry between the on-screen preview
// surface and the final output resolution. All functions are pure.
package geometry

import (
	"math"

	"sceneforge/config"
	"sceneforge/types"
)

// Geometry is the resolved sizing for one overlay. OutputScale is the single
// multiplier a renderer applies to the overlay's natural pixel size to
// reproduce, in output-pixel space, exactly what the user saw in the preview.
type Geometry struct {
	PreviewScale float64          `json:"previewScale"`
	OutputScale  float64          `json:"outputScale"`
	ScaleRatio   float64          `json:"scaleRatio"`
	PreviewSize  types.Dimensions `json:"previewDimensions"`
	OutputSize   types.Dimensions `json:"outputDimensions"`
}

// ResolveOverlayGeometry computes preview and output scaling for an overlay.
//
// The overlay occupies a fixed base footprint along its width axis
// (config.BaseOverlayFootprint preview pixels at userScale 1.0), aspect
// preserved. The preview→output ratio is taken along the width axis. When the
// preview surface has not been measured yet, the output resolution stands in
// for it and the ratio collapses to 1.
func ResolveOverlayGeometry(natural types.Dimensions, preview *types.Dimensions, output types.Dimensions, userScale float64) Geometry {
	return resolve(natural, preview, output, userScale, false)
}

// ResolveOverlayGeometryContain is the aspect-preserving "contain" variant:
// the preview→output ratio is the min of the X and Y ratios, so the overlay
// never overflows the output frame on either axis.
func ResolveOverlayGeometryContain(natural types.Dimensions, preview *types.Dimensions, output types.Dimensions, userScale float64) Geometry {
	return resolve(natural, preview, output, userScale, true)
}

func resolve(natural types.Dimensions, preview *types.Dimensions, output types.Dimensions, userScale float64, contain bool) Geometry {
	if userScale <= 0 {
		userScale = 1.0
	}
	surface := previewOrFallback(preview, output)

	previewScale := 1.0
	if natural.Width > 0 {
		previewScale = config.BaseOverlayFootprint * userScale / natural.Width
	}

	ratio := 1.0
	if surface.Width > 0 {
		ratio = output.Width / surface.Width
	}
	if contain && surface.Height > 0 {
		ratio = math.Min(ratio, output.Height/surface.Height)
	}

	outputScale := previewScale * ratio

	return Geometry{
		PreviewScale: previewScale,
		OutputScale:  outputScale,
		ScaleRatio:   ratio,
		PreviewSize: types.Dimensions{
			Width:  natural.Width * previewScale,
			Height: natural.Height * previewScale,
		},
		OutputSize: types.Dimensions{
			Width:  natural.Width * outputScale,
			Height: natural.Height * outputScale,
		},
	}
}

// AbsolutePosition converts a percentage position to output pixel
// coordinates.
func AbsolutePosition(pos types.Position, output types.Dimensions) (x, y float64) {
	return pos.X / 100.0 * output.Width, pos.Y / 100.0 * output.Height
}

// DeltaToPercent converts a pointer drag delta in preview pixels to a
// percentage delta of the given surface.
func DeltaToPercent(dx, dy float64, surface types.Dimensions) (px, py float64) {
	if surface.Width > 0 {
		px = dx / surface.Width * 100.0
	}
	if surface.Height > 0 {
		py = dy / surface.Height * 100.0
	}
	return px, py
}

// ClampPercent limits a percentage coordinate to [0, 100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// previewOrFallback substitutes the output resolution when the preview
// surface has not been measured yet.
func previewOrFallback(preview *types.Dimensions, output types.Dimensions) types.Dimensions {
	if preview == nil || preview.Width <= 0 || preview.Height <= 0 {
		return output
	}
	return *preview
}
