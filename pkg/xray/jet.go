// Package xray implements the orthographic rasterizer (§4.7): four
// coloring strategies, a discretizer that buckets points into pixel
// columns and z-slices, and a tile-pyramid builder. Ported directly
// from original_source/xray/src/generation.rs, which this module has
// no direct teacher analogue for -- the Jet colormap breakpoints,
// z-bucket count, and coloring formulas all match that file exactly.
package xray

import "github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"

// numZBuckets subdivides the query box's z-extent for the XRay
// strategy's saturation count; matches the original's NUM_Z_BUCKETS.
const numZBuckets = 1024.0

// jet implements matlab's Jet colormap for a [0,1] input, the same
// piecewise-linear construction as the original's Jet struct.
type jet struct{}

func (jet) base(val float64) float64 {
	switch {
	case val <= -0.75:
		return 0
	case val <= -0.25:
		return interpolate(val, 0.0, -0.75, 1.0, -0.25)
	case val <= 0.25:
		return 1.0
	case val <= 0.75:
		return interpolate(val, 1.0, 0.25, 0.0, 0.75)
	default:
		return 0.0
	}
}

func interpolate(val, y0, x0, y1, x1 float64) float64 {
	return (val-x0)*(y1-y0)/(x1-x0) + y0
}

func (j jet) red(gray float64) float64   { return j.base(gray - 0.5) }
func (j jet) green(gray float64) float64 { return j.base(gray) }
func (j jet) blue(gray float64) float64  { return j.base(gray + 0.5) }

// forValue maps val in [0,1] to an RGB color via the Jet colormap,
// rescaling it to the [-1,1] gray range the channel functions take.
func (j jet) forValue(val float64) pointdata.Color {
	if val < 0 {
		val = 0
	}
	if val > 1 {
		val = 1
	}
	gray := 2*val - 1
	return pointdata.Color{
		R: to8(j.red(gray)),
		G: to8(j.green(gray)),
		B: to8(j.blue(gray)),
		A: 255,
	}
}

func to8(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255.0 + 0.5)
}
