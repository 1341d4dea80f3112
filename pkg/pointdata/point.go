// Package pointdata defines the point and column types shared by the
// node codec, the query engine and the rasterizer: a plain value-type
// data model, in the style of the S-57 parser's ChartEntry/Bounds,
// translated from the original's PointData/LayerData enum (§3).
package pointdata

import "github.com/googlecartographer/point-cloud-viewer/internal/geom"

// Color is an RGBA color; Intensity-only nodes never populate it, and
// 3-channel on-disk colors decode with A left at 0 (see DESIGN.md's
// "colors" decision: nodeio reads exactly what's on disk).
type Color struct {
	R, G, B, A uint8
}

// Point is a single point: position plus optional color and intensity.
// HasColor/HasIntensity record whether this point's source batch
// actually carried those attributes, since both are optional per node.
// ColorHasAlpha further distinguishes a genuine U8Vec4 read (A is
// meaningful) from a U8Vec3 one (A is always 0 filler), so a builder
// re-flushing this point doesn't have to guess which column width to
// use.
type Point struct {
	Position      geom.Vec3
	Color         Color
	HasColor      bool
	ColorHasAlpha bool
	Intensity     float32
	HasIntensity  bool
}
