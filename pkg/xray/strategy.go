package xray

import "github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"

// white is the background color for pixel columns no point ever landed
// in, matching the original's WHITE.to_u8() fallback.
var white = pointdata.Color{R: 255, G: 255, B: 255, A: 255}

// ColoringStrategy accumulates discretized points per pixel column and
// resolves a final color per pixel once accumulation is done (§4.7).
// The closed set of four implementations below mirrors the four
// concrete structs in the original rather than exposing this as a
// plugin point -- new strategies are a code change, not configuration,
// matching §9's "closed variant set" design note for Culler.
type ColoringStrategy interface {
	// ProcessDiscretizedPoint folds one point, already discretized to
	// pixel column (x, y) and z-bucket z, into this strategy's state.
	ProcessDiscretizedPoint(p pointdata.Point, x, y, z uint32)

	// GetPixelColor resolves pixel (x, y)'s final color, or white if no
	// point ever landed in that column.
	GetPixelColor(x, y uint32) pointdata.Color
}

type columnKey struct{ x, y uint32 }
