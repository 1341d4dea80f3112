// Package s2split implements the ECEF point-cloud splitter (§4.6):
// group a stream of Earth-Centered-Earth-Fixed point batches into
// per-S2-cell node files instead of an octree. It is grounded directly
// on original_source/src/read_write/s2.rs's S2Splitter -- the same
// radius-band domain check, the same level-20 cell id, the same bounded
// writer LRU with an explicit separate "already opened" set.
package s2split

import (
	"github.com/golang/geo/s2"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
)

// splitLevel is the S2 cell level points are grouped at; level 20
// cells are roughly 10m x 10m, matching the original's S2_SPLIT_LEVEL.
const splitLevel = 20

// Earth-radius domain bounds a valid ECEF point must fall within (see
// https://en.wikipedia.org/wiki/Earth_radius#Geophysical_extremes),
// matching the original's EARTH_RADIUS_MIN_M/EARTH_RADIUS_MAX_M.
const (
	earthRadiusMinM = 6_352_800.0
	earthRadiusMaxM = 6_384_400.0
)

// ecefEncoding is the fixed Encoding every S2 cell's node files use:
// Float32 ignores edge-length scaling entirely (see
// internal/encoding.EncodeComponent), so a cube anchored at the origin
// with a nominal positive edge carries raw ECEF coordinates losslessly
// (to float32 precision) without needing a real per-cell bounding cube.
var ecefEncoding = nodeio.Encoding{
	Position: encoding.Float32,
	Cube:     geom.Cube{Min: geom.Vec3{}, Edge: 1},
}

// checkECEFDomain rejects points whose distance from Earth's center
// falls outside the valid radius band, mirroring the original's
// InvalidInput error.
func checkECEFDomain(p geom.Vec3) error {
	radius := p.Length()
	if radius < earthRadiusMinM || radius > earthRadiusMaxM {
		return werrors.New(werrors.KindDomainError, "point is not a valid ECEF point: radius out of Earth bounds")
	}
	return nil
}

// cellIDFor returns the level-20 S2 cell id containing p, once p has
// passed checkECEFDomain.
func cellIDFor(p geom.Vec3) s2.CellID {
	point := s2.PointFromCoords(p.X, p.Y, p.Z)
	return s2.CellIDFromPoint(point).Parent(splitLevel)
}
