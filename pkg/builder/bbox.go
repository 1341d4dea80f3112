package builder

import (
	"io"
	"math"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/ingest"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

// computeRootCube performs phase 1's first pass: stream every point
// once through it to find the tight bounding box, then return the
// smallest cube enclosing it (the original's octree_from_file does the
// same two-scan shape in src/octree/build_octree.rs -- min/max scan,
// then build from a single root cube).
func computeRootCube(it ingest.PointIterator) (geom.Cube, error) {
	min := geom.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := geom.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	seen := false

	for {
		p, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return geom.Cube{}, err
		}
		seen = true
		min.X, max.X = math.Min(min.X, p.Position.X), math.Max(max.X, p.Position.X)
		min.Y, max.Y = math.Min(min.Y, p.Position.Y), math.Max(max.Y, p.Position.Y)
		min.Z, max.Z = math.Min(min.Z, p.Position.Z), math.Max(max.Z, p.Position.Z)
	}
	if !seen {
		return geom.Cube{Min: geom.Vec3{}, Edge: 1}, nil
	}

	edge := math.Max(max.X-min.X, math.Max(max.Y-min.Y, max.Z-min.Z))
	if edge <= 0 {
		edge = 1
	}
	return geom.Cube{Min: min, Edge: edge}, nil
}

// leafEncodingBits is the bit budget subdivision aims to fit a leaf's
// encoding into: Uint8, the tightest of internal/encoding's three
// choices. Subdividing further than that buys nothing -- a leaf whose
// cube already fits resolution in 8 bits doesn't need to be smaller.
const leafEncodingBits = 8

// maxDepthForResolution bounds tree depth by how many halvings of the
// root cube it takes to bring its encoding down to leafEncodingBits,
// matching §4.1's rationale ("older levels have larger cubes and
// tolerate wider quantization; leaves get finer steps"): each halving
// of a cube's edge removes exactly one bit from
// ceil(log2(edge/resolution)) (internal/encoding.ChooseEncoding), so a
// root cube that already resolves to Uint8 needs no subdivision at
// all -- only once the root needs more than 8 bits does depth grow,
// one level per bit over budget.
func maxDepthForResolution(rootEdge, resolution float64) int {
	if resolution <= 0 || rootEdge <= resolution {
		return 0
	}
	rootBits := int(math.Ceil(math.Log2(rootEdge / resolution)))
	depth := rootBits - leafEncodingBits
	if depth < 0 {
		depth = 0
	}
	return depth
}

// leafNodeID walks p down from rootCube through exactly depth child
// selections, returning the deepest node id containing it and that
// node's bounding cube.
func leafNodeID(rootCube geom.Cube, depth int, p geom.Vec3) (octree.NodeId, geom.Cube) {
	id := octree.Root()
	cube := rootCube
	for i := 0; i < depth; i++ {
		child := cube.ChildIndexContaining(p)
		id = id.Child(octree.ChildIndex(child))
		cube = cube.ChildCube(child)
	}
	return id, cube
}
