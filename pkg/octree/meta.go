package octree

import (
	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
)

// MetaVersion is this module's on-disk metadata format version.
const MetaVersion = 1

// Meta is the octree's on-disk metadata (§3's OctreeMeta): version,
// bounding box, build resolution, attribute list, and the set of
// populated nodes with their final point counts.
type Meta struct {
	Version    int
	RootCube   geom.Cube
	Resolution float64
	Attributes []nodeio.AttributeSpec
	Nodes      map[NodeId]uint64 // node id -> num_points

	// RootPath records where this meta's node files live on disk. A
	// remote provider reconstructing a Meta purely from an RPC reply
	// (no local directory) leaves this as DummyRootPath -- see
	// pkg/provider's RemoteProvider doc comment and DESIGN.md decision 2.
	RootPath string
}

// DummyRootPath marks a Meta whose RootPath was never backed by a real
// directory (reconstructed from a remote GetMeta reply). Nothing in
// this module reads from it; it exists only so the field isn't
// silently empty-string, matching the original's same hazard in
// point_viewer_grpc/src/lib.rs.
const DummyRootPath = "<dummy-remote-root>"

// PositionEncodingFor returns the per-node position encoding this meta
// implies for a node at the given cube, derived from Resolution the way
// Phase 1 of the builder derives it for every node it writes.
func (m *Meta) PositionEncodingFor(cube geom.Cube) encoding.PositionEncoding {
	return encoding.ChooseEncoding(cube.Edge, m.Resolution)
}

// NumPointsTotal sums every node's point count.
func (m *Meta) NumPointsTotal() uint64 {
	var total uint64
	for _, n := range m.Nodes {
		total += n
	}
	return total
}
