package builder

import (
	"io"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// writeNodeBatch appends batch to nodeID's attribute files through wp,
// picking the position encoding from cube's edge length and the build
// resolution the same way Meta.PositionEncodingFor does for readers, so
// a node's own meta entry always matches what was actually written.
func writeNodeBatch(wp *writerPool, nodeID octree.NodeId, cube geom.Cube, resolution float64, batch *pointdata.PointsBatch) error {
	enc := nodeio.Encoding{Position: encoding.ChooseEncoding(cube.Edge, resolution), Cube: cube}

	position, err := wp.Writer(nodeID.String(), "position")
	if err != nil {
		return err
	}

	attrFiles := make(map[string]io.Writer, len(batch.Attributes))
	for name := range batch.Attributes {
		f, err := wp.Writer(nodeID.String(), name)
		if err != nil {
			return err
		}
		attrFiles[name] = f
	}

	return nodeio.NewNodeWriter(enc, position, attrFiles).Write(batch)
}
