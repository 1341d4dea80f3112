package builder

import (
	"os"
	"path/filepath"

	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/internal/wire"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

const metaFileName = "meta.pb"

// knownAttributes lists every attribute this pipeline can ever write.
// Meta carries both regardless of whether a given build actually
// populated color or intensity; a reader skips any stream a node
// didn't write (see nodeio.NodeReader.ReadBatch's per-spec lookup).
var knownAttributes = []nodeio.AttributeSpec{
	{Name: "color", DataType: pointdata.U8Vec3},
	{Name: "intensity", DataType: pointdata.F32},
}

// writeMeta assembles the final Meta from the merged node counts and
// writes it to outputDir/meta.pb as a length-prefixed wire record
// (phase 3, §4.5).
func writeMeta(outputDir string, rootCube geom.Cube, resolution float64, attrs []nodeio.AttributeSpec, nodes map[octree.NodeId]uint64) (*octree.Meta, error) {
	meta := &octree.Meta{
		Version:    octree.MetaVersion,
		RootCube:   rootCube,
		Resolution: resolution,
		Attributes: attrs,
		Nodes:      nodes,
		RootPath:   outputDir,
	}

	payload := wire.EncodeMeta(meta)
	f, err := os.Create(filepath.Join(outputDir, metaFileName))
	if err != nil {
		return nil, werrors.Wrap(werrors.KindIo, err, "create meta.pb")
	}
	defer f.Close()

	if err := wire.WriteLengthPrefixed(f, payload); err != nil {
		return nil, err
	}
	sigolo.Infof("writeMeta: wrote %s with %d nodes", filepath.Join(outputDir, metaFileName), len(nodes))
	return meta, nil
}
