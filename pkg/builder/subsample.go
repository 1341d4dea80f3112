package builder

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/encoding"
	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// subsampleStride retains every 8th point when building a parent from
// its children, a deterministic stand-in for the original's "pick
// roughly 1 of 8 points per parent" policy (§4.5) that needs no random
// source to stay reproducible across runs.
const subsampleStride = 8

// subsampleParents is phase 2 (§4.5): walk bottom-up from the deepest
// populated level to the root, building each parent from a stride
// sample of its children's already-written points. It runs serially --
// unlike phase 1's per-point volume, the node count shrinks by roughly
// 8x per level, so there's little to parallelize and the single
// writerPool stays simple.
func subsampleParents(outputDir string, rootCube geom.Cube, resolution float64, leafCounts map[octree.NodeId]uint64, maxOpen int) (map[octree.NodeId]uint64, error) {
	allCounts := make(map[octree.NodeId]uint64, len(leafCounts)*2)
	for id, n := range leafCounts {
		allCounts[id] = n
	}
	if len(leafCounts) == 0 {
		return allCounts, nil
	}

	wp := newWriterPool(outputDir, maxOpen)
	defer wp.CloseAll()

	level := 0
	for id := range leafCounts {
		level = id.Level
		break
	}
	currentLevel := leafCounts

	for ; level > 0; level-- {
		if len(currentLevel) == 0 {
			break
		}
		sigolo.Debugf("subsampleParents: level %d has %d nodes", level, len(currentLevel))
		childrenByParent := make(map[octree.NodeId][]octree.NodeId)
		for id := range currentLevel {
			parent := id.Parent()
			childrenByParent[parent] = append(childrenByParent[parent], id)
		}

		nextLevel := make(map[octree.NodeId]uint64, len(childrenByParent))
		for parent, children := range childrenByParent {
			parentCube := parent.BoundingCube(rootCube)
			builder := pointdata.NewBatchBuilder()
			for _, childID := range children {
				childCube := childID.BoundingCube(rootCube)
				batch, err := readNodeBatch(outputDir, childID, childCube, resolution)
				if err != nil {
					return nil, err
				}
				for i := 0; i < batch.NumPoints(); i += subsampleStride {
					builder.Push(batch.Point(i))
				}
			}
			if builder.Len() == 0 {
				continue
			}
			out := builder.Build()
			if err := writeNodeBatch(wp, parent, parentCube, resolution, out); err != nil {
				return nil, err
			}
			n := uint64(out.NumPoints())
			nextLevel[parent] = n
			allCounts[parent] = n
		}
		currentLevel = nextLevel
	}
	return allCounts, nil
}

// readNodeBatch reads a node's full point set back from disk for
// resampling, opening "position" plus whichever of the two attribute
// files this pipeline ever writes ("color", "intensity") happen to
// exist for that node.
func readNodeBatch(dir string, id octree.NodeId, cube geom.Cube, resolution float64) (*pointdata.PointsBatch, error) {
	enc := nodeio.Encoding{Position: encoding.ChooseEncoding(cube.Edge, resolution), Cube: cube}

	posFile, err := os.Open(filepath.Join(dir, nodeio.AttributeFileName(id.String(), "position")))
	if err != nil {
		return nil, werrors.Wrap(werrors.KindIo, err, "open position for subsample")
	}
	defer posFile.Close()

	attrs := map[string]io.Reader{}
	specs := map[string]nodeio.AttributeSpec{}
	for _, spec := range knownAttributes {
		f, err := os.Open(filepath.Join(dir, nodeio.AttributeFileName(id.String(), spec.Name)))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, werrors.Wrap(werrors.KindIo, err, "open attribute for subsample")
		}
		defer f.Close()
		attrs[spec.Name] = f
		specs[spec.Name] = spec
	}

	return nodeio.NewNodeReader(enc, posFile, attrs, specs).ReadAll()
}
