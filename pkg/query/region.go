package query

import (
	"context"
	"io"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
	"github.com/googlecartographer/point-cloud-viewer/pkg/provider"
)

// AllPointsCuller returns the culler for the all_points() region query.
func AllPointsCuller() geom.Culler { return geom.AnyCuller() }

// onPointFunc is called once per candidate point; returning false stops
// iteration immediately (the "stop" half of §4.4's callback semantics).
type onPointFunc func(p pointdata.Point) bool

// iteratePoints drives the region query (§4.4): the R-tree
// (pkg/octree.NodeIndex.IntersectingCubes) first narrows every
// populated node down to the ones whose bounding cube overlaps
// culler's conservative bound, then each candidate is classified
// exactly against culler -- Outside drops it, Inside emits every point
// with no per-point test, Crosses reads the node and tests each point
// individually. requiredAttrs names the extra attribute streams to
// fetch alongside position (conventionally "color", "intensity").
//
// Only leaf nodes (no populated children) contribute points: phase 2
// of the builder also writes a subsampled copy of every descendant's
// points up into its ancestors for LOD rendering (pkg/builder's
// subsampleParents), so an internal node's own points are duplicates
// of points a leaf below it will already emit. Counting them here
// would break §8's "sum over leaves ≤ total points ingested" invariant.
func iteratePoints(ctx context.Context, tree *octree.Octree, prov provider.DataProvider, culler geom.Culler, requiredAttrs []string, onPoint onPointFunc) error {
	candidates := tree.Index.IntersectingCubes(culler.BoundingAabb(tree.Meta.RootCube.Aabb()))
	for _, id := range candidates {
		if err := ctx.Err(); err != nil {
			return werrors.Cancelled
		}
		if len(tree.Children(id)) > 0 {
			continue
		}

		cube := id.BoundingCube(tree.Meta.RootCube)
		box := cube.Aabb()
		relation := culler.ClassifyAabb(box)
		if relation == geom.Outside {
			continue
		}

		batch, err := loadNode(ctx, tree, prov, id, cube, requiredAttrs)
		if err != nil {
			return err
		}

		for i := 0; i < batch.NumPoints(); i++ {
			p := batch.Point(i)
			if relation == geom.Crosses && !culler.Contains(p.Position) {
				continue
			}
			if !onPoint(p) {
				return werrors.Cancelled
			}
		}
	}
	return nil
}

func loadNode(ctx context.Context, tree *octree.Octree, prov provider.DataProvider, id octree.NodeId, cube geom.Cube, requiredAttrs []string) (*pointdata.PointsBatch, error) {
	names := append([]string{"position"}, requiredAttrs...)
	streams, err := prov.Data(ctx, id, names)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, s := range streams {
			_ = s.Close()
		}
	}()

	posStream, ok := streams["position"]
	if !ok {
		return nil, werrors.New(werrors.KindMalformedData, "node "+id.String()+" has no position stream")
	}

	byName := make(map[string]nodeio.AttributeSpec, len(tree.Meta.Attributes))
	for _, spec := range tree.Meta.Attributes {
		byName[spec.Name] = spec
	}

	attrReaders := make(map[string]io.Reader, len(requiredAttrs))
	specs := make(map[string]nodeio.AttributeSpec, len(requiredAttrs))
	for _, name := range requiredAttrs {
		stream, ok := streams[name]
		if !ok {
			continue
		}
		spec, ok := byName[name]
		if !ok {
			return nil, werrors.New(werrors.KindUnknownAttribute, "no spec for attribute "+name)
		}
		attrReaders[name] = stream
		specs[name] = spec
	}

	enc := nodeio.Encoding{Position: tree.Meta.PositionEncodingFor(cube), Cube: cube}
	reader := nodeio.NewNodeReader(enc, posStream, attrReaders, specs)
	return reader.ReadAll()
}
