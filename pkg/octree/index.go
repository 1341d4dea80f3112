package octree

import (
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
)

// nodeEntry is the Spatial rtreego indexes: a populated node's id, cube
// and point count.
type nodeEntry struct {
	Id        NodeId
	Cube      geom.Cube
	NumPoints uint64
}

// Bounds implements rtreego.Spatial by converting the node's bounding
// cube into an R-tree rectangle, the 3D analogue of ChartEntry.Bounds
// in pkg/s57/index.go.
func (e nodeEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.Cube.Min.X, e.Cube.Min.Y, e.Cube.Min.Z}
	lengths := []float64{e.Cube.Edge, e.Cube.Edge, e.Cube.Edge}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NodeIndex is an R-tree over every populated node's bounding cube. It
// answers "which populated nodes might overlap this region" in
// O(log N); it is always a pre-filter, never the source of truth for
// which points a query emits -- pkg/query's exact per-node
// classification of each candidate remains authoritative (§4.4).
type NodeIndex struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	nodes map[NodeId]nodeEntry
}

// NewNodeIndex builds an index over rootCube-relative nodes from a
// meta's populated-node map.
func NewNodeIndex(meta *Meta) *NodeIndex {
	tree := rtreego.NewTree(3, 25, 50)
	idx := &NodeIndex{tree: tree, nodes: make(map[NodeId]nodeEntry, len(meta.Nodes))}
	for id, count := range meta.Nodes {
		entry := nodeEntry{Id: id, Cube: id.BoundingCube(meta.RootCube), NumPoints: count}
		idx.nodes[id] = entry
		tree.Insert(entry)
	}
	return idx
}

// Insert adds a populated node to an already-built index.
func (idx *NodeIndex) Insert(id NodeId, cube geom.Cube, numPoints uint64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	entry := nodeEntry{Id: id, Cube: cube, NumPoints: numPoints}
	idx.nodes[id] = entry
	idx.tree.Insert(entry)
}

// IntersectingCubes returns every populated node whose bounding cube
// overlaps box, sorted by (level, index_within_level): breadth-wise,
// with no ordering by distance from a camera.
func (idx *NodeIndex) IntersectingCubes(box geom.Aabb) []NodeId {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	point := rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z}
	lengths := []float64{box.Max.X - box.Min.X, box.Max.Y - box.Min.Y, box.Max.Z - box.Min.Z}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}

	spatials := idx.tree.SearchIntersect(rect)
	ids := make([]NodeId, 0, len(spatials))
	for _, s := range spatials {
		ids = append(ids, s.(nodeEntry).Id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Level != ids[j].Level {
			return ids[i].Level < ids[j].Level
		}
		return ids[i].IndexWithinLevel < ids[j].IndexWithinLevel
	})
	return ids
}

// NumPoints returns the indexed point count for a node, or 0 if it
// isn't populated.
func (idx *NodeIndex) NumPoints(id NodeId) uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.nodes[id].NumPoints
}

// Has reports whether id is a populated node.
func (idx *NodeIndex) Has(id NodeId) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.nodes[id]
	return ok
}

// Count returns the number of populated nodes.
func (idx *NodeIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.nodes)
}
