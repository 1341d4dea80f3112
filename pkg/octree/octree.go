package octree

// Octree is the immutable, shareable handle the query engine and
// builder both hold: metadata plus its spatial index. Multiple queries
// read it concurrently without locking beyond what NodeIndex already
// provides (§5's "read-mostly, concurrency-safe" concurrency model).
type Octree struct {
	Meta  *Meta
	Index *NodeIndex
}

// NewOctree builds an Octree's in-memory index from its metadata.
func NewOctree(meta *Meta) *Octree {
	return &Octree{Meta: meta, Index: NewNodeIndex(meta)}
}

// Children returns id's child NodeIds that are actually populated,
// preserving octant order (§9's "only descend into populated children").
func (o *Octree) Children(id NodeId) []NodeId {
	children := make([]NodeId, 0, 8)
	for i := ChildIndex(0); i < 8; i++ {
		child := id.Child(i)
		if o.Index.Has(child) {
			children = append(children, child)
		}
	}
	return children
}
