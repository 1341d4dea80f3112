package xray

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
)

// quadrantOffset names where child index i (§4.7's quadrant numbering)
// lands in the parent image, in (xOffsetChildren, yOffsetChildren)
// units -- identical to the original's build_parent table. The x-axis
// is "up" in the octree, and image (0,0) is top-left, so child 1 (the
// -y,-z-ish "first" quadrant) lands top-left and y climbs downward from
// there, exactly matching the original's inline comment.
var quadrantOffset = map[int][2]int{
	1: {0, 0},
	0: {0, 1},
	3: {1, 0},
	2: {1, 1},
}

// emptyParentTileSize is the child tile size BuildParent assumes when
// every quadrant is nil, since none of the 4 tiles is there to read a
// real size from. §8 asks for "a white 2N×2N image" in this case; N
// itself isn't derivable from an empty input (the original panics
// here), so this module picks a fixed fallback rather than erroring,
// on the assumption that a pyramid level with zero populated quadrants
// is never actually requested by a real build.
const emptyParentTileSize = 256

// BuildParent composites up to 4 same-size square child tiles into one
// tile twice their size, leaving any nil/missing quadrant white. Ported
// from the original's build_parent.
func BuildParent(children [4]*image.RGBA) (*image.RGBA, error) {
	childSize := -1
	for _, c := range children {
		if c == nil {
			continue
		}
		b := c.Bounds()
		if b.Dx() != b.Dy() {
			return nil, werrors.New(werrors.KindMalformedData, "build_parent: child tile must be square")
		}
		if childSize == -1 {
			childSize = b.Dx()
		} else if childSize != b.Dx() {
			return nil, werrors.New(werrors.KindMalformedData, "build_parent: all child tiles must share one size")
		}
	}
	if childSize == -1 {
		childSize = emptyParentTileSize
	}

	parent := image.NewRGBA(image.Rect(0, 0, childSize*2, childSize*2))
	draw.Draw(parent, parent.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for id, offset := range quadrantOffset {
		child := children[id]
		if child == nil {
			continue
		}
		dstOrigin := image.Pt(offset[0]*childSize, offset[1]*childSize)
		dstRect := image.Rectangle{Min: dstOrigin, Max: dstOrigin.Add(image.Pt(childSize, childSize))}
		draw.Draw(parent, dstRect, child, image.Point{}, draw.Src)
	}
	return parent, nil
}
