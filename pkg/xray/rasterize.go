package xray

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
	"github.com/googlecartographer/point-cloud-viewer/pkg/provider"
	"github.com/googlecartographer/point-cloud-viewer/pkg/query"
)

// RasterizeOptions configures one tile's pixel dimensions.
type RasterizeOptions struct {
	Width, Height int
}

// RasterizeToImage streams every point in bbox through strategy,
// discretizing each into a pixel column (x, y) and a z-bucket exactly
// as the original's xray_from_points does -- images originate top-left
// while the octree's x/y plane originates bottom-left, so y is
// inverted here, matching that file's comment on the same line. It
// reports seenAny = false if bbox contained no points, the original's
// "nothing to render" signal.
func RasterizeToImage(tree *octree.Octree, prov provider.DataProvider, bbox geom.Aabb, opts RasterizeOptions, strategy ColoringStrategy) (img *image.RGBA, seenAny bool, err error) {
	dim := bbox.Max.Sub(bbox.Min)
	if dim.X <= 0 || dim.Y <= 0 || dim.Z <= 0 {
		return nil, false, werrors.New(werrors.KindDomainError, "rasterize: bounding box must have positive extent on every axis")
	}

	requiredAttrs := requiredAttributesFor(strategy)
	it := query.PointsInBox(tree, prov, bbox, nil, requiredAttrs, query.DefaultEngineOptions())
	walkErr := it.TryForEachBatch(context.Background(), func(batch *pointdata.PointsBatch) bool {
		for i := 0; i < batch.NumPoints(); i++ {
			p := batch.Point(i)
			seenAny = true
			x := clampIndex(uint32(((p.Position.X-bbox.Min.X)/dim.X)*float64(opts.Width)), uint32(opts.Width))
			y := clampIndex(uint32((1.0-(p.Position.Y-bbox.Min.Y)/dim.Y)*float64(opts.Height)), uint32(opts.Height))
			z := uint32(((p.Position.Z - bbox.Min.Z) / dim.Z) * numZBuckets)
			strategy.ProcessDiscretizedPoint(p, x, y, z)
		}
		return true
	})
	if walkErr != nil {
		return nil, false, walkErr
	}
	if !seenAny {
		sigolo.Debugf("rasterize: no points in box %+v, skipping tile", bbox)
		return nil, false, nil
	}

	img = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for x := 0; x < opts.Width; x++ {
		for y := 0; y < opts.Height; y++ {
			c := strategy.GetPixelColor(uint32(x), uint32(y))
			img.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img, true, nil
}

func clampIndex(v, limit uint32) uint32 {
	if limit == 0 {
		return 0
	}
	if v >= limit {
		return limit - 1
	}
	return v
}

func requiredAttributesFor(strategy ColoringStrategy) []string {
	switch strategy.(type) {
	case *IntensityStrategy:
		return []string{"intensity"}
	case *PointColorStrategy:
		return []string{"color"}
	default:
		return nil
	}
}

// WritePNG writes img as a PNG, the Go stand-in for the original's
// image.save(png_file).
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
