package xray

import (
	"math"

	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// XRayStrategy colors each pixel by how many distinct z-buckets have a
// point, the more buckets touched the darker the pixel -- the
// "x-ray" look. Ported from XRayColoringStrategy.
type XRayStrategy struct {
	zBuckets      map[columnKey]map[uint32]struct{}
	maxSaturation float64
}

// NewXRayStrategy returns an XRayStrategy ready to accumulate points.
func NewXRayStrategy() *XRayStrategy {
	return &XRayStrategy{
		zBuckets:      make(map[columnKey]map[uint32]struct{}),
		maxSaturation: math.Log(numZBuckets),
	}
}

func (s *XRayStrategy) ProcessDiscretizedPoint(_ pointdata.Point, x, y, z uint32) {
	key := columnKey{x, y}
	set, ok := s.zBuckets[key]
	if !ok {
		set = make(map[uint32]struct{})
		s.zBuckets[key] = set
	}
	set[z] = struct{}{}
}

func (s *XRayStrategy) GetPixelColor(x, y uint32) pointdata.Color {
	set, ok := s.zBuckets[columnKey{x, y}]
	if !ok {
		return white
	}
	saturation := math.Log(float64(len(set))) / s.maxSaturation
	value := to8((1 - saturation))
	return pointdata.Color{R: value, G: value, B: value, A: value}
}
