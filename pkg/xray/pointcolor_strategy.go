package xray

import "github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"

type colorColumn struct {
	sum   [4]float64
	count int
}

// PointColorStrategy colors each pixel by its column's average point
// color. Ported from PointColorColoringStrategy.
type PointColorStrategy struct {
	perColumn map[columnKey]*colorColumn
}

// NewPointColorStrategy returns an empty PointColorStrategy.
func NewPointColorStrategy() *PointColorStrategy {
	return &PointColorStrategy{perColumn: make(map[columnKey]*colorColumn)}
}

func (s *PointColorStrategy) ProcessDiscretizedPoint(p pointdata.Point, x, y, _ uint32) {
	key := columnKey{x, y}
	c, ok := s.perColumn[key]
	if !ok {
		c = &colorColumn{}
		s.perColumn[key] = c
	}
	c.sum[0] += float64(p.Color.R)
	c.sum[1] += float64(p.Color.G)
	c.sum[2] += float64(p.Color.B)
	c.sum[3] += float64(p.Color.A)
	c.count++
}

func (s *PointColorStrategy) GetPixelColor(x, y uint32) pointdata.Color {
	c, ok := s.perColumn[columnKey{x, y}]
	if !ok {
		return white
	}
	n := float64(c.count)
	return pointdata.Color{
		R: uint8(c.sum[0] / n),
		G: uint8(c.sum[1] / n),
		B: uint8(c.sum[2] / n),
		A: uint8(c.sum[3] / n),
	}
}
