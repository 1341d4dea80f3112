package xray

import (
	"math"

	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

type intensityColumn struct {
	sum   float32
	count int
}

// IntensityStrategy colors each pixel by its column's mean intensity,
// clamped to [Min, Max] and log-brightened across that range. Ported
// from IntensityColoringStrategy; points with HasIntensity == false or
// a negative intensity are skipped, matching the original's guard
// (negative intensities return early without being folded in).
type IntensityStrategy struct {
	Min, Max float32

	perColumn map[columnKey]*intensityColumn
}

// NewIntensityStrategy returns an IntensityStrategy clamping to [min, max].
func NewIntensityStrategy(min, max float32) *IntensityStrategy {
	return &IntensityStrategy{Min: min, Max: max, perColumn: make(map[columnKey]*intensityColumn)}
}

func (s *IntensityStrategy) ProcessDiscretizedPoint(p pointdata.Point, x, y, _ uint32) {
	if !p.HasIntensity || p.Intensity < 0 {
		return
	}
	key := columnKey{x, y}
	c, ok := s.perColumn[key]
	if !ok {
		c = &intensityColumn{}
		s.perColumn[key] = c
	}
	c.sum += p.Intensity
	c.count++
}

func (s *IntensityStrategy) GetPixelColor(x, y uint32) pointdata.Color {
	c, ok := s.perColumn[columnKey{x, y}]
	if !ok {
		return white
	}
	mean := c.sum / float32(c.count)
	if mean < s.Min {
		mean = s.Min
	}
	if mean > s.Max {
		mean = s.Max
	}
	brighten := math.Log(float64(mean-s.Min)) / math.Log(float64(s.Max-s.Min))
	v := to8(brighten)
	return pointdata.Color{R: v, G: v, B: v, A: 255}
}
