package xray

import (
	"math"

	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// onlineStats computes a running mean/variance via Welford's algorithm,
// the Go stand-in for the original's `stats::OnlineStats`.
type onlineStats struct {
	count int
	mean  float64
	m2    float64
}

func (s *onlineStats) add(v float64) {
	s.count++
	delta := v - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (v - s.mean)
}

func (s *onlineStats) stddev() float64 {
	if s.count < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.count-1))
}

// HeightStddevStrategy colors each pixel by its column's height (z)
// standard deviation, clamped to [0, MaxStddev] and mapped through the
// Jet colormap. Ported from HeightStddevColoringStrategy.
type HeightStddevStrategy struct {
	MaxStddev float32

	perColumn map[columnKey]*onlineStats
}

// NewHeightStddevStrategy returns a HeightStddevStrategy clamping
// saturation at maxStddev.
func NewHeightStddevStrategy(maxStddev float32) *HeightStddevStrategy {
	return &HeightStddevStrategy{MaxStddev: maxStddev, perColumn: make(map[columnKey]*onlineStats)}
}

func (s *HeightStddevStrategy) ProcessDiscretizedPoint(p pointdata.Point, x, y, _ uint32) {
	key := columnKey{x, y}
	stats, ok := s.perColumn[key]
	if !ok {
		stats = &onlineStats{}
		s.perColumn[key] = stats
	}
	stats.add(p.Position.Z)
}

func (s *HeightStddevStrategy) GetPixelColor(x, y uint32) pointdata.Color {
	stats, ok := s.perColumn[columnKey{x, y}]
	if !ok {
		return white
	}
	stddev := stats.stddev()
	maxStddev := float64(s.MaxStddev)
	if stddev < 0 {
		stddev = 0
	}
	if stddev > maxStddev {
		stddev = maxStddev
	}
	saturation := stddev / maxStddev
	return jet{}.forValue(saturation)
}
