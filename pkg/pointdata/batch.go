package pointdata

import "github.com/googlecartographer/point-cloud-viewer/internal/geom"

// PointsBatch is a column-oriented batch (§3): positions plus a map of
// attribute name to typed column, all sharing the position count. It's
// the unit of callback delivery for both NodeReader and BatchIterator.
type PointsBatch struct {
	Positions  []geom.Vec3
	Attributes map[string]AttributeData
}

// NumPoints returns the batch's shared row count.
func (b *PointsBatch) NumPoints() int {
	return len(b.Positions)
}

// Color extracts the conventional "color" attribute as RGBA, filling A
// from U8Vec4's 4th channel or leaving it 0 for a U8Vec3-only column,
// per the colors Open Question decision in DESIGN.md.
func (b *PointsBatch) Color(i int) (Color, bool) {
	attr, ok := b.Attributes["color"]
	if !ok {
		return Color{}, false
	}
	switch attr.DataType {
	case U8Vec3:
		if i >= len(attr.U8Vec3) {
			return Color{}, false
		}
		c := attr.U8Vec3[i]
		return Color{R: c[0], G: c[1], B: c[2]}, true
	case U8Vec4:
		if i >= len(attr.U8Vec4) {
			return Color{}, false
		}
		c := attr.U8Vec4[i]
		return Color{R: c[0], G: c[1], B: c[2], A: c[3]}, true
	default:
		return Color{}, false
	}
}

// Intensity extracts the conventional "intensity" attribute.
func (b *PointsBatch) Intensity(i int) (float32, bool) {
	attr, ok := b.Attributes["intensity"]
	if !ok || attr.DataType != F32 || i >= len(attr.F32) {
		return 0, false
	}
	return attr.F32[i], true
}

// Point reassembles row i as a single Point, for callers that want
// point-at-a-time access over a column batch.
func (b *PointsBatch) Point(i int) Point {
	p := Point{Position: b.Positions[i]}
	if c, ok := b.Color(i); ok {
		p.Color, p.HasColor = c, true
		p.ColorHasAlpha = b.Attributes["color"].DataType == U8Vec4
	}
	if v, ok := b.Intensity(i); ok {
		p.Intensity, p.HasIntensity = v, true
	}
	return p
}

// NewBatchBuilder returns an empty, growable batch used by writers
// accumulating points before a single typed-column flush.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// BatchBuilder accumulates Points and flushes them into a PointsBatch's
// column layout, mirroring the original's PointStream accumulate-then-
// flush shape (batch_iterator.rs).
type BatchBuilder struct {
	positions []geom.Vec3
	colors    [][4]uint8
	hasColor  bool
	hasAlpha  bool
	intensity []float32
	hasInten  bool
}

func (b *BatchBuilder) Len() int { return len(b.positions) }

// Push appends a point. A column is carried in the built batch as soon
// as any pushed point has HasColor (or HasIntensity) set; points without
// it contribute zero values to that column. ColorHasAlpha is sticky
// across the whole batch in the same way: one point with a
// genuine 4th channel is enough to make Build emit U8Vec4 for all of
// them, so a node that mixes U8Vec3 and U8Vec4 children (via
// subsampling) never silently drops the alpha it read.
func (b *BatchBuilder) Push(p Point) {
	b.positions = append(b.positions, p.Position)
	if p.HasColor {
		b.hasColor = true
	}
	if p.ColorHasAlpha {
		b.hasAlpha = true
	}
	b.colors = append(b.colors, [4]uint8{p.Color.R, p.Color.G, p.Color.B, p.Color.A})
	if p.HasIntensity {
		b.hasInten = true
	}
	b.intensity = append(b.intensity, p.Intensity)
}

// Build materializes the accumulated points into a PointsBatch and
// resets the builder for reuse.
func (b *BatchBuilder) Build() *PointsBatch {
	batch := &PointsBatch{
		Positions:  b.positions,
		Attributes: map[string]AttributeData{},
	}
	if b.hasColor {
		if b.hasAlpha {
			batch.Attributes["color"] = AttributeData{DataType: U8Vec4, U8Vec4: b.colors}
		} else {
			rgb := make([][3]uint8, len(b.colors))
			for i, c := range b.colors {
				rgb[i] = [3]uint8{c[0], c[1], c[2]}
			}
			batch.Attributes["color"] = AttributeData{DataType: U8Vec3, U8Vec3: rgb}
		}
	}
	if b.hasInten {
		batch.Attributes["intensity"] = AttributeData{DataType: F32, F32: b.intensity}
	}
	b.positions, b.colors, b.intensity = nil, nil, nil
	b.hasColor, b.hasAlpha, b.hasInten = false, false, false
	return batch
}
