package s2split

import (
	"io"

	"github.com/golang/geo/s2"
	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/pkg/nodeio"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// Splitter groups incoming point batches by their level-20 S2 cell and
// appends each group to that cell's node files, the direct port of
// original_source/src/read_write/s2.rs's S2Splitter::write.
type Splitter struct {
	pool *cellWriterPool
}

// New returns a Splitter writing cell files under dir.
func New(dir string) *Splitter {
	return &Splitter{pool: newCellWriterPool(dir)}
}

// Write routes every point in batch to its S2 cell's node files,
// rejecting the whole batch if any point falls outside the valid ECEF
// radius band (matching the original's all-or-nothing InvalidInput
// error -- it returns before writing anything on the first bad point).
func (s *Splitter) Write(batch *pointdata.PointsBatch) error {
	for _, p := range batch.Positions {
		if err := checkECEFDomain(p); err != nil {
			return err
		}
	}

	byCell := make(map[s2.CellID]*pointdata.BatchBuilder)
	for i, p := range batch.Positions {
		cell := cellIDFor(p)
		b, ok := byCell[cell]
		if !ok {
			b = pointdata.NewBatchBuilder()
			byCell[cell] = b
		}
		b.Push(batch.Point(i))
	}

	sigolo.Debugf("s2split: routing %d points across %d cells", batch.NumPoints(), len(byCell))
	for cell, builder := range byCell {
		if err := s.writeCell(cell, builder.Build()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Splitter) writeCell(cell s2.CellID, batch *pointdata.PointsBatch) error {
	position, err := s.pool.Writer(cell, "position")
	if err != nil {
		return err
	}

	attrFiles := make(map[string]io.Writer, len(batch.Attributes))
	for name := range batch.Attributes {
		f, err := s.pool.Writer(cell, name)
		if err != nil {
			return err
		}
		attrFiles[name] = f
	}

	return nodeio.NewNodeWriter(ecefEncoding, position, attrFiles).Write(batch)
}

// Close flushes and closes every open cell file.
func (s *Splitter) Close() {
	s.pool.CloseAll()
}
