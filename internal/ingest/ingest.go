// Package ingest defines the minimal point-stream contract the builder
// consumes (PLY/PTS parsing is explicitly out of scope, spec.md §1) and
// ships one trivial text reader so the builder is exercisable end to
// end, grounded on the worker/job channel shape of beetlebugorg/s57's
// parallel loader (pkg/v1/parallel.go) adapted to a single-producer
// streaming iterator instead of a batch of parallel file loads.
package ingest

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/googlecartographer/point-cloud-viewer/internal/geom"
	"github.com/googlecartographer/point-cloud-viewer/internal/werrors"
	"github.com/googlecartographer/point-cloud-viewer/pkg/pointdata"
)

// PointIterator is the streaming contract the builder's phase 1 reads
// from: repeated Next() calls until io.EOF.
type PointIterator interface {
	// Next returns the next point, or io.EOF once exhausted.
	Next() (pointdata.Point, error)
}

// TextPointIterator reads whitespace-delimited
// "x y z [intensity] [r g b]" lines, one point per line. It exists as
// scaffolding for exercising the builder without a full PLY/PTS parser.
type TextPointIterator struct {
	scanner *bufio.Scanner
	closer  io.Closer
	closed  bool
}

// NewTextPointIterator wraps r as a TextPointIterator. If r also
// implements io.Closer (e.g. an *os.File the caller handed off
// ownership of), it is closed once Next first reports io.EOF or a
// read error, so a builder scan pass that opens its own file doesn't
// leak the descriptor across the two passes it runs.
func NewTextPointIterator(r io.Reader) *TextPointIterator {
	it := &TextPointIterator{scanner: bufio.NewScanner(r)}
	if c, ok := r.(io.Closer); ok {
		it.closer = c
	}
	return it
}

func (it *TextPointIterator) Next() (pointdata.Point, error) {
	for it.scanner.Scan() {
		line := strings.TrimSpace(it.scanner.Text())
		if line == "" {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			it.close()
		}
		return p, err
	}
	it.close()
	if err := it.scanner.Err(); err != nil {
		return pointdata.Point{}, werrors.Wrap(werrors.KindIo, err, "read point line")
	}
	return pointdata.Point{}, io.EOF
}

func (it *TextPointIterator) close() {
	if it.closed || it.closer == nil {
		return
	}
	it.closed = true
	_ = it.closer.Close()
}

func parseLine(line string) (pointdata.Point, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return pointdata.Point{}, werrors.New(werrors.KindMalformedData, "point line needs at least x y z: "+line)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return pointdata.Point{}, werrors.Wrap(werrors.KindMalformedData, err, "parse x")
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return pointdata.Point{}, werrors.Wrap(werrors.KindMalformedData, err, "parse y")
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return pointdata.Point{}, werrors.Wrap(werrors.KindMalformedData, err, "parse z")
	}

	p := pointdata.Point{Position: geom.Vec3{X: x, Y: y, Z: z}}

	switch len(fields) {
	case 4:
		v, err := strconv.ParseFloat(fields[3], 32)
		if err != nil {
			return pointdata.Point{}, werrors.Wrap(werrors.KindMalformedData, err, "parse intensity")
		}
		p.Intensity, p.HasIntensity = float32(v), true
	case 7:
		v, err := strconv.ParseFloat(fields[3], 32)
		if err != nil {
			return pointdata.Point{}, werrors.Wrap(werrors.KindMalformedData, err, "parse intensity")
		}
		p.Intensity, p.HasIntensity = float32(v), true
		r, g, b, err := parseColor(fields[4:7])
		if err != nil {
			return pointdata.Point{}, err
		}
		p.Color, p.HasColor = pointdata.Color{R: r, G: g, B: b}, true
	case 6:
		r, g, b, err := parseColor(fields[3:6])
		if err != nil {
			return pointdata.Point{}, err
		}
		p.Color, p.HasColor = pointdata.Color{R: r, G: g, B: b}, true
	case 3:
		// x y z only, nothing more to parse.
	default:
		return pointdata.Point{}, werrors.New(werrors.KindMalformedData, "point line has an unsupported field count (want 3, 4, 6 or 7): "+line)
	}
	return p, nil
}

func parseColor(fields []string) (uint8, uint8, uint8, error) {
	var out [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return 0, 0, 0, werrors.Wrap(werrors.KindMalformedData, errors.Wrap(err, "parse color channel"), "parse color")
		}
		out[i] = uint8(v)
	}
	return out[0], out[1], out[2], nil
}
