package pointdata

// AttributeDataType enumerates the closed set of typed column shapes a
// node attribute can hold on disk (§3).
type AttributeDataType int

const (
	U8 AttributeDataType = iota
	I64
	U64
	F32
	F64
	U8Vec3
	F64Vec3
	U8Vec4
)

func (t AttributeDataType) String() string {
	switch t {
	case U8:
		return "u8"
	case I64:
		return "i64"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case U8Vec3:
		return "u8vec3"
	case F64Vec3:
		return "f64vec3"
	case U8Vec4:
		return "u8vec4"
	default:
		return "unknown"
	}
}

// BytesPerElement is the on-disk width of one row of this column.
func (t AttributeDataType) BytesPerElement() int {
	switch t {
	case U8:
		return 1
	case I64, U64:
		return 8
	case F32:
		return 4
	case F64:
		return 8
	case U8Vec3:
		return 3
	case F64Vec3:
		return 24
	case U8Vec4:
		return 4
	default:
		return 0
	}
}

// AttributeData is a single typed column; exactly one slice field is
// populated, selected by DataType, mirroring the original's LayerData
// enum as a tagged struct rather than an interface, since the Reader
// always knows the type up front from the node's meta.
type AttributeData struct {
	DataType AttributeDataType

	U8      []uint8
	I64     []int64
	U64     []uint64
	F32     []float32
	F64     []float64
	U8Vec3  [][3]uint8
	F64Vec3 [][3]float64
	U8Vec4  [][4]uint8
}

// Len returns the column's row count, i.e. the number of points it
// covers.
func (a AttributeData) Len() int {
	switch a.DataType {
	case U8:
		return len(a.U8)
	case I64:
		return len(a.I64)
	case U64:
		return len(a.U64)
	case F32:
		return len(a.F32)
	case F64:
		return len(a.F64)
	case U8Vec3:
		return len(a.U8Vec3)
	case F64Vec3:
		return len(a.F64Vec3)
	case U8Vec4:
		return len(a.U8Vec4)
	default:
		return 0
	}
}
