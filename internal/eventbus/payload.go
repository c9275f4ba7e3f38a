package eventbus

// FieldType tags the declared type of a payload field. Regardless of the tag,
// the field value is always carried as its decimal string representation.
type FieldType int

// The closed set of field types a payload may declare.
const (
	FieldString FieldType = iota
	FieldFloat
	FieldUint8
	FieldUint32
	FieldUint64
	FieldInt8
	FieldInt32
	FieldInt64
)

// String returns the wire name of the field type.
func (t FieldType) String() string {
	switch t {
	case FieldString:
		return "string"
	case FieldFloat:
		return "float"
	case FieldUint8:
		return "uint8"
	case FieldUint32:
		return "uint32"
	case FieldUint64:
		return "uint64"
	case FieldInt8:
		return "int8"
	case FieldInt32:
		return "int32"
	case FieldInt64:
		return "int64"
	}
	return "unknown"
}

// Field is one (name, type tag, value) triple of a payload description.
type Field struct {
	Name  string
	Type  FieldType
	Value string
}

// Payload is the contract every event argument implements: it exposes its
// attributes as an ordered field list. The bus never inspects payload
// contents beyond this contract; it is opaque cargo. The order returned by
// Describe is the order consumers observe.
type Payload interface {
	Describe() []Field
}

// Fields is a ready-made Payload for callers that assemble their field list
// directly instead of defining a dedicated type.
type Fields []Field

// Describe returns the field list as-is.
func (f Fields) Describe() []Field { return f }
