// Package schema implements a declarative deserialization engine for JSON
// API responses. A model declares an ordered list of fields, each with a
// type built from a small closed set of kinds; Deserialize walks the
// declaration and a decoded JSON object and produces a validated field map.
package schema

// Kind identifies one node in a declared field type.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindNull
	KindEnum
	KindDate
	KindDateTime
	KindModel
	KindCustom
	// Wrapper kinds. Optional and Sequence carry an element type and are
	// stripped before a converter is picked.
	KindOptional
	KindSequence
)

var kindNames = map[Kind]string{
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindNull:     "null",
	KindEnum:     "enum",
	KindDate:     "date",
	KindDateTime: "datetime",
	KindModel:    "model",
	KindCustom:   "custom",
	KindOptional: "optional",
	KindSequence: "sequence",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ConvertFunc turns a raw decoded JSON value into its typed form. Used for
// kinds that need an escape hatch from the standard dispatch, e.g. objects
// keyed by platform or language code.
type ConvertFunc func(raw any) (any, error)

// TransformFunc is a pure value rewrite applied to the raw value before
// conversion. For sequence fields it is applied per element.
type TransformFunc func(raw any) any

// Prefix returns a transform that prepends p to raw string values. The
// typical use is completing protocol-relative URLs ("//host/x" -> "https://host/x").
func Prefix(p string) TransformFunc {
	return func(raw any) any {
		if s, ok := raw.(string); ok {
			return p + s
		}
		return raw
	}
}

// Type is one node of a declared field type. Leaf nodes carry the data for
// their kind; the Optional and Sequence wrappers only carry an element.
type Type struct {
	kind    Kind
	elem    *Type
	enum    []string
	model   *Schema
	convert ConvertFunc
}

// Primitive leaf types, shared across all schemas.
var (
	Bool     = &Type{kind: KindBool}
	Int      = &Type{kind: KindInt}
	Float    = &Type{kind: KindFloat}
	String   = &Type{kind: KindString}
	Null     = &Type{kind: KindNull}
	Date     = &Type{kind: KindDate}
	DateTime = &Type{kind: KindDateTime}
)

// Optional wraps t so that an absent or explicitly null raw value is stored
// as nil instead of failing the required-field check.
func Optional(t *Type) *Type {
	return &Type{kind: KindOptional, elem: t}
}

// Seq wraps t as a homogeneous JSON-array type.
func Seq(t *Type) *Type {
	return &Type{kind: KindSequence, elem: t}
}

// Enum declares a closed set of string values. Raw values outside the set
// fail with InvalidEnumValueError.
func Enum(values ...string) *Type {
	return &Type{kind: KindEnum, enum: values}
}

// Model declares a nested object deserialized recursively with s.
func Model(s *Schema) *Type {
	return &Type{kind: KindModel, model: s}
}

// Custom declares a type converted by fn instead of the standard dispatch.
func Custom(fn ConvertFunc) *Type {
	return &Type{kind: KindCustom, convert: fn}
}

// Kind reports the outermost kind of the type.
func (t *Type) Kind() Kind { return t.kind }

// Elem returns the wrapped element of an Optional or Sequence node, nil for
// leaf nodes.
func (t *Type) Elem() *Type { return t.elem }

// IsOptional reports whether the outermost node admits null/absent values.
func (t *Type) IsOptional() bool { return t.kind == KindOptional }

// IsSequence reports whether the outermost node is an array container.
func (t *Type) IsSequence() bool { return t.kind == KindSequence }

// Leaf strips wrapper nodes until a concrete leaf remains. Unwrapping is
// guarded against fixed points: a wrapper whose element is missing or is the
// node itself terminates the walk and is returned as-is.
func (t *Type) Leaf() *Type {
	for t.kind == KindOptional || t.kind == KindSequence {
		next := t.elem
		if next == nil || next == t {
			return t
		}
		t = next
	}
	return t
}

// Field is one named member of a model schema.
type Field struct {
	Name      string
	Type      *Type
	Transform TransformFunc
}

// Schema is the ordered field list for one model. Schemas are built once at
// package init and never mutated afterwards.
type Schema struct {
	model  string
	fields []Field
}

// New declares a model schema with the given fields, in order.
func New(model string, fields ...Field) *Schema {
	return &Schema{model: model, fields: fields}
}

// Model returns the model name used in diagnostics.
func (s *Schema) Model() string { return s.model }

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field { return s.fields }

// Extend composes a derived schema from s plus additional fields. The base
// fields keep their order and are never renamed or removed; composition
// happens once at declaration, not on every deserialization.
func (s *Schema) Extend(model string, fields ...Field) *Schema {
	merged := make([]Field, 0, len(s.fields)+len(fields))
	merged = append(merged, s.fields...)
	merged = append(merged, fields...)
	return &Schema{model: model, fields: merged}
}

// Check verifies that every field of the schema, recursively through nested
// models, resolves to a converter. A failure is a programmer error in the
// schema declaration and should abort startup rather than surface on the
// first request.
func (s *Schema) Check() error {
	return s.check(map[*Schema]bool{})
}

func (s *Schema) check(seen map[*Schema]bool) error {
	if seen[s] {
		return nil
	}
	seen[s] = true
	for _, f := range s.fields {
		if f.Type == nil {
			return &UnsupportedTypeError{Model: s.model, Field: f.Name, Kind: Kind(-1)}
		}
		leaf := f.Type.Leaf()
		switch leaf.kind {
		case KindBool, KindInt, KindFloat, KindString, KindNull, KindDate, KindDateTime:
		case KindEnum:
			if len(leaf.enum) == 0 {
				return &UnsupportedTypeError{Model: s.model, Field: f.Name, Kind: leaf.kind}
			}
		case KindCustom:
			if leaf.convert == nil {
				return &UnsupportedTypeError{Model: s.model, Field: f.Name, Kind: leaf.kind}
			}
		case KindModel:
			if leaf.model == nil {
				return &UnsupportedTypeError{Model: s.model, Field: f.Name, Kind: leaf.kind}
			}
			if err := leaf.model.check(seen); err != nil {
				return err
			}
		default:
			return &UnsupportedTypeError{Model: s.model, Field: f.Name, Kind: leaf.kind}
		}
	}
	return nil
}

// MustCheck panics if s fails its self-check. Intended for package-level
// schema registration.
func MustCheck(s *Schema) *Schema {
	if err := s.Check(); err != nil {
		panic(err)
	}
	return s
}
